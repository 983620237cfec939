package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/evalyze/evalyze/internal/kv"
)

// Generator produces the questions for a test.
type Generator interface {
	GenerateTest(ctx context.Context, spec TestSpec) ([]Question, error)
}

// Phase is the controller's lifecycle position.
type Phase int

const (
	PhaseIdle      Phase = iota // No session
	PhaseLoading                // Waiting for generated questions
	PhaseActive                 // Serving questions
	PhaseCompleted              // Results available
	PhaseFailed                 // Generation failed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseActive:
		return "active"
	case PhaseCompleted:
		return "completed"
	case PhaseFailed:
		return "failed"
	}
	return "idle"
}

// Event is an input to the controller. Events are applied one at a time
// by Handle, either directly from a UI update loop or through Run.
type Event interface{ event() }

// Loaded delivers the outcome of question generation.
type Loaded struct {
	Questions []Question
	Err       error
}

// Tick reports elapsed wall-clock seconds. The zero value is one second.
type Tick struct{ Seconds int }

// Draft replaces the in-progress response to the current question.
type Draft struct{ Text string }

// Submit records Response for the current question and advances. A
// non-zero QuestionID pins the answer to that question: if the session
// has moved on by the time the event is handled, it is dropped.
type Submit struct {
	QuestionID int
	Response   string
}

// Back retreats to the previous question and restores its answer.
type Back struct{}

func (Loaded) event() {}
func (Tick) event()   {}
func (Draft) event()  {}
func (Submit) event() {}
func (Back) event()   {}

// Snapshot is a read-only view of the controller for rendering.
type Snapshot struct {
	SessionID string
	Spec      TestSpec
	Phase     Phase
	Index     int
	Total     int
	Question  *Question
	Draft     string
	Remaining int
	Budget    int
	IsFirst   bool
	IsLast    bool
	Answered  int
	Result    *Result
	Err       error
}

// Options configures a Controller.
type Options struct {
	// Cache receives the question list under kv.CurrentTestKey. Optional.
	Cache kv.Store

	// Logger receives cache warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// Controller runs one test session at a time. It is single-threaded:
// every mutation happens inside Handle.
type Controller struct {
	gen    Generator
	cache  kv.Store
	logger *slog.Logger

	id     string
	spec   TestSpec
	phase  Phase
	budget int
	seq    *Sequencer
	rec    *Recorder
	timer  *Timer
	draft  string
	result *Result
	err    error
}

// NewController creates an idle controller.
func NewController(gen Generator, opts Options) *Controller {
	c := &Controller{
		gen:    gen,
		cache:  opts.Cache,
		logger: opts.Logger,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.timer = NewTimer(c.expire)
	return c
}

// Begin records spec and moves to the loading phase. The caller fetches
// questions (see Fetch) and delivers them as a Loaded event.
func (c *Controller) Begin(spec TestSpec) error {
	if c.phase == PhaseLoading || c.phase == PhaseActive {
		return fmt.Errorf("a test is already in progress")
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	c.reset()
	c.spec = spec
	c.budget = spec.Level.BudgetSeconds()
	c.phase = PhaseLoading
	return nil
}

// Fetch asks the generator for questions. It touches no controller state
// and may run on any goroutine.
func (c *Controller) Fetch(ctx context.Context, spec TestSpec) Loaded {
	qs, err := c.gen.GenerateTest(ctx, spec)
	return Loaded{Questions: qs, Err: err}
}

// Start is Begin, Fetch and Handle(Loaded) in sequence for synchronous callers.
func (c *Controller) Start(ctx context.Context, spec TestSpec) error {
	if err := c.Begin(spec); err != nil {
		return err
	}
	c.Handle(c.Fetch(ctx, spec))
	return c.err
}

// Handle applies one event.
func (c *Controller) Handle(ev Event) {
	switch ev := ev.(type) {
	case Loaded:
		c.load(ev)
	case Tick:
		// Seconds left over after an expiry count against the next question.
		for range max(ev.Seconds, 1) {
			if c.phase != PhaseActive {
				break
			}
			c.timer.Tick()
		}
	case Draft:
		if c.phase == PhaseActive {
			c.draft = ev.Text
		}
	case Submit:
		if c.phase == PhaseActive && c.isCurrent(ev.QuestionID) {
			c.submit(ev.Response)
		}
	case Back:
		if c.phase == PhaseActive {
			c.back()
		}
	}
}

// Run applies events from the channel until the session completes or
// fails, the channel closes, or ctx ends. notify, if set, sees the
// snapshot after every event.
func (c *Controller) Run(ctx context.Context, events <-chan Event, notify func(Snapshot)) error {
	for {
		select {
		case <-ctx.Done():
			c.timer.Cancel()
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				c.timer.Cancel()
				return nil
			}
			c.Handle(ev)
			if notify != nil {
				notify(c.Snapshot())
			}
			switch c.phase {
			case PhaseCompleted:
				return nil
			case PhaseFailed:
				return c.err
			}
		}
	}
}

// Ticks sends a Tick on out every interval until ctx ends, with interval
// standing in for one second. While the consumer is busy nothing queues
// up: the next Tick that gets through carries every interval that passed
// since the last one delivered.
func Ticks(ctx context.Context, interval time.Duration, out chan<- Event) {
	last := time.Now()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n := int(now.Sub(last) / interval)
			if n < 1 {
				continue
			}
			select {
			case out <- Tick{Seconds: n}:
				last = last.Add(time.Duration(n) * interval)
			default:
			}
		}
	}
}

// Snapshot returns the current view of the session.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		SessionID: c.id,
		Spec:      c.spec,
		Phase:     c.phase,
		Draft:     c.draft,
		Budget:    c.budget,
		Result:    c.result,
		Err:       c.err,
	}
	if c.seq != nil {
		s.Index = c.seq.Index()
		s.Total = c.seq.Len()
		s.IsFirst = c.seq.IsFirst()
		s.IsLast = c.seq.IsLast()
		if q, ok := c.seq.Current(); ok {
			s.Question = &q
		}
	}
	if c.rec != nil {
		s.Answered = c.rec.Len()
	}
	if c.phase == PhaseActive {
		s.Remaining = c.timer.Remaining()
	}
	return s
}

// Phase returns the lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// Result returns the aggregate once the session is complete.
func (c *Controller) Result() (Result, bool) {
	if c.result == nil {
		return Result{}, false
	}
	return *c.result, true
}

// Answers returns the answers recorded so far.
func (c *Controller) Answers() map[int]Answer {
	if c.rec == nil {
		return nil
	}
	return c.rec.Answers()
}

// Reset discards the session and returns to idle.
func (c *Controller) Reset() {
	c.reset()
}

func (c *Controller) reset() {
	c.timer.Cancel()
	c.id = ""
	c.spec = TestSpec{}
	c.phase = PhaseIdle
	c.budget = 0
	c.seq = nil
	c.rec = nil
	c.draft = ""
	c.result = nil
	c.err = nil
}

func (c *Controller) load(ev Loaded) {
	if c.phase != PhaseLoading {
		return
	}
	err := ev.Err
	if err == nil {
		err = checkQuestions(ev.Questions)
	}
	if err != nil {
		c.phase = PhaseFailed
		c.err = &StartError{Spec: c.spec, Err: err}
		return
	}

	c.id = uuid.NewString()
	c.seq = NewSequencer(ev.Questions)
	c.rec = NewRecorder(ev.Questions)
	c.phase = PhaseActive
	c.saveCurrentTest(ev.Questions)
	c.timer.Reset(c.budget)
}

func checkQuestions(qs []Question) error {
	if len(qs) == 0 {
		return ErrNoQuestions
	}
	seen := make(map[int]bool, len(qs))
	for _, q := range qs {
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %d", q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}

func (c *Controller) saveCurrentTest(qs []Question) {
	if c.cache == nil {
		return
	}
	if err := kv.SetJSON(context.Background(), c.cache, kv.CurrentTestKey, qs); err != nil {
		c.logger.Warn("cache current test", "error", err)
	}
}

// expire runs when the countdown reaches zero: the draft is submitted as is.
func (c *Controller) expire() {
	if c.phase != PhaseActive {
		return
	}
	c.submit(c.draft)
}

func (c *Controller) isCurrent(questionID int) bool {
	if questionID == 0 {
		return true
	}
	q, ok := c.seq.Current()
	if ok && q.ID == questionID {
		return true
	}
	c.logger.Debug("stale answer dropped", "question", questionID, "current", q.ID)
	return false
}

func (c *Controller) submit(response string) {
	q, ok := c.seq.Current()
	if !ok {
		return
	}
	if _, err := c.rec.Record(q.ID, response, c.timer.Elapsed()); err != nil {
		c.logger.Warn("record answer", "question", q.ID, "error", err)
	}
	c.seq.Advance()
	if c.seq.Done() {
		c.finish()
		return
	}
	// Moving forward always starts blank; only Back restores.
	c.draft = ""
	c.timer.Reset(c.budget)
}

func (c *Controller) back() {
	if c.seq.IsFirst() {
		return
	}
	c.seq.Retreat()
	q, _ := c.seq.Current()
	c.draft = c.rec.Restore(q.ID)
	c.timer.Reset(c.budget)
}

func (c *Controller) finish() {
	c.timer.Cancel()
	res := Aggregate(c.seq.Questions(), c.rec.Answers())
	c.result = &res
	c.draft = ""
	c.phase = PhaseCompleted
}
