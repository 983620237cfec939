// Package bot runs test sessions over Telegram. Each chat gets its own
// session.Controller driven through its event loop; state lives in memory
// only and is lost on restart.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"gopkg.in/telebot.v4"
	"gopkg.in/telebot.v4/middleware"

	"github.com/evalyze/evalyze/internal/kv"
	"github.com/evalyze/evalyze/internal/session"
)

// Telegram rejects messages longer than this.
const maxMessageLen = 4096

// countdownStep is how often, in seconds, the countdown on a question
// message is refreshed.
const countdownStep = 10

const (
	msgNoTest      = "No test is running. Start one with /test <skill>."
	msgBusy        = "A test is already running in this chat. Send /cancel to stop it."
	msgStale       = "That question is no longer active."
	msgPickOption  = "Tap one of the options above."
	msgCancelled   = "Test cancelled."
	msgGenerating  = "Generating a %s %s test on %s..."
	msgHelp        = "Evalyze tests your knowledge of a skill with five generated questions.\n\n" + usage + "\n\n/back returns to the previous question, /cancel stops the test."
	defaultTimeout = 10 * time.Second
)

// sender is the part of *telebot.Bot used to talk to chats.
type sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
	Edit(msg telebot.Editable, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Options configures a Bot.
type Options struct {
	Token       string
	PollTimeout time.Duration

	// Cache receives each chat's current test. Optional.
	Cache kv.Store

	// TickInterval is the countdown resolution. Defaults to one second.
	TickInterval time.Duration

	Logger *slog.Logger
}

// Bot serves tests to Telegram chats.
type Bot struct {
	tb     *telebot.Bot
	out    sender
	gen    session.Generator
	cache  kv.Store
	tick   time.Duration
	logger *slog.Logger

	mu    sync.Mutex
	chats map[int64]*chat
}

// New connects to Telegram and registers the command handlers.
func New(gen session.Generator, opts Options) (*Bot, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("telegram token is not set (EVALYZE_TELEGRAM_TOKEN)")
	}
	timeout := opts.PollTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	tb, err := telebot.NewBot(telebot.Settings{
		Token:  opts.Token,
		Poller: &telebot.LongPoller{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	b := newBot(tb, gen, opts)
	b.tb = tb
	b.register()
	return b, nil
}

func newBot(out sender, gen session.Generator, opts Options) *Bot {
	b := &Bot{
		out:    out,
		gen:    gen,
		cache:  opts.Cache,
		tick:   opts.TickInterval,
		logger: opts.Logger,
		chats:  make(map[int64]*chat),
	}
	if b.tick <= 0 {
		b.tick = time.Second
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

func (b *Bot) register() {
	b.tb.Use(Recover(b.logger), Logger(b.logger), middleware.AutoRespond())

	b.tb.Handle("/start", b.onHelp)
	b.tb.Handle("/help", b.onHelp)
	b.tb.Handle("/test", b.onTest)
	b.tb.Handle("/back", b.onBack)
	b.tb.Handle("/cancel", b.onCancel)
	b.tb.Handle(&telebot.Btn{Unique: answerUnique}, b.onAnswer)
	b.tb.Handle(&telebot.Btn{Unique: backUnique}, b.onBack)
	b.tb.Handle(telebot.OnText, b.onText)
}

// Run polls Telegram until ctx ends, then stops every running session.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("telegram bot started", "user", b.tb.Me.Username)
	go b.tb.Start()
	<-ctx.Done()
	b.tb.Stop()
	b.stopAll()
	b.logger.Info("telegram bot stopped")
	return nil
}

func (b *Bot) onHelp(c telebot.Context) error {
	return c.Send(msgHelp)
}

func (b *Bot) onTest(c telebot.Context) error {
	spec, err := ParseArgs(c.Args())
	if err != nil {
		return c.Send(err.Error() + "\n\n" + usage)
	}
	if reply := b.startTest(c.Chat(), spec); reply != "" {
		return c.Send(reply)
	}
	return nil
}

func (b *Bot) onAnswer(c telebot.Context) error {
	index, choice, err := ParseAnswerData(c.Callback().Data)
	if err != nil {
		b.logger.Warn("bad callback", "chat", c.Chat().ID, "error", err)
		return nil
	}
	if reply := b.answerChoice(c.Chat().ID, index, choice); reply != "" {
		return c.Send(reply)
	}
	return nil
}

func (b *Bot) onText(c telebot.Context) error {
	text := c.Text()
	if strings.HasPrefix(text, "/") {
		return c.Send(msgHelp)
	}
	if reply := b.answerText(c.Chat().ID, text); reply != "" {
		return c.Send(reply)
	}
	return nil
}

func (b *Bot) onBack(c telebot.Context) error {
	if reply := b.back(c.Chat().ID); reply != "" {
		return c.Send(reply)
	}
	return nil
}

func (b *Bot) onCancel(c telebot.Context) error {
	return c.Send(b.cancel(c.Chat().ID))
}

// startTest begins a session for the chat. The returned text, if any, is
// sent back to the user.
func (b *Bot) startTest(to *telebot.Chat, spec session.TestSpec) string {
	b.mu.Lock()
	if _, busy := b.chats[to.ID]; busy {
		b.mu.Unlock()
		return msgBusy
	}
	ctrl := session.NewController(b.gen, session.Options{Cache: b.cache, Logger: b.logger})
	if err := ctrl.Begin(spec); err != nil {
		b.mu.Unlock()
		return err.Error()
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch := newChat(ctx, to, cancel)
	b.chats[to.ID] = ch
	b.mu.Unlock()

	b.logger.Info("test started", "chat", to.ID, "skill", spec.Skill, "level", spec.Level, "type", spec.Type)
	b.send(to, fmt.Sprintf(msgGenerating, spec.Level, spec.Type, spec.Skill))
	go b.run(ctx, ctrl, ch, spec)
	return ""
}

// run owns ctrl for the lifetime of the session.
func (b *Bot) run(ctx context.Context, ctrl *session.Controller, ch *chat, spec session.TestSpec) {
	defer b.drop(ch)

	go func() { ch.push(ctx, ctrl.Fetch(ctx, spec)) }()
	go session.Ticks(ctx, b.tick, ch.events)

	err := ctrl.Run(ctx, ch.events, func(s session.Snapshot) { b.render(ch, s) })
	switch {
	case ctx.Err() != nil:
		return
	case err != nil:
		b.logger.Warn("test generation failed", "chat", ch.to.ID, "error", err)
		b.send(ch.to, FormatFailure(err))
	default:
		if res, ok := ctrl.Result(); ok {
			b.logger.Info("test finished", "chat", ch.to.ID, "score", res.ScorePercent)
			b.send(ch.to, FormatResult(res))
		}
	}
}

// render is called on the session goroutine after every event.
func (b *Bot) render(ch *chat, s session.Snapshot) {
	if s.Phase != session.PhaseActive || s.Question == nil {
		return
	}
	var opts []interface{}
	if m := QuestionMarkup(s); m != nil {
		opts = append(opts, m)
	}

	if ch.show(s) {
		msg, err := b.out.Send(ch.to, FormatQuestion(s), opts...)
		if err != nil {
			b.logger.Warn("send question", "chat", ch.to.ID, "error", err)
		}
		ch.msg = msg
		ch.shown = s.Remaining
		return
	}
	if ch.msg == nil || s.Remaining == ch.shown || s.Remaining%countdownStep != 0 {
		return
	}
	if _, err := b.out.Edit(ch.msg, FormatQuestion(s), opts...); err != nil {
		b.logger.Debug("update countdown", "chat", ch.to.ID, "error", err)
	}
	ch.shown = s.Remaining
}

func (b *Bot) answerChoice(chatID int64, index, choice int) string {
	ch := b.get(chatID)
	if ch == nil {
		return msgNoTest
	}
	q, cur := ch.current()
	if q == nil || index != cur || q.Kind != session.KindMultipleChoice || choice < 0 || choice >= len(q.Choices) {
		return msgStale
	}
	ch.push(ch.ctx(), session.Submit{QuestionID: q.ID, Response: q.Choices[choice]})
	return ""
}

func (b *Bot) answerText(chatID int64, text string) string {
	ch := b.get(chatID)
	if ch == nil {
		return msgNoTest
	}
	q, _ := ch.current()
	if q == nil {
		return ""
	}
	if q.Kind == session.KindMultipleChoice {
		return msgPickOption
	}
	ch.push(ch.ctx(), session.Submit{QuestionID: q.ID, Response: text})
	return ""
}

func (b *Bot) back(chatID int64) string {
	ch := b.get(chatID)
	if ch == nil {
		return msgNoTest
	}
	ch.push(ch.ctx(), session.Back{})
	return ""
}

func (b *Bot) cancel(chatID int64) string {
	ch := b.get(chatID)
	if ch == nil {
		return msgNoTest
	}
	b.drop(ch)
	b.logger.Info("test cancelled", "chat", chatID)
	return msgCancelled
}

func (b *Bot) get(chatID int64) *chat {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.chats[chatID]
}

// drop forgets the chat's session and stops its goroutines.
func (b *Bot) drop(ch *chat) {
	b.mu.Lock()
	if b.chats[ch.to.ID] == ch {
		delete(b.chats, ch.to.ID)
	}
	b.mu.Unlock()
	ch.stop()
}

func (b *Bot) stopAll() {
	b.mu.Lock()
	chats := make([]*chat, 0, len(b.chats))
	for _, ch := range b.chats {
		chats = append(chats, ch)
	}
	b.chats = make(map[int64]*chat)
	b.mu.Unlock()
	for _, ch := range chats {
		ch.stop()
	}
}

// send delivers text, split to fit Telegram's message limit.
func (b *Bot) send(to telebot.Recipient, text string) {
	for _, part := range splitMessage(text, maxMessageLen) {
		if _, err := b.out.Send(to, part); err != nil {
			b.logger.Warn("send message", "chat", to.Recipient(), "error", err)
			return
		}
	}
}

// splitMessage cuts text into pieces of at most limit bytes, preferring
// line boundaries.
func splitMessage(text string, limit int) []string {
	var parts []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		parts = append(parts, text[:cut])
		text = strings.TrimLeft(text[cut:], "\n")
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}
