package bot

import (
	"context"
	"sync"

	"gopkg.in/telebot.v4"

	"github.com/evalyze/evalyze/internal/session"
)

// chat is one chat's running session as seen from the handlers. The
// controller itself is owned by the session goroutine; handlers only push
// events and read the question last shown.
type chat struct {
	to     *telebot.Chat
	events chan session.Event

	runCtx   context.Context
	cancelFn context.CancelFunc

	mu       sync.Mutex
	index    int
	question *session.Question

	// Touched only on the session goroutine.
	msg   *telebot.Message
	shown int
}

func newChat(ctx context.Context, to *telebot.Chat, cancel context.CancelFunc) *chat {
	return &chat{
		to:       to,
		events:   make(chan session.Event, 1),
		runCtx:   ctx,
		cancelFn: cancel,
		index:    -1,
	}
}

// ctx ends when the session does.
func (c *chat) ctx() context.Context { return c.runCtx }

// push delivers ev to the session unless it has ended.
func (c *chat) push(ctx context.Context, ev session.Event) {
	select {
	case c.events <- ev:
	case <-ctx.Done():
	}
}

// show records the question in s and reports whether it differs from the
// one last shown.
func (c *chat) show(s session.Snapshot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.Index == c.index && c.question != nil && c.question.ID == s.Question.ID {
		return false
	}
	q := *s.Question
	c.index = s.Index
	c.question = &q
	return true
}

func (c *chat) current() (*session.Question, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.question, c.index
}

func (c *chat) stop() {
	c.mu.Lock()
	c.question = nil
	c.mu.Unlock()
	c.cancelFn()
}
