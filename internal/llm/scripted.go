package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// Reply is one scripted outcome of a Scripted provider.
type Reply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// JSON is a Reply carrying content.
func JSON(content string) Reply {
	return Reply{Content: json.RawMessage(content)}
}

// Fail is a Reply failing with err.
func Fail(err error) Reply {
	return Reply{Err: err}
}

// Scripted is an offline Provider that plays back replies in order. It
// backs the "mock" provider and the generator tests. Replies are returned
// as scripted, without schema validation, so tests can feed the
// generator malformed output.
type Scripted struct {
	mu       sync.Mutex
	replies  []Reply
	requests []Request
}

// NewScripted creates a provider that returns replies in order and then
// fails with *ErrProviderUnavailable.
func NewScripted(replies ...Reply) *Scripted {
	return &Scripted{replies: replies}
}

func (s *Scripted) Generate(_ context.Context, req Request) (*Response, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	if len(s.replies) == 0 {
		s.mu.Unlock()
		return nil, &ErrProviderUnavailable{Err: errors.New("no scripted replies left")}
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	s.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	return &Response{
		Content:    r.Content,
		Usage:      r.Usage,
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

func (s *Scripted) ModelID() string { return "mock" }

// Requests returns the requests received so far.
func (s *Scripted) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Calls is the number of requests received.
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}
