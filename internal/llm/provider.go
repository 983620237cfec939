// Package llm talks to the language models that write tests, practice
// problems and starter code.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one completion. Implementations translate Request
// into their SDK's call and report failures with the error types in
// errors.go so callers can tell transient failures from bad output.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the concrete model the provider sends requests to.
	ModelID() string
}

// Request is a single-turn generation request.
type Request struct {
	// Purpose labels the request in the event log and in traces, for
	// example "test-gen" or "starter-code". Empty is logged as "unknown".
	Purpose string

	System   string
	Messages []Message

	// Schema, when set, asks for JSON output through the provider's
	// structured output mechanism. The response is validated against it.
	Schema *Schema

	// MaxTokens caps the response length. Zero uses defaultMaxTokens.
	MaxTokens int

	// Temperature is passed through when positive.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Stop reasons, normalized across providers.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

const defaultMaxTokens = 8192

// Response holds the model's output.
type Response struct {
	// Content is validated JSON for structured requests and the raw text
	// otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the model that served the request as reported by the API.
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage(in, out int) Usage {
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

func (r Request) purpose() string {
	if r.Purpose == "" {
		return "unknown"
	}
	return r.Purpose
}

func (r Request) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return defaultMaxTokens
}

// settle finishes a provider response. Structured output has markdown
// fences removed and is checked against the schema; output cut off by the
// token limit is reported as *ErrMaxTokensExceeded rather than as invalid.
func settle(req Request, resp *Response) (*Response, error) {
	if req.Schema == nil {
		return resp, nil
	}
	resp.Content = json.RawMessage(StripFences(string(resp.Content)))
	if resp.StopReason == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	if err := req.Schema.Validate(resp.Content); err != nil {
		return nil, err
	}
	return resp, nil
}
