package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

func TestRetry_Policy(t *testing.T) {
	down := Fail(&ErrProviderUnavailable{Err: errors.New("503")})
	invalid := Fail(&ErrInvalidResponse{Content: []byte(`{"questions":"none"}`), Err: errors.New("schema")})
	ok := JSON(`{"suggestions":["Go Generics"]}`)

	tests := []struct {
		name      string
		replies   []Reply
		wantCalls int
		wantErr   bool
	}{
		{"first attempt succeeds", []Reply{ok}, 1, false},
		{"outage then success", []Reply{down, ok}, 2, false},
		{"outage every time", []Reply{down, down, down, ok}, 3, true},
		{"rate limit honours retry-after", []Reply{Fail(&ErrRateLimit{RetryAfter: time.Millisecond}), ok}, 2, false},
		{"invalid output retried once", []Reply{invalid, invalid, ok}, 2, true},
		{"invalid then outage then success", []Reply{invalid, down, ok}, 3, false},
		{"truncation not retried", []Reply{Fail(&ErrMaxTokensExceeded{}), ok}, 1, true},
		{"missing key not retried", []Reply{Fail(&ErrNotConfigured{Provider: "Gemini"}), ok}, 1, true},
		{"deadline not retried", []Reply{Fail(context.DeadlineExceeded), ok}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScripted(tt.replies...)
			resp, err := WithRetry(s, fastRetry(3)).Generate(context.Background(), Request{Purpose: "suggest"})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, `{"suggestions":["Go Generics"]}`, string(resp.Content))
			}
			assert.Equal(t, tt.wantCalls, s.Calls())
		})
	}
}

func TestRetry_SingleAttemptByDefault(t *testing.T) {
	s := NewScripted(Fail(&ErrProviderUnavailable{}), JSON(`{}`))
	_, err := WithRetry(s, DefaultConfig().Retry).Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, 1, s.Calls())

	s = NewScripted(JSON(`{}`))
	_, err = WithRetry(s, RetryConfig{}).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Calls())
}

func TestRetry_StopsWhenCancelled(t *testing.T) {
	s := NewScripted(Fail(&ErrProviderUnavailable{}), JSON(`{}`))
	cfg := fastRetry(3)
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := WithRetry(s, cfg).Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, s.Calls())
}

func TestRetry_Wait(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: time.Second, Multiplier: 2}}
	down := &ErrProviderUnavailable{}

	assert.InDelta(t, float64(100*time.Millisecond), float64(r.wait(1, down)), float64(20*time.Millisecond))
	assert.InDelta(t, float64(400*time.Millisecond), float64(r.wait(3, down)), float64(80*time.Millisecond))
	assert.InDelta(t, float64(time.Second), float64(r.wait(10, down)), float64(200*time.Millisecond))
	assert.Equal(t, 3*time.Second, r.wait(1, &ErrRateLimit{RetryAfter: 3 * time.Second}))
	assert.Equal(t, "mock", WithRetry(NewScripted(), r.config).ModelID())
}

// blockingProvider waits for the context to end.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestTimeout_BoundsCall(t *testing.T) {
	p := WithTimeout(blockingProvider{}, 5*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "blocking", p.ModelID())
}
