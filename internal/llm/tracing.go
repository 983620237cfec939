package llm

import (
	"context"

	"github.com/evalyze/evalyze/internal/telemetry"
)

// TracingProvider is a decorator that wraps every request in an
// llm.generate span.
type TracingProvider struct {
	inner Provider
}

// WithTracing wraps a Provider with OpenTelemetry spans.
func WithTracing(p Provider) Provider {
	return &TracingProvider{inner: p}
}

func (t *TracingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, span := telemetry.StartLLMSpan(ctx, t.inner.ModelID(), req.purpose())
	defer span.End()

	resp, err := t.inner.Generate(ctx, req)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	span.SetTokens(resp.Usage.InputTokens, resp.Usage.OutputTokens)
	return resp, nil
}

func (t *TracingProvider) ModelID() string {
	return t.inner.ModelID()
}
