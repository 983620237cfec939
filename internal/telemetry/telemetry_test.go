package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabledInstallsNoopTracer(t *testing.T) {
	require.NoError(t, Init(context.Background(), DefaultConfig(), "test"))
	assert.False(t, Enabled())
	assert.NotNil(t, Tracer())
}

func TestSpansWithoutExporter(t *testing.T) {
	ctx, span := StartLLMSpan(context.Background(), "gemini-2.0-flash", "test-gen")
	require.NotNil(t, ctx)
	span.SetTokens(10, 20)
	span.SetError(errors.New("boom"))
	span.End()

	_, js := StartJudgeSpan(context.Background(), 71)
	js.End()

	assert.NoError(t, Shutdown(context.Background()))
}
