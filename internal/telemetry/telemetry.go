// Package telemetry provides optional OpenTelemetry tracing for LLM
// generations and code submissions.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentation = "github.com/evalyze/evalyze"

// Config holds telemetry configuration.
type Config struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"` // host:port of an OTLP/HTTP collector
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

// DefaultConfig returns default telemetry config.
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		Endpoint:    "localhost:4318",
		Insecure:    true,
		ServiceName: "evalyze",
	}
}

var (
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
)

// Init initializes the global tracer. A disabled config installs a no-op tracer.
func Init(ctx context.Context, cfg Config, version string) error {
	if !cfg.Enabled {
		tracer = otel.Tracer(instrumentation)
		return nil
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithURLPath("/v1/traces"),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return err
	}

	// resource.Default() is skipped to avoid schema URL conflicts.
	res := resource.NewWithAttributes(
		"",
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(version),
	)

	provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	tracer = provider.Tracer(instrumentation)
	return nil
}

// Shutdown flushes pending spans and stops the exporter.
func Shutdown(ctx context.Context) error {
	if provider == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return provider.Shutdown(shutdownCtx)
}

// Enabled reports whether an exporter is installed.
func Enabled() bool {
	return provider != nil
}

// Tracer returns the global tracer.
func Tracer() trace.Tracer {
	if tracer == nil {
		return otel.Tracer(instrumentation)
	}
	return tracer
}

// Span wraps a trace span with the attributes this module records.
type Span struct {
	span      trace.Span
	startTime time.Time
}

// StartLLMSpan starts a span for one LLM generation.
func StartLLMSpan(ctx context.Context, model, purpose string) (context.Context, *Span) {
	ctx, span := Tracer().Start(ctx, "llm.generate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.request.model", model),
			attribute.String("llm.purpose", purpose),
		),
	)
	return ctx, &Span{span: span, startTime: time.Now()}
}

// StartJudgeSpan starts a span for one code submission.
func StartJudgeSpan(ctx context.Context, languageID int) (context.Context, *Span) {
	ctx, span := Tracer().Start(ctx, "judge.submit",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int("judge.language_id", languageID)),
	)
	return ctx, &Span{span: span, startTime: time.Now()}
}

// SetTokens records token counts if available.
func (s *Span) SetTokens(promptTokens, completionTokens int) {
	if promptTokens > 0 {
		s.span.SetAttributes(attribute.Int("llm.token_count.prompt", promptTokens))
	}
	if completionTokens > 0 {
		s.span.SetAttributes(attribute.Int("llm.token_count.completion", completionTokens))
	}
	if promptTokens > 0 || completionTokens > 0 {
		s.span.SetAttributes(attribute.Int("llm.token_count.total", promptTokens+completionTokens))
	}
}

// SetAttributes adds arbitrary string attributes.
func (s *Span) SetAttributes(kv ...attribute.KeyValue) {
	s.span.SetAttributes(kv...)
}

// SetError records an error on the span.
func (s *Span) SetError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// End completes the span.
func (s *Span) End() {
	s.span.SetAttributes(attribute.Int64("latency_ms", time.Since(s.startTime).Milliseconds()))
	s.span.End()
}
