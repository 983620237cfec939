// Package api exposes generation and code execution over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/evalyze/evalyze/internal/judge"
	"github.com/evalyze/evalyze/internal/llm"
	"github.com/evalyze/evalyze/internal/problemgen"
	"github.com/evalyze/evalyze/internal/session"
)

// Generator is the content generation surface the API needs.
type Generator interface {
	GenerateTest(ctx context.Context, spec session.TestSpec) ([]session.Question, error)
	GenerateProblems(ctx context.Context, topic string) ([]problemgen.Problem, error)
	StarterCode(ctx context.Context, description, language string) (string, error)
	Suggest(ctx context.Context, query string) ([]string, error)
	GenerateChallenge(ctx context.Context, skill, difficulty, testType string) (*problemgen.Challenge, error)
}

// Runner executes code.
type Runner interface {
	Submit(ctx context.Context, sub judge.Submission) (*judge.Result, error)
}

// NewRouter wires all routes.
func NewRouter(gen Generator, runner Runner, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handlers{gen: gen, runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-test", h.generateTest)
		r.Post("/generate-problems", h.generateProblems)
		r.Post("/generate-starter-code", h.generateStarterCode)
		r.Post("/test-suggestions", h.testSuggestions)
		r.Post("/generate-question", h.generateQuestion)
		r.Post("/submit-code", h.submitCode)
		r.Get("/languages", h.languages)
	})

	return r
}

// Serve runs handler on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}

const internalErrorMessage = "An internal server error occurred."

// fail maps err to a status code. failure is the message shown for
// upstream and malformed-response errors.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error, failure string) {
	status, msg := classify(err, failure)
	h.logger.Error("request failed",
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"status", status,
		"err", err,
	)
	respondError(w, msg, status)
}

func classify(err error, failure string) (int, string) {
	var (
		llmNotCfg   *llm.ErrNotConfigured
		judgeNotCfg *judge.ErrNotConfigured
		missing     *problemgen.ErrMissingParams
		invalid     *llm.ErrInvalidResponse
		validation  *problemgen.ValidationError
		malformed   *judge.MalformedResponseError
		unavailable *llm.ErrProviderUnavailable
		rateLimit   *llm.ErrRateLimit
		maxTokens   *llm.ErrMaxTokensExceeded
		upstream    *judge.UpstreamError
	)
	switch {
	case errors.As(err, &llmNotCfg):
		return http.StatusInternalServerError, llmNotCfg.Error()
	case errors.As(err, &judgeNotCfg):
		return http.StatusInternalServerError, judgeNotCfg.Error()
	case errors.As(err, &missing):
		return http.StatusBadRequest, "Missing parameters"
	case errors.As(err, &invalid), errors.As(err, &validation), errors.As(err, &malformed),
		errors.As(err, &unavailable), errors.As(err, &rateLimit), errors.As(err, &maxTokens),
		errors.As(err, &upstream):
		return http.StatusBadGateway, failure
	}
	return http.StatusInternalServerError, internalErrorMessage
}
