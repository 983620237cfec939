package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/evalyze/evalyze/internal/config"
	"github.com/evalyze/evalyze/internal/judge"
	"github.com/evalyze/evalyze/internal/llm"
	"github.com/evalyze/evalyze/internal/practice"
	"github.com/evalyze/evalyze/internal/problemgen"
	"github.com/evalyze/evalyze/internal/screens/home"
	"github.com/evalyze/evalyze/internal/store"
	"github.com/evalyze/evalyze/internal/telemetry"
)

// deps holds everything a command needs. The LLM is optional: when it is
// not configured gen is nil and llmErr says why.
type deps struct {
	cfg      *config.Config
	store    *store.Store
	provider llm.Provider
	gen      *problemgen.LLMGenerator
	llmErr   error
	judge    *judge.Client
	logger   *slog.Logger

	closers []func()
}

// openDeps loads configuration, opens the store and builds the clients.
// Logs go to --log-file when set, otherwise to stderr, or nowhere when
// quiet is true (the TUI owns the terminal).
func openDeps(cmd *cobra.Command, quiet bool) (*deps, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg}

	logger, closeLog, err := newLogger(cmd, quiet)
	if err != nil {
		return nil, err
	}
	d.logger = logger
	d.closers = append(d.closers, closeLog)
	slog.SetDefault(logger)

	if err := telemetry.Init(ctx, cfg.Telemetry, version); err != nil {
		logger.Warn("telemetry disabled", "err", err)
	} else {
		d.closers = append(d.closers, func() { _ = telemetry.Shutdown(context.Background()) })
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		d.close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		d.close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, func() { _ = st.Close() })

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo())
	if err != nil {
		d.llmErr = err
		d.provider = llm.Unavailable{Err: err}
		logger.Warn("LLM provider not configured", "err", err)
	} else {
		d.provider = provider
		d.gen = problemgen.New(provider, problemgen.DefaultConfig())
	}

	d.judge = judge.New(cfg.Judge0)
	return d, nil
}

// close releases resources in reverse order of acquisition.
func (d *deps) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

// requireLLM returns the generator or the reason it is missing.
func (d *deps) requireLLM() (*problemgen.LLMGenerator, error) {
	if d.gen == nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", d.llmErr)
	}
	return d.gen, nil
}

// library returns the practice library backed by the store cache. It is
// read-only without an LLM.
func (d *deps) library() *practice.Library {
	if d.gen == nil {
		return practice.NewLibrary(nil, d.store.Cache())
	}
	return practice.NewLibrary(d.gen, d.store.Cache())
}

// services wires the TUI screens to the clients.
func (d *deps) services() home.Services {
	sv := home.Services{
		Cache:      d.store.Cache(),
		Logger:     d.logger,
		JudgeReady: d.judge.Configured(),
	}
	if d.gen != nil {
		sv.Tests = d.gen
		sv.Suggester = d.gen
		sv.Starter = d.gen
		sv.Library = d.library()
		sv.Model = d.provider.ModelID()
	}
	if d.judge.Configured() {
		sv.Runner = d.judge
	}
	return sv
}

func newLogger(cmd *cobra.Command, quiet bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return slog.New(slog.NewJSONHandler(f, opts)), func() { _ = f.Close() }, nil
	}

	var w io.Writer = os.Stderr
	if quiet {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, opts)), func() {}, nil
}
