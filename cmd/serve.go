package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evalyze/evalyze/internal/api"
	"github.com/evalyze/evalyze/internal/problemgen"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generation and code execution HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = d.cfg.Server.Addr
		}

		// Without an LLM every generation call fails with the
		// configuration error.
		gen := d.gen
		if gen == nil {
			gen = problemgen.New(d.provider, problemgen.DefaultConfig())
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return api.Serve(ctx, addr, api.NewRouter(gen, d.judge, d.logger), d.logger)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
}
