package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evalyze/evalyze/internal/bot"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run tests over Telegram",
	Long:  "Long-polls Telegram and runs one test per chat. Needs EVALYZE_TELEGRAM_TOKEN or telegram.token in the config file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.close()

		gen, err := d.requireLLM()
		if err != nil {
			return err
		}

		b, err := bot.New(gen, bot.Options{
			Token:       d.cfg.Telegram.Token,
			PollTimeout: d.cfg.Telegram.PollTimeout,
			Cache:       d.store.Cache(),
			Logger:      d.logger,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return b.Run(ctx)
	},
}
