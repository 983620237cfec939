package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evalyze/evalyze/internal/config"
	"github.com/evalyze/evalyze/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "evalyze",
	Short: "Skill tests and coding practice in the terminal",
	Long: "Evalyze generates timed skill tests and practice coding problems with an LLM,\n" +
		"scores your answers, and runs your code on Judge0.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/evalyze/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "SQLite file or postgres:// DSN (overrides EVALYZE_DB env var)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads .env files, then the config file named by --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	config.LoadDotEnv()
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database DSN using --db flag (highest priority),
// then the config file, then EVALYZE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Store.DSN != "" {
		return cfg.Store.DSN, store.EnsureDir(cfg.Store.DSN)
	}
	return store.DefaultDBPath()
}
