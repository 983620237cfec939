package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/evalyze/evalyze/internal/judge"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a source file on Judge0",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		langFlag, _ := cmd.Flags().GetString("lang")
		stdinPath, _ := cmd.Flags().GetString("stdin")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		lang, ok := judge.LookupLanguage(langFlag)
		if !ok {
			return fmt.Errorf("unknown language %q (see evalyze languages)", langFlag)
		}

		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}
		sub := judge.Submission{SourceCode: string(src), LanguageID: lang.ID}
		if stdinPath != "" {
			in, err := os.ReadFile(stdinPath)
			if err != nil {
				return fmt.Errorf("read stdin file: %w", err)
			}
			sub.Stdin = string(in)
		}

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.close()

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		fmt.Fprintf(cmd.ErrOrStderr(), "Executing %s code...\n", lang.Name)
		res, err := d.judge.Submit(ctx, sub)
		if err != nil {
			var nc *judge.ErrNotConfigured
			if errors.As(err, &nc) {
				return nc
			}
			return fmt.Errorf("submit code: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Describe())
		return nil
	},
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages code can be run in",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-5s  %-12s  %s\n", "ID", "Name", "Value")
		fmt.Fprintln(out, strings.Repeat("─", 32))
		for _, l := range judge.Languages {
			fmt.Fprintf(out, "%-5d  %-12s  %s\n", l.ID, l.Name, l.Value)
		}
	},
}

func init() {
	runCmd.Flags().StringP("lang", "l", judge.DefaultLanguage.Name, "Language name or Judge0 ID")
	runCmd.Flags().String("stdin", "", "File whose contents are passed as stdin")
	runCmd.Flags().Duration("timeout", 30*time.Second, "Give up waiting for Judge0 after this long")
}
