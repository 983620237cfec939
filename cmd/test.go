package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/evalyze/evalyze/internal/session"
)

var testCmd = &cobra.Command{
	Use:   "test <skill>",
	Short: "Take a timed test on a skill",
	Long: "Generates five questions on the skill and runs them with a per-question timer.\n" +
		"Uses the terminal UI when stdin is a terminal; --plain forces line mode.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := specFromFlags(cmd, strings.Join(args, " "))
		if err != nil {
			return err
		}

		plain, _ := cmd.Flags().GetBool("plain")
		if !plain && term.IsTerminal(int(os.Stdin.Fd())) {
			return runApp(cmd, &spec)
		}
		return runPlainTest(cmd, spec)
	},
}

func init() {
	testCmd.Flags().StringP("level", "l", string(session.LevelBeginner), "beginner, intermediate or advanced")
	testCmd.Flags().StringP("type", "t", string(session.TestTheoretical), "theoretical (multiple choice) or technical (open-ended)")
	testCmd.Flags().Bool("plain", false, "Answer line by line instead of using the terminal UI")
}

func specFromFlags(cmd *cobra.Command, skill string) (session.TestSpec, error) {
	levelFlag, _ := cmd.Flags().GetString("level")
	typeFlag, _ := cmd.Flags().GetString("type")

	level := session.Level(strings.ToLower(strings.TrimSpace(levelFlag)))
	known := false
	for _, l := range session.Levels {
		if l == level {
			known = true
		}
	}
	if !known {
		return session.TestSpec{}, fmt.Errorf("unknown level %q (want beginner, intermediate or advanced)", levelFlag)
	}

	tt, err := session.ParseTestType(typeFlag)
	if err != nil {
		return session.TestSpec{}, err
	}

	spec := session.TestSpec{Skill: strings.TrimSpace(skill), Level: level, Type: tt}
	return spec, spec.Validate()
}

func runPlainTest(cmd *cobra.Command, spec session.TestSpec) error {
	d, err := openDeps(cmd, false)
	if err != nil {
		return err
	}
	defer d.close()

	gen, err := d.requireLLM()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	ctrl := session.NewController(gen, session.Options{Cache: d.store.Cache(), Logger: d.logger})
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generating your %s %s test on %s...\n", spec.Level, spec.Type, spec.Skill)
	if err := ctrl.Start(ctx, spec); err != nil {
		return fmt.Errorf("generate test: %w", err)
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	err = playPlain(ctx, ctrl, readLines(ctx, cmd.InOrStdin()), ticker.C, out)
	if errors.Is(err, errAbandoned) {
		fmt.Fprintln(out, "Test abandoned.")
		return nil
	}
	return err
}
