package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evalyze/evalyze/internal/judge"
	"github.com/evalyze/evalyze/internal/practice"
	"github.com/evalyze/evalyze/internal/problemgen"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Generate and browse practice coding problems",
}

var practiceListCmd = &cobra.Command{
	Use:   "list <topic>",
	Short: "List the problems for a topic, generating them if none are cached",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.Join(args, " ")
		fresh, _ := cmd.Flags().GetBool("fresh")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.close()

		lib := d.library()
		var problems []problemgen.Problem
		if fresh {
			problems, err = lib.Generate(cmd.Context(), topic)
		} else {
			problems, err = lib.Load(cmd.Context(), topic)
		}
		if err != nil {
			return fmt.Errorf("load problems: %w", err)
		}

		want := problemgen.Difficulty("")
		if difficulty != "" {
			want = problemgen.ParseDifficulty(difficulty)
		}
		printEntries(cmd.OutOrStdout(), practice.Entries(problems), want)
		return nil
	},
}

var practiceShowCmd = &cobra.Command{
	Use:   "show <topic> <slug>",
	Short: "Show a cached problem",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.close()

		p, err := d.library().Problem(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		printProblem(cmd.OutOrStdout(), p)
		return nil
	},
}

var practiceStarterCmd = &cobra.Command{
	Use:   "starter <topic> <slug>",
	Short: "Generate starter code for a cached problem",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		langFlag, _ := cmd.Flags().GetString("lang")
		lang, ok := judge.LookupLanguage(langFlag)
		if !ok {
			return fmt.Errorf("unknown language %q (see evalyze languages)", langFlag)
		}

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.close()

		gen, err := d.requireLLM()
		if err != nil {
			return err
		}
		p, err := d.library().Problem(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		code, err := gen.StarterCode(cmd.Context(), p.Description, lang.Name)
		if err != nil || strings.TrimSpace(code) == "" {
			if err == nil {
				err = &problemgen.ValidationError{Validator: "starter-code", Message: "empty starter code"}
			}
			d.logger.Warn("starter code failed", "lang", lang.Name, "err", err)
			fmt.Fprintln(cmd.OutOrStdout(), practice.StarterFallback(lang.Name, err))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), code)
		return nil
	},
}

func printEntries(out io.Writer, entries []practice.Entry, want problemgen.Difficulty) {
	fmt.Fprintf(out, "%-2s  %-40s  %-28s  %-6s  %s\n", "", "Title", "Slug", "Level", "Est.")
	fmt.Fprintln(out, strings.Repeat("\u2500", 92))

	n := 0
	for _, e := range entries {
		if want != "" && e.Problem.Difficulty != want {
			continue
		}
		title := []rune(e.Problem.Title)
		if len(title) > 40 {
			title = append(title[:37], []rune("...")...)
		}
		fmt.Fprintf(out, "%-2s  %-40s  %-28s  %-6s  ~%d min\n",
			e.Status.Icon(), string(title), e.Problem.Slug, e.Problem.Difficulty, e.EstimateMinutes)
		n++
	}
	fmt.Fprintf(out, "\n%d problems\n", n)
}

func printProblem(out io.Writer, p problemgen.Problem) {
	sep := strings.Repeat("\u2500", 60)
	fmt.Fprintf(out, "%s  [%s]\n", p.Title, p.Difficulty)
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, p.Description)

	for i, ex := range p.Examples {
		fmt.Fprintf(out, "\nExample %d:\n", i+1)
		fmt.Fprintf(out, "  Input:  %s\n", ex.Input)
		fmt.Fprintf(out, "  Output: %s\n", ex.Output)
		if ex.Explanation != "" {
			fmt.Fprintf(out, "  %s\n", ex.Explanation)
		}
	}

	if len(p.Constraints) > 0 {
		fmt.Fprintln(out, "\nConstraints:")
		for _, c := range p.Constraints {
			fmt.Fprintf(out, "  • %s\n", c)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, sep)
	fmt.Fprintln(out, practice.StarterCode(p))
}

func init() {
	practiceListCmd.Flags().Bool("fresh", false, "Regenerate instead of using the cached set")
	practiceListCmd.Flags().String("difficulty", "", "Only show easy, medium or hard problems")
	practiceStarterCmd.Flags().String("lang", judge.DefaultLanguage.Name, "Language name or Judge0 ID")

	practiceCmd.AddCommand(practiceListCmd)
	practiceCmd.AddCommand(practiceShowCmd)
	practiceCmd.AddCommand(practiceStarterCmd)
}
