package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evalyze/evalyze/internal/problemgen"
)

var challengeCmd = &cobra.Command{
	Use:   "challenge <skill>",
	Short: "Generate a single practice question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty, _ := cmd.Flags().GetString("difficulty")
		testType, _ := cmd.Flags().GetString("type")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.close()

		gen, err := d.requireLLM()
		if err != nil {
			return err
		}
		c, err := gen.GenerateChallenge(cmd.Context(), strings.Join(args, " "), difficulty, testType)
		if err != nil {
			return fmt.Errorf("generate challenge: %w", err)
		}

		out := cmd.OutOrStdout()
		if c.Raw != "" {
			fmt.Fprintln(out, c.Raw)
			return nil
		}
		printProblem(out, problemgen.Problem{
			Title:       c.Title,
			Description: c.Description,
			Difficulty:  problemgen.ParseDifficulty(difficulty),
			Examples:    c.Examples,
			Constraints: c.Constraints,
		})
		return nil
	},
}

func init() {
	challengeCmd.Flags().StringP("difficulty", "d", "medium", "easy, medium or hard")
	challengeCmd.Flags().StringP("type", "t", "coding", "Kind of question, for example coding or conceptual")
}
