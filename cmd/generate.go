package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathmentor/internal/llm"
	"github.com/abhisek/mathmentor/internal/problem"
	"github.com/abhisek/mathmentor/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a practice problem and render it",
	RunE: func(cmd *cobra.Command, args []string) error {
		var params problem.Params
		params.Category, _ = cmd.Flags().GetString("category")
		params.Subcategory, _ = cmd.Flags().GetString("subcategory")
		params.Difficulty, _ = cmd.Flags().GetString("difficulty")
		if err := params.Validate(); err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		structured, _ := cmd.Flags().GetBool("structured")
		source, err := newSource(cmd, s.EventRepo(), structured)
		if err != nil {
			return err
		}

		text, err := source.Problem(cmd.Context(), params)
		if err != nil {
			return fmt.Errorf("generate problem: %w", err)
		}

		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		}
		show, _ := cmd.Flags().GetBool("show-solution")
		printAnalysis(cmd.OutOrStdout(), problem.Analyze(text, problem.AnalyzeOptions{
			Category:     params.Category,
			HideSolution: !show,
		}))
		return nil
	},
}

// newSource builds the LLM-backed problem source from the environment.
// Requests are logged to events.
func newSource(cmd *cobra.Command, events store.EventRepo, structured bool) (problem.Source, error) {
	cfg, err := llm.ResolveConfig()
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	provider, err := llm.NewProvider(cmd.Context(), cfg, events)
	if err != nil {
		return nil, err
	}
	pc := problem.DefaultConfig()
	pc.Structured = structured
	return problem.NewLLMSource(provider, pc), nil
}

func init() {
	generateCmd.Flags().StringP("category", "c", "algebra", "Problem category")
	generateCmd.Flags().StringP("subcategory", "s", "linear", "Topic within the category")
	generateCmd.Flags().StringP("difficulty", "d", "easy", "easy, medium or hard")
	generateCmd.Flags().Bool("structured", true, "Request the problem as JSON (disable for models without structured output)")
	generateCmd.Flags().Bool("show-solution", false, "Include the solution section")
	generateCmd.Flags().Bool("raw", false, "Print the model output without processing")
}
