package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathmentor/internal/geometry"
	"github.com/abhisek/mathmentor/internal/graphfn"
	"github.com/abhisek/mathmentor/internal/markup"
	"github.com/abhisek/mathmentor/internal/problem"
	"github.com/abhisek/mathmentor/internal/sections"
	"github.com/abhisek/mathmentor/internal/textnorm"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file|-]",
	Short: "Clean up raw problem text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		hide, _ := cmd.Flags().GetBool("hide-solution")
		fmt.Fprintln(cmd.OutOrStdout(), textnorm.Normalize(raw, hide))
		return nil
	},
}

var segmentCmd = &cobra.Command{
	Use:   "segment [file|-]",
	Short: "Split problem text into statement, question, answer space and solution",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), sections.Segment(textnorm.Normalize(raw, false)))
	},
}

var geometryCmd = &cobra.Command{
	Use:   "geometry [file|-]",
	Short: "Extract the figure described by a geometry problem",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		scene := geometry.Extract(textnorm.StripSolution(raw))
		if describe, _ := cmd.Flags().GetBool("describe"); describe {
			fmt.Fprintln(cmd.OutOrStdout(), scene.Describe())
			return nil
		}
		return printJSON(cmd.OutOrStdout(), scene)
	},
}

var functionsCmd = &cobra.Command{
	Use:   "functions [file|-]",
	Short: "List graphable functions mentioned in problem text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), graphfn.Extract(textnorm.StripSolution(raw)))
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file|-]",
	Short: "Run the full pipeline and render the problem",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		category, _ := cmd.Flags().GetString("category")
		show, _ := cmd.Flags().GetBool("show-solution")
		asJSON, _ := cmd.Flags().GetBool("json")

		a := problem.Analyze(raw, problem.AnalyzeOptions{Category: category, HideSolution: !show})
		if asJSON {
			return printJSON(cmd.OutOrStdout(), a)
		}
		printAnalysis(cmd.OutOrStdout(), a)
		return nil
	},
}

// printAnalysis writes each section with math typeset for the terminal,
// followed by the figure and graphable functions.
func printAnalysis(w io.Writer, a problem.Analysis) {
	for _, block := range a.Render(markup.TerminalRenderer{}) {
		fmt.Fprintln(w, block.Title)
		fmt.Fprintln(w, rule(len(block.Title)))
		parts := make([]string, len(block.Output))
		for i, r := range block.Output {
			parts[i] = r.Output
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
		fmt.Fprintln(w)
	}
	if a.Scene != nil {
		fmt.Fprintln(w, "Figure")
		fmt.Fprintln(w, rule(6))
		fmt.Fprintln(w, a.Scene.Describe())
		fmt.Fprintln(w)
	}
	if len(a.Functions) > 0 {
		fmt.Fprintln(w, "Graph")
		fmt.Fprintln(w, rule(5))
		for _, fn := range a.Functions {
			fmt.Fprintln(w, "  "+markup.RenderString(fn, markup.TerminalRenderer{}, " "))
		}
	}
}

func init() {
	normalizeCmd.Flags().Bool("hide-solution", false, "Drop the solution and everything after it")
	geometryCmd.Flags().Bool("describe", false, "Print a plain text description instead of JSON")
	analyzeCmd.Flags().String("category", "", "Problem category; algebra enables function extraction")
	analyzeCmd.Flags().Bool("show-solution", false, "Include the solution section")
	analyzeCmd.Flags().Bool("json", false, "Print the analysis as JSON")
}
