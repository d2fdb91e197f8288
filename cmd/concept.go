package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathmentor/internal/markup"
	"github.com/abhisek/mathmentor/internal/problem"
)

var conceptCmd = &cobra.Command{
	Use:   "concept",
	Short: "Explain the concept behind a topic",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		subcategory, _ := cmd.Flags().GetString("subcategory")
		asJSON, _ := cmd.Flags().GetBool("json")

		c, ok := problem.ConceptFor(category, subcategory)
		if !ok {
			return fmt.Errorf("no concept card for %s/%s", category, subcategory)
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), c)
		}
		printConcept(cmd.OutOrStdout(), c)
		return nil
	},
}

func printConcept(w io.Writer, c problem.Concept) {
	fmt.Fprintln(w, c.Title)
	fmt.Fprintln(w, rule(len([]rune(c.Title))))
	fmt.Fprintln(w, c.Description)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples")
	for _, ex := range c.Examples {
		fmt.Fprintln(w, "  • "+markup.RenderString(ex, markup.TerminalRenderer{}, " "))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Key Points")
	for _, p := range c.KeyPoints {
		fmt.Fprintln(w, "  • "+p)
	}
}

func init() {
	conceptCmd.Flags().StringP("category", "c", "algebra", "Category ID")
	conceptCmd.Flags().StringP("subcategory", "s", "linear", "Subcategory ID")
	conceptCmd.Flags().Bool("json", false, "Print the card as JSON")
}
