package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathmentor/internal/session"
	"github.com/abhisek/mathmentor/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{}
		if days, _ := cmd.Flags().GetInt("days"); days > 0 {
			opts.From = time.Now().AddDate(0, 0, -days)
		}
		events, err := s.EventRepo().QueryPracticeEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query practice events: %w", err)
		}

		sum := session.Summarize(events)
		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(out, sum)
		}
		if len(sum.Categories) == 0 {
			fmt.Fprintln(out, "No practice recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-16s  %6s  %6s  %8s  %5s  %10s  %5s  %8s\n",
			"Category", "Served", "Solved", "Revealed", "Hints", "Steps", "Stars", "Accuracy")
		fmt.Fprintln(out, rule(80))
		row := func(name string, c session.CategorySummary) {
			fmt.Fprintf(out, "%-16s  %6d  %6d  %8d  %5d  %10s  %5d  %7.0f%%\n",
				name, c.Served, c.Solved, c.Revealed, c.Hints,
				fmt.Sprintf("%d/%d", c.StepsRight, c.Steps), c.Stars, c.Accuracy*100)
		}
		for _, c := range sum.Categories {
			row(c.Category, c)
		}
		fmt.Fprintln(out, rule(80))
		row("TOTAL", sum.Total)
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("days", 0, "Only count the last N days (0 = all time)")
	statsCmd.Flags().Bool("json", false, "Print statistics as JSON")
}
