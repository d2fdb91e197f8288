package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathmentor/internal/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset learner progress",
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stars, streak and achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := progress.NewService(s.ProgressRepo()).Get(cmd.Context())
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(out, p)
		}

		last := p.LastPracticeDate
		if last == "" {
			last = "never"
		}
		fmt.Fprintf(out, "Stars:          %d\n", p.Stars)
		fmt.Fprintf(out, "Streak:         %d day(s)\n", p.Streak)
		fmt.Fprintf(out, "Last practiced: %s\n", last)
		fmt.Fprintf(out, "Solved:         %d problem(s)\n", len(p.CompletedProblems))
		if len(p.Achievements) > 0 {
			fmt.Fprintf(out, "Achievements:   %s\n", strings.Join(p.Achievements, ", "))
		}
		return nil
	},
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all stars, streak and achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("refusing to reset without --yes")
		}
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := progress.NewService(s.ProgressRepo()).Reset(cmd.Context()); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
		return nil
	},
}

func init() {
	progressShowCmd.Flags().Bool("json", false, "Print progress as JSON")
	progressResetCmd.Flags().Bool("yes", false, "Confirm the reset")

	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressResetCmd)
}
