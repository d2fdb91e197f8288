package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathmentor/internal/app"
	"github.com/abhisek/mathmentor/internal/progress"
	"github.com/abhisek/mathmentor/internal/session"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start an interactive practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd)
	},
}

// runPractice opens the store, builds dependencies, and launches the TUI.
// Without a configured provider the app still opens, and practice explains
// how to set one up.
func runPractice(cmd *cobra.Command) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	events := s.EventRepo()
	prog := progress.NewService(s.ProgressRepo())
	opts := app.Options{Progress: prog, Events: events}

	structured, _ := cmd.Flags().GetBool("structured")
	source, err := newSource(cmd, events, structured)
	if err != nil {
		slog.Warn("practice unavailable", "error", err)
	} else {
		opts.Session = session.NewService(source, prog, events)
	}

	return app.Run(cmd.Context(), opts)
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, practiceCmd} {
		c.Flags().Bool("structured", true, "Request problems as JSON (disable for models without structured output)")
	}
}
