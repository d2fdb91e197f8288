package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathmentor/internal/api"
	"github.com/abhisek/mathmentor/internal/config"
	"github.com/abhisek/mathmentor/internal/progress"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tutoring HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logLevel(cmd)
		if err != nil {
			return err
		}
		log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(log)

		cfg := config.Load()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		source, err := newSource(cmd, s.EventRepo(), cfg.StructuredProblems)
		if err != nil {
			return err
		}

		srv := api.NewServer(source, progress.NewService(s.ProgressRepo()), s.EventRepo(), log, cfg)
		httpServer := &http.Server{
			Addr:         cfg.Addr,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: cfg.RequestTimeout + 30*time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Graceful shutdown.
		ctx := cmd.Context()
		go func() {
			<-ctx.Done()
			log.Info("shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				log.Error("shutdown", "error", err)
			}
		}()

		log.Info("starting mathmentor", "addr", cfg.Addr, "auth", cfg.APIKey != "")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides MATHMENTOR_ADDR)")
}
