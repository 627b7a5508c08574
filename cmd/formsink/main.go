package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"neuralfolio/formsink"
	"neuralfolio/logging"
)

func main() {
	cfg := formsink.DefaultConfig()
	var level string

	cmd := &cobra.Command{
		Use:   "formsink",
		Short: "Serve a local endpoint that accepts contact form submissions",
		Long: `formsink accepts multipart or url-encoded posts at /f/{form}, answers
{"ok":true,"id":...} and keeps submissions in memory. GET /f/{form} lists
them. Point form.endpoint at it during development.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.New(logging.ParseLevel(level))
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store := formsink.NewStore()
			if err := formsink.New(cfg, store, log).ListenAndServe(ctx); err != nil {
				return fmt.Errorf("serving: %w", err)
			}
			log.Info("stopped after %d submissions", store.Count())
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().StringSliceVar(&cfg.AllowedOrigins, "origin", cfg.AllowedOrigins, "allowed CORS origins")
	cmd.Flags().StringVar(&level, "log-level", "info", "log level (debug, info, warn, error)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
