package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/fintrack/internal/server"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Connect RPC server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			policy, err := cfg.DeletePolicy()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					slog.Error("failed to close store", "error", err)
				}
			}()

			h, err := server.NewHandler(server.Deps{
				Store:      a.Store,
				Poster:     a.Poster,
				JWT:        a.JWT,
				Policy:     policy,
				StaticPath: cfg.Server.StaticPath,
				Logger:     slog.Default(),
			})
			if err != nil {
				return err
			}

			slog.Info("Account delete policy", "policy", policy)
			return server.Run(ctx, fmt.Sprintf(":%d", cfg.Server.Port), h)
		},
	}
}
