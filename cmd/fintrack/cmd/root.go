// Package cmd provides CLI commands for fintrack.
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmynk/fintrack/internal/app"
	"github.com/mmynk/fintrack/internal/config"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/pkg/logging"
)

type options struct {
	cfgFile string
	debug   bool
	cfg     *config.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "fintrack",
		Short: "Personal finance ledger server",
		Long: `fintrack serves the personal finance ledger over Connect RPC and
offers maintenance commands that work directly on the store.

Example:
  fintrack serve
  fintrack reconcile --user ada@example.com --repair
  fintrack export --user ada@example.com --format xlsx --out ledger.xlsx`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			level := cfg.Log.Level
			if opts.debug {
				level = "debug"
			}
			logging.Setup(level)
			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./config.yaml)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(opts),
		newReconcileCmd(opts),
		newExportCmd(opts),
		newBackupCmd(opts),
		newGrantAdminCmd(opts),
	)
	return root
}

// Execute runs the root command.
// This is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}

// openApp opens the configured store for a maintenance command.
func (o *options) openApp(ctx context.Context) (*app.App, error) {
	return app.Open(ctx, o.cfg)
}

// resolveUser accepts a user ID or an email address.
func resolveUser(ctx context.Context, a *app.App, ref string) (*models.User, error) {
	if ref == "" {
		return nil, fmt.Errorf("--user is required")
	}
	if strings.Contains(ref, "@") {
		user, err := a.Store.GetUserByEmail(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", ref, err)
		}
		return user, nil
	}
	user, err := a.Store.GetUserByID(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", ref, err)
	}
	return user, nil
}
