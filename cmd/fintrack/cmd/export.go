package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/fintrack/internal/export"
)

func newExportCmd(opts *options) *cobra.Command {
	var (
		userRef string
		format  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's ledger as YAML or XLSX",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := opts.openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := resolveUser(ctx, a, userRef)
			if err != nil {
				return err
			}

			l, err := export.Collect(ctx, a.Store, user.ID, time.Now())
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" && outPath != "-" {
				file, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", outPath, err)
				}
				defer file.Close()
				w = file
			}
			if err := export.Write(w, l, f); err != nil {
				return err
			}

			slog.Info("Export finished",
				"user_id", user.ID,
				"format", f,
				"accounts", len(l.Accounts),
				"transactions", len(l.Transactions),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&userRef, "user", "", "user ID or email")
	cmd.Flags().StringVar(&format, "format", string(export.FormatYAML), "yaml or xlsx")
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file (- for stdout)")
	return cmd
}
