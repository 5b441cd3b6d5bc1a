package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/fintrack/internal/backup"
	"github.com/mmynk/fintrack/internal/export"
)

func newBackupCmd(opts *options) *cobra.Command {
	var (
		userRef string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Store a ledger export in the backup directory or blob container",
		Long: `Export a user's ledger and store it under backup.dir, or in the Azure Blob
container backup.container when backup.blob_url is set.`,
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

			var up backup.Uploader = backup.Dir{Path: opts.cfg.Backup.Dir}
			if opts.cfg.Backup.BlobURL != "" {
				if up, err = backup.NewBlob(opts.cfg.Backup.BlobURL, opts.cfg.Backup.Container); err != nil {
					return err
				}
			}

			name, err := backup.Run(ctx, a.Store, up, user.ID, f, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}

	cmd.Flags().StringVar(&userRef, "user", "", "user ID or email")
	cmd.Flags().StringVar(&format, "format", string(export.FormatYAML), "yaml or xlsx")
	return cmd
}
