package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newReconcileCmd(opts *options) *cobra.Command {
	var (
		userRef   string
		accountID string
		repair    bool
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Check account balances against their transactions",
		Long: `Recompute each account balance as its opening balance plus the effect of
every transaction that references it, and report the drift.

With --repair, drifted balances are overwritten with the computed value.

Example:
  fintrack reconcile --user ada@example.com
  fintrack reconcile --user ada@example.com --account 6f1c... --repair`,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			ids := []string{accountID}
			if accountID == "" {
				accounts, err := a.Store.ListAccounts(ctx, user.ID)
				if err != nil {
					return err
				}
				ids = ids[:0]
				for _, acct := range accounts {
					ids = append(ids, acct.ID)
				}
			}

			out := cmd.OutOrStdout()
			drifted := 0
			for _, id := range ids {
				report, err := a.Poster.Reconcile(ctx, user.ID, id, repair)
				if err != nil {
					return fmt.Errorf("reconcile %s: %w", id, err)
				}
				status := "ok"
				if !report.Consistent() {
					drifted++
					status = "DRIFT"
					if report.Repaired {
						status = "REPAIRED"
					}
				}
				fmt.Fprintf(out, "%-8s %s stored=%s computed=%s drift=%s transactions=%d\n",
					status, id,
					report.Stored.StringFixed(2),
					report.Computed.StringFixed(2),
					report.Drift().StringFixed(2),
					report.Transactions,
				)
			}

			slog.Info("Reconcile finished", "user_id", user.ID, "accounts", len(ids), "drifted", drifted)
			return nil
		},
	}

	cmd.Flags().StringVar(&userRef, "user", "", "user ID or email")
	cmd.Flags().StringVar(&accountID, "account", "", "account ID (default: every account of the user)")
	cmd.Flags().BoolVar(&repair, "repair", false, "overwrite drifted balances")
	return cmd
}
