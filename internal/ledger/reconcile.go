package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/docstore"
	"github.com/mmynk/fintrack/internal/models"
)

// Report describes the state of one account's balance invariant.
type Report struct {
	AccountID    string
	Stored       decimal.Decimal
	Computed     decimal.Decimal
	Transactions int
	Repaired     bool
}

// Drift is the stored balance minus the balance implied by the transactions.
func (r Report) Drift() decimal.Decimal {
	return r.Stored.Sub(r.Computed)
}

// Consistent reports whether the stored balance matches.
func (r Report) Consistent() bool {
	return r.Drift().IsZero()
}

// Reconcile recomputes an account's balance as its opening balance plus the
// effect of every transaction that references it. With repair, a drifted
// balance is overwritten with the computed one.
//
// The transaction list is read inside the same store transaction as the
// account. Every posting writes the account, so a posting that lands in
// between makes the commit fail with ErrStoreConflict.
func (p *Poster) Reconcile(ctx context.Context, userID, accountID string, repair bool) (*Report, error) {
	if userID == "" {
		return nil, invalid("userId", "is required")
	}
	if accountID == "" {
		return nil, invalid("accountId", "is required")
	}

	var report *Report
	err := p.store.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		acct, err := p.readAccount(tx, userID, accountID)
		if err != nil {
			return err
		}
		snaps, err := tx.Query(p.layout.Transactions(userID).Query().
			Where("accountId", docstore.OpEq, accountID))
		if err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}

		computed := acct.OpeningBalance
		for _, snap := range snaps {
			var txn models.Transaction
			if err := snap.DataTo(&txn); err != nil {
				return err
			}
			computed = computed.Add(txn.Effect())
		}

		report = &Report{
			AccountID:    accountID,
			Stored:       acct.Balance,
			Computed:     computed,
			Transactions: len(snaps),
		}
		if !repair || report.Consistent() {
			return nil
		}

		acct.Balance = computed
		acct.UpdatedAt = p.now()
		if err := tx.Set(p.layout.Account(userID, accountID), acct); err != nil {
			return fmt.Errorf("failed to stage account %s: %w", accountID, err)
		}
		report.Repaired = true
		return nil
	})
	err = storeError(err)
	record("reconcile", err)
	if err != nil {
		return nil, err
	}

	if !report.Consistent() {
		slog.Warn("Account balance drift",
			"user_id", userID,
			"account_id", accountID,
			"stored", report.Stored.String(),
			"computed", report.Computed.String(),
			"repaired", report.Repaired,
		)
	}
	return report, nil
}
