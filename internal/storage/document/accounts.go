package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/fintrack/internal/docstore"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

// CreateAccount stores a new account. The balance starts at the opening
// balance.
func (s *Store) CreateAccount(ctx context.Context, userID string, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	now := s.now()
	account.UserID = userID
	account.Balance = account.OpeningBalance
	account.CreatedAt = now
	account.UpdatedAt = now

	if err := s.db.Create(ctx, s.layout.Account(userID, account.ID), account); err != nil {
		return fmt.Errorf("failed to create account: %w", mapErr(err))
	}
	return nil
}

// GetAccount retrieves an account by ID.
func (s *Store) GetAccount(ctx context.Context, userID, accountID string) (*models.Account, error) {
	return get[models.Account](ctx, s.db, s.layout.Account(userID, accountID))
}

// ListAccounts returns the user's accounts ordered by name.
func (s *Store) ListAccounts(ctx context.Context, userID string) ([]*models.Account, error) {
	return list[models.Account](ctx, s.db, s.accountsQuery(userID))
}

// UpdateAccount renames an account or changes its opening balance. A new
// opening balance shifts the current balance by the same delta in the same
// commit.
func (s *Store) UpdateAccount(ctx context.Context, userID, accountID string, update storage.AccountUpdate) (*models.Account, error) {
	var updated models.Account
	err := s.replace(ctx, s.layout.Account(userID, accountID), func(cur *docstore.Snapshot) (any, error) {
		if err := cur.DataTo(&updated); err != nil {
			return nil, err
		}
		if update.Name != nil {
			updated.Name = *update.Name
		}
		if update.OpeningBalance != nil {
			delta := update.OpeningBalance.Sub(updated.OpeningBalance)
			updated.Balance = updated.Balance.Add(delta)
			updated.OpeningBalance = *update.OpeningBalance
		}
		updated.UpdatedAt = s.now()
		return &updated, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAccount removes an account according to policy.
//
// Under PolicyRestrict the account is deleted only if no transaction
// references it; the check and the delete commit together. Under
// PolicyCascade the account is deleted first and its transactions are swept
// afterwards, one commit each. A failed sweep is reported in the result, not
// as an error, because the account is already gone.
func (s *Store) DeleteAccount(ctx context.Context, userID, accountID string, policy storage.DeletePolicy) (*storage.DeleteResult, error) {
	ref := s.layout.Account(userID, accountID)
	byAccount := s.layout.Transactions(userID).Query().Where("accountId", docstore.OpEq, accountID)

	if policy == storage.PolicyRestrict {
		err := s.db.RunTransaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
			// Every posting writes the account, so reading it guards the
			// transaction query below against concurrent postings.
			if _, err := tx.Get(ref); err != nil {
				return err
			}
			refs, err := tx.Query(byAccount.WithLimit(1))
			if err != nil {
				return err
			}
			if len(refs) > 0 {
				return storage.ErrAccountInUse
			}
			return tx.Delete(ref)
		})
		if err != nil {
			return nil, mapErr(err)
		}
		return &storage.DeleteResult{}, nil
	}

	if err := s.remove(ctx, ref); err != nil {
		return nil, err
	}

	result := &storage.DeleteResult{}
	snaps, err := s.db.Query(ctx, byAccount)
	if err != nil {
		result.SweepErr = fmt.Errorf("failed to list transactions: %w", err)
		return result, nil
	}
	for _, snap := range snaps {
		if err := s.db.Delete(ctx, snap.Ref); err != nil {
			result.SweepErr = fmt.Errorf("failed to delete transaction %s: %w", snap.ID(), err)
			break
		}
		result.Swept++
	}
	if result.SweepErr != nil {
		slog.Warn("Account transaction sweep incomplete",
			"user_id", userID,
			"account_id", accountID,
			"swept", result.Swept,
			"remaining", len(snaps)-result.Swept,
			"error", result.SweepErr,
		)
	}
	return result, nil
}

// WatchAccounts streams the user's account list.
func (s *Store) WatchAccounts(ctx context.Context, userID string, fn func([]*models.Account, error)) func() {
	return s.db.Watch(ctx, s.accountsQuery(userID), func(snaps []*docstore.Snapshot, err error) {
		if err != nil {
			fn(nil, mapErr(err))
			return
		}
		fn(decodeAll[models.Account](snaps))
	})
}

func (s *Store) accountsQuery(userID string) docstore.Query {
	return s.layout.Accounts(userID).Query().Order("name", false)
}

// isNotFound is shared by callers that treat a missing record specially.
func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound) || errors.Is(err, docstore.ErrNotFound)
}
