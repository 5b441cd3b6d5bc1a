// Package ledger keeps account balances consistent with the transactions
// that reference them.
//
// Every create, edit and delete of a transaction runs inside one document
// store transaction that also writes the affected account balances, so no
// reader ever sees a transaction without its balance effect or the reverse.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/docstore"
	"github.com/mmynk/fintrack/internal/layout"
	"github.com/mmynk/fintrack/internal/metrics"
	"github.com/mmynk/fintrack/internal/models"
)

// Tx is the subset of a document transaction the poster uses.
type Tx interface {
	Get(ref docstore.DocRef) (*docstore.Snapshot, error)
	Set(ref docstore.DocRef, data any, opts ...docstore.SetOption) error
	Delete(ref docstore.DocRef) error
	Query(q docstore.Query) ([]*docstore.Snapshot, error)
}

// Transactor runs fn atomically: either every write fn stages is committed
// or none is. It returns docstore.ErrConflict when a concurrent write
// invalidated fn's reads.
type Transactor interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// FromDB adapts a docstore.DB to a Transactor.
func FromDB(db *docstore.DB) Transactor {
	return dbTransactor{db: db}
}

type dbTransactor struct {
	db *docstore.DB
}

func (t dbTransactor) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return t.db.RunTransaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		return fn(ctx, tx)
	})
}

// Poster applies transaction effects to account balances. It keeps no state
// between calls.
type Poster struct {
	store  Transactor
	layout layout.Layout
	now    func() time.Time
}

// NewPoster creates a Poster writing under l.
func NewPoster(store Transactor, l layout.Layout) *Poster {
	return &Poster{
		store:  store,
		layout: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Post creates a transaction from draft, or edits previous into draft when
// previous is non-nil, and moves the affected balances accordingly.
//
// An edit is rejected with ErrStoreConflict if the stored transaction no
// longer matches previous. When an edit moves a transaction to another
// account, the old account is credited back and the new one charged in the
// same commit.
func (p *Poster) Post(ctx context.Context, userID string, draft Draft, previous *models.Transaction) (*models.Transaction, error) {
	op := "create"
	if previous != nil {
		op = "update"
	}
	if err := p.checkPost(userID, draft, previous); err != nil {
		record(op, err)
		return nil, err
	}

	var posted *models.Transaction
	err := p.store.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		now := p.now()
		target, err := p.readAccount(tx, userID, draft.AccountID)
		if err != nil {
			return err
		}
		touched := map[string]*models.Account{target.ID: target}

		txn := &models.Transaction{
			ID:        uuid.New().String(),
			UserID:    userID,
			CreatedAt: now,
		}
		if previous != nil {
			stored, err := p.readTransaction(tx, userID, previous.ID)
			if err != nil {
				return err
			}
			if !sameEffect(stored, previous) {
				return fmt.Errorf("%w: transaction %s changed since it was read", ErrStoreConflict, previous.ID)
			}

			source, ok := touched[stored.AccountID]
			if !ok {
				if source, err = p.readAccount(tx, userID, stored.AccountID); err != nil {
					return err
				}
				touched[source.ID] = source
			}
			source.Balance = source.Balance.Sub(stored.Effect())

			txn.ID = stored.ID
			txn.CreatedAt = stored.CreatedAt
		}
		target.Balance = target.Balance.Add(draft.Type.Effect(draft.Amount))

		for _, acct := range touched {
			acct.UpdatedAt = now
			if err := tx.Set(p.layout.Account(userID, acct.ID), acct); err != nil {
				return fmt.Errorf("failed to stage account %s: %w", acct.ID, err)
			}
		}

		txn.Date = draft.Date
		txn.Description = draft.Description
		txn.Amount = draft.Amount
		txn.Category = draft.category()
		txn.Type = draft.Type
		txn.AccountID = draft.AccountID
		txn.UpdatedAt = now
		if err := tx.Set(p.layout.Transaction(userID, txn.ID), txn); err != nil {
			return fmt.Errorf("failed to stage transaction %s: %w", txn.ID, err)
		}

		posted = txn
		return nil
	})
	err = storeError(err)
	record(op, err)
	if err != nil {
		return nil, err
	}

	slog.Debug("Posted transaction",
		"user_id", userID,
		"transaction_id", posted.ID,
		"account_id", posted.AccountID,
		"op", op,
	)
	return posted, nil
}

// Retract deletes a transaction and reverses its effect on the account.
// amount and typ are the effect the caller believes the transaction had; if
// the stored transaction disagrees the call fails with ErrStoreConflict.
func (p *Poster) Retract(ctx context.Context, userID, transactionID, accountID string, amount decimal.Decimal, typ models.TransactionType) error {
	if err := checkRetract(userID, transactionID, accountID, amount, typ); err != nil {
		record("delete", err)
		return err
	}

	err := p.store.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		acct, err := p.readAccount(tx, userID, accountID)
		if err != nil {
			return err
		}
		stored, err := p.readTransaction(tx, userID, transactionID)
		if err != nil {
			return err
		}
		expected := &models.Transaction{AccountID: accountID, Amount: amount, Type: typ}
		if !sameEffect(stored, expected) {
			return fmt.Errorf("%w: transaction %s changed since it was read", ErrStoreConflict, transactionID)
		}

		acct.Balance = acct.Balance.Sub(typ.Effect(amount))
		acct.UpdatedAt = p.now()
		if err := tx.Set(p.layout.Account(userID, accountID), acct); err != nil {
			return fmt.Errorf("failed to stage account %s: %w", accountID, err)
		}
		if err := tx.Delete(p.layout.Transaction(userID, transactionID)); err != nil {
			return fmt.Errorf("failed to stage delete of %s: %w", transactionID, err)
		}
		return nil
	})
	err = storeError(err)
	record("delete", err)
	return err
}

func (p *Poster) checkPost(userID string, draft Draft, previous *models.Transaction) error {
	if userID == "" {
		return invalid("userId", "is required")
	}
	if err := draft.Validate(); err != nil {
		return err
	}
	if previous != nil && previous.ID == "" {
		return invalid("id", "edited transaction has no id")
	}
	return nil
}

func checkRetract(userID, transactionID, accountID string, amount decimal.Decimal, typ models.TransactionType) error {
	switch {
	case userID == "":
		return invalid("userId", "is required")
	case transactionID == "":
		return invalid("id", "is required")
	case accountID == "":
		return invalid("accountId", "is required")
	case !amount.IsPositive():
		return invalid("amount", "must be greater than zero")
	case !typ.Valid():
		return invalid("type", "%q is not income or expense", typ)
	}
	return nil
}

func (p *Poster) readAccount(tx Tx, userID, accountID string) (*models.Account, error) {
	snap, err := tx.Get(p.layout.Account(userID, accountID))
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read account %s: %w", accountID, err)
	}
	var acct models.Account
	if err := snap.DataTo(&acct); err != nil {
		return nil, err
	}
	acct.ID = snap.ID()
	return &acct, nil
}

func (p *Poster) readTransaction(tx Tx, userID, transactionID string) (*models.Transaction, error) {
	snap, err := tx.Get(p.layout.Transaction(userID, transactionID))
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, transactionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read transaction %s: %w", transactionID, err)
	}
	var txn models.Transaction
	if err := snap.DataTo(&txn); err != nil {
		return nil, err
	}
	txn.ID = snap.ID()
	return &txn, nil
}

// sameEffect reports whether two versions of a transaction move the same
// account by the same amount.
func sameEffect(a, b *models.Transaction) bool {
	return a.AccountID == b.AccountID && a.Type == b.Type && a.Amount.Equal(b.Amount)
}

// storeError maps commit failures onto the ledger taxonomy.
func storeError(err error) error {
	if err == nil || errors.Is(err, ErrStoreConflict) {
		return err
	}
	if errors.Is(err, docstore.ErrConflict) {
		return fmt.Errorf("%w: %w", ErrStoreConflict, err)
	}
	return err
}

func record(op string, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case IsValidation(err):
		outcome = metrics.OutcomeInvalid
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrTransactionNotFound):
		outcome = metrics.OutcomeNotFound
	case errors.Is(err, ErrStoreConflict):
		outcome = metrics.OutcomeConflict
	default:
		outcome = metrics.OutcomeError
	}
	metrics.LedgerOperations.WithLabelValues(op, outcome).Inc()
}
