package document

import (
	"context"

	"github.com/mmynk/fintrack/internal/docstore"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

// GetTransaction retrieves a transaction by ID.
func (s *Store) GetTransaction(ctx context.Context, userID, transactionID string) (*models.Transaction, error) {
	return get[models.Transaction](ctx, s.db, s.layout.Transaction(userID, transactionID))
}

// ListTransactions returns matching transactions, newest date first.
func (s *Store) ListTransactions(ctx context.Context, userID string, filter storage.TransactionFilter) ([]*models.Transaction, error) {
	return list[models.Transaction](ctx, s.db, s.transactionsQuery(userID, filter))
}

// WatchTransactions streams matching transactions.
func (s *Store) WatchTransactions(ctx context.Context, userID string, filter storage.TransactionFilter, fn func([]*models.Transaction, error)) func() {
	return s.db.Watch(ctx, s.transactionsQuery(userID, filter), func(snaps []*docstore.Snapshot, err error) {
		if err != nil {
			fn(nil, mapErr(err))
			return
		}
		fn(decodeAll[models.Transaction](snaps))
	})
}

func (s *Store) transactionsQuery(userID string, f storage.TransactionFilter) docstore.Query {
	q := s.layout.Transactions(userID).Query()
	if f.AccountID != "" {
		q = q.Where("accountId", docstore.OpEq, f.AccountID)
	}
	if f.Type != "" {
		q = q.Where("type", docstore.OpEq, f.Type)
	}
	if f.Category != "" {
		q = q.Where("category", docstore.OpEq, f.Category)
	}
	if f.From != "" {
		q = q.Where("date", docstore.OpGte, f.From)
	}
	if f.To != "" {
		q = q.Where("date", docstore.OpLte, f.To)
	}
	return q.Order("date", true).WithLimit(f.Limit)
}
