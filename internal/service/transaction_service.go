package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/pkg/api"
	"github.com/mmynk/fintrack/pkg/api/apiconnect"
)

var _ apiconnect.TransactionServiceHandler = (*TransactionService)(nil)

// Ledger posts and retracts transactions together with their balance effect.
type Ledger interface {
	Post(ctx context.Context, userID string, draft ledger.Draft, previous *models.Transaction) (*models.Transaction, error)
	Retract(ctx context.Context, userID, transactionID, accountID string, amount decimal.Decimal, typ models.TransactionType) error
}

// TransactionService implements the Connect TransactionService. Writes go
// through the ledger; reads go straight to the store.
type TransactionService struct {
	ledger Ledger
	reader storage.TransactionReader
}

// NewTransactionService creates a TransactionService.
func NewTransactionService(l Ledger, reader storage.TransactionReader) *TransactionService {
	return &TransactionService{ledger: l, reader: reader}
}

// CreateTransaction posts a new transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, req *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	draft, err := ledger.ParseDraft(draftInput(req.Msg.Draft))
	if err != nil {
		return nil, fail("CreateTransaction rejected", err, "user_id", userID)
	}

	txn, err := s.ledger.Post(ctx, userID, draft, nil)
	if err != nil {
		return nil, fail("CreateTransaction failed", err, "user_id", userID, "account_id", draft.AccountID)
	}

	slog.Info("Created transaction",
		"user_id", userID,
		"transaction_id", txn.ID,
		"account_id", txn.AccountID,
	)
	return connect.NewResponse(&api.CreateTransactionResponse{Transaction: toAPITransaction(txn)}), nil
}

// UpdateTransaction replaces a transaction, moving balances as needed.
func (s *TransactionService) UpdateTransaction(ctx context.Context, req *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.TransactionID == "" {
		return nil, invalidArgument("transactionId", "is required")
	}

	draft, err := ledger.ParseDraft(draftInput(req.Msg.Draft))
	if err != nil {
		return nil, fail("UpdateTransaction rejected", err, "user_id", userID)
	}

	previous, err := s.previous(ctx, userID, req.Msg.TransactionID, req.Msg.Previous, "previous")
	if err != nil {
		return nil, fail("UpdateTransaction failed", err, "user_id", userID, "transaction_id", req.Msg.TransactionID)
	}

	txn, err := s.ledger.Post(ctx, userID, draft, previous)
	if err != nil {
		return nil, fail("UpdateTransaction failed", err, "user_id", userID, "transaction_id", req.Msg.TransactionID)
	}

	slog.Info("Updated transaction",
		"user_id", userID,
		"transaction_id", txn.ID,
		"account_id", txn.AccountID,
	)
	return connect.NewResponse(&api.UpdateTransactionResponse{Transaction: toAPITransaction(txn)}), nil
}

// DeleteTransaction removes a transaction and reverses its effect.
func (s *TransactionService) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.TransactionID == "" {
		return nil, invalidArgument("transactionId", "is required")
	}

	expected, err := s.previous(ctx, userID, req.Msg.TransactionID, req.Msg.Expected, "expected")
	if err != nil {
		return nil, fail("DeleteTransaction failed", err, "user_id", userID, "transaction_id", req.Msg.TransactionID)
	}

	err = s.ledger.Retract(ctx, userID, expected.ID, expected.AccountID, expected.Amount, expected.Type)
	if err != nil {
		return nil, fail("DeleteTransaction failed", err, "user_id", userID, "transaction_id", req.Msg.TransactionID)
	}

	slog.Info("Deleted transaction", "user_id", userID, "transaction_id", expected.ID)
	return connect.NewResponse(&api.DeleteTransactionResponse{}), nil
}

// GetTransaction retrieves one transaction.
func (s *TransactionService) GetTransaction(ctx context.Context, req *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	txn, err := s.reader.GetTransaction(ctx, userID, req.Msg.TransactionID)
	if err != nil {
		return nil, fail("GetTransaction failed", err, "user_id", userID, "transaction_id", req.Msg.TransactionID)
	}
	return connect.NewResponse(&api.GetTransactionResponse{Transaction: toAPITransaction(txn)}), nil
}

// ListTransactions lists transactions newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	filter, err := toStorageFilter(req.Msg.Filter)
	if err != nil {
		return nil, err
	}

	txns, err := s.reader.ListTransactions(ctx, userID, filter)
	if err != nil {
		return nil, fail("ListTransactions failed", err, "user_id", userID)
	}
	return connect.NewResponse(&api.ListTransactionsResponse{Transactions: toAPITransactions(txns)}), nil
}

// WatchTransactions streams the filtered transaction list on every change.
func (s *TransactionService) WatchTransactions(ctx context.Context, req *connect.Request[api.WatchTransactionsRequest], stream *connect.ServerStream[api.WatchTransactionsResponse]) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	filter, err := toStorageFilter(req.Msg.Filter)
	if err != nil {
		return err
	}

	return streamWatch(ctx,
		func(ctx context.Context, fn func([]*models.Transaction, error)) func() {
			return s.reader.WatchTransactions(ctx, userID, filter, fn)
		},
		func(txns []*models.Transaction) error {
			return stream.Send(&api.WatchTransactionsResponse{Transactions: toAPITransactions(txns)})
		},
	)
}

// previous resolves the version of a transaction the client acted on: the
// one it sent, or the stored one when it sent none.
func (s *TransactionService) previous(ctx context.Context, userID, transactionID string, sent *api.Transaction, field string) (*models.Transaction, error) {
	if sent == nil {
		return s.reader.GetTransaction(ctx, userID, transactionID)
	}
	if sent.ID != "" && sent.ID != transactionID {
		return nil, invalidArgument(field+".id", "does not match transactionId")
	}
	amount, err := parseAmount(field+".amount", sent.Amount, false)
	if err != nil {
		return nil, err
	}
	typ, err := models.ParseTransactionType(sent.Type)
	if err != nil {
		return nil, invalidArgument(field+".type", err.Error())
	}
	return &models.Transaction{
		ID:          transactionID,
		Date:        sent.Date,
		Description: sent.Description,
		Amount:      amount,
		Category:    sent.Category,
		Type:        typ,
		AccountID:   sent.AccountID,
		UserID:      userID,
	}, nil
}

func draftInput(d api.TransactionDraft) ledger.DraftInput {
	return ledger.DraftInput{
		Date:        d.Date,
		Description: d.Description,
		Amount:      d.Amount,
		Category:    d.Category,
		Type:        d.Type,
		AccountID:   d.AccountID,
	}
}

func toStorageFilter(f api.TransactionFilter) (storage.TransactionFilter, error) {
	out := storage.TransactionFilter{
		AccountID: strings.TrimSpace(f.AccountID),
		Category:  strings.TrimSpace(f.Category),
		Limit:     int(f.Limit),
	}
	if f.Type != "" {
		typ, err := models.ParseTransactionType(strings.ToLower(f.Type))
		if err != nil {
			return out, invalidArgument("filter.type", err.Error())
		}
		out.Type = typ
	}
	var err error
	if out.From, err = parseDate("filter.from", f.From); err != nil {
		return out, err
	}
	if out.To, err = parseDate("filter.to", f.To); err != nil {
		return out, err
	}
	if f.Limit < 0 {
		return out, invalidArgument("filter.limit", "must not be negative")
	}
	return out, nil
}
