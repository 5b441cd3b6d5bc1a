package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/pkg/api"
	"github.com/mmynk/fintrack/pkg/api/apiconnect"
)

var _ apiconnect.AccountServiceHandler = (*AccountService)(nil)

// AccountService implements the Connect AccountService.
type AccountService struct {
	store  storage.AccountStore
	policy storage.DeletePolicy
}

// NewAccountService creates an AccountService deleting accounts under policy.
func NewAccountService(store storage.AccountStore, policy storage.DeletePolicy) *AccountService {
	return &AccountService{store: store, policy: policy}
}

// CreateAccount creates an account whose balance starts at the opening balance.
func (s *AccountService) CreateAccount(ctx context.Context, req *connect.Request[api.CreateAccountRequest]) (*connect.Response[api.CreateAccountResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name", "is required")
	}
	opening, err := parseAmount("openingBalance", req.Msg.OpeningBalance, true)
	if err != nil {
		return nil, err
	}

	account := &models.Account{Name: name, OpeningBalance: opening}
	if err := s.store.CreateAccount(ctx, userID, account); err != nil {
		return nil, fail("CreateAccount failed", err, "user_id", userID)
	}

	slog.Info("Created account", "user_id", userID, "account_id", account.ID)
	return connect.NewResponse(&api.CreateAccountResponse{Account: toAPIAccount(account)}), nil
}

// GetAccount retrieves one account.
func (s *AccountService) GetAccount(ctx context.Context, req *connect.Request[api.GetAccountRequest]) (*connect.Response[api.GetAccountResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	account, err := s.store.GetAccount(ctx, userID, req.Msg.AccountID)
	if err != nil {
		return nil, fail("GetAccount failed", err, "user_id", userID, "account_id", req.Msg.AccountID)
	}
	return connect.NewResponse(&api.GetAccountResponse{Account: toAPIAccount(account)}), nil
}

// ListAccounts lists the caller's accounts by name.
func (s *AccountService) ListAccounts(ctx context.Context, req *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := s.store.ListAccounts(ctx, userID)
	if err != nil {
		return nil, fail("ListAccounts failed", err, "user_id", userID)
	}
	return connect.NewResponse(&api.ListAccountsResponse{Accounts: toAPIAccounts(accounts)}), nil
}

// UpdateAccount renames an account or changes its opening balance.
func (s *AccountService) UpdateAccount(ctx context.Context, req *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var update storage.AccountUpdate
	if req.Msg.Name != nil {
		name := strings.TrimSpace(*req.Msg.Name)
		if name == "" {
			return nil, invalidArgument("name", "must not be empty")
		}
		update.Name = &name
	}
	if req.Msg.OpeningBalance != nil {
		opening, err := parseAmount("openingBalance", *req.Msg.OpeningBalance, false)
		if err != nil {
			return nil, err
		}
		update.OpeningBalance = &opening
	}

	account, err := s.store.UpdateAccount(ctx, userID, req.Msg.AccountID, update)
	if err != nil {
		return nil, fail("UpdateAccount failed", err, "user_id", userID, "account_id", req.Msg.AccountID)
	}

	slog.Info("Updated account", "user_id", userID, "account_id", account.ID)
	return connect.NewResponse(&api.UpdateAccountResponse{Account: toAPIAccount(account)}), nil
}

// DeleteAccount deletes an account according to the configured policy.
func (s *AccountService) DeleteAccount(ctx context.Context, req *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.store.DeleteAccount(ctx, userID, req.Msg.AccountID, s.policy)
	if err != nil {
		return nil, fail("DeleteAccount failed", err, "user_id", userID, "account_id", req.Msg.AccountID, "policy", s.policy)
	}

	resp := &api.DeleteAccountResponse{SweptTransactions: int32(result.Swept)}
	if result.SweepErr != nil {
		resp.Warning = "some transactions of the deleted account could not be removed"
	}

	slog.Info("Deleted account",
		"user_id", userID,
		"account_id", req.Msg.AccountID,
		"swept", result.Swept,
	)
	return connect.NewResponse(resp), nil
}

// WatchAccounts streams the caller's full account list on every change.
func (s *AccountService) WatchAccounts(ctx context.Context, req *connect.Request[api.WatchAccountsRequest], stream *connect.ServerStream[api.WatchAccountsResponse]) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}

	return streamWatch(ctx,
		func(ctx context.Context, fn func([]*models.Account, error)) func() {
			return s.store.WatchAccounts(ctx, userID, fn)
		},
		func(accounts []*models.Account) error {
			return stream.Send(&api.WatchAccountsResponse{Accounts: toAPIAccounts(accounts)})
		},
	)
}
