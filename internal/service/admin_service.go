package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/auth"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/pkg/api"
	"github.com/mmynk/fintrack/pkg/api/apiconnect"
)

var _ apiconnect.AdminServiceHandler = (*AdminService)(nil)

// Reconciler recomputes an account balance from its transactions.
type Reconciler interface {
	Reconcile(ctx context.Context, userID, accountID string, repair bool) (*ledger.Report, error)
}

// AdminService implements maintenance RPCs restricted to admins.
type AdminService struct {
	reconciler Reconciler
}

// NewAdminService creates an AdminService.
func NewAdminService(r Reconciler) *AdminService {
	return &AdminService{reconciler: r}
}

// ReconcileAccount compares an account's stored balance with the sum of its
// transactions and optionally repairs it. UserID defaults to the caller.
func (s *AdminService) ReconcileAccount(ctx context.Context, req *connect.Request[api.ReconcileAccountRequest]) (*connect.Response[api.ReconcileAccountResponse], error) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	if !principal.Can(auth.CapAdmin) {
		slog.Warn("ReconcileAccount denied", "user_id", principal.UserID)
		return nil, connect.NewError(connect.CodePermissionDenied, errors.New("admin role required"))
	}

	userID := req.Msg.UserID
	if userID == "" {
		userID = principal.UserID
	}
	if req.Msg.AccountID == "" {
		return nil, invalidArgument("accountId", "is required")
	}

	report, err := s.reconciler.Reconcile(ctx, userID, req.Msg.AccountID, req.Msg.Repair)
	if err != nil {
		return nil, fail("ReconcileAccount failed", err, "user_id", userID, "account_id", req.Msg.AccountID)
	}

	slog.Info("Reconciled account",
		"admin_id", principal.UserID,
		"user_id", userID,
		"account_id", req.Msg.AccountID,
		"drift", report.Drift().String(),
		"repaired", report.Repaired,
	)
	return connect.NewResponse(&api.ReconcileAccountResponse{
		StoredBalance:   report.Stored.StringFixed(2),
		ComputedBalance: report.Computed.StringFixed(2),
		Drift:           report.Drift().StringFixed(2),
		Transactions:    int32(report.Transactions),
		Repaired:        report.Repaired,
	}), nil
}
