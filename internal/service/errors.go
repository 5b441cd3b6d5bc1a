package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mmynk/fintrack/internal/auth"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/internal/storage"
)

// toConnectError maps domain errors onto Connect codes. Validation failures
// carry a structured detail naming the offending field.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	var verr *ledger.ValidationError
	switch {
	case errors.As(err, &verr):
		cerr := connect.NewError(connect.CodeInvalidArgument, err)
		detail, derr := structpb.NewStruct(map[string]any{
			"field":  verr.Field,
			"reason": verr.Reason,
		})
		if derr == nil {
			if d, derr := connect.NewErrorDetail(detail); derr == nil {
				cerr.AddDetail(d)
			}
		}
		return cerr
	case errors.Is(err, storage.ErrInvalidID):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrTransactionNotFound),
		errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrStoreConflict), errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAborted, err)
	case errors.Is(err, storage.ErrAccountInUse):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, storage.ErrAlreadyExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// fail logs err and converts it for the client. Expected outcomes such as
// validation failures are logged at Warn.
func fail(msg string, err error, attrs ...any) error {
	cerr := toConnectError(err)
	attrs = append(attrs, "code", cerr.Code(), "error", err)
	if cerr.Code() == connect.CodeInternal {
		slog.Error(msg, attrs...)
	} else {
		slog.Warn(msg, attrs...)
	}
	return cerr
}

// invalidArgument builds a validation failure for a request field.
func invalidArgument(field, reason string) error {
	return toConnectError(&ledger.ValidationError{Field: field, Reason: reason})
}

// requireUser returns the authenticated user ID from the context.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// ValidationDetail extracts the field and reason from an InvalidArgument
// error produced by this package.
func ValidationDetail(err error) (field, reason string, ok bool) {
	var cerr *connect.Error
	if !errors.As(err, &cerr) {
		return "", "", false
	}
	for _, d := range cerr.Details() {
		msg, derr := d.Value()
		if derr != nil {
			continue
		}
		s, isStruct := msg.(*structpb.Struct)
		if !isStruct {
			continue
		}
		fields := s.AsMap()
		field, _ = fields["field"].(string)
		reason, _ = fields["reason"].(string)
		return field, reason, true
	}
	return "", "", false
}
