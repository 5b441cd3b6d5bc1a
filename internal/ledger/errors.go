package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrAccountNotFound is returned when the account a posting targets does
	// not exist when the transaction runs.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound is returned when an edited or retracted
	// transaction no longer exists.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrStoreConflict is returned when the store could not commit because of
	// a concurrent write, or when an edit was based on a stale transaction.
	// The operation had no effect and may be retried.
	ErrStoreConflict = errors.New("store conflict")
)

// ValidationError reports a malformed draft field. It is always returned
// before the store is touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
