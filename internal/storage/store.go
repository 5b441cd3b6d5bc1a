// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a unique record is created twice.
	ErrAlreadyExists = errors.New("already exists")

	// ErrConflict is returned when a concurrent write prevented an update.
	ErrConflict = errors.New("concurrent update")

	// ErrInvalidID is returned for ids that cannot address a record.
	ErrInvalidID = errors.New("invalid id")

	// ErrAccountInUse is returned by DeleteAccount under PolicyRestrict when
	// transactions still reference the account.
	ErrAccountInUse = errors.New("account has transactions")
)

// DeletePolicy decides what happens to an account's transactions when the
// account is deleted.
type DeletePolicy string

const (
	// PolicyCascade deletes the account, then sweeps its transactions in a
	// separate best-effort pass.
	PolicyCascade DeletePolicy = "cascade"

	// PolicyRestrict refuses to delete an account that still has
	// transactions.
	PolicyRestrict DeletePolicy = "restrict"
)

// ParseDeletePolicy converts a configuration value. Empty means cascade.
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch p := DeletePolicy(s); p {
	case "":
		return PolicyCascade, nil
	case PolicyCascade, PolicyRestrict:
		return p, nil
	default:
		return "", fmt.Errorf("unknown account delete policy %q", s)
	}
}

// DeleteResult reports the outcome of an account deletion.
type DeleteResult struct {
	// Swept is the number of transactions removed by the cascade.
	Swept int

	// SweepErr is set when the cascade stopped early. The account itself is
	// deleted regardless; remaining transactions are orphaned.
	SweepErr error
}

// AccountUpdate carries the editable account fields. Nil fields are left
// unchanged.
type AccountUpdate struct {
	Name           *string
	OpeningBalance *decimal.Decimal
}

// TransactionFilter narrows ListTransactions. Zero fields match everything.
type TransactionFilter struct {
	AccountID string
	Type      models.TransactionType
	Category  string
	// From and To are inclusive YYYY-MM-DD bounds.
	From  string
	To    string
	Limit int
}

// ProfilePatch carries profile fields to merge. Nil fields are preserved.
type ProfilePatch struct {
	DisplayName *string
	Email       *string
	Currency    *string
	Spouse      *models.Spouse
	// ClearSpouse removes the spouse entry.
	ClearSpouse bool
}

// AccountStore persists accounts. Balances are changed here only through an
// opening balance edit; everything else goes through the ledger.
type AccountStore interface {
	CreateAccount(ctx context.Context, userID string, account *models.Account) error
	GetAccount(ctx context.Context, userID, accountID string) (*models.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]*models.Account, error)
	UpdateAccount(ctx context.Context, userID, accountID string, update AccountUpdate) (*models.Account, error)
	DeleteAccount(ctx context.Context, userID, accountID string, policy DeletePolicy) (*DeleteResult, error)

	// WatchAccounts calls fn with the full account list now and after every
	// change until ctx ends or stop is called.
	WatchAccounts(ctx context.Context, userID string, fn func([]*models.Account, error)) (stop func())
}

// TransactionReader is the read side of transactions. Writes go through the
// ledger.
type TransactionReader interface {
	GetTransaction(ctx context.Context, userID, transactionID string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]*models.Transaction, error)
	WatchTransactions(ctx context.Context, userID string, filter TransactionFilter, fn func([]*models.Transaction, error)) (stop func())
}

// BudgetStore persists budgets.
type BudgetStore interface {
	CreateBudget(ctx context.Context, userID string, budget *models.Budget) error
	GetBudget(ctx context.Context, userID, budgetID string) (*models.Budget, error)
	ListBudgets(ctx context.Context, userID string) ([]*models.Budget, error)
	UpdateBudget(ctx context.Context, userID string, budget *models.Budget) error
	DeleteBudget(ctx context.Context, userID, budgetID string) error
}

// GoalStore persists savings goals.
type GoalStore interface {
	CreateGoal(ctx context.Context, userID string, goal *models.Goal) error
	GetGoal(ctx context.Context, userID, goalID string) (*models.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]*models.Goal, error)
	UpdateGoal(ctx context.Context, userID string, goal *models.Goal) error
	DeleteGoal(ctx context.Context, userID, goalID string) error
}

// CategoryStore persists category labels.
type CategoryStore interface {
	CreateCategory(ctx context.Context, userID string, category *models.Category) error
	GetCategory(ctx context.Context, userID, categoryID string) (*models.Category, error)
	ListCategories(ctx context.Context, userID string) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, userID string, category *models.Category) error
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}

// ProfileStore persists the single profile document of each user.
type ProfileStore interface {
	// GetProfile returns the profile, creating it from defaults on first read.
	GetProfile(ctx context.Context, userID string, defaults models.Profile) (*models.Profile, error)

	// UpdateProfile merges patch into the profile and returns the result.
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*models.Profile, error)
}

// UserStore persists identities.
type UserStore interface {
	// CreateUser stores a user. A non-empty email must be unused.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	SetUserRole(ctx context.Context, id string, role models.Role) error
}

// Store combines every repository.
// This abstraction allows swapping document backends (bbolt, SQLite, Azure
// Tables) without changing the service layer.
type Store interface {
	AccountStore
	TransactionReader
	BudgetStore
	GoalStore
	CategoryStore
	ProfileStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
