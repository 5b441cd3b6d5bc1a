package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType carries the direction of a transaction.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// ParseTransactionType converts a wire value into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(s); t {
	case Income, Expense:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// Valid reports whether t is income or expense.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Effect returns the signed change a transaction of this type and amount
// makes to its account balance.
func (t TransactionType) Effect(amount decimal.Decimal) decimal.Decimal {
	if t == Expense {
		return amount.Neg()
	}
	return amount
}

// DateLayout is the calendar date format used for Transaction.Date.
const DateLayout = "2006-01-02"

// UncategorizedLabel is stored when a transaction is posted without a category.
const UncategorizedLabel = "Uncategorized"

// Transaction represents a dated income or expense against one account.
type Transaction struct {
	// ID is the document ID of the transaction (UUID format).
	ID string `json:"id"`

	// Date is the calendar date of the transaction (YYYY-MM-DD).
	Date string `json:"date"`

	// Description is the free-text label (e.g., "Groceries").
	Description string `json:"description"`

	// Amount is always a positive magnitude. Direction is carried by Type.
	Amount decimal.Decimal `json:"amount"`

	// Category is a free-form label, usually one of the user's categories.
	Category string `json:"category"`

	// Type is income or expense.
	Type TransactionType `json:"type"`

	// AccountID references the Account this transaction affects.
	// The store does not enforce the reference.
	AccountID string `json:"accountId"`

	// UserID is the owner of the transaction.
	UserID string `json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Effect returns the signed change this transaction makes to its account.
func (t *Transaction) Effect() decimal.Decimal {
	return t.Type.Effect(t.Amount)
}
