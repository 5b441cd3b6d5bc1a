package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a named balance owned by one user.
type Account struct {
	// ID is the document ID of the account (UUID format).
	ID string `json:"id"`

	// Name is the display name of the account (e.g., "Checking").
	Name string `json:"name"`

	// Balance is the current balance. It is only changed by the ledger poster
	// or by an explicit edit of OpeningBalance.
	Balance decimal.Decimal `json:"balance"`

	// OpeningBalance is the balance the account was created with.
	OpeningBalance decimal.Decimal `json:"openingBalance"`

	// UserID is the owner of the account.
	UserID string `json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
