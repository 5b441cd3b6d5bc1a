package models

import "time"

// Category is a user-defined transaction label.
type Category struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Type   TransactionType `json:"type"`
	UserID string          `json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
}
