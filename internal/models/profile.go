package models

import "time"

// DefaultCurrency is assigned to new profiles.
const DefaultCurrency = "USD"

// Profile holds a user's display settings. There is exactly one per user.
type Profile struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Currency    string `json:"currency"`

	// Spouse is optional household information.
	Spouse *Spouse `json:"spouse,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Spouse describes a partner sharing the household budget.
type Spouse struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
