package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization role carried in a user's session.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered or anonymous identity.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Email is the login address. Empty for anonymous users.
	Email string `json:"email,omitempty"`

	// DisplayName is shown in the presentation layer.
	DisplayName string `json:"displayName"`

	// PasswordHash is the bcrypt hash of the password. Empty for anonymous users.
	PasswordHash string `json:"passwordHash,omitempty"`

	// Role controls access to administrative operations.
	Role Role `json:"role"`

	// Anonymous is set for guest sessions created without credentials.
	Anonymous bool `json:"anonymous"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUser creates a user with a fresh ID and the default role.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewAnonymousUser creates a guest identity with no credentials.
func NewAnonymousUser() *User {
	u := NewUser("", "Guest", "")
	u.Anonymous = true
	return u
}
