package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/fintrack/internal/docstore"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

// emailIndex maps a normalized email to the user that owns it.
type emailIndex struct {
	UserID string `json:"userId"`
}

// CreateUser stores a user and claims its email in the same commit, so two
// registrations of one address cannot both succeed.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.RunTransaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		if user.Email != "" {
			if err := tx.Create(s.layout.Email(user.Email), emailIndex{UserID: user.ID}); err != nil {
				return err
			}
		}
		return tx.Create(s.layout.Identity(user.ID), user)
	})
	if errors.Is(err, docstore.ErrConflict) {
		err = fmt.Errorf("%w: %w", docstore.ErrAlreadyExists, err)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapErr(err))
	}
	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: empty email", storage.ErrNotFound)
	}
	idx, err := get[emailIndex](ctx, s.db, s.layout.Email(email))
	if err != nil {
		return nil, err
	}
	user, err := s.GetUserByID(ctx, idx.UserID)
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: dangling email index for %s", storage.ErrNotFound, idx.UserID)
	}
	return user, err
}

// GetUserByID retrieves a user by their ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return get[models.User](ctx, s.db, s.layout.Identity(id))
}

// SetUserRole changes the role of an existing user.
func (s *Store) SetUserRole(ctx context.Context, id string, role models.Role) error {
	return s.replace(ctx, s.layout.Identity(id), func(cur *docstore.Snapshot) (any, error) {
		var user models.User
		if err := cur.DataTo(&user); err != nil {
			return nil, err
		}
		user.Role = role
		user.UpdatedAt = s.now()
		return &user, nil
	})
}
