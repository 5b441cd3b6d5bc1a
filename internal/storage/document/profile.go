package document

import (
	"context"
	"errors"

	"github.com/mmynk/fintrack/internal/docstore"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

// GetProfile returns the user's profile, creating it from defaults on first
// read. An empty default currency becomes models.DefaultCurrency.
func (s *Store) GetProfile(ctx context.Context, userID string, defaults models.Profile) (*models.Profile, error) {
	ref := s.layout.Profile(userID)
	var profile models.Profile
	err := s.db.RunTransaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		snap, err := tx.Get(ref)
		if err == nil {
			return snap.DataTo(&profile)
		}
		if !errors.Is(err, docstore.ErrNotFound) {
			return err
		}
		profile = s.seedProfile(defaults)
		return tx.Create(ref, &profile)
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return &profile, nil
}

// UpdateProfile merges patch into the stored profile. Fields patch leaves
// nil are preserved, including nested spouse fields.
func (s *Store) UpdateProfile(ctx context.Context, userID string, patch storage.ProfilePatch) (*models.Profile, error) {
	ref := s.layout.Profile(userID)
	fields := map[string]any{"updatedAt": s.now()}
	if patch.DisplayName != nil {
		fields["displayName"] = *patch.DisplayName
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Currency != nil {
		fields["currency"] = *patch.Currency
	}
	switch {
	case patch.ClearSpouse:
		fields["spouse"] = nil
	case patch.Spouse != nil:
		fields["spouse"] = patch.Spouse
	}

	var profile models.Profile
	err := s.db.RunTransaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		if _, err := tx.Get(ref); errors.Is(err, docstore.ErrNotFound) {
			seeded := s.seedProfile(models.Profile{})
			if err := tx.Set(ref, &seeded); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		if err := tx.Set(ref, fields, docstore.Merge()); err != nil {
			return err
		}
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		return snap.DataTo(&profile)
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return &profile, nil
}

func (s *Store) seedProfile(p models.Profile) models.Profile {
	if p.Currency == "" {
		p.Currency = models.DefaultCurrency
	}
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	return p
}
