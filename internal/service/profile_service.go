package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/pkg/api"
	"github.com/mmynk/fintrack/pkg/api/apiconnect"
)

var _ apiconnect.ProfileServiceHandler = (*ProfileService)(nil)

// ProfileService implements the Connect ProfileService.
type ProfileService struct {
	store storage.ProfileStore
}

// NewProfileService creates a ProfileService.
func NewProfileService(store storage.ProfileStore) *ProfileService {
	return &ProfileService{store: store}
}

// GetProfile returns the caller's profile, creating it on first access.
func (s *ProfileService) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.store.GetProfile(ctx, userID, profileDefaults(ctx))
	if err != nil {
		return nil, fail("GetProfile failed", err, "user_id", userID)
	}
	return connect.NewResponse(&api.GetProfileResponse{Profile: toAPIProfile(profile)}), nil
}

// UpdateProfile merges the set fields into the caller's profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var patch storage.ProfilePatch
	if req.Msg.DisplayName != nil {
		name := strings.TrimSpace(*req.Msg.DisplayName)
		if name == "" {
			return nil, invalidArgument("displayName", "must not be empty")
		}
		patch.DisplayName = &name
	}
	if req.Msg.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Msg.Currency))
		if !validCurrency(currency) {
			return nil, invalidArgument("currency", "must be a three-letter currency code")
		}
		patch.Currency = &currency
	}
	switch {
	case req.Msg.ClearSpouse && req.Msg.Spouse != nil:
		return nil, invalidArgument("spouse", "cannot be set and cleared together")
	case req.Msg.ClearSpouse:
		patch.ClearSpouse = true
	case req.Msg.Spouse != nil:
		name := strings.TrimSpace(req.Msg.Spouse.Name)
		if name == "" {
			return nil, invalidArgument("spouse.name", "is required")
		}
		patch.Spouse = &models.Spouse{Name: name, Email: strings.TrimSpace(req.Msg.Spouse.Email)}
	}

	profile, err := s.store.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, fail("UpdateProfile failed", err, "user_id", userID)
	}

	slog.Info("Updated profile", "user_id", userID)
	return connect.NewResponse(&api.UpdateProfileResponse{Profile: toAPIProfile(profile)}), nil
}

// profileDefaults seeds a missing profile from the session.
func profileDefaults(ctx context.Context) models.Profile {
	defaults := models.Profile{Currency: models.DefaultCurrency}
	if email := middleware.GetEmail(ctx); email != "" {
		defaults.Email = email
		defaults.DisplayName = email[:strings.IndexByte(email+"@", '@')]
	}
	return defaults
}

func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
