package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

// memoryUsers is an in-memory UserStorage.
type memoryUsers struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	byEmail map[string]string
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]*models.User{}, byEmail: map[string]string{}}
}

func (m *memoryUsers) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(user.Email)
	if key != "" {
		if _, ok := m.byEmail[key]; ok {
			return storage.ErrAlreadyExists
		}
		m.byEmail[key] = user.ID
	}
	m.byID[user.ID] = user
	return nil
}

func (m *memoryUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return m.byID[id], nil
}

func (m *memoryUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func TestRegisterAndAuthenticate(t *testing.T) {
	a := NewPasswordAuthenticator(newMemoryUsers())
	ctx := context.Background()

	user, err := a.Register(ctx, "ann@example.com", "", "correct-horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.DisplayName != "ann" {
		t.Errorf("display name: expected 'ann', got '%s'", user.DisplayName)
	}
	if user.PasswordHash == "correct-horse" {
		t.Error("password stored in clear text")
	}

	got, err := a.Authenticate(ctx, "ann@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("user ID: expected %s, got %s", user.ID, got.ID)
	}

	if _, err := a.Authenticate(ctx, "ann@example.com", "wrong-password"); err != ErrInvalidCredentials {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := a.Authenticate(ctx, "bob@example.com", "correct-horse"); err != ErrInvalidCredentials {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterRejects(t *testing.T) {
	a := NewPasswordAuthenticator(newMemoryUsers())
	ctx := context.Background()

	if _, err := a.Register(ctx, "ann@example.com", "Ann", "short"); err != ErrWeakPassword {
		t.Errorf("weak password: expected ErrWeakPassword, got %v", err)
	}
	if _, err := a.Register(ctx, "not-an-email", "Ann", "long-enough"); err != ErrInvalidEmail {
		t.Errorf("bad email: expected ErrInvalidEmail, got %v", err)
	}
	if _, err := a.Register(ctx, "Ann <ann@example.com>", "Ann", "long-enough"); err != ErrInvalidEmail {
		t.Errorf("named address: expected ErrInvalidEmail, got %v", err)
	}

	if _, err := a.Register(ctx, "ann@example.com", "Ann", "long-enough"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := a.Register(ctx, "ann@example.com", "Ann again", "long-enough"); err != ErrEmailExists {
		t.Errorf("duplicate: expected ErrEmailExists, got %v", err)
	}
}

func TestSignInAnonymously(t *testing.T) {
	users := newMemoryUsers()
	a := NewPasswordAuthenticator(users)

	guest, err := a.SignInAnonymously(context.Background())
	if err != nil {
		t.Fatalf("SignInAnonymously failed: %v", err)
	}
	if !guest.Anonymous || guest.Email != "" {
		t.Errorf("expected anonymous user without email, got %+v", guest)
	}
	if _, err := users.GetUserByID(context.Background(), guest.ID); err != nil {
		t.Errorf("guest not stored: %v", err)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := models.NewUser("ann@example.com", "Ann", "")
	user.Role = models.RoleAdmin

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("user ID: expected %s, got %s", user.ID, claims.UserID)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("role: expected admin, got %s", claims.Role)
	}
}

func TestJWTRejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := models.NewUser("ann@example.com", "Ann", "")

	other := NewJWTManager("other-secret", time.Hour)
	forged, _ := other.Generate(user)
	if _, err := m.Validate(forged); err == nil {
		t.Error("expected error for token signed with another secret")
	}

	expired := NewJWTManager("test-secret", -time.Minute)
	old, _ := expired.Generate(user)
	if _, err := m.Validate(old); err == nil {
		t.Error("expected error for expired token")
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: user.ID})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := m.Validate(unsigned); err == nil {
		t.Error("expected error for unsigned token")
	}

	if _, err := m.Validate("garbage"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestPrincipalCapabilities(t *testing.T) {
	tests := []struct {
		name      string
		principal Principal
		admin     bool
	}{
		{"regular user", Principal{UserID: "u1", Role: models.RoleUser}, false},
		{"admin", Principal{UserID: "u2", Role: models.RoleAdmin}, true},
		{"anonymous admin claim", Principal{UserID: "u3", Role: models.RoleAdmin, Anonymous: true}, false},
		{"no role", Principal{UserID: "u4"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.principal.Can(CapAdmin); got != tt.admin {
				t.Errorf("Can(CapAdmin) = %v, want %v", got, tt.admin)
			}
		})
	}
}

func TestPrincipalFromClaims(t *testing.T) {
	p := PrincipalFromClaims(&Claims{UserID: "u1", Email: "a@b.c", Role: models.RoleAdmin})
	if p.UserID != "u1" || !p.Can(CapAdmin) {
		t.Errorf("unexpected principal %+v", p)
	}
}
