package aztable

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fintrack/internal/docstore"
	"github.com/mmynk/fintrack/internal/docstore/docstoretest"
	"github.com/mmynk/fintrack/internal/layout"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/internal/storage/document"
)

// tableURLEnv names the table service the tests below run against, e.g.
// http://127.0.0.1:10002/devstoreaccount1 for Azurite.
const tableURLEnv = "FINTRACK_TEST_TABLE_URL"

// newTestBackend returns a backend on a fresh table that is dropped when the
// test ends.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	serviceURL := os.Getenv(tableURLEnv)
	if serviceURL == "" {
		t.Skipf("%s not set", tableURLEnv)
	}

	ctx := context.Background()
	name := "fintrack" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	b, err := New(ctx, serviceURL, name)
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}
	t.Cleanup(func() {
		if _, err := b.client.Delete(ctx, nil); err != nil {
			t.Logf("failed to delete table %s: %v", name, err)
		}
	})
	return b
}

func TestBackend(t *testing.T) {
	docstoretest.RunBackendTests(t, func(t *testing.T) docstore.Backend {
		return newTestBackend(t)
	})
}

func TestCreateUserOnTable(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	store := document.New(docstore.New(b), layout.New("test"))

	user := models.NewUser("ada@example.com", "Ada", "hash")
	require.NoError(t, store.CreateUser(ctx, user))

	got, err := store.GetUserByEmail(ctx, "ADA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	err = store.CreateUser(ctx, models.NewUser("ada@example.com", "Other", "hash"))
	assert.True(t, errors.Is(err, storage.ErrAlreadyExists), "got %v", err)

	require.NoError(t, store.SetUserRole(ctx, user.ID, models.RoleAdmin))
	got, err = store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)
}
