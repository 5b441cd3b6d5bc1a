package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/fintrack/internal/docstore"
	"github.com/mmynk/fintrack/internal/docstore/docstoretest"
)

func TestSQLiteStore(t *testing.T) {
	docstoretest.RunBackendTests(t, func(t *testing.T) docstore.Backend {
		store, err := New(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}
		return store
	})
}

func TestSQLiteStorePersists(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "fintrack-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	ctx := context.Background()

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	err = store.Commit(ctx, nil, []docstore.Mutation{
		{Path: "things/a", Data: []byte(`{"name":"alpha"}`)},
	})
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	store.Close()

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	rec, err := reopened.Get(ctx, "things/a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(rec.Data) != `{"name":"alpha"}` {
		t.Errorf("Data mismatch: got %s", rec.Data)
	}
	if rec.Version != "1" {
		t.Errorf("Version mismatch: got %s, want 1", rec.Version)
	}
}

func TestParentOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"things/a", "things"},
		{"artifacts/app/users/u1/accounts/a1", "artifacts/app/users/u1/accounts"},
		{"orphan", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := parentOf(tt.path); got != tt.want {
				t.Errorf("parentOf(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestMigrationSeedsVersionCounter(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	for i := 0; i < 2; i++ {
		err := store.Commit(ctx, nil, []docstore.Mutation{
			{Path: "things/a", Data: []byte(`{"name":"alpha"}`)},
		})
		if err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
	}
	// Databases created before the counter existed have no counters table.
	if _, err := store.db.Exec("DROP TABLE counters"); err != nil {
		t.Fatalf("Failed to drop counters: %v", err)
	}
	store.Close()

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	err = reopened.Commit(ctx, nil, []docstore.Mutation{
		{Path: "things/b", Data: []byte(`{"name":"beta"}`)},
	})
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	rec, err := reopened.Get(ctx, "things/b")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.Version != "3" {
		t.Errorf("Version mismatch: got %s, want 3", rec.Version)
	}
}
