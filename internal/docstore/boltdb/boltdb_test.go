package boltdb

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	bolt "go.etcd.io/bbolt"

	"github.com/mmynk/fintrack/internal/docstore"
	"github.com/mmynk/fintrack/internal/docstore/docstoretest"
)

func TestBackend(t *testing.T) {
	docstoretest.RunBackendTests(t, func(t *testing.T) docstore.Backend {
		b, err := Open(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("Failed to open backend: %v", err)
		}
		return b
	})
}

func TestOpenCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "fintrack.db")
	b, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer b.Close()
}

func TestOpenSeedsSequenceFromStoredVersions(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fintrack.db")
	ctx := context.Background()

	b, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	err = b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketDocuments))
		value, err := json.Marshal(envelope{Version: 7, Data: json.RawMessage(`{"n":1}`)})
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte("things/a"), value); err != nil {
			return err
		}
		return bucket.SetSequence(0)
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	b.Close()

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	if err := reopened.Commit(ctx, nil, []docstore.Mutation{{Path: "things/b", Data: []byte(`{"n":2}`)}}); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	rec, err := reopened.Get(ctx, "things/b")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec.Version != "8" {
		t.Errorf("Version = %s, want 8", rec.Version)
	}
}
