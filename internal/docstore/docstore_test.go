package docstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fintrack/internal/docstore"
	"github.com/mmynk/fintrack/internal/docstore/boltdb"
)

func newDB(t *testing.T) *docstore.DB {
	t.Helper()
	b, err := boltdb.Open(filepath.Join(t.TempDir(), "docs.db"))
	require.NoError(t, err)
	db := docstore.New(b)
	t.Cleanup(func() { db.Close() })
	return db
}

type item struct {
	Name  string  `json:"name"`
	Kind  string  `json:"kind"`
	Score float64 `json:"score"`
	Date  string  `json:"date"`
}

func seed(t *testing.T, db *docstore.DB, col docstore.CollectionRef, items map[string]item) {
	t.Helper()
	for id, it := range items {
		require.NoError(t, db.Set(context.Background(), col.Doc(id), it))
	}
}

func TestInvalidReferences(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	cases := map[string]docstore.DocRef{
		"odd segments": docstore.Doc("a", "b", "c"),
		"empty id":     docstore.Collection("things").Doc(""),
		"slash in id":  docstore.Collection("things").Doc("a/b"),
		"hash in id":   docstore.Collection("things").Doc("a#b"),
		"dot-dot":      docstore.Collection("things").Doc(".."),
		"bad parent":   docstore.Collection("a", "b").Doc("c"),
		"no segments":  docstore.Doc(),
	}
	for name, ref := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := db.Get(ctx, ref)
			assert.True(t, errors.Is(err, docstore.ErrInvalidPath), "got %v", err)
			assert.True(t, errors.Is(db.Set(ctx, ref, map[string]any{}), docstore.ErrInvalidPath))
		})
	}
}

func TestRefNavigation(t *testing.T) {
	ref := docstore.Collection("artifacts").Doc("app").Collection("users").Doc("u1")
	require.NoError(t, ref.Err())
	assert.Equal(t, "artifacts/app/users/u1", ref.Path())
	assert.Equal(t, "u1", ref.ID())
	assert.Equal(t, "artifacts/app/users", ref.Parent().Path())
	assert.Equal(t, docstore.Doc("artifacts", "app", "users", "u1"), ref)
}

func TestSetMerge(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	ref := docstore.Doc("profiles", "p1")

	require.NoError(t, db.Set(ctx, ref, map[string]any{
		"displayName": "Ann",
		"currency":    "USD",
		"spouse":      map[string]any{"name": "Bo", "email": "bo@example.com"},
	}))
	require.NoError(t, db.Set(ctx, ref, map[string]any{
		"currency": "EUR",
		"spouse":   map[string]any{"name": "Bob"},
	}, docstore.Merge()))

	snap, err := db.Get(ctx, ref)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, snap.DataTo(&got))

	assert.Equal(t, "Ann", got["displayName"])
	assert.Equal(t, "EUR", got["currency"])
	assert.Equal(t, map[string]any{"name": "Bob", "email": "bo@example.com"}, got["spouse"])
}

func TestSetMergeCreatesMissingDocument(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	ref := docstore.Doc("profiles", "new")

	require.NoError(t, db.Set(ctx, ref, map[string]any{"currency": "GBP"}, docstore.Merge()))

	snap, err := db.Get(ctx, ref)
	require.NoError(t, err)
	assert.JSONEq(t, `{"currency":"GBP"}`, string(snap.Data))
}

func TestQueryFiltersOrderAndLimit(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	col := docstore.Collection("items")
	seed(t, db, col, map[string]item{
		"a": {Name: "rent", Kind: "expense", Score: 1200, Date: "2024-03-01"},
		"b": {Name: "salary", Kind: "income", Score: 3000, Date: "2024-03-05"},
		"c": {Name: "food", Kind: "expense", Score: 80, Date: "2024-03-10"},
		"d": {Name: "fuel", Kind: "expense", Score: 45.5, Date: "2024-02-20"},
	})

	t.Run("equality", func(t *testing.T) {
		snaps, err := db.Query(ctx, col.Query().Where("kind", docstore.OpEq, "expense"))
		require.NoError(t, err)
		assert.Len(t, snaps, 3)
	})

	t.Run("range on strings", func(t *testing.T) {
		snaps, err := db.Query(ctx, col.Query().
			Where("date", docstore.OpGte, "2024-03-01").
			Where("date", docstore.OpLte, "2024-03-31"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, ids(snaps))
	})

	t.Run("order descending with limit", func(t *testing.T) {
		snaps, err := db.Query(ctx, col.Query().Order("date", true).WithLimit(2))
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b"}, ids(snaps))
	})

	t.Run("numeric comparison", func(t *testing.T) {
		snaps, err := db.Query(ctx, col.Query().Where("score", docstore.OpLt, 100).Order("score", false))
		require.NoError(t, err)
		assert.Equal(t, []string{"d", "c"}, ids(snaps))
	})

	t.Run("mismatched types never match", func(t *testing.T) {
		snaps, err := db.Query(ctx, col.Query().Where("score", docstore.OpEq, "1200"))
		require.NoError(t, err)
		assert.Empty(t, snaps)
	})

	t.Run("empty collection", func(t *testing.T) {
		snaps, err := db.Query(ctx, docstore.Collection("nothing").Query())
		require.NoError(t, err)
		assert.Empty(t, snaps)
	})
}

type kind string

func TestQueryNamedStringValue(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	col := docstore.Collection("items")
	seed(t, db, col, map[string]item{
		"a": {Kind: "income"},
		"b": {Kind: "expense"},
	})

	snaps, err := db.Query(ctx, col.Query().Where("kind", docstore.OpEq, kind("income")))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(snaps))
}

func TestRunTransactionReadsOwnWrites(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	ref := docstore.Doc("counters", "c")

	err := db.RunTransaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		if err := tx.Set(ref, map[string]int{"n": 1}); err != nil {
			return err
		}
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		assert.JSONEq(t, `{"n":1}`, string(snap.Data))
		return nil
	})
	require.NoError(t, err)
}

func TestRunTransactionFnErrorWritesNothing(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	ref := docstore.Doc("counters", "c")
	boom := errors.New("boom")

	err := db.RunTransaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		if err := tx.Set(ref, map[string]int{"n": 1}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = db.Get(ctx, ref)
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestRunTransactionCreateConflict(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	ref := docstore.Doc("emails", "hash")

	err := db.RunTransaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		if err := tx.Create(ref, map[string]string{"userId": "u1"}); err != nil {
			return err
		}
		// Another writer claims the document first.
		return db.Create(ctx, ref, map[string]string{"userId": "u2"})
	})
	assert.ErrorIs(t, err, docstore.ErrConflict)

	snap, err := db.Get(ctx, ref)
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":"u2"}`, string(snap.Data))
}

func TestConcurrentTransactionsOneWins(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	ref := docstore.Doc("accounts", "a1")
	require.NoError(t, db.Set(ctx, ref, map[string]int{"balance": 100}))

	var (
		read sync.WaitGroup
		wg   sync.WaitGroup
		errs = make([]error, 2)
	)
	read.Add(2)
	for i := range 2 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = db.RunTransaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
				snap, err := tx.Get(ref)
				read.Done()
				if err != nil {
					return err
				}
				var cur map[string]int
				if err := snap.DataTo(&cur); err != nil {
					return err
				}
				read.Wait()
				return tx.Set(ref, map[string]int{"balance": cur["balance"] + 10})
			})
		}(i)
	}
	wg.Wait()

	conflicts := 0
	for _, err := range errs {
		if errors.Is(err, docstore.ErrConflict) {
			conflicts++
		} else {
			require.NoError(t, err)
		}
	}
	assert.Equal(t, 1, conflicts)

	snap, err := db.Get(ctx, ref)
	require.NoError(t, err)
	assert.JSONEq(t, `{"balance":110}`, string(snap.Data))
}

func TestWatchDeliversInitialAndUpdates(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	col := docstore.Collection("items")
	seed(t, db, col, map[string]item{"a": {Name: "first"}})

	updates := make(chan []string, 16)
	stop := db.Watch(ctx, col.Query(), func(snaps []*docstore.Snapshot, err error) {
		assert.NoError(t, err)
		updates <- ids(snaps)
	})
	defer stop()

	assert.Equal(t, []string{"a"}, next(t, updates))

	require.NoError(t, db.Set(ctx, col.Doc("b"), item{Name: "second"}))
	waitFor(t, updates, []string{"a", "b"})

	require.NoError(t, db.Delete(ctx, col.Doc("a")))
	waitFor(t, updates, []string{"b"})
}

func TestWatchIgnoresOtherCollections(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	updates := make(chan []string, 16)
	stop := db.Watch(ctx, docstore.Collection("items").Query(), func(snaps []*docstore.Snapshot, err error) {
		updates <- ids(snaps)
	})
	defer stop()
	assert.Empty(t, next(t, updates))

	require.NoError(t, db.Set(ctx, docstore.Doc("others", "x"), item{}))

	select {
	case got := <-updates:
		t.Fatalf("unexpected update %v", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatchStop(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	updates := make(chan []string, 16)
	stop := db.Watch(ctx, docstore.Collection("items").Query(), func(snaps []*docstore.Snapshot, err error) {
		updates <- ids(snaps)
	})
	next(t, updates)
	assert.Equal(t, 1, db.WatchCount())

	stop()
	stop()
	assert.Equal(t, 0, db.WatchCount())

	require.NoError(t, db.Set(ctx, docstore.Doc("items", "a"), item{}))
	select {
	case got := <-updates:
		t.Fatalf("update after stop: %v", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatchEndsWithContext(t *testing.T) {
	db := newDB(t)
	ctx, cancel := context.WithCancel(context.Background())

	updates := make(chan []string, 16)
	stop := db.Watch(ctx, docstore.Collection("items").Query(), func(snaps []*docstore.Snapshot, err error) {
		updates <- ids(snaps)
	})
	next(t, updates)

	cancel()
	stop()
	assert.Equal(t, 0, db.WatchCount())
}

func ids(snaps []*docstore.Snapshot) []string {
	out := make([]string, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, s.ID())
	}
	return out
}

func next(t *testing.T, ch <-chan []string) []string {
	t.Helper()
	select {
	case got := <-ch:
		return got
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watch update")
		return nil
	}
}

// waitFor drains updates until want arrives; coalescing may skip states.
func waitFor(t *testing.T, ch <-chan []string, want []string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-ch:
			if assert.ObjectsAreEqual(want, got) {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %v", want)
		}
	}
}
