// Package docstoretest holds the conformance tests every docstore.Backend
// must pass.
package docstoretest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fintrack/internal/docstore"
)

// RunBackendTests exercises a backend through docstore.DB. newBackend must
// return an empty backend; the suite closes it.
func RunBackendTests(t *testing.T, newBackend func(t *testing.T) docstore.Backend) {
	ctx := context.Background()

	open := func(t *testing.T) *docstore.DB {
		db := docstore.New(newBackend(t))
		t.Cleanup(func() { db.Close() })
		return db
	}

	t.Run("Get missing document", func(t *testing.T) {
		db := open(t)
		_, err := db.Get(ctx, docstore.Doc("things", "missing"))
		assert.True(t, errors.Is(err, docstore.ErrNotFound))
	})

	t.Run("Set then Get", func(t *testing.T) {
		db := open(t)
		ref := docstore.Doc("things", "a")
		require.NoError(t, db.Set(ctx, ref, map[string]any{"name": "alpha"}))

		snap, err := db.Get(ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, "a", snap.ID())
		assert.NotEmpty(t, snap.Version)

		var got map[string]any
		require.NoError(t, snap.DataTo(&got))
		assert.Equal(t, "alpha", got["name"])
	})

	t.Run("Version changes on every write", func(t *testing.T) {
		db := open(t)
		ref := docstore.Doc("things", "a")
		require.NoError(t, db.Set(ctx, ref, map[string]any{"n": 1}))
		first, err := db.Get(ctx, ref)
		require.NoError(t, err)

		require.NoError(t, db.Set(ctx, ref, map[string]any{"n": 2}))
		second, err := db.Get(ctx, ref)
		require.NoError(t, err)
		assert.NotEqual(t, first.Version, second.Version)
	})

	t.Run("List returns direct children only", func(t *testing.T) {
		db := open(t)
		require.NoError(t, db.Set(ctx, docstore.Doc("things", "a"), map[string]any{"n": 1}))
		require.NoError(t, db.Set(ctx, docstore.Doc("things", "b"), map[string]any{"n": 2}))
		require.NoError(t, db.Set(ctx, docstore.Doc("things", "a", "parts", "p1"), map[string]any{"n": 3}))
		require.NoError(t, db.Set(ctx, docstore.Doc("thingsx", "c"), map[string]any{"n": 4}))

		snaps, err := db.Query(ctx, docstore.Collection("things").Query())
		require.NoError(t, err)
		require.Len(t, snaps, 2)
		assert.Equal(t, "a", snaps[0].ID())
		assert.Equal(t, "b", snaps[1].ID())
	})

	t.Run("Delete removes document", func(t *testing.T) {
		db := open(t)
		ref := docstore.Doc("things", "a")
		require.NoError(t, db.Set(ctx, ref, map[string]any{"n": 1}))
		require.NoError(t, db.Delete(ctx, ref))
		require.NoError(t, db.Delete(ctx, ref))

		_, err := db.Get(ctx, ref)
		assert.True(t, errors.Is(err, docstore.ErrNotFound))
	})

	t.Run("Create refuses existing document", func(t *testing.T) {
		db := open(t)
		ref := docstore.Doc("things", "a")
		require.NoError(t, db.Create(ctx, ref, map[string]any{"n": 1}))
		err := db.Create(ctx, ref, map[string]any{"n": 2})
		assert.True(t, errors.Is(err, docstore.ErrAlreadyExists))
	})

	t.Run("Commit rejects stale precondition", func(t *testing.T) {
		db := open(t)
		ref := docstore.Doc("things", "a")
		require.NoError(t, db.Set(ctx, ref, map[string]any{"n": 1}))

		err := db.RunTransaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
			if _, err := tx.Get(ref); err != nil {
				return err
			}
			// A write outside the transaction after the read.
			if err := db.Set(ctx, ref, map[string]any{"n": 2}); err != nil {
				return err
			}
			return tx.Set(ref, map[string]any{"n": 3})
		})
		assert.True(t, errors.Is(err, docstore.ErrConflict))

		snap, err := db.Get(ctx, ref)
		require.NoError(t, err)
		var got map[string]float64
		require.NoError(t, snap.DataTo(&got))
		assert.Equal(t, float64(2), got["n"])
	})

	t.Run("Recreated document does not reuse its version", func(t *testing.T) {
		db := open(t)
		ref := docstore.Doc("things", "a")
		require.NoError(t, db.Set(ctx, ref, map[string]any{"n": 1}))
		first, err := db.Get(ctx, ref)
		require.NoError(t, err)

		require.NoError(t, db.Delete(ctx, ref))
		require.NoError(t, db.Set(ctx, ref, map[string]any{"n": 2}))
		second, err := db.Get(ctx, ref)
		require.NoError(t, err)
		assert.NotEqual(t, first.Version, second.Version)
	})

	t.Run("Commit rejects read of a since recreated document", func(t *testing.T) {
		db := open(t)
		ref := docstore.Doc("things", "a")
		require.NoError(t, db.Set(ctx, ref, map[string]any{"n": 1}))

		err := db.RunTransaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
			if _, err := tx.Get(ref); err != nil {
				return err
			}
			if err := db.Delete(ctx, ref); err != nil {
				return err
			}
			if err := db.Set(ctx, ref, map[string]any{"n": 2}); err != nil {
				return err
			}
			return tx.Set(ref, map[string]any{"n": 3})
		})
		assert.True(t, errors.Is(err, docstore.ErrConflict))

		snap, err := db.Get(ctx, ref)
		require.NoError(t, err)
		var got map[string]float64
		require.NoError(t, snap.DataTo(&got))
		assert.Equal(t, float64(2), got["n"])
	})

	t.Run("Commit applies all writes or none", func(t *testing.T) {
		db := open(t)
		a := docstore.Doc("things", "a")
		b := docstore.Doc("things", "b")
		require.NoError(t, db.Set(ctx, b, map[string]any{"n": 1}))

		err := db.RunTransaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
			if err := tx.Set(a, map[string]any{"n": 10}); err != nil {
				return err
			}
			if _, err := tx.Get(b); err != nil {
				return err
			}
			if err := db.Delete(ctx, b); err != nil {
				return err
			}
			return tx.Set(b, map[string]any{"n": 11})
		})
		require.True(t, errors.Is(err, docstore.ErrConflict))

		_, err = db.Get(ctx, a)
		assert.True(t, errors.Is(err, docstore.ErrNotFound), "first write must not be applied")
	})
}
