// Package document implements storage.Store on top of the document database.
package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/fintrack/internal/docstore"
	"github.com/mmynk/fintrack/internal/layout"
	"github.com/mmynk/fintrack/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store over a docstore.DB.
type Store struct {
	db     *docstore.DB
	layout layout.Layout
	now    func() time.Time
}

// New creates a Store writing under l. The Store owns db and closes it.
func New(db *docstore.DB, l layout.Layout) *Store {
	return &Store{
		db:     db,
		layout: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// mapErr translates docstore errors into storage errors, keeping the cause.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, docstore.ErrNotFound):
		return fmt.Errorf("%w: %w", storage.ErrNotFound, err)
	case errors.Is(err, docstore.ErrAlreadyExists):
		return fmt.Errorf("%w: %w", storage.ErrAlreadyExists, err)
	case errors.Is(err, docstore.ErrConflict):
		return fmt.Errorf("%w: %w", storage.ErrConflict, err)
	case errors.Is(err, docstore.ErrInvalidPath):
		return fmt.Errorf("%w: %w", storage.ErrInvalidID, err)
	}
	return err
}

func get[T any](ctx context.Context, db *docstore.DB, ref docstore.DocRef) (*T, error) {
	snap, err := db.Get(ctx, ref)
	if err != nil {
		return nil, mapErr(err)
	}
	var v T
	if err := snap.DataTo(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

func list[T any](ctx context.Context, db *docstore.DB, q docstore.Query) ([]*T, error) {
	snaps, err := db.Query(ctx, q)
	if err != nil {
		return nil, mapErr(err)
	}
	return decodeAll[T](snaps)
}

func decodeAll[T any](snaps []*docstore.Snapshot) ([]*T, error) {
	out := make([]*T, 0, len(snaps))
	for _, snap := range snaps {
		var v T
		if err := snap.DataTo(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, nil
}

// replace overwrites an existing document with the value build returns.
// build receives the current document.
func (s *Store) replace(ctx context.Context, ref docstore.DocRef, build func(cur *docstore.Snapshot) (any, error)) error {
	err := s.db.RunTransaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		cur, err := tx.Get(ref)
		if err != nil {
			return err
		}
		next, err := build(cur)
		if err != nil {
			return err
		}
		return tx.Set(ref, next)
	})
	return mapErr(err)
}

// remove deletes an existing document.
func (s *Store) remove(ctx context.Context, ref docstore.DocRef) error {
	err := s.db.RunTransaction(ctx, func(ctx context.Context, tx *docstore.Tx) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Delete(ref)
	})
	return mapErr(err)
}
