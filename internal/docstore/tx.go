package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Tx is an optimistic read-modify-write transaction. Reads record the version
// they saw; writes are staged and applied together at commit only if every
// document read is still at that version.
type Tx struct {
	ctx    context.Context
	db     *DB
	reads  map[string]string
	writes map[string]Mutation
	order  []string
}

// RunTransaction runs fn inside a transaction and commits its staged writes.
// If fn returns an error nothing is written. If a document read by fn was
// changed before commit, RunTransaction returns ErrConflict. It never retries.
func (db *DB) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	tx := &Tx{
		ctx:    ctx,
		db:     db,
		reads:  make(map[string]string),
		writes: make(map[string]Mutation),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return db.commit(ctx, tx.preconditions(), tx.mutations())
}

// Get reads a document and records its version. Documents already written in
// this transaction are returned as staged.
func (tx *Tx) Get(ref DocRef) (*Snapshot, error) {
	if err := ref.Err(); err != nil {
		return nil, err
	}
	if m, ok := tx.writes[ref.path]; ok {
		if m.Delete {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, ref.path)
		}
		return &Snapshot{Ref: ref, Data: m.Data}, nil
	}

	rec, err := tx.db.backend.Get(tx.ctx, ref.path)
	version := ""
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, err
	default:
		version = rec.Version
	}

	if seen, ok := tx.reads[ref.path]; ok && seen != version {
		return nil, fmt.Errorf("%w: %s changed during transaction", ErrConflict, ref.path)
	}
	tx.reads[ref.path] = version

	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref.path)
	}
	return snapshotFromRecord(rec), nil
}

// Set stages a write. With Merge, the fields are merged into the current
// document, which is read as part of the transaction.
func (tx *Tx) Set(ref DocRef, data any, opts ...SetOption) error {
	if err := ref.Err(); err != nil {
		return err
	}
	raw, err := encode(data)
	if err != nil {
		return err
	}
	if newSetConfig(opts).merge {
		cur, err := tx.Get(ref)
		switch {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return err
		default:
			if raw, err = mergeJSON(cur.Data, raw); err != nil {
				return fmt.Errorf("merge %s: %w", ref.path, err)
			}
		}
	}
	tx.stage(Mutation{Path: ref.path, Data: raw})
	return nil
}

// Create stages a write of a document that must not exist at commit.
func (tx *Tx) Create(ref DocRef, data any) error {
	if err := ref.Err(); err != nil {
		return err
	}
	if _, err := tx.Get(ref); err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, ref.path)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	raw, err := encode(data)
	if err != nil {
		return err
	}
	tx.stage(Mutation{Path: ref.path, Data: raw})
	return nil
}

// Delete stages removal of a document.
func (tx *Tx) Delete(ref DocRef) error {
	if err := ref.Err(); err != nil {
		return err
	}
	tx.stage(Mutation{Path: ref.path, Delete: true})
	return nil
}

// Query runs q outside the optimistic read set. Use Get on the documents that
// must not change before commit.
func (tx *Tx) Query(q Query) ([]*Snapshot, error) {
	return tx.db.Query(tx.ctx, q)
}

func (tx *Tx) stage(m Mutation) {
	if _, ok := tx.writes[m.Path]; !ok {
		tx.order = append(tx.order, m.Path)
	}
	tx.writes[m.Path] = m
}

func (tx *Tx) preconditions() []Precondition {
	pre := make([]Precondition, 0, len(tx.reads))
	for p, v := range tx.reads {
		pre = append(pre, Precondition{Path: p, Version: v})
	}
	sort.Slice(pre, func(i, j int) bool { return pre[i].Path < pre[j].Path })
	return pre
}

func (tx *Tx) mutations() []Mutation {
	muts := make([]Mutation, 0, len(tx.order))
	for _, p := range tx.order {
		muts = append(muts, tx.writes[p])
	}
	return muts
}
