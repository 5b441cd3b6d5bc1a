// Package docstore provides a hierarchical collection/document database with
// optimistic atomic transactions and live query subscriptions.
//
// Documents are addressed by slash-separated paths that alternate collection
// and document segments, e.g. "artifacts/app/users/u1/accounts/a1". Document
// data is JSON. Persistence is delegated to a Backend; DB adds transactions,
// merge writes, queries and watches on top of it.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrConflict is returned when a transaction cannot commit because a
	// document it read was changed by a concurrent writer.
	ErrConflict = errors.New("transaction conflict")

	// ErrAlreadyExists is returned by Create when the document exists.
	ErrAlreadyExists = errors.New("document already exists")

	// ErrInvalidPath is returned for malformed paths or IDs.
	ErrInvalidPath = errors.New("invalid document path")
)

// Record is a stored document as seen by a Backend.
type Record struct {
	Path       string
	Data       []byte
	Version    string
	UpdateTime time.Time
}

// Precondition requires the document at Path to be at Version when a commit
// applies. An empty Version requires the document to be absent.
type Precondition struct {
	Path    string
	Version string
}

// Mutation is a single staged write.
type Mutation struct {
	Path   string
	Data   []byte
	Delete bool
}

// Backend is the persistence layer under a DB.
type Backend interface {
	// Get returns the record at path or ErrNotFound.
	Get(ctx context.Context, path string) (*Record, error)

	// List returns the direct child documents of a collection.
	List(ctx context.Context, collection string) ([]*Record, error)

	// Commit checks every precondition and applies every mutation as one
	// atomic unit. It returns ErrConflict if any precondition fails.
	Commit(ctx context.Context, pre []Precondition, muts []Mutation) error

	// Close releases any resources held by the backend.
	Close() error
}

// Snapshot is a read view of one document.
type Snapshot struct {
	Ref        DocRef
	Data       json.RawMessage
	Version    string
	UpdateTime time.Time
}

// ID returns the document ID.
func (s *Snapshot) ID() string {
	return s.Ref.ID()
}

// DataTo decodes the document into v.
func (s *Snapshot) DataTo(v any) error {
	if err := json.Unmarshal(s.Data, v); err != nil {
		return fmt.Errorf("decode %s: %w", s.Ref.Path(), err)
	}
	return nil
}

func snapshotFromRecord(r *Record) *Snapshot {
	return &Snapshot{
		Ref:        DocRef{path: r.Path},
		Data:       json.RawMessage(r.Data),
		Version:    r.Version,
		UpdateTime: r.UpdateTime,
	}
}

// DB is a document database over a Backend.
type DB struct {
	backend Backend
	hub     *hub
}

// New creates a DB backed by b.
func New(b Backend) *DB {
	return &DB{
		backend: b,
		hub:     newHub(),
	}
}

// Close stops all watches and closes the backend.
func (db *DB) Close() error {
	db.hub.close()
	return db.backend.Close()
}

// Get reads one document.
func (db *DB) Get(ctx context.Context, ref DocRef) (*Snapshot, error) {
	if err := ref.Err(); err != nil {
		return nil, err
	}
	rec, err := db.backend.Get(ctx, ref.path)
	if err != nil {
		return nil, err
	}
	return snapshotFromRecord(rec), nil
}

// Set writes data to the document, replacing it unless Merge is given.
func (db *DB) Set(ctx context.Context, ref DocRef, data any, opts ...SetOption) error {
	if err := ref.Err(); err != nil {
		return err
	}
	if newSetConfig(opts).merge {
		return db.RunTransaction(ctx, func(ctx context.Context, tx *Tx) error {
			return tx.Set(ref, data, opts...)
		})
	}
	raw, err := encode(data)
	if err != nil {
		return err
	}
	return db.commit(ctx, nil, []Mutation{{Path: ref.path, Data: raw}})
}

// Create writes data to a document that must not exist yet.
func (db *DB) Create(ctx context.Context, ref DocRef, data any) error {
	if err := ref.Err(); err != nil {
		return err
	}
	raw, err := encode(data)
	if err != nil {
		return err
	}
	err = db.commit(ctx,
		[]Precondition{{Path: ref.path}},
		[]Mutation{{Path: ref.path, Data: raw}},
	)
	if errors.Is(err, ErrConflict) {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, ref.path)
	}
	return err
}

// Delete removes a document. Deleting a missing document is not an error.
func (db *DB) Delete(ctx context.Context, ref DocRef) error {
	if err := ref.Err(); err != nil {
		return err
	}
	return db.commit(ctx, nil, []Mutation{{Path: ref.path, Delete: true}})
}

// Query returns the documents of a collection matching q.
func (db *DB) Query(ctx context.Context, q Query) ([]*Snapshot, error) {
	if err := q.Collection.Err(); err != nil {
		return nil, err
	}
	recs, err := db.backend.List(ctx, q.Collection.path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", q.Collection.path, err)
	}
	return q.apply(recs)
}

func (db *DB) commit(ctx context.Context, pre []Precondition, muts []Mutation) error {
	if err := db.backend.Commit(ctx, pre, muts); err != nil {
		return err
	}
	if len(muts) > 0 {
		changed := make([]string, 0, len(muts))
		for _, m := range muts {
			changed = append(changed, path.Dir(m.Path))
		}
		db.hub.notify(changed)
	}
	return nil
}

func encode(data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return raw, nil
}

// SetOption configures Set.
type SetOption func(*setConfig)

type setConfig struct {
	merge bool
}

// Merge makes Set merge the given fields into the existing document instead
// of replacing it. Nested objects are merged recursively.
func Merge() SetOption {
	return func(c *setConfig) { c.merge = true }
}

func newSetConfig(opts []SetOption) setConfig {
	var c setConfig
	for _, o := range opts {
		o(&c)
	}
	return c
}
