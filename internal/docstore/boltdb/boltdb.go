// Package boltdb provides a bbolt-backed docstore.Backend.
package boltdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmynk/fintrack/internal/docstore"
)

// Ensure Backend implements docstore.Backend
var _ docstore.Backend = (*Backend)(nil)

const bucketDocuments = "documents"

// envelope is the stored value for one document.
type envelope struct {
	Version    int64           `json:"v"`
	UpdateTime time.Time       `json:"t"`
	Data       json.RawMessage `json:"d"`
}

// Backend stores every document in one bucket keyed by its full path, so the
// direct children of a collection are a contiguous key range. Versions come
// from the bucket sequence and are never reused, even for a path that was
// deleted and written again.
type Backend struct {
	db *bolt.DB
}

// Open opens or creates the database file at dbPath.
func Open(dbPath string) (*Backend, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(bucketDocuments))
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketDocuments, err)
		}
		return seedSequence(bucket)
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Backend{db: db}, nil
}

// Close closes the database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// Get retrieves one document.
func (b *Backend) Get(_ context.Context, path string) (*docstore.Record, error) {
	var rec *docstore.Record
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucketDocuments)).Get([]byte(path))
		if data == nil {
			return fmt.Errorf("%w: %s", docstore.ErrNotFound, path)
		}
		var err error
		rec, err = decode(path, data)
		return err
	})
	return rec, err
}

// List retrieves the direct children of a collection in key order.
func (b *Backend) List(_ context.Context, collection string) ([]*docstore.Record, error) {
	prefix := []byte(collection + "/")
	var recs []*docstore.Record

	err := b.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketDocuments)).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			// Skip documents in subcollections.
			if bytes.IndexByte(k[len(prefix):], '/') >= 0 {
				continue
			}
			rec, err := decode(string(k), v)
			if err != nil {
				return err
			}
			recs = append(recs, rec)
		}
		return nil
	})
	return recs, err
}

// Commit applies mutations in one bbolt write transaction. bbolt allows a
// single writer at a time, so the precondition check and the writes cannot
// interleave with another commit.
func (b *Backend) Commit(_ context.Context, pre []docstore.Precondition, muts []docstore.Mutation) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketDocuments))

		for _, p := range pre {
			current, err := version(bucket, p.Path)
			if err != nil {
				return err
			}
			if current != p.Version {
				return fmt.Errorf("%w: %s", docstore.ErrConflict, p.Path)
			}
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate version: %w", err)
		}
		now := time.Now().UTC()
		for _, m := range muts {
			if m.Delete {
				if err := bucket.Delete([]byte(m.Path)); err != nil {
					return fmt.Errorf("failed to delete %s: %w", m.Path, err)
				}
				continue
			}

			value, err := json.Marshal(envelope{Version: int64(seq), UpdateTime: now, Data: m.Data})
			if err != nil {
				return fmt.Errorf("failed to marshal %s: %w", m.Path, err)
			}
			if err := bucket.Put([]byte(m.Path), value); err != nil {
				return fmt.Errorf("failed to put %s: %w", m.Path, err)
			}
		}
		return nil
	})
}

// seedSequence moves the bucket sequence past every stored version. Files
// written before versions came from the sequence start at zero.
func seedSequence(bucket *bolt.Bucket) error {
	if bucket.Sequence() != 0 {
		return nil
	}
	var highest uint64
	err := bucket.ForEach(func(k, v []byte) error {
		var env envelope
		if err := json.Unmarshal(v, &env); err != nil {
			return fmt.Errorf("failed to decode %s: %w", k, err)
		}
		if uint64(env.Version) > highest {
			highest = uint64(env.Version)
		}
		return nil
	})
	if err != nil || highest == 0 {
		return err
	}
	return bucket.SetSequence(highest)
}

func version(bucket *bolt.Bucket, path string) (string, error) {
	data := bucket.Get([]byte(path))
	if data == nil {
		return "", nil
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return strconv.FormatInt(env.Version, 10), nil
}

// decode copies a stored value out of the bbolt page it lives in.
func decode(path string, data []byte) (*docstore.Record, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &docstore.Record{
		Path:       path,
		Data:       env.Data,
		Version:    strconv.FormatInt(env.Version, 10),
		UpdateTime: env.UpdateTime,
	}, nil
}
