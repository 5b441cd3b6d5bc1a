// Package aztable provides a docstore.Backend on Azure Table Storage.
//
// Documents under a user scope (artifacts/{app}/users/{uid}/...) share one
// partition, so every commit the ledger makes for a user is a single entity
// group transaction. The app-level collections (identities, emails) share the
// artifacts/{app} partition, so a user and its email index commit together.
// Versions are entity ETags.
package aztable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"github.com/mmynk/fintrack/internal/azure"
	"github.com/mmynk/fintrack/internal/docstore"
)

// Ensure Backend implements docstore.Backend
var _ docstore.Backend = (*Backend)(nil)

// maxBatch is the Table service limit on actions per transaction.
const maxBatch = 100

// ErrCrossPartition is returned when one commit spans more than one partition.
var ErrCrossPartition = errors.New("commit spans more than one partition")

// Backend handles interactions with one Azure table.
type Backend struct {
	client *aztables.Client
}

// New connects to the table service at serviceURL and ensures tableName exists.
func New(ctx context.Context, serviceURL, tableName string) (*Backend, error) {
	if serviceURL == "" {
		return nil, fmt.Errorf("table service URL is required")
	}

	var service *aztables.ServiceClient
	if azure.IsLocal(serviceURL) {
		slog.Info("using Azurite credentials for table backend")
		name, key := azure.AzuriteCredentials()
		cred, err := aztables.NewSharedKeyCredential(name, key)
		if err != nil {
			return nil, fmt.Errorf("failed to create shared key credential: %w", err)
		}
		service, err = aztables.NewServiceClientWithSharedKey(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create table service client with shared key: %w", err)
		}
	} else {
		cred, err := azure.NewDefaultCredential()
		if err != nil {
			return nil, fmt.Errorf("failed to create default azure credential: %w", err)
		}
		service, err = aztables.NewServiceClient(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create table service client: %w", err)
		}
	}

	if _, err := service.CreateTable(ctx, tableName, nil); err != nil {
		var azErr *azcore.ResponseError
		if !errors.As(err, &azErr) || azErr.ErrorCode != "TableAlreadyExists" {
			return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
		}
	}

	slog.Info("table backend initialized", "table_url", serviceURL, "table", tableName)
	return &Backend{client: service.NewClient(tableName)}, nil
}

// Close is a no-op; the SDK client holds no resources.
func (b *Backend) Close() error {
	return nil
}

// Get retrieves one document.
func (b *Backend) Get(ctx context.Context, path string) (*docstore.Record, error) {
	pk, rk := docKeys(path)
	resp, err := b.client.GetEntity(ctx, pk, rk, nil)
	if err != nil {
		return nil, mapError(err, path)
	}
	rec, err := decodeEntity(resp.Value)
	if err != nil {
		return nil, err
	}
	rec.Version = string(resp.ETag)
	return rec, nil
}

// List retrieves the direct children of a collection.
func (b *Backend) List(ctx context.Context, collection string) ([]*docstore.Record, error) {
	pk, prefix := collectionKeys(collection)
	filter := fmt.Sprintf("PartitionKey eq '%s'", quote(pk))
	if prefix != "" {
		filter += fmt.Sprintf(" and RowKey ge '%s' and RowKey lt '%s'", quote(prefix), quote(upperBound(prefix)))
	}
	pager := b.client.NewListEntitiesPager(&aztables.ListEntitiesOptions{
		Filter: &filter,
	})

	var recs []*docstore.Record
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list entities: %w", err)
		}
		for _, entity := range resp.Entities {
			rec, err := decodeEntity(entity)
			if err != nil {
				return nil, err
			}
			// Skip documents in subcollections.
			if strings.Contains(strings.TrimPrefix(rec.Path, collection+"/"), "/") {
				continue
			}
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

// Commit submits all mutations as one entity group transaction. Written
// documents carry their read ETag as If-Match. Documents that were read but
// not written are re-checked before the batch is submitted; that check is
// not atomic with the batch.
func (b *Backend) Commit(ctx context.Context, pre []docstore.Precondition, muts []docstore.Mutation) error {
	want := make(map[string]string, len(pre))
	for _, p := range pre {
		want[p.Path] = p.Version
	}

	written := make(map[string]bool, len(muts))
	for _, m := range muts {
		written[m.Path] = true
	}
	for _, p := range pre {
		if written[p.Path] {
			continue
		}
		if err := b.checkVersion(ctx, p); err != nil {
			return err
		}
	}

	var (
		partition string
		actions   []aztables.TransactionAction
	)
	for _, m := range muts {
		pk, rk := docKeys(m.Path)
		if partition == "" {
			partition = pk
		} else if partition != pk {
			return fmt.Errorf("%w: %s and %s", ErrCrossPartition, partition, pk)
		}

		version, conditioned := want[m.Path]
		action, skip, err := b.actionFor(ctx, m, pk, rk, version, conditioned)
		if err != nil {
			return err
		}
		if !skip {
			actions = append(actions, action)
		}
	}

	if len(actions) == 0 {
		return nil
	}
	if len(actions) > maxBatch {
		return fmt.Errorf("commit has %d actions, limit is %d", len(actions), maxBatch)
	}

	if _, err := b.client.SubmitTransaction(ctx, actions, nil); err != nil {
		return b.batchError(ctx, err, partition, pre)
	}
	return nil
}

// batchError classifies a failed entity group transaction. A failed action
// inside the changeset is reported with the batch's own 202 status and no
// error code, so the preconditions are read again to tell a lost race from
// any other failure.
func (b *Backend) batchError(ctx context.Context, err error, partition string, pre []docstore.Precondition) error {
	var azErr *azcore.ResponseError
	if !errors.As(err, &azErr) {
		return err
	}
	switch azErr.ErrorCode {
	case "UpdateConditionNotSatisfied", "EntityAlreadyExists", "ResourceNotFound":
		return fmt.Errorf("%w: %s: %w", docstore.ErrConflict, partition, err)
	}
	switch azErr.StatusCode {
	case http.StatusNotFound, http.StatusConflict, http.StatusPreconditionFailed:
		// A conditioned entity that vanished is a lost race, not a missing document.
		return fmt.Errorf("%w: %s: %w", docstore.ErrConflict, partition, err)
	}
	for _, p := range pre {
		if cerr := b.checkVersion(ctx, p); errors.Is(cerr, docstore.ErrConflict) {
			return cerr
		}
	}
	return err
}

func (b *Backend) actionFor(ctx context.Context, m docstore.Mutation, pk, rk, version string, conditioned bool) (aztables.TransactionAction, bool, error) {
	if m.Delete {
		key, err := json.Marshal(map[string]any{"PartitionKey": pk, "RowKey": rk})
		if err != nil {
			return aztables.TransactionAction{}, false, err
		}
		if conditioned {
			if version == "" {
				// Read as absent, nothing to delete.
				return aztables.TransactionAction{}, true, nil
			}
			etag := azcore.ETag(version)
			return aztables.TransactionAction{ActionType: aztables.TransactionTypeDelete, Entity: key, IfMatch: &etag}, false, nil
		}
		// Unconditional deletes of missing entities would fail the batch.
		if _, err := b.client.GetEntity(ctx, pk, rk, nil); err != nil {
			if errors.Is(mapError(err, m.Path), docstore.ErrNotFound) {
				return aztables.TransactionAction{}, true, nil
			}
			return aztables.TransactionAction{}, false, err
		}
		etag := azcore.ETagAny
		return aztables.TransactionAction{ActionType: aztables.TransactionTypeDelete, Entity: key, IfMatch: &etag}, false, nil
	}

	entity, err := encodeEntity(pk, rk, m)
	if err != nil {
		return aztables.TransactionAction{}, false, err
	}
	switch {
	case conditioned && version == "":
		return aztables.TransactionAction{ActionType: aztables.TransactionTypeAdd, Entity: entity}, false, nil
	case conditioned:
		etag := azcore.ETag(version)
		return aztables.TransactionAction{ActionType: aztables.TransactionTypeUpdateReplace, Entity: entity, IfMatch: &etag}, false, nil
	default:
		return aztables.TransactionAction{ActionType: aztables.TransactionTypeInsertReplace, Entity: entity}, false, nil
	}
}

func (b *Backend) checkVersion(ctx context.Context, p docstore.Precondition) error {
	rec, err := b.Get(ctx, p.Path)
	current := ""
	switch {
	case errors.Is(err, docstore.ErrNotFound):
	case err != nil:
		return err
	default:
		current = rec.Version
	}
	if current != p.Version {
		return fmt.Errorf("%w: %s", docstore.ErrConflict, p.Path)
	}
	return nil
}

// docKeys splits a document path into partition and row keys.
func docKeys(path string) (pk, rk string) {
	segs := strings.Split(path, "/")
	n := partitionDepth(segs)
	return strings.Join(segs[:n], "|"), strings.Join(segs[n:], "|")
}

// collectionKeys returns the partition key and row key prefix of a collection.
// The prefix is empty when the collection is a partition of its own.
func collectionKeys(collection string) (pk, prefix string) {
	segs := strings.Split(collection, "/")
	// Keys are decided by the depth of the documents, one below the collection.
	n := partitionDepth(append(segs, ""))
	pk = strings.Join(segs[:n], "|")
	if n < len(segs) {
		prefix = strings.Join(segs[n:], "|") + "|"
	}
	return pk, prefix
}

// partitionDepth returns how many leading segments of a document path form
// its partition key:
//
//	artifacts/{app}/users/{uid}/...  -> artifacts|{app}|users|{uid}
//	artifacts/{app}/{collection}/... -> artifacts|{app}
//	anything else                    -> the parent collection
func partitionDepth(segs []string) int {
	switch {
	case len(segs) > 4 && segs[0] == "artifacts" && segs[2] == "users":
		return 4
	case len(segs) > 3 && segs[0] == "artifacts":
		return 2
	}
	return len(segs) - 1
}

// upperBound returns the smallest string greater than every string with prefix p.
// Prefixes end in '|', which is followed by '}' in ASCII.
func upperBound(p string) string {
	return p[:len(p)-1] + "}"
}

func quote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func encodeEntity(pk, rk string, m docstore.Mutation) ([]byte, error) {
	return json.Marshal(map[string]any{
		"PartitionKey": pk,
		"RowKey":       rk,
		"Path":         m.Path,
		"Data":         string(m.Data),
	})
}

func decodeEntity(raw []byte) (*docstore.Record, error) {
	var e struct {
		Path      string    `json:"Path"`
		Data      string    `json:"Data"`
		Timestamp time.Time `json:"Timestamp"`
		ETag      string    `json:"odata.etag"`
	}
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("failed to decode entity: %w", err)
	}
	return &docstore.Record{
		Path:       e.Path,
		Data:       []byte(e.Data),
		Version:    e.ETag,
		UpdateTime: e.Timestamp,
	}, nil
}

func mapError(err error, path string) error {
	var azErr *azcore.ResponseError
	if errors.As(err, &azErr) {
		switch azErr.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", docstore.ErrNotFound, path)
		case http.StatusPreconditionFailed, http.StatusConflict:
			return fmt.Errorf("%w: %s", docstore.ErrConflict, path)
		}
	}
	return err
}
