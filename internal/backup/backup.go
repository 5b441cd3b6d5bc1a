// Package backup stores ledger exports in a local directory or an Azure
// Blob container.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/mmynk/fintrack/internal/azure"
	"github.com/mmynk/fintrack/internal/export"
)

// Uploader stores a named backup object.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) error
}

// Dir writes backups as files under Path.
type Dir struct {
	Path string
}

var _ Uploader = Dir{}

// Upload writes r to Path/name. The file appears only once fully written.
func (d Dir) Upload(ctx context.Context, name string, r io.Reader) error {
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	tmp, err := os.CreateTemp(d.Path, ".backup-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close backup: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dst := filepath.Join(d.Path, filepath.Base(name))
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("failed to move backup into place: %w", err)
	}
	slog.Info("Backup written", "path", dst)
	return nil
}

// Blob uploads backups to one Azure Blob container.
type Blob struct {
	client    *azblob.Client
	container string
}

var _ Uploader = (*Blob)(nil)

// NewBlob connects to the blob service at serviceURL.
func NewBlob(serviceURL, container string) (*Blob, error) {
	if serviceURL == "" {
		return nil, fmt.Errorf("blob service URL is required")
	}

	var client *azblob.Client
	if azure.IsLocal(serviceURL) {
		slog.Info("using Azurite shared key credentials for blob service")
		name, key := azure.AzuriteCredentials()
		cred, err := azblob.NewSharedKeyCredential(name, key)
		if err != nil {
			return nil, fmt.Errorf("failed to create shared key credential: %w", err)
		}
		client, err = azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob client with shared key: %w", err)
		}
	} else {
		cred, err := azure.NewDefaultCredential()
		if err != nil {
			return nil, fmt.Errorf("failed to create default azure credential: %w", err)
		}
		client, err = azblob.NewClient(serviceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob client: %w", err)
		}
	}

	return &Blob{client: client, container: container}, nil
}

// Upload creates the container if needed and uploads r as blob name.
func (b *Blob) Upload(ctx context.Context, name string, r io.Reader) error {
	if _, err := b.client.CreateContainer(ctx, b.container, nil); err != nil {
		var azErr *azcore.ResponseError
		if !errors.As(err, &azErr) || azErr.ErrorCode != "ContainerAlreadyExists" {
			slog.Warn("failed to create container", "container", b.container, "error", err)
		}
	}

	if _, err := b.client.UploadStream(ctx, b.container, name, r, nil); err != nil {
		return fmt.Errorf("failed to upload blob %s/%s: %w", b.container, name, err)
	}
	slog.Info("Backup uploaded", "container", b.container, "blob_name", name)
	return nil
}

// Name returns the object name of a backup of userID taken at t.
func Name(userID string, t time.Time, format export.Format) string {
	return fmt.Sprintf("fintrack-%s-%s.%s", userID, t.UTC().Format("20060102T150405Z"), format)
}

// Run exports userID's ledger and hands it to up. It returns the object name.
func Run(ctx context.Context, src export.Source, up Uploader, userID string, format export.Format, now time.Time) (string, error) {
	l, err := export.Collect(ctx, src, userID, now)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, l, format); err != nil {
		return "", err
	}

	name := Name(userID, now, format)
	if err := up.Upload(ctx, name, &buf); err != nil {
		return "", err
	}
	return name, nil
}
