package backup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fintrack/internal/docstore"
	"github.com/mmynk/fintrack/internal/docstore/boltdb"
	"github.com/mmynk/fintrack/internal/export"
	"github.com/mmynk/fintrack/internal/layout"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage/document"
)

func TestDirUpload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "backups")
	d := Dir{Path: dir}

	require.NoError(t, d.Upload(context.Background(), "one.yaml", strings.NewReader("hello")))

	data, err := os.ReadFile(filepath.Join(dir, "one.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestDirUploadRejectsPathEscape(t *testing.T) {
	root := t.TempDir()
	d := Dir{Path: filepath.Join(root, "backups")}

	require.NoError(t, d.Upload(context.Background(), "../escape.yaml", strings.NewReader("x")))

	_, err := os.Stat(filepath.Join(root, "escape.yaml"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "backups", "escape.yaml"))
	assert.NoError(t, err)
}

func TestName(t *testing.T) {
	at := time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, "fintrack-u1-20240302T083000Z.xlsx", Name("u1", at, export.FormatXLSX))
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	backend, err := boltdb.Open(filepath.Join(t.TempDir(), "fintrack.db"))
	require.NoError(t, err)
	store := document.New(docstore.New(backend), layout.New("test"))
	defer store.Close()

	require.NoError(t, store.CreateAccount(ctx, "u1", &models.Account{Name: "Checking", OpeningBalance: decimal.NewFromInt(42)}))

	dir := t.TempDir()
	at := time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC)
	name, err := Run(ctx, store, Dir{Path: dir}, "u1", export.FormatYAML, at)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Checking")
	assert.Contains(t, string(data), "42.00")
}
