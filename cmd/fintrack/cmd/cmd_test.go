package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/fintrack/internal/app"
	"github.com/mmynk/fintrack/internal/config"
	"github.com/mmynk/fintrack/internal/export"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/models"
)

type fixture struct {
	cfgPath   string
	dir       string
	userID    string
	accountID string
}

// newFixture writes a config for a temp bolt store and seeds one user with an
// account and a posted expense. The store is closed before returning so
// commands can open it.
func newFixture(t *testing.T) fixture {
	t.Helper()
	t.Chdir(t.TempDir())

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf(`app:
  id: clitest
store:
  driver: bolt
  path: %s
auth:
  jwt_secret: secret
backup:
  dir: %s
`, filepath.Join(dir, "fintrack.db"), filepath.Join(dir, "backups"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o600))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	ctx := context.Background()
	a, err := app.Open(ctx, cfg)
	require.NoError(t, err)
	defer a.Close()

	user := models.NewUser("ada@example.com", "Ada", "hash")
	require.NoError(t, a.Store.CreateUser(ctx, user))

	acct := &models.Account{Name: "Checking", OpeningBalance: decimal.NewFromInt(100)}
	require.NoError(t, a.Store.CreateAccount(ctx, user.ID, acct))

	draft, err := ledger.ParseDraft(ledger.DraftInput{
		Date:        "2026-01-02",
		Description: "Groceries",
		Amount:      "30",
		Category:    "Food",
		Type:        "expense",
		AccountID:   acct.ID,
	})
	require.NoError(t, err)
	_, err = a.Poster.Post(ctx, user.ID, draft, nil)
	require.NoError(t, err)

	return fixture{cfgPath: cfgPath, dir: dir, userID: user.ID, accountID: acct.ID}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGrantAdmin(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "grant-admin", "--config", f.cfgPath, "--user", "ada@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com is now admin")

	out, err = run(t, "grant-admin", "--config", f.cfgPath, "--user", f.userID, "--revoke")
	require.NoError(t, err)
	assert.Contains(t, out, "is now user")
}

func TestGrantAdminUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, "grant-admin", "--config", f.cfgPath, "--user", "nobody@example.com")
	assert.Error(t, err)

	_, err = run(t, "grant-admin", "--config", f.cfgPath)
	assert.ErrorContains(t, err, "--user is required")
}

func TestReconcile(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "reconcile", "--config", f.cfgPath, "--user", "ada@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, f.accountID)
	assert.Contains(t, out, "stored=70.00 computed=70.00 drift=0.00 transactions=1")
}

func TestExportYAML(t *testing.T) {
	f := newFixture(t)
	outPath := filepath.Join(f.dir, "ledger.yaml")

	_, err := run(t, "export", "--config", f.cfgPath, "--user", f.userID, "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var l export.Ledger
	require.NoError(t, yaml.Unmarshal(data, &l))
	require.Len(t, l.Accounts, 1)
	assert.Equal(t, "70.00", l.Accounts[0].Balance)
	require.Len(t, l.Transactions, 1)
	assert.Equal(t, "Groceries", l.Transactions[0].Description)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, "export", "--config", f.cfgPath, "--user", f.userID, "--format", "csv")
	assert.Error(t, err)
}

func TestBackupToDir(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "backup", "--config", f.cfgPath, "--user", f.userID, "--format", "xlsx")
	require.NoError(t, err)

	name := strings.TrimSpace(out)
	assert.True(t, strings.HasSuffix(name, ".xlsx"), name)
	_, err = os.Stat(filepath.Join(f.dir, "backups", name))
	assert.NoError(t, err)
}
