package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fintrack/internal/auth"
	"github.com/mmynk/fintrack/internal/docstore"
	"github.com/mmynk/fintrack/internal/docstore/boltdb"
	"github.com/mmynk/fintrack/internal/layout"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/internal/storage/document"
	"github.com/mmynk/fintrack/pkg/api"
	"github.com/mmynk/fintrack/pkg/api/apiconnect"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	backend, err := boltdb.Open(filepath.Join(dir, "fintrack.db"))
	require.NoError(t, err)
	db := docstore.New(backend)
	l := layout.New("test")
	store := document.New(db, l)
	t.Cleanup(func() { store.Close() })

	static := filepath.Join(dir, "static")
	require.NoError(t, os.MkdirAll(static, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>fintrack</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(static, "app.js"), []byte("console.log(1)"), 0o644))

	h, err := NewHandler(Deps{
		Store:      store,
		Poster:     ledger.NewPoster(ledger.FromDB(db), l),
		JWT:        auth.NewJWTManager("test-secret", time.Hour),
		Policy:     storage.PolicyCascade,
		StaticPath: static,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHealthz(t *testing.T) {
	srv := setupServer(t)
	code, body := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)
}

func TestStaticFiles(t *testing.T) {
	srv := setupServer(t)

	code, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "fintrack")

	_, body = get(t, srv.URL+"/app.js")
	assert.Equal(t, "console.log(1)", body)

	// Unknown pages fall back to the index.
	_, body = get(t, srv.URL+"/accounts/123")
	assert.Contains(t, body, "fintrack")

	code, _ = get(t, srv.URL+"/fintrack.v1.Nope/Method")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRPCThroughRouter(t *testing.T) {
	srv := setupServer(t)
	ctx := context.Background()

	authClient := apiconnect.NewAuthServiceClient(srv.Client(), srv.URL)
	reg, err := authClient.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:    "ada@example.com",
		Password: "password123",
	}))
	require.NoError(t, err)

	accounts := apiconnect.NewAccountServiceClient(srv.Client(), srv.URL)

	_, err = accounts.ListAccounts(ctx, connect.NewRequest(&api.ListAccountsRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	req := connect.NewRequest(&api.CreateAccountRequest{Name: "Checking", OpeningBalance: "12.5"})
	req.Header().Set("Authorization", "Bearer "+reg.Msg.Token)
	created, err := accounts.CreateAccount(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "12.50", created.Msg.Account.Balance)

	code, body := get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "fintrack_rpc_requests_total")
	assert.True(t, strings.Contains(body, "CreateAccount"), "expected CreateAccount procedure label")
}

func TestCORSPreflight(t *testing.T) {
	srv := setupServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+apiconnect.AccountServiceListAccountsProcedure, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")
}
