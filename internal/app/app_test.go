package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fintrack/internal/config"
	"github.com/mmynk/fintrack/internal/models"
)

func testConfig(t *testing.T, driver string) *config.Config {
	return &config.Config{
		App:   config.AppConfig{ID: "test"},
		Store: config.StoreConfig{Driver: driver, Path: filepath.Join(t.TempDir(), "fintrack.db")},
		Auth:  config.AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour},
	}
}

func TestOpenDrivers(t *testing.T) {
	for _, driver := range []string{config.DriverBolt, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			a, err := Open(ctx, testConfig(t, driver))
			require.NoError(t, err)
			defer a.Close()

			acct := &models.Account{Name: "Checking", OpeningBalance: decimal.NewFromInt(10)}
			require.NoError(t, a.Store.CreateAccount(ctx, "u1", acct))

			got, err := a.Store.GetAccount(ctx, "u1", acct.ID)
			require.NoError(t, err)
			assert.True(t, got.Balance.Equal(decimal.NewFromInt(10)))
			assert.Equal(t, time.Hour, a.JWT.TokenDuration())
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), testConfig(t, "mongo"))
	assert.ErrorContains(t, err, "unknown store driver")
}
