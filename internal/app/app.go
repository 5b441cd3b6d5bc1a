// Package app builds the object graph shared by every fintrack command.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/fintrack/internal/auth"
	"github.com/mmynk/fintrack/internal/config"
	"github.com/mmynk/fintrack/internal/docstore"
	"github.com/mmynk/fintrack/internal/docstore/aztable"
	"github.com/mmynk/fintrack/internal/docstore/boltdb"
	"github.com/mmynk/fintrack/internal/docstore/sqlite"
	"github.com/mmynk/fintrack/internal/layout"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/storage/document"
)

// App holds the opened store and the services built on it.
type App struct {
	Config *config.Config
	Layout layout.Layout
	Store  *document.Store
	Poster *ledger.Poster
	JWT    *auth.JWTManager
}

// Open connects to the configured store backend.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	backend, err := OpenBackend(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	slog.Info("Storage initialized", "driver", cfg.Store.Driver, "app_id", cfg.App.ID)

	db := docstore.New(backend)
	l := layout.New(cfg.App.ID)
	return &App{
		Config: cfg,
		Layout: l,
		Store:  document.New(db, l),
		Poster: ledger.NewPoster(ledger.FromDB(db), l),
		JWT:    auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// OpenBackend opens the document backend named by cfg.Driver.
func OpenBackend(ctx context.Context, cfg config.StoreConfig) (docstore.Backend, error) {
	switch cfg.Driver {
	case config.DriverBolt:
		b, err := boltdb.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open bolt store: %w", err)
		}
		return b, nil
	case config.DriverSQLite:
		b, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return b, nil
	case config.DriverAzTable:
		b, err := aztable.New(ctx, cfg.TableURL, cfg.TableName)
		if err != nil {
			return nil, fmt.Errorf("failed to open table store: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
