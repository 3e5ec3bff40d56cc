// Package store selects the inventory backend configured for a command.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/athena/internal/config"
	"github.com/udisondev/athena/internal/data"
	"github.com/udisondev/athena/internal/db"
	"github.com/udisondev/athena/internal/db/sqlite"
	"github.com/udisondev/athena/internal/model"
)

// ItemStore loads and persists inventory items.
// Items are keyed by (category, name); LoadInventory returns them in insertion order.
type ItemStore interface {
	LoadInventory(ctx context.Context) (*model.Inventory, error)
	SaveItem(ctx context.Context, item *model.Item) error
	DeleteItem(ctx context.Context, category model.Category, name string) error
	Close() error
}

var (
	_ ItemStore = (*Memory)(nil)
	_ ItemStore = (*data.FileStore)(nil)
	_ ItemStore = (*sqlite.Store)(nil)
	_ ItemStore = (*db.ItemStore)(nil)
)

// Open returns the store named by cfg.Source.
func Open(ctx context.Context, cfg config.InventoryConfig, dbCfg config.DatabaseConfig) (ItemStore, error) {
	slog.Info("opening inventory store", "source", cfg.Source, "path", cfg.Path)

	switch cfg.Source {
	case config.SourceBuiltin:
		inv, err := data.LoadSampleInventory()
		if err != nil {
			return nil, err
		}
		return NewMemory(inv), nil
	case config.SourceFile:
		return data.NewFileStore(cfg.Path), nil
	case config.SourceSQLite:
		s, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store %s: %w", cfg.Path, err)
		}
		return s, nil
	case config.SourcePostgres:
		s, err := db.OpenItemStore(ctx, dbCfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown inventory source %q", cfg.Source)
	}
}
