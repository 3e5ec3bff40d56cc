// Package sqlite provides a SQLite-backed item store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/udisondev/athena/internal/db"
	"github.com/udisondev/athena/internal/db/migrations"
	"github.com/udisondev/athena/internal/model"
)

// Store persists the inventory in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite item store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrations.Up(ctx, sqlDB, "sqlite3", migrations.SQLiteDir); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// LoadInventory reads every item in insertion order.
func (s *Store) LoadInventory(ctx context.Context) (*model.Inventory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT category, name, slot, set_name, stats, effects FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	inv := model.NewInventory()
	for rows.Next() {
		var row db.ItemRow
		if err := rows.Scan(&row.Category, &row.Name, &row.Slot, &row.SetName, &row.Stats, &row.Effects); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item, err := row.Item()
		if err != nil {
			return nil, err
		}
		if err := inv.Add(item); err != nil {
			return nil, fmt.Errorf("add %s: %w", item, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	slog.Debug("loaded inventory from sqlite", "items", inv.Len())
	return inv, nil
}

// SaveItem inserts item or updates the row with the same category and name.
func (s *Store) SaveItem(ctx context.Context, item *model.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("%w: nil item", model.ErrInvalidInput)
	}
	row, err := db.EncodeItemRow(item)
	if err != nil {
		return err
	}

	now := time.Now().UTC().UnixMilli()
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO items (category, name, slot, set_name, stats, effects, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (category, name) DO UPDATE SET
		   slot = excluded.slot,
		   set_name = excluded.set_name,
		   stats = excluded.stats,
		   effects = excluded.effects,
		   updated_at = excluded.updated_at`,
		row.Category, row.Name, row.Slot, row.SetName, string(row.Stats), string(row.Effects), now, now,
	)
	if err != nil {
		return fmt.Errorf("save item %s: %w", item, err)
	}
	return nil
}

// DeleteItem removes an item; model.ErrItemNotFound if absent.
func (s *Store) DeleteItem(ctx context.Context, category model.Category, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM items WHERE category = ? AND name = ?`, category.String(), name)
	if err != nil {
		return fmt.Errorf("delete item %s:%s: %w", category, name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item %s:%s: %w", category, name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s:%s", model.ErrItemNotFound, category, name)
	}
	return nil
}
