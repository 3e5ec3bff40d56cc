// Package migrations embeds goose migrations for the PostgreSQL and SQLite item stores.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

// FS holds one directory of migrations per dialect.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Migration directories inside FS.
const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)

// goose keeps base FS and dialect in package globals.
var gooseMu sync.Mutex

// Up applies every pending migration from dir using the goose dialect.
func Up(ctx context.Context, db *sql.DB, dialect, dir string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
