// Package repositories opens the device-local SQLite database and applies
// its migrations.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/goalbingo/internal/client/migrations"
	"github.com/dmitrijs2005/goalbingo/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/goalbingo/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Repositories groups the device repositories over one connection pool.
type Repositories struct {
	DB       *sql.DB
	Metadata metadata.Repository
}

var gooseUpContext = goose.UpContext

// RunMigrations applies the embedded SQLite migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func inMemory(dsn string) bool {
	return strings.HasPrefix(dsn, ":memory:") || strings.HasPrefix(dsn, "file:")
}

// OpenDatabase opens the SQLite database at dsn and migrates it. The
// directory of a file path is created when missing.
func OpenDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	if !inMemory(dsn) {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("prepare database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer keeps SQLite from reporting SQLITE_BUSY under the debounced saver
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{DB: db, Metadata: metadata.NewSQLiteRepository(db)}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
