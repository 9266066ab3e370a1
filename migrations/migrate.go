// Package migrations embeds the goose schema migrations of both databases:
// the client's SQLite offline store (client/) and the backend's Postgres
// tenant store (server/).
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed client/*.sql server/*.sql
var embedMigrations embed.FS

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// MigrateClient applies the SQLite offline store schema.
func MigrateClient(db *sql.DB) error {
	return migrate(db, goose.DialectSQLite3, "client")
}

// MigrateServer applies the Postgres tenant store schema.
func MigrateServer(db *sql.DB) error {
	return migrate(db, goose.DialectPostgres, "server")
}

func migrate(db *sql.DB, dialect goose.Dialect, dir string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
