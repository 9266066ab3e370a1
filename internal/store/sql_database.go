package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
)

// DB is a database handle shared by the repositories of one database.
// It carries the schema migration matching its driver.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	migrate            func(*sql.DB) error
}

// Migrate applies the embedded schema migrations of this database.
func (db *DB) Migrate() error {
	if db.migrate == nil {
		return errors.New("no migrations configured for database")
	}
	return db.migrate(db.DB)
}

// wrapError marks retryable driver errors with [ErrStoreUnavailable].
func (db *DB) wrapError(err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return fmt.Errorf("unexpected DB error: %w", err)
}
