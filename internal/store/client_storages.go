package store

import (
	"context"
	"fmt"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/config"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
)

// ClientStorages owns the client's database handle. It is opened once at
// startup and closed on shutdown.
type ClientStorages struct {
	// LocalStore is the SQLite-backed queue, cache and sync metadata store.
	LocalStore LocalStore

	db *DB
}

// NewClientStorages opens the SQLite database at cfg.DB.DSN, creating it if
// needed, applies the embedded migrations and builds the [LocalStore].
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		LocalStore: NewLocalStore(db, logger),
		db:         db,
	}, nil
}

// Close releases the database handle.
func (s *ClientStorages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
