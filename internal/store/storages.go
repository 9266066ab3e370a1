package store

import (
	"context"
	"fmt"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/config"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
)

// Storages groups the backend repositories sharing one Postgres handle.
type Storages struct {
	EntityRepository EntityRepository
	TenantRepository TenantRepository

	db *DB
}

// NewStorages connects to Postgres, applies the server migrations and builds
// the repositories.
func NewStorages(ctx context.Context, cfg config.DB, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newStoragesFromDB(db, logger), nil
}

func newStoragesFromDB(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		EntityRepository: NewEntityRepository(db, logger),
		TenantRepository: NewTenantRepository(db, logger),
		db:               db,
	}
}

// Close releases the database handle.
func (s *Storages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks that the database answers.
func (s *Storages) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return ErrStoreUnavailable
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}
