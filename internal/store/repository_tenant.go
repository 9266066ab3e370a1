package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

// tenantRepository is the PostgreSQL-backed implementation of
// [TenantRepository].
type tenantRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTenantRepository constructs a [TenantRepository] on db.
func NewTenantRepository(db *DB, logger *logger.Logger) TenantRepository {
	logger.Debug().Msg("creating tenant repository")
	return &tenantRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTenant persists a tenant and returns it with CreatedAt set.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrTenantAlreadyExists].
//   - Retryable driver errors → [ErrStoreUnavailable].
func (r *tenantRepository) CreateTenant(ctx context.Context, tenant models.Tenant) (models.Tenant, error) {
	log := logger.FromContextOr(ctx, r.logger)

	query, args, err := insertTenant(tenant.TenantID, tenant.Name, tenant.APIKeyHash)
	if err != nil {
		return models.Tenant{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&tenant.CreatedAt); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Tenant{}, ErrTenantAlreadyExists
		}
		log.Err(err).Str("func", "*tenantRepository.CreateTenant").Str("tenant_id", tenant.TenantID).Msg("failed to insert tenant")
		return models.Tenant{}, r.db.wrapError(err)
	}

	return tenant, nil
}

// FindTenant looks a tenant up by id. An unknown id yields [ErrTenantNotFound].
func (r *tenantRepository) FindTenant(ctx context.Context, tenantID string) (models.Tenant, error) {
	log := logger.FromContextOr(ctx, r.logger)

	query, args, err := selectTenant(tenantID)
	if err != nil {
		return models.Tenant{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var tenant models.Tenant
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&tenant.TenantID, &tenant.Name, &tenant.APIKeyHash, &tenant.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Tenant{}, ErrTenantNotFound
		}
		log.Err(err).Str("func", "*tenantRepository.FindTenant").Str("tenant_id", tenantID).Msg("failed to find tenant")
		return models.Tenant{}, r.db.wrapError(err)
	}

	return tenant, nil
}
