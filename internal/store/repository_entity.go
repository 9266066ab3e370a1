package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

// entityRepository is the PostgreSQL-backed implementation of
// [EntityRepository]. All statements go against the "entities" table and are
// scoped by tenant id and collection.
type entityRepository struct {
	*DB
	logger *logger.Logger
}

// NewEntityRepository constructs an [EntityRepository] on db.
func NewEntityRepository(db *DB, logger *logger.Logger) EntityRepository {
	logger.Debug().Msg("creating entity repository")
	return &entityRepository{
		DB:     db,
		logger: logger,
	}
}

// GetEntity returns a single entity or [ErrEntityNotFound].
func (r *entityRepository) GetEntity(ctx context.Context, tenantID, collection, id string) (models.Entity, error) {
	log := logger.FromContextOr(ctx, r.logger)

	query, args, err := selectEntity(tenantID, collection, id)
	if err != nil {
		return models.Entity{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	entity, err := scanEntity(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entity{}, ErrEntityNotFound
		}
		log.Err(err).
			Str("func", "entityRepository.GetEntity").
			Str("tenant_id", tenantID).
			Str("collection", collection).
			Str("entity_id", id).
			Msg("failed to get entity")
		return models.Entity{}, r.wrapError(err)
	}

	return entity, nil
}

// ListEntities returns every entity of the collection ordered by creation
// time. An empty collection yields an empty, non-nil slice.
func (r *entityRepository) ListEntities(ctx context.Context, tenantID, collection string) ([]models.Entity, error) {
	log := logger.FromContextOr(ctx, r.logger)

	query, args, err := selectEntities(tenantID, collection)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.ListEntities").
			Str("tenant_id", tenantID).
			Str("collection", collection).
			Msg("failed to execute query for listing entities")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.wrapError(err))
	}
	defer rows.Close()

	results := make([]models.Entity, 0, 16)
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			log.Err(err).
				Str("func", "entityRepository.ListEntities").
				Str("tenant_id", tenantID).
				Str("collection", collection).
				Msg("failed to scan entity row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "entityRepository.ListEntities").Msg("error iterating entity rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return results, nil
}

// CreateEntity inserts e. A taken id yields [ErrEntityAlreadyExists]; an
// unknown tenant yields [ErrTenantNotFound].
func (r *entityRepository) CreateEntity(ctx context.Context, e models.Entity) (models.Entity, error) {
	log := logger.FromContextOr(ctx, r.logger)

	data, err := e.MarshalData()
	if err != nil {
		return models.Entity{}, fmt.Errorf("failed to encode entity data: %w", err)
	}

	query, args, err := insertEntity(e.TenantID, e.Collection, e.ID, data)
	if err != nil {
		return models.Entity{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Entity{}, ErrEntityAlreadyExists
		case pgerrcode.ForeignKeyViolation:
			return models.Entity{}, ErrTenantNotFound
		}
		log.Err(err).
			Str("func", "entityRepository.CreateEntity").
			Str("tenant_id", e.TenantID).
			Str("collection", e.Collection).
			Str("entity_id", e.ID).
			Msg("failed to insert entity")
		return models.Entity{}, r.wrapError(err)
	}

	return e, nil
}

// UpdateEntity replaces the data of an existing entity. A missing entity
// yields [ErrEntityNotFound].
func (r *entityRepository) UpdateEntity(ctx context.Context, e models.Entity) (models.Entity, error) {
	log := logger.FromContextOr(ctx, r.logger)

	data, err := e.MarshalData()
	if err != nil {
		return models.Entity{}, fmt.Errorf("failed to encode entity data: %w", err)
	}

	query, args, err := updateEntity(e.TenantID, e.Collection, e.ID, data)
	if err != nil {
		return models.Entity{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entity{}, ErrEntityNotFound
		}
		log.Err(err).
			Str("func", "entityRepository.UpdateEntity").
			Str("tenant_id", e.TenantID).
			Str("collection", e.Collection).
			Str("entity_id", e.ID).
			Msg("failed to update entity")
		return models.Entity{}, r.wrapError(err)
	}

	return e, nil
}

// DeleteEntity removes an entity. Deleting a missing entity yields
// [ErrEntityNotFound].
func (r *entityRepository) DeleteEntity(ctx context.Context, tenantID, collection, id string) error {
	log := logger.FromContextOr(ctx, r.logger)

	query, args, err := deleteEntity(tenantID, collection, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.DeleteEntity").
			Str("tenant_id", tenantID).
			Str("collection", collection).
			Str("entity_id", id).
			Msg("failed to delete entity")
		return r.wrapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrEntityNotFound
	}

	return nil
}

func scanEntity(row rowScanner) (models.Entity, error) {
	var (
		e    models.Entity
		data []byte
	)
	if err := row.Scan(&e.TenantID, &e.Collection, &e.ID, &data, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return models.Entity{}, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &e.Data); err != nil {
			return models.Entity{}, fmt.Errorf("malformed entity data: %w", err)
		}
	}
	if e.Data == nil {
		e.Data = models.Payload{}
	}
	return e, nil
}
