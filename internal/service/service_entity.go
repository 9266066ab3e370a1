package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/store"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/utils"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

type entityService struct {
	entityRepository store.EntityRepository
	ids              *utils.UUIDGenerator
	logger           *logger.Logger
}

func NewEntityService(entityRepository store.EntityRepository, logger *logger.Logger) EntityService {
	return &entityService{
		entityRepository: entityRepository,
		ids:              utils.NewUUIDGenerator(),
		logger:           logger,
	}
}

func (s *entityService) GetEntity(ctx context.Context, collection, id string) (models.Entity, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return models.Entity{}, err
	}

	return s.entityRepository.GetEntity(ctx, tenantID, collection, id)
}

func (s *entityService) ListEntities(ctx context.Context, collection string) ([]models.Entity, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	return s.entityRepository.ListEntities(ctx, tenantID, collection)
}

func (s *entityService) CreateEntity(ctx context.Context, collection string, data models.Payload) (models.Entity, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return models.Entity{}, err
	}

	e := models.EntityFromPayload(tenantID, collection, data)
	if e.ID == "" {
		e.ID = s.ids.Generate()
	}

	created, err := s.entityRepository.CreateEntity(ctx, e)
	if err != nil {
		return models.Entity{}, fmt.Errorf("create %s/%s: %w", collection, e.ID, err)
	}

	logger.FromContextOr(ctx, s.logger).Debug().
		Str("func", "entityService.CreateEntity").
		Str("collection", collection).
		Str("entity_id", created.ID).
		Msg("entity created")
	return created, nil
}

func (s *entityService) UpdateEntity(ctx context.Context, collection, id string, data models.Payload) (models.Entity, error) {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return models.Entity{}, err
	}

	e := models.EntityFromPayload(tenantID, collection, data)
	e.ID = id

	updated, err := s.entityRepository.UpdateEntity(ctx, e)
	if errors.Is(err, store.ErrEntityNotFound) {
		logger.FromContextOr(ctx, s.logger).Info().
			Str("func", "entityService.UpdateEntity").
			Str("collection", collection).
			Str("entity_id", id).
			Msg("updated entity does not exist, creating it")
		updated, err = s.entityRepository.CreateEntity(ctx, e)
	}
	if err != nil {
		return models.Entity{}, fmt.Errorf("update %s/%s: %w", collection, id, err)
	}

	return updated, nil
}

func (s *entityService) DeleteEntity(ctx context.Context, collection, id string) error {
	tenantID, err := tenantFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.entityRepository.DeleteEntity(ctx, tenantID, collection, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func tenantFromContext(ctx context.Context) (string, error) {
	tenantID, ok := utils.GetTenantIDFromContext(ctx)
	if !ok {
		return "", ErrNoTenantInContext
	}
	return tenantID, nil
}
