package service

import (
	"context"
	"fmt"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/utils"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/validators"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

type EntityValidationService struct {
	inner     EntityService
	validator validators.Validator
}

func NewEntityValidationService() EntityServiceWrapper {
	return &EntityValidationService{
		validator: validators.NewEntityValidator(),
	}
}

func (v *EntityValidationService) GetEntity(ctx context.Context, collection, id string) (models.Entity, error) {
	if err := v.validate(ctx, models.Entity{Collection: collection, ID: id}, validators.FieldTenantID, validators.FieldCollection, validators.FieldEntityID); err != nil {
		return models.Entity{}, err
	}
	return v.inner.GetEntity(ctx, collection, id)
}

func (v *EntityValidationService) ListEntities(ctx context.Context, collection string) ([]models.Entity, error) {
	if err := v.validate(ctx, models.Entity{Collection: collection}, validators.FieldTenantID, validators.FieldCollection); err != nil {
		return nil, err
	}
	return v.inner.ListEntities(ctx, collection)
}

func (v *EntityValidationService) CreateEntity(ctx context.Context, collection string, data models.Payload) (models.Entity, error) {
	e := models.Entity{Collection: collection, Data: data}
	fields := []string{validators.FieldTenantID, validators.FieldCollection, validators.FieldData}

	// a client-chosen id must be usable in a URL path
	if id, ok := data[models.FieldID]; ok {
		s, isString := id.(string)
		if !isString {
			return models.Entity{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, validators.ErrInvalidEntityID)
		}
		e.ID = s
		fields = append(fields, validators.FieldEntityID)
	}

	if err := v.validate(ctx, e, fields...); err != nil {
		return models.Entity{}, err
	}
	return v.inner.CreateEntity(ctx, collection, data)
}

func (v *EntityValidationService) UpdateEntity(ctx context.Context, collection, id string, data models.Payload) (models.Entity, error) {
	if err := v.validate(ctx, models.Entity{Collection: collection, ID: id, Data: data}); err != nil {
		return models.Entity{}, err
	}
	return v.inner.UpdateEntity(ctx, collection, id, data)
}

func (v *EntityValidationService) DeleteEntity(ctx context.Context, collection, id string) error {
	if err := v.validate(ctx, models.Entity{Collection: collection, ID: id}, validators.FieldTenantID, validators.FieldCollection, validators.FieldEntityID); err != nil {
		return err
	}
	return v.inner.DeleteEntity(ctx, collection, id)
}

func (v *EntityValidationService) Wrap(inner EntityService) EntityService {
	v.inner = inner
	return v
}

// validate fills the tenant from ctx before checking e.
func (v *EntityValidationService) validate(ctx context.Context, e models.Entity, fields ...string) error {
	e.TenantID, _ = utils.GetTenantIDFromContext(ctx)
	if err := v.validator.Validate(ctx, e, fields...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}
