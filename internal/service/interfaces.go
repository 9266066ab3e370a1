package service

import (
	"context"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

// EntityService serves tenant entities. The tenant is taken from the
// request context (see utils.WithTenantID).
type EntityService interface {
	GetEntity(ctx context.Context, collection, id string) (models.Entity, error)
	ListEntities(ctx context.Context, collection string) ([]models.Entity, error)

	// CreateEntity stores data under collection. The id is taken from
	// data["id"] when present, otherwise a new one is generated.
	CreateEntity(ctx context.Context, collection string, data models.Payload) (models.Entity, error)
	// UpdateEntity replaces the entity's fields with data, creating the
	// entity when it does not exist.
	UpdateEntity(ctx context.Context, collection, id string, data models.Payload) (models.Entity, error)
	DeleteEntity(ctx context.Context, collection, id string) error
}

type AuthService interface {
	RegisterTenant(ctx context.Context, tenantID, name, apiKey string) (models.Tenant, error)
	// SeedTenants registers every tenant id to API key pair, skipping ids
	// that already exist.
	SeedTenants(ctx context.Context, tenants map[string]string) error

	IssueToken(ctx context.Context, req models.TokenRequest) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	Health(ctx context.Context) models.HealthResponse
}

// EntityServiceWrapper defines middleware composition for EntityService.
// Implementations wrap an existing EntityService to add behavior such as
// validation.
type EntityServiceWrapper interface {
	Wrap(EntityService) EntityService
}
