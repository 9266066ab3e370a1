package store

import (
	"context"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a driver error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// EntityRepository persists tenant-owned entities grouped by collection.
// Every method is scoped to a single tenant.
type EntityRepository interface {
	GetEntity(ctx context.Context, tenantID, collection, id string) (models.Entity, error)
	ListEntities(ctx context.Context, tenantID, collection string) ([]models.Entity, error)
	// CreateEntity inserts e and returns it with server timestamps set.
	CreateEntity(ctx context.Context, e models.Entity) (models.Entity, error)
	// UpdateEntity replaces the data of an existing entity and stamps updated_at.
	UpdateEntity(ctx context.Context, e models.Entity) (models.Entity, error)
	DeleteEntity(ctx context.Context, tenantID, collection, id string) error
}

// TenantRepository stores backend tenants and their API key hashes.
type TenantRepository interface {
	CreateTenant(ctx context.Context, tenant models.Tenant) (models.Tenant, error)
	FindTenant(ctx context.Context, tenantID string) (models.Tenant, error)
}
