package http

import (
	"context"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/utils"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

type mockEntityService struct {
	getFn    func(ctx context.Context, collection, id string) (models.Entity, error)
	listFn   func(ctx context.Context, collection string) ([]models.Entity, error)
	createFn func(ctx context.Context, collection string, data models.Payload) (models.Entity, error)
	updateFn func(ctx context.Context, collection, id string, data models.Payload) (models.Entity, error)
	deleteFn func(ctx context.Context, collection, id string) error
}

func (m *mockEntityService) GetEntity(ctx context.Context, collection, id string) (models.Entity, error) {
	return m.getFn(ctx, collection, id)
}

func (m *mockEntityService) ListEntities(ctx context.Context, collection string) ([]models.Entity, error) {
	return m.listFn(ctx, collection)
}

func (m *mockEntityService) CreateEntity(ctx context.Context, collection string, data models.Payload) (models.Entity, error) {
	return m.createFn(ctx, collection, data)
}

func (m *mockEntityService) UpdateEntity(ctx context.Context, collection, id string, data models.Payload) (models.Entity, error) {
	return m.updateFn(ctx, collection, id, data)
}

func (m *mockEntityService) DeleteEntity(ctx context.Context, collection, id string) error {
	return m.deleteFn(ctx, collection, id)
}

type mockAuthService struct {
	issueFn func(ctx context.Context, req models.TokenRequest) (models.Token, error)
	parseFn func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterTenant(context.Context, string, string, string) (models.Tenant, error) {
	return models.Tenant{}, nil
}

func (m *mockAuthService) SeedTenants(context.Context, map[string]string) error {
	return nil
}

func (m *mockAuthService) IssueToken(ctx context.Context, req models.TokenRequest) (models.Token, error) {
	return m.issueFn(ctx, req)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseFn(ctx, tokenString)
}

type mockAppInfoService struct {
	resp models.HealthResponse
}

func (m *mockAppInfoService) Health(context.Context) models.HealthResponse {
	return m.resp
}

// tenantFromCtx is what the entity mocks use to assert tenant scoping.
func tenantFromCtx(ctx context.Context) string {
	tenantID, _ := utils.GetTenantIDFromContext(ctx)
	return tenantID
}
