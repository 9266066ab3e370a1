package service

import (
	"context"
	"fmt"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/config"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/store"
)

type Services struct {
	AuthService    AuthService
	EntityService  EntityService
	AppInfoService AppInfoService
}

// NewServices wires the backend services and registers the configured
// tenant seeds.
func NewServices(ctx context.Context, storages *store.Storages, cfg *config.ServerConfig, logger *logger.Logger) (*Services, error) {
	authSvc := NewAuthService(storages.TenantRepository, cfg.App, logger)
	if err := authSvc.SeedTenants(ctx, cfg.App.Tenants); err != nil {
		return nil, fmt.Errorf("seeding tenants: %w", err)
	}

	version := cfg.App.Version
	if version == "" {
		version = "dev"
	}
	appInfoSvc, err := NewAppInfoService(version, storages, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    authSvc,
		EntityService:  NewEntityValidationService().Wrap(NewEntityService(storages.EntityRepository, logger)),
		AppInfoService: appInfoSvc,
	}, nil
}
