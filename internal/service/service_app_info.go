package service

import (
	"context"
	"time"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

const (
	HealthStatusOK       = "ok"
	HealthStatusDegraded = "degraded"

	healthPingTimeout = 2 * time.Second
)

// Pinger reports whether a dependency answers. store.Storages satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type appInfoService struct {
	appVersion string
	db         Pinger

	logger *logger.Logger
}

func NewAppInfoService(version string, db Pinger, logger *logger.Logger) (AppInfoService, error) {
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: version,
		db:         db,
		logger:     logger,
	}, nil
}

// Health reports "degraded" when the database does not answer in time. A
// service without a database is always "ok".
func (s *appInfoService) Health(ctx context.Context) models.HealthResponse {
	resp := models.HealthResponse{Status: HealthStatusOK, Version: s.appVersion}
	if s.db == nil {
		return resp
	}

	pingCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	if err := s.db.Ping(pingCtx); err != nil {
		logger.FromContextOr(ctx, s.logger).Warn().Err(err).Str("func", "appInfoService.Health").Msg("database ping failed")
		resp.Status = HealthStatusDegraded
	}
	return resp
}
