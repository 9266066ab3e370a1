package service

import (
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/adapter"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/config"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/connectivity"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/store"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/workers"
)

type ClientServices struct {
	SyncService ClientSyncService
	SyncJob     workers.Worker
	Monitor     connectivity.Monitor
	LocalStore  store.LocalStore
	Remote      adapter.RemoteAPI
	Endpoints   adapter.Endpoints
}

func NewClientServices(localStore store.LocalStore, remote adapter.RemoteAPI, monitor connectivity.Monitor, cfg *config.ClientConfig, logger *logger.Logger) *ClientServices {
	endpoints := adapter.NewEndpoints(cfg.Adapter.Endpoints)
	syncSvc := NewClientSyncService(localStore, remote, endpoints, monitor, cfg.Sync, logger)

	return &ClientServices{
		SyncService: syncSvc,
		SyncJob:     NewBackgroundSyncWorker(syncSvc, cfg.Sync.Interval),
		Monitor:     monitor,
		LocalStore:  localStore,
		Remote:      remote,
		Endpoints:   endpoints,
	}
}

// NewRepository returns the offline repository and live client for one
// entity type.
func NewRepository[T any](s *ClientServices, entityType string, logger *logger.Logger) (*OfflineRepository[T], *EntityClient[T]) {
	return NewOfflineRepository[T](entityType, s.SyncService, s.Monitor, s.LocalStore, logger),
		NewEntityClient[T](entityType, s.Remote, s.Endpoints)
}
