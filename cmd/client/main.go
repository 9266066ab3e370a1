package main

import (
	"context"
	"fmt"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/adapter"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/client"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/config"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/connectivity"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/service"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/store"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/tui"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := printBuildInfo()

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewClientLogger("tenant-sync-client", "").Fatal().Err(err).Msg("error getting configs")
	}
	log := logger.NewClientLogger("tenant-sync-client", cfg.App.LogFile)

	remote, err := adapter.NewHTTPRemoteAPI(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote adapter")
	}

	storages, err := store.NewClientStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	probe := connectivity.NewProbeMonitor(remote, cfg.Sync.ProbeInterval, log)
	services := service.NewClientServices(storages.LocalStore, remote, probe, cfg, log)

	ui, err := tui.New(services, info, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, probe, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Error().Err(err).Msg("client run error")
	}
}

func printBuildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)

	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}
