package main

import (
	"context"
	"fmt"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/config"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/handler"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/server"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/service"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/store"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := printBuildInfo()

	log := logger.NewLogger("tenant-sync-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = info.BuildVersion()
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(ctx, storages, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
