package client

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/service"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/workers"
)

// View is the foreground UI; it blocks until the user leaves.
type View interface {
	Run(ctx context.Context) error
}

type App struct {
	services *service.ClientServices
	workers  *workers.Workers
	view     View
	logger   *logger.Logger
}

// NewApp wires the background workers around view. The sync job starts
// before the probe so that the first online transition triggers a pass.
// probe may be nil when connectivity is driven from outside.
func NewApp(services *service.ClientServices, probe workers.Worker, view View, logger *logger.Logger) (*App, error) {
	if services == nil || view == nil {
		return nil, fmt.Errorf("client app: services and view are required")
	}

	return &App{
		services: services,
		workers:  workers.NewWorkers(services.SyncJob, probe),
		view:     view,
		logger:   logger,
	}, nil
}

// Run starts the workers and blocks in the view until it returns or the
// process is signalled. Mutations left from a previous session are synced
// once the probe first reports the backend online.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	a.workers.Start(ctx)
	defer a.workers.Stop()

	a.logger.Info().
		Str("func", "App.run").
		Int("pending", a.services.SyncService.PendingCount(ctx)).
		Str("connectivity", string(a.services.Monitor.Status())).
		Msg("client started")

	if err := a.view.Run(ctx); err != nil {
		return fmt.Errorf("client view: %w", err)
	}
	return nil
}
