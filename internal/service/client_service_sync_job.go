package service

import (
	"context"
	"sync"
	"time"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/config"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/connectivity"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/workers"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

// passRunner is the part of the engine the background job drives.
type passRunner interface {
	SyncAll(ctx context.Context)
}

type clientSyncJob struct {
	runner  passRunner
	monitor connectivity.Monitor
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newClientSyncJob(runner passRunner, monitor connectivity.Monitor, logger *logger.Logger) *clientSyncJob {
	return &clientSyncJob{runner: runner, monitor: monitor, logger: logger}
}

// Start stops any previously running job, then launches a goroutine that
// runs a pass on every tick and on every transition into online. If interval
// is zero or negative it defaults to 5 minutes. The goroutine exits when ctx
// is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = config.DefaultSyncInterval
	}

	j.Stop()

	changes, unsubscribe := j.monitor.Subscribe()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	// a pass that has started runs to completion even if the job is stopped
	passCtx := context.WithoutCancel(jobCtx)

	go func() {
		defer j.wg.Done()
		defer unsubscribe()

		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runner.SyncAll(passCtx)
			case status, ok := <-changes:
				if !ok {
					changes = nil
					continue
				}
				if status == models.StatusOnline {
					j.logger.Debug().Str("func", "clientSyncJob.Start").Msg("connectivity restored, triggering sync")
					j.runner.SyncAll(passCtx)
				}
			}
		}
	}()

	j.logger.Info().Str("func", "clientSyncJob.Start").Dur("interval", interval).Msg("background sync started")
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. A pass already running is not cancelled, so
// Stop returns only once that pass has settled. Safe to call when the job
// is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// backgroundSync adapts the engine's background sync to [workers.Worker].
type backgroundSync struct {
	engine   ClientSyncService
	interval time.Duration
}

// NewBackgroundSyncWorker returns a worker that starts and stops the
// engine's background sync with the given interval.
func NewBackgroundSyncWorker(engine ClientSyncService, interval time.Duration) workers.Worker {
	return &backgroundSync{engine: engine, interval: interval}
}

func (b *backgroundSync) Start(ctx context.Context) {
	b.engine.StartBackgroundSync(ctx, b.interval)
}

func (b *backgroundSync) Stop() {
	b.engine.StopBackgroundSync()
}
