package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

// Prober checks backend reachability. adapter.RemoteAPI satisfies it.
type Prober interface {
	Ping(ctx context.Context) error
}

// ProbeMonitor is a [Monitor] that polls a [Prober]. It starts offline and
// implements workers.Worker.
type ProbeMonitor struct {
	*ManualMonitor

	prober   Prober
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewProbeMonitor creates a monitor probing every interval. A non-positive
// interval defaults to 30 seconds.
func NewProbeMonitor(prober Prober, interval time.Duration, logger *logger.Logger) *ProbeMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &ProbeMonitor{
		ManualMonitor: NewManualMonitor(models.StatusOffline),
		prober:        prober,
		interval:      interval,
		logger:        logger,
	}
}

// Probe pings the backend once and records the result.
func (p *ProbeMonitor) Probe(ctx context.Context) models.ConnectionStatus {
	probeCtx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	status := models.StatusOnline
	if err := p.prober.Ping(probeCtx); err != nil {
		status = models.StatusOffline
		if p.Status() == models.StatusOnline {
			p.logger.Warn().Err(err).Str("func", "ProbeMonitor.Probe").Msg("backend unreachable")
		}
	}

	if p.SetStatus(status) {
		p.logger.Info().Str("func", "ProbeMonitor.Probe").Str("status", string(status)).Msg("connectivity changed")
	}
	return status
}

// Start probes immediately and then on every tick until ctx is cancelled or
// Stop is called. A running probe loop is replaced.
func (p *ProbeMonitor) Start(ctx context.Context) {
	p.Stop()

	p.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		t := time.NewTicker(p.interval)
		defer t.Stop()

		p.Probe(loopCtx)
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				p.Probe(loopCtx)
			}
		}
	}()
}

// Stop ends the probe loop and waits for it to exit.
func (p *ProbeMonitor) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}
