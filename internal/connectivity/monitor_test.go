package connectivity

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

func TestManualMonitor_PublishesChanges(t *testing.T) {
	m := NewManualMonitor(models.StatusOffline)
	ch, cancel := m.Subscribe()
	defer cancel()

	assert.True(t, m.SetStatus(models.StatusOnline))
	assert.Equal(t, models.StatusOnline, m.Status())

	select {
	case got := <-ch:
		assert.Equal(t, models.StatusOnline, got)
	case <-time.After(time.Second):
		t.Fatal("expected a status change")
	}
}

func TestManualMonitor_DuplicateIsNoop(t *testing.T) {
	m := NewManualMonitor(models.StatusOnline)
	ch, cancel := m.Subscribe()
	defer cancel()

	assert.False(t, m.SetStatus(models.StatusOnline))
	assert.False(t, m.SetStatus(models.StatusOnline))

	select {
	case got := <-ch:
		t.Fatalf("unexpected notification %q", got)
	default:
	}
}

func TestManualMonitor_CloseEndsSubscriptions(t *testing.T) {
	m := NewManualMonitor(models.StatusOffline)
	ch, _ := m.Subscribe()

	m.Close()

	_, ok := <-ch
	assert.False(t, ok)
}

type fakeProber struct {
	healthy atomic.Bool
	calls   atomic.Int32
}

func (f *fakeProber) Ping(context.Context) error {
	f.calls.Add(1)
	if f.healthy.Load() {
		return nil
	}
	return errors.New("connection refused")
}

func TestProbeMonitor_Probe(t *testing.T) {
	prober := &fakeProber{}
	m := NewProbeMonitor(prober, time.Second, logger.Nop())
	require.Equal(t, models.StatusOffline, m.Status())

	assert.Equal(t, models.StatusOffline, m.Probe(context.Background()))

	prober.healthy.Store(true)
	assert.Equal(t, models.StatusOnline, m.Probe(context.Background()))
	assert.Equal(t, models.StatusOnline, m.Status())

	prober.healthy.Store(false)
	assert.Equal(t, models.StatusOffline, m.Probe(context.Background()))
}

func TestProbeMonitor_StartProbesImmediatelyAndStops(t *testing.T) {
	prober := &fakeProber{}
	prober.healthy.Store(true)
	m := NewProbeMonitor(prober, time.Hour, logger.Nop())
	ch, cancel := m.Subscribe()
	defer cancel()

	m.Start(context.Background())

	select {
	case got := <-ch:
		assert.Equal(t, models.StatusOnline, got)
	case <-time.After(2 * time.Second):
		t.Fatal("expected the first probe to run at start")
	}

	m.Stop()
	calls := prober.calls.Load()
	m.Stop()
	assert.Equal(t, calls, prober.calls.Load())
}

func TestProbeMonitor_PollsOnTicker(t *testing.T) {
	prober := &fakeProber{}
	m := NewProbeMonitor(prober, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	m.Start(ctx)

	assert.Eventually(t, func() bool { return prober.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	m.Stop()
}

func TestNewProbeMonitor_DefaultInterval(t *testing.T) {
	m := NewProbeMonitor(&fakeProber{}, 0, logger.Nop())
	assert.Equal(t, 30*time.Second, m.interval)
}
