// Package connectivity reports whether the backend is reachable.
//
// A [Monitor] exposes the current status and a stream of changes. The sync
// engine treats every transition into online as a sync trigger. Two
// implementations are provided: [ManualMonitor], driven by the host
// (a platform reachability callback or a test), and [ProbeMonitor], which
// polls the backend health endpoint.
package connectivity

import (
	"sync"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/utils"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

// Monitor publishes connectivity status.
type Monitor interface {
	// Status returns the current status without blocking.
	Status() models.ConnectionStatus
	// Subscribe returns a stream of status changes and a cancel func that
	// ends the subscription. Only changes are delivered.
	Subscribe() (<-chan models.ConnectionStatus, func())
}

// ManualMonitor is a [Monitor] whose status is set from outside.
type ManualMonitor struct {
	mu      sync.Mutex
	status  models.ConnectionStatus
	changes *utils.Broadcaster[models.ConnectionStatus]
}

// NewManualMonitor returns a monitor starting at initial.
func NewManualMonitor(initial models.ConnectionStatus) *ManualMonitor {
	return &ManualMonitor{
		status:  initial,
		changes: utils.NewBroadcaster[models.ConnectionStatus](),
	}
}

// Status implements [Monitor].
func (m *ManualMonitor) Status() models.ConnectionStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Subscribe implements [Monitor].
func (m *ManualMonitor) Subscribe() (<-chan models.ConnectionStatus, func()) {
	return m.changes.Subscribe()
}

// SetStatus records status and notifies subscribers. A notification with
// the current status is ignored. It reports whether the status changed.
func (m *ManualMonitor) SetStatus(status models.ConnectionStatus) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if status == m.status {
		return false
	}
	m.status = status
	m.changes.Publish(status)
	return true
}

// Close ends every subscription.
func (m *ManualMonitor) Close() {
	m.changes.Close()
}
