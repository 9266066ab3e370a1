package models

import "time"

// ConnectionStatus is the process-wide reachability of the remote API.
type ConnectionStatus string

const (
	StatusOnline  ConnectionStatus = "online"
	StatusOffline ConnectionStatus = "offline"
)

// SyncStatus is the state of the sync engine.
type SyncStatus string

const (
	SyncIdle      SyncStatus = "idle"
	SyncSyncing   SyncStatus = "syncing"
	SyncError     SyncStatus = "error"
	SyncCompleted SyncStatus = "completed"
)

// SyncProgress is a snapshot of the sync pass in flight. It is never persisted.
type SyncProgress struct {
	Total     int
	Completed int
	Failed    int
	// CurrentEntityType is empty before the first operation and after the pass.
	CurrentEntityType string
}

// Percentage returns Completed/Total in the range [0, 1], or 0 for an empty pass.
func (p SyncProgress) Percentage() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

// IsComplete reports whether every operation of the pass has an outcome.
func (p SyncProgress) IsComplete() bool {
	return p.Completed+p.Failed >= p.Total
}

// CacheEntry is the last-known-good snapshot of a remote read.
// Exactly one of Payload and List is set.
type CacheEntry struct {
	Key      string
	Payload  Payload
	List     []Payload
	CachedAt time.Time
}

// IsFresh reports whether the entry is younger than maxAge at now.
func (e CacheEntry) IsFresh(now time.Time, maxAge time.Duration) bool {
	return now.Sub(e.CachedAt) < maxAge
}

// Conflict is an update held back for human review because the server
// record changed after the update was enqueued.
type Conflict struct {
	Key           string
	Mutation      PendingMutation
	ServerPayload Payload
	DetectedAt    time.Time
}
