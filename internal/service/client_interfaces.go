package service

import (
	"context"
	"time"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

// PayloadFetcher performs a live read of a single object.
type PayloadFetcher func(ctx context.Context) (models.Payload, error)

// PayloadListFetcher performs a live read of a list of objects.
type PayloadListFetcher func(ctx context.Context) ([]models.Payload, error)

// ClientSyncService defines the client-side contract of the offline sync
// engine: it drains the pending-mutation queue against the backend, serves
// cache-fallback reads and queues writes made while offline.
type ClientSyncService interface {
	// SyncAll runs one sync pass over the pending-mutation queue and returns
	// when it is done. It is a no-op when offline, when the queue is empty or
	// when another pass is in flight. Per-mutation errors are absorbed into
	// the progress counters and the final status; SyncAll never fails.
	SyncAll(ctx context.Context)

	// StartBackgroundSync triggers a pass on every interval tick while online
	// and on every transition into online. A non-positive interval defaults
	// to 5 minutes. A running background sync is replaced.
	StartBackgroundSync(ctx context.Context, interval time.Duration)

	// StopBackgroundSync disables future automatic triggers. An in-flight
	// pass runs to completion and StopBackgroundSync blocks until it has.
	StopBackgroundSync()

	// Status returns the current sync status.
	Status() models.SyncStatus

	// SubscribeStatus streams status changes.
	SubscribeStatus() (<-chan models.SyncStatus, func())

	// SubscribeProgress streams one snapshot before each processed mutation
	// and a final one when the pass ends.
	SubscribeProgress() (<-chan models.SyncProgress, func())

	// FetchPayload reads through the cache: while online the fetcher result
	// is cached and returned; when offline or when the fetcher fails the
	// cached entry is returned if it is younger than maxAge (any age when
	// maxAge is zero). Otherwise [ErrNoCachedData] is returned.
	FetchPayload(ctx context.Context, cacheKey string, fetcher PayloadFetcher, maxAge time.Duration) (models.Payload, error)

	// FetchPayloadList is the list analogue of FetchPayload.
	FetchPayloadList(ctx context.Context, cacheKey string, fetcher PayloadListFetcher, maxAge time.Duration) ([]models.Payload, error)

	// QueueCreate, QueueUpdate and QueueDelete enqueue a mutation. An empty
	// resolution means server-wins. Delete mutations carry no payload.
	QueueCreate(ctx context.Context, entityType, entityID string, data models.Payload, resolution models.ConflictResolution) (models.PendingMutation, error)
	QueueUpdate(ctx context.Context, entityType, entityID string, data models.Payload, resolution models.ConflictResolution) (models.PendingMutation, error)
	QueueDelete(ctx context.Context, entityType, entityID string, data models.Payload, resolution models.ConflictResolution) (models.PendingMutation, error)

	// PendingCount returns the number of queued mutations.
	PendingCount(ctx context.Context) int

	// Conflicts lists updates held back under the manual policy.
	Conflicts(ctx context.Context) []models.Conflict

	// ResolveConflict settles a held-back update. keepLocal re-enqueues the
	// local payload as a client-wins update; otherwise it is discarded and
	// the server version stands.
	ResolveConflict(ctx context.Context, key string, keepLocal bool) error
}
