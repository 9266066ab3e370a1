package store

import (
	"context"
	"time"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

// LocalStore is the client's durable store: the pending-mutation queue, the
// response cache, per-entity-type sync metadata and the conflict review queue.
//
// Reads fail open: a storage error or a malformed record is logged and
// reported as absence. Writes fail closed: errors are returned, since losing
// a queued mutation is unacceptable.
type LocalStore interface {
	// EnqueueMutation appends m to the queue. A missing key, enqueue time or
	// resolution is filled in; a mutation carrying an existing key replaces
	// the queued one in place.
	EnqueueMutation(ctx context.Context, m models.PendingMutation) (models.PendingMutation, error)
	// ListPendingMutations returns the queue in ascending enqueue order.
	ListPendingMutations(ctx context.Context) []models.PendingMutation
	CountPendingMutations(ctx context.Context) int
	// RemoveMutation is idempotent.
	RemoveMutation(ctx context.Context, key string) error
	ClearMutationQueue(ctx context.Context) error

	PutCache(ctx context.Context, key string, payload models.Payload) error
	PutCacheList(ctx context.Context, key string, list []models.Payload) error
	GetCache(ctx context.Context, key string) (models.Payload, bool)
	GetCacheList(ctx context.Context, key string) ([]models.Payload, bool)
	GetCacheEntry(ctx context.Context, key string) (models.CacheEntry, bool)
	IsCacheFresh(ctx context.Context, key string, maxAge time.Duration) bool
	InvalidateCache(ctx context.Context, key string) error
	ClearAllCache(ctx context.Context) error

	GetLastSyncTime(ctx context.Context, entityType string) (time.Time, bool)
	SetLastSyncTime(ctx context.Context, entityType string, t time.Time) error

	SaveConflict(ctx context.Context, c models.Conflict) error
	ListConflicts(ctx context.Context) []models.Conflict
	GetConflict(ctx context.Context, key string) (models.Conflict, bool)
	RemoveConflict(ctx context.Context, key string) error
}
