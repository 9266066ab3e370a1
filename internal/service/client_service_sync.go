package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/adapter"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/config"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/connectivity"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/store"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/utils"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

// mutationOutcome is the result of processing one queued mutation.
type mutationOutcome int

const (
	outcomeCompleted mutationOutcome = iota
	outcomeRetried
	outcomeFailed
)

type syncEngine struct {
	localStore store.LocalStore
	remote     adapter.RemoteAPI
	endpoints  adapter.Endpoints
	monitor    connectivity.Monitor
	maxRetries int
	logger     *logger.Logger
	now        func() time.Time

	// syncing guards pass exclusivity.
	syncing atomic.Bool

	mu       sync.Mutex
	status   models.SyncStatus
	statuses *utils.Broadcaster[models.SyncStatus]
	progress *utils.Broadcaster[models.SyncProgress]

	job *clientSyncJob
}

// NewClientSyncService builds the sync engine. Its collaborators are the
// durable local store, the remote API with its endpoint table and the
// connectivity monitor. cfg supplies the retry ceiling.
func NewClientSyncService(
	localStore store.LocalStore,
	remote adapter.RemoteAPI,
	endpoints adapter.Endpoints,
	monitor connectivity.Monitor,
	cfg config.ClientSync,
	logger *logger.Logger,
) ClientSyncService {
	cfg = cfg.WithDefaults()

	e := &syncEngine{
		localStore: localStore,
		remote:     remote,
		endpoints:  endpoints,
		monitor:    monitor,
		maxRetries: cfg.MaxRetries,
		logger:     logger,
		now:        time.Now,
		status:     models.SyncIdle,
		statuses:   utils.NewBroadcaster[models.SyncStatus](),
		progress:   utils.NewBroadcaster[models.SyncProgress](),
	}
	e.job = newClientSyncJob(e, monitor, logger)

	return e
}

// ── sync pass ────────────────────────────────────────────────────────────────

func (e *syncEngine) SyncAll(ctx context.Context) {
	log := logger.FromContextOr(ctx, e.logger)

	if e.monitor.Status() != models.StatusOnline {
		log.Debug().Str("func", "syncEngine.SyncAll").Msg("offline, sync skipped")
		return
	}
	if !e.syncing.CompareAndSwap(false, true) {
		log.Debug().Str("func", "syncEngine.SyncAll").Msg("sync pass already in flight, trigger dropped")
		return
	}
	defer e.syncing.Store(false)

	pending := e.localStore.ListPendingMutations(ctx)
	if len(pending) == 0 {
		return
	}

	e.setStatus(models.SyncSyncing)
	started := e.now()
	p := models.SyncProgress{Total: len(pending)}
	retried := 0

	for _, m := range pending {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Str("func", "syncEngine.SyncAll").Msg("sync pass interrupted, remaining mutations stay queued")
			break
		}

		p.CurrentEntityType = m.EntityType
		e.progress.Publish(p)

		switch e.processMutation(ctx, m) {
		case outcomeCompleted:
			p.Completed++
		case outcomeFailed:
			p.Failed++
		case outcomeRetried:
			retried++
		}
	}

	p.CurrentEntityType = ""
	e.progress.Publish(p)

	final := models.SyncCompleted
	if p.Failed > 0 {
		final = models.SyncError
	}
	e.setStatus(final)

	log.Info().
		Str("func", "syncEngine.SyncAll").
		Int("total", p.Total).
		Int("completed", p.Completed).
		Int("failed", p.Failed).
		Int("retried", retried).
		Dur("duration", e.now().Sub(started)).
		Str("status", string(final)).
		Msg("sync pass finished")
}

// processMutation applies m remotely and settles its queue entry.
func (e *syncEngine) processMutation(ctx context.Context, m models.PendingMutation) mutationOutcome {
	log := logger.FromContextOr(ctx, e.logger)

	err := e.applyMutation(ctx, m)

	// the queue entry is settled even when the pass was cancelled mid-call
	ctx = context.WithoutCancel(ctx)
	if err != nil {
		return e.handleFailure(ctx, m, err)
	}

	if err := e.localStore.RemoveMutation(ctx, m.Key); err != nil {
		log.Err(err).Str("func", "syncEngine.processMutation").Str("key", m.Key).Msg("applied mutation could not be removed from queue")
	}
	if err := e.localStore.SetLastSyncTime(ctx, m.EntityType, e.now()); err != nil {
		log.Err(err).Str("func", "syncEngine.processMutation").Str("entity_type", m.EntityType).Msg("failed to record last sync time")
	}

	return outcomeCompleted
}

// handleFailure re-enqueues m while it has attempts left, otherwise drops it.
func (e *syncEngine) handleFailure(ctx context.Context, m models.PendingMutation, cause error) mutationOutcome {
	log := logger.FromContextOr(ctx, e.logger)

	if m.RetryCount+1 < e.maxRetries {
		m.RetryCount++
		m.LastError = cause.Error()
		m.LastAttemptAt = e.now()

		// same key: the upsert replaces the entry and keeps its queue position
		if _, err := e.localStore.EnqueueMutation(ctx, m); err != nil {
			log.Err(errors.Join(cause, err)).
				Str("func", "syncEngine.handleFailure").
				Str("key", m.Key).
				Msg("failed to record retry of mutation")
		}

		log.Warn().Err(cause).
			Str("func", "syncEngine.handleFailure").
			Str("key", m.Key).
			Str("entity_type", m.EntityType).
			Str("entity_id", m.EntityID).
			Int("retry_count", m.RetryCount).
			Msg("mutation failed, will retry")
		return outcomeRetried
	}

	if err := e.localStore.RemoveMutation(ctx, m.Key); err != nil {
		log.Err(err).Str("func", "syncEngine.handleFailure").Str("key", m.Key).Msg("failed to drop exhausted mutation")
	}

	log.Error().Err(cause).
		Str("func", "syncEngine.handleFailure").
		Str("key", m.Key).
		Str("entity_type", m.EntityType).
		Str("entity_id", m.EntityID).
		Int("attempts", m.RetryCount+1).
		Msg("mutation dropped after exhausting retries")
	return outcomeFailed
}

func (e *syncEngine) applyMutation(ctx context.Context, m models.PendingMutation) error {
	switch m.Operation {
	case models.OperationCreate:
		if _, err := e.remote.Create(ctx, e.endpoints.Collection(m.EntityType), m.Payload); err != nil {
			return fmt.Errorf("create %s %s: %w", m.EntityType, m.EntityID, err)
		}
		return nil

	case models.OperationUpdate:
		return e.applyUpdate(ctx, m)

	case models.OperationDelete:
		err := e.remote.Delete(ctx, e.endpoints.Entity(m.EntityType, m.EntityID))
		if err != nil && !errors.Is(err, adapter.ErrNotFound) {
			return fmt.Errorf("delete %s %s: %w", m.EntityType, m.EntityID, err)
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownOperation, m.Operation)
	}
}

func (e *syncEngine) applyUpdate(ctx context.Context, m models.PendingMutation) error {
	log := logger.FromContextOr(ctx, e.logger)
	path := e.endpoints.Entity(m.EntityType, m.EntityID)

	server, err := e.remote.Get(ctx, path)
	if err != nil {
		if !errors.Is(err, adapter.ErrNotFound) {
			return fmt.Errorf("fetch server state of %s %s: %w", m.EntityType, m.EntityID, err)
		}
		server = nil
	}

	resolved, decision := resolveConflict(m, server)
	switch decision {
	case decisionSkip:
		log.Info().
			Str("func", "syncEngine.applyUpdate").
			Str("key", m.Key).
			Str("entity_type", m.EntityType).
			Str("entity_id", m.EntityID).
			Msg("server version is newer, queued update skipped")
		return nil

	case decisionEscalate:
		err := e.localStore.SaveConflict(ctx, models.Conflict{
			Key:           m.Key,
			Mutation:      m,
			ServerPayload: server,
			DetectedAt:    e.now(),
		})
		if err != nil {
			return fmt.Errorf("hold back conflicting update of %s %s: %w", m.EntityType, m.EntityID, err)
		}
		log.Warn().
			Str("func", "syncEngine.applyUpdate").
			Str("key", m.Key).
			Str("entity_type", m.EntityType).
			Str("entity_id", m.EntityID).
			Msg("conflicting update held for manual review")
		return nil
	}

	if _, err := e.remote.Update(ctx, path, resolved); err != nil {
		return fmt.Errorf("update %s %s: %w", m.EntityType, m.EntityID, err)
	}
	return nil
}

// ── status and progress ──────────────────────────────────────────────────────

func (e *syncEngine) setStatus(s models.SyncStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == s {
		return
	}
	e.status = s
	e.statuses.Publish(s)
}

func (e *syncEngine) Status() models.SyncStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *syncEngine) SubscribeStatus() (<-chan models.SyncStatus, func()) {
	return e.statuses.Subscribe()
}

func (e *syncEngine) SubscribeProgress() (<-chan models.SyncProgress, func()) {
	return e.progress.Subscribe()
}

// ── background sync ──────────────────────────────────────────────────────────

func (e *syncEngine) StartBackgroundSync(ctx context.Context, interval time.Duration) {
	e.job.Start(ctx, interval)
}

func (e *syncEngine) StopBackgroundSync() {
	e.job.Stop()
}

// ── queue helpers ────────────────────────────────────────────────────────────

func (e *syncEngine) QueueCreate(ctx context.Context, entityType, entityID string, data models.Payload, resolution models.ConflictResolution) (models.PendingMutation, error) {
	return e.enqueue(ctx, models.OperationCreate, entityType, entityID, data, resolution)
}

func (e *syncEngine) QueueUpdate(ctx context.Context, entityType, entityID string, data models.Payload, resolution models.ConflictResolution) (models.PendingMutation, error) {
	return e.enqueue(ctx, models.OperationUpdate, entityType, entityID, data, resolution)
}

func (e *syncEngine) QueueDelete(ctx context.Context, entityType, entityID string, data models.Payload, resolution models.ConflictResolution) (models.PendingMutation, error) {
	return e.enqueue(ctx, models.OperationDelete, entityType, entityID, data, resolution)
}

func (e *syncEngine) enqueue(ctx context.Context, op models.OperationKind, entityType, entityID string, data models.Payload, resolution models.ConflictResolution) (models.PendingMutation, error) {
	m, err := e.localStore.EnqueueMutation(ctx, models.PendingMutation{
		Operation:  op,
		EntityType: entityType,
		EntityID:   entityID,
		Payload:    data.Clone(),
		EnqueuedAt: e.now(),
		Resolution: models.ParseConflictResolution(string(resolution)),
	})
	if err != nil {
		return models.PendingMutation{}, fmt.Errorf("queue %s of %s %s: %w", op, entityType, entityID, err)
	}

	logger.FromContextOr(ctx, e.logger).Debug().
		Str("func", "syncEngine.enqueue").
		Str("key", m.Key).
		Msg("mutation queued")
	return m, nil
}

func (e *syncEngine) PendingCount(ctx context.Context) int {
	return e.localStore.CountPendingMutations(ctx)
}

// ── manual conflict review ───────────────────────────────────────────────────

func (e *syncEngine) Conflicts(ctx context.Context) []models.Conflict {
	return e.localStore.ListConflicts(ctx)
}

func (e *syncEngine) ResolveConflict(ctx context.Context, key string, keepLocal bool) error {
	c, ok := e.localStore.GetConflict(ctx, key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrConflictNotFound, key)
	}

	if keepLocal {
		m := c.Mutation
		_, err := e.QueueUpdate(ctx, m.EntityType, m.EntityID, m.Payload, models.ResolutionClientWins)
		if err != nil {
			return err
		}
	}

	if err := e.localStore.RemoveConflict(ctx, key); err != nil {
		return fmt.Errorf("remove resolved conflict %s: %w", key, err)
	}

	logger.FromContextOr(ctx, e.logger).Info().
		Str("func", "syncEngine.ResolveConflict").
		Str("key", key).
		Bool("keep_local", keepLocal).
		Msg("conflict resolved")
	return nil
}
