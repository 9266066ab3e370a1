package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/adapter"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/connectivity"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/store"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

// OfflineRepository routes the calls of one entity type either to the remote
// API or, while offline, through the cache and the mutation queue.
//
// It never retries: once a mutation is queued, retrying it is the sync
// engine's job.
type OfflineRepository[T any] struct {
	entityType string
	engine     ClientSyncService
	monitor    connectivity.Monitor
	localStore store.LocalStore
	logger     *logger.Logger
}

// NewOfflineRepository returns a repository for entityType.
func NewOfflineRepository[T any](
	entityType string,
	engine ClientSyncService,
	monitor connectivity.Monitor,
	localStore store.LocalStore,
	logger *logger.Logger,
) *OfflineRepository[T] {
	return &OfflineRepository[T]{
		entityType: entityType,
		engine:     engine,
		monitor:    monitor,
		localStore: localStore,
		logger:     logger,
	}
}

// EntityType returns the entity type the repository queues mutations for.
func (r *OfflineRepository[T]) EntityType() string {
	return r.entityType
}

func (r *OfflineRepository[T]) online() bool {
	return r.monitor.Status() == models.StatusOnline
}

// FetchWithOfflineSupport runs action while online and caches its result.
// Offline, or when action fails at the transport level, the cached value is
// returned; without one the error is [ErrNoCachedData]. Other action errors
// are returned unchanged.
func (r *OfflineRepository[T]) FetchWithOfflineSupport(ctx context.Context, cacheKey string, action func(ctx context.Context) (T, error)) (T, error) {
	log := logger.FromContextOr(ctx, r.logger)
	var zero T

	var liveErr error
	if r.online() {
		v, err := action(ctx)
		if err == nil {
			if payload, err := PayloadOf(v); err != nil {
				log.Warn().Err(err).Str("func", "OfflineRepository.FetchWithOfflineSupport").Str("cache_key", cacheKey).Msg("result is not cacheable")
			} else if err := r.localStore.PutCache(ctx, cacheKey, payload); err != nil {
				log.Err(err).Str("func", "OfflineRepository.FetchWithOfflineSupport").Str("cache_key", cacheKey).Msg("failed to cache result")
			}
			return v, nil
		}
		if !errors.Is(err, adapter.ErrTransport) {
			return zero, err
		}
		liveErr = err
	}

	payload, ok := r.localStore.GetCache(ctx, cacheKey)
	if !ok {
		return zero, noCachedData(cacheKey, liveErr)
	}
	v, err := DecodePayload[T](payload)
	if err != nil {
		log.Warn().Err(err).Str("func", "OfflineRepository.FetchWithOfflineSupport").Str("cache_key", cacheKey).Msg("cached value does not decode")
		return zero, noCachedData(cacheKey, liveErr)
	}
	return v, nil
}

// FetchListWithOfflineSupport is the list analogue of FetchWithOfflineSupport.
func (r *OfflineRepository[T]) FetchListWithOfflineSupport(ctx context.Context, cacheKey string, action func(ctx context.Context) ([]T, error)) ([]T, error) {
	log := logger.FromContextOr(ctx, r.logger)

	var liveErr error
	if r.online() {
		items, err := action(ctx)
		if err == nil {
			if list, err := payloadsOf(items); err != nil {
				log.Warn().Err(err).Str("func", "OfflineRepository.FetchListWithOfflineSupport").Str("cache_key", cacheKey).Msg("result is not cacheable")
			} else if err := r.localStore.PutCacheList(ctx, cacheKey, list); err != nil {
				log.Err(err).Str("func", "OfflineRepository.FetchListWithOfflineSupport").Str("cache_key", cacheKey).Msg("failed to cache result")
			}
			return items, nil
		}
		if !errors.Is(err, adapter.ErrTransport) {
			return nil, err
		}
		liveErr = err
	}

	list, ok := r.localStore.GetCacheList(ctx, cacheKey)
	if !ok {
		return nil, noCachedData(cacheKey, liveErr)
	}

	items := make([]T, 0, len(list))
	for _, p := range list {
		v, err := DecodePayload[T](p)
		if err != nil {
			log.Warn().Err(err).Str("func", "OfflineRepository.FetchListWithOfflineSupport").Str("cache_key", cacheKey).Msg("skipping cached item that does not decode")
			continue
		}
		items = append(items, v)
	}
	return items, nil
}

// CreateWithOfflineSupport runs action while online and returns its result or
// error. Offline, the create is queued and data is returned as the
// optimistic result.
func (r *OfflineRepository[T]) CreateWithOfflineSupport(ctx context.Context, entityID string, data T, action func(ctx context.Context, data T) (T, error)) (T, error) {
	if r.online() {
		return action(ctx, data)
	}

	var zero T
	payload, err := PayloadOf(data)
	if err != nil {
		return zero, err
	}
	if _, err := r.engine.QueueCreate(ctx, r.entityType, entityID, payload, models.ResolutionServerWins); err != nil {
		return zero, err
	}
	return data, nil
}

// UpdateWithOfflineSupport is CreateWithOfflineSupport for updates. The
// resolution policy is applied when the queued update is synced.
func (r *OfflineRepository[T]) UpdateWithOfflineSupport(ctx context.Context, entityID string, data T, resolution models.ConflictResolution, action func(ctx context.Context, data T) (T, error)) (T, error) {
	if r.online() {
		return action(ctx, data)
	}

	var zero T
	payload, err := PayloadOf(data)
	if err != nil {
		return zero, err
	}
	if _, err := r.engine.QueueUpdate(ctx, r.entityType, entityID, payload, resolution); err != nil {
		return zero, err
	}
	return data, nil
}

// DeleteWithOfflineSupport runs action while online; offline the delete is
// queued.
func (r *OfflineRepository[T]) DeleteWithOfflineSupport(ctx context.Context, entityID string, action func(ctx context.Context) error) error {
	if r.online() {
		return action(ctx)
	}

	_, err := r.engine.QueueDelete(ctx, r.entityType, entityID, nil, models.ResolutionServerWins)
	return err
}

// PayloadOf converts v to a payload through its JSON form. v must encode to
// a JSON object.
func PayloadOf[T any](v T) (models.Payload, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	var p models.Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("payload is not an object: %w", err)
	}
	if p == nil {
		return nil, errors.New("payload is not an object: null")
	}
	return p, nil
}

// DecodePayload converts p to T through its JSON form.
func DecodePayload[T any](p models.Payload) (T, error) {
	var v T

	raw, err := json.Marshal(p)
	if err != nil {
		return v, fmt.Errorf("encode payload: %w", err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode payload: %w", err)
	}
	return v, nil
}

func payloadsOf[T any](items []T) ([]models.Payload, error) {
	out := make([]models.Payload, 0, len(items))
	for _, item := range items {
		p, err := PayloadOf(item)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
