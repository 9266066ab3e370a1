package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

func (e *syncEngine) FetchPayload(ctx context.Context, cacheKey string, fetcher PayloadFetcher, maxAge time.Duration) (models.Payload, error) {
	log := logger.FromContextOr(ctx, e.logger)

	var fetchErr error
	if e.monitor.Status() == models.StatusOnline {
		payload, err := fetcher(ctx)
		if err == nil {
			if err := e.localStore.PutCache(ctx, cacheKey, payload); err != nil {
				log.Err(err).Str("func", "syncEngine.FetchPayload").Str("cache_key", cacheKey).Msg("failed to cache fetched payload")
			}
			return payload, nil
		}
		fetchErr = err
		log.Warn().Err(err).Str("func", "syncEngine.FetchPayload").Str("cache_key", cacheKey).Msg("live fetch failed, falling back to cache")
	}

	entry, ok := e.cachedEntry(ctx, cacheKey, maxAge)
	if !ok || entry.Payload == nil {
		return nil, noCachedData(cacheKey, fetchErr)
	}
	return entry.Payload, nil
}

func (e *syncEngine) FetchPayloadList(ctx context.Context, cacheKey string, fetcher PayloadListFetcher, maxAge time.Duration) ([]models.Payload, error) {
	log := logger.FromContextOr(ctx, e.logger)

	var fetchErr error
	if e.monitor.Status() == models.StatusOnline {
		list, err := fetcher(ctx)
		if err == nil {
			if list == nil {
				list = []models.Payload{}
			}
			if err := e.localStore.PutCacheList(ctx, cacheKey, list); err != nil {
				log.Err(err).Str("func", "syncEngine.FetchPayloadList").Str("cache_key", cacheKey).Msg("failed to cache fetched list")
			}
			return list, nil
		}
		fetchErr = err
		log.Warn().Err(err).Str("func", "syncEngine.FetchPayloadList").Str("cache_key", cacheKey).Msg("live fetch failed, falling back to cache")
	}

	entry, ok := e.cachedEntry(ctx, cacheKey, maxAge)
	if !ok || entry.List == nil {
		return nil, noCachedData(cacheKey, fetchErr)
	}
	return entry.List, nil
}

// cachedEntry returns the entry under key if it is younger than maxAge.
// A zero maxAge accepts any age.
func (e *syncEngine) cachedEntry(ctx context.Context, key string, maxAge time.Duration) (models.CacheEntry, bool) {
	entry, ok := e.localStore.GetCacheEntry(ctx, key)
	if !ok {
		return models.CacheEntry{}, false
	}
	if maxAge > 0 && !entry.IsFresh(e.now(), maxAge) {
		return models.CacheEntry{}, false
	}
	return entry, true
}

func noCachedData(key string, fetchErr error) error {
	if fetchErr != nil {
		return fmt.Errorf("%w: %s: %w", ErrNoCachedData, key, fetchErr)
	}
	return fmt.Errorf("%w: %s", ErrNoCachedData, key)
}

// FetchWithCache is the typed form of [ClientSyncService.FetchPayload]. The
// fetcher result is converted to a payload for caching and the returned
// payload is decoded with deserialize.
func FetchWithCache[T any](
	ctx context.Context,
	svc ClientSyncService,
	cacheKey string,
	fetcher func(ctx context.Context) (T, error),
	serialize func(T) (models.Payload, error),
	deserialize func(models.Payload) (T, error),
	maxAge time.Duration,
) (T, error) {
	var zero T

	payload, err := svc.FetchPayload(ctx, cacheKey, func(ctx context.Context) (models.Payload, error) {
		v, err := fetcher(ctx)
		if err != nil {
			return nil, err
		}
		return serialize(v)
	}, maxAge)
	if err != nil {
		return zero, err
	}

	v, err := deserialize(payload)
	if err != nil {
		return zero, fmt.Errorf("decode %s: %w", cacheKey, err)
	}
	return v, nil
}

// FetchListWithCache is the list analogue of [FetchWithCache].
func FetchListWithCache[T any](
	ctx context.Context,
	svc ClientSyncService,
	cacheKey string,
	fetcher func(ctx context.Context) ([]T, error),
	serialize func(T) (models.Payload, error),
	deserialize func(models.Payload) (T, error),
	maxAge time.Duration,
) ([]T, error) {
	list, err := svc.FetchPayloadList(ctx, cacheKey, func(ctx context.Context) ([]models.Payload, error) {
		items, err := fetcher(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]models.Payload, 0, len(items))
		for _, item := range items {
			p, err := serialize(item)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil
	}, maxAge)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(list))
	for i, p := range list {
		v, err := deserialize(p)
		if err != nil {
			return nil, fmt.Errorf("decode %s[%d]: %w", cacheKey, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
