package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/utils"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

type localStore struct {
	*DB
	logger *logger.Logger
	ids    *utils.UUIDGenerator
	now    func() time.Time
}

// NewLocalStore builds the SQLite-backed [LocalStore] on an already migrated DB.
func NewLocalStore(db *DB, logger *logger.Logger) LocalStore {
	return &localStore{
		DB:     db,
		logger: logger,
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
	}
}

// ── mutation queue ───────────────────────────────────────────────────────────

func (s *localStore) EnqueueMutation(ctx context.Context, m models.PendingMutation) (models.PendingMutation, error) {
	log := logger.FromContextOr(ctx, s.logger)

	if _, err := models.ParseOperationKind(string(m.Operation)); err != nil {
		return models.PendingMutation{}, fmt.Errorf("%w: %v", ErrInvalidMutation, err)
	}
	if m.EntityType == "" || m.EntityID == "" {
		return models.PendingMutation{}, fmt.Errorf("%w: entity type and id are required", ErrInvalidMutation)
	}

	if m.EnqueuedAt.IsZero() {
		m.EnqueuedAt = s.now()
	}
	// storage keeps millisecond precision
	m.EnqueuedAt = time.UnixMilli(m.EnqueuedAt.UnixMilli())
	if m.Resolution == "" {
		m.Resolution = models.ResolutionServerWins
	}
	if m.Key == "" {
		m.Key = models.BuildMutationKey(m.EntityType, m.EntityID, m.Operation, m.EnqueuedAt, s.ids.Nonce())
	}
	if m.Operation == models.OperationDelete {
		m.Payload = nil
	}

	payload, err := marshalPayload(m.Payload)
	if err != nil {
		log.Err(err).Str("func", "localStore.EnqueueMutation").Str("key", m.Key).Msg("failed to encode payload")
		return models.PendingMutation{}, fmt.Errorf("failed to encode payload of mutation %s: %w", m.Key, err)
	}

	_, err = s.DB.ExecContext(ctx, upsertPendingMutation,
		m.Key,
		string(m.Operation),
		m.EntityType,
		m.EntityID,
		payload,
		m.EnqueuedAt.UnixMilli(),
		m.RetryCount,
		string(m.Resolution),
		m.LastError,
		unixMilliOrZero(m.LastAttemptAt),
	)
	if err != nil {
		log.Err(err).
			Str("func", "localStore.EnqueueMutation").
			Str("key", m.Key).
			Str("entity_type", m.EntityType).
			Str("entity_id", m.EntityID).
			Msg("failed to persist pending mutation")
		return models.PendingMutation{}, fmt.Errorf("%w: %w", ErrMutationNotSaved, err)
	}

	return m, nil
}

func (s *localStore) ListPendingMutations(ctx context.Context) []models.PendingMutation {
	log := logger.FromContextOr(ctx, s.logger)

	rows, err := s.DB.QueryContext(ctx, listPendingMutations)
	if err != nil {
		log.Err(err).Str("func", "localStore.ListPendingMutations").Msg("failed to query pending mutations")
		return nil
	}
	defer rows.Close()

	var out []models.PendingMutation
	for rows.Next() {
		var (
			m                         models.PendingMutation
			op, resolution            string
			payload                   sql.NullString
			enqueuedAt, lastAttemptAt int64
		)
		if err := rows.Scan(&m.Key, &op, &m.EntityType, &m.EntityID, &payload, &enqueuedAt, &m.RetryCount, &resolution, &m.LastError, &lastAttemptAt); err != nil {
			log.Warn().Err(err).Str("func", "localStore.ListPendingMutations").Msg("skipping unreadable pending mutation row")
			continue
		}

		m.Operation, err = models.ParseOperationKind(op)
		if err != nil {
			log.Warn().Err(err).Str("func", "localStore.ListPendingMutations").Str("key", m.Key).Msg("skipping malformed pending mutation")
			continue
		}
		m.Payload, err = unmarshalPayload(payload)
		if err != nil {
			log.Warn().Err(err).Str("func", "localStore.ListPendingMutations").Str("key", m.Key).Msg("skipping malformed pending mutation")
			continue
		}
		m.Resolution = models.ParseConflictResolution(resolution)
		m.EnqueuedAt = time.UnixMilli(enqueuedAt)
		if lastAttemptAt > 0 {
			m.LastAttemptAt = time.UnixMilli(lastAttemptAt)
		}

		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "localStore.ListPendingMutations").Msg("failed iterating pending mutations")
	}

	return out
}

func (s *localStore) CountPendingMutations(ctx context.Context) int {
	var n int
	if err := s.DB.QueryRowContext(ctx, countPendingMutations).Scan(&n); err != nil {
		logger.FromContextOr(ctx, s.logger).Err(err).Str("func", "localStore.CountPendingMutations").Msg("failed to count pending mutations")
		return 0
	}
	return n
}

func (s *localStore) RemoveMutation(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, deletePendingMutation, key); err != nil {
		logger.FromContextOr(ctx, s.logger).Err(err).Str("func", "localStore.RemoveMutation").Str("key", key).Msg("failed to remove pending mutation")
		return fmt.Errorf("failed to remove pending mutation %s: %w", key, err)
	}
	return nil
}

func (s *localStore) ClearMutationQueue(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, deleteAllPendingMutations); err != nil {
		logger.FromContextOr(ctx, s.logger).Err(err).Str("func", "localStore.ClearMutationQueue").Msg("failed to clear pending mutations")
		return fmt.Errorf("failed to clear mutation queue: %w", err)
	}
	return nil
}

// ── response cache ───────────────────────────────────────────────────────────

func (s *localStore) PutCache(ctx context.Context, key string, payload models.Payload) error {
	if payload == nil {
		payload = models.Payload{}
	}
	return s.putCache(ctx, key, false, payload)
}

func (s *localStore) PutCacheList(ctx context.Context, key string, list []models.Payload) error {
	if list == nil {
		list = []models.Payload{}
	}
	return s.putCache(ctx, key, true, list)
}

func (s *localStore) putCache(ctx context.Context, key string, isList bool, v any) error {
	log := logger.FromContextOr(ctx, s.logger)

	data, err := json.Marshal(v)
	if err != nil {
		log.Err(err).Str("func", "localStore.putCache").Str("cache_key", key).Msg("failed to encode cache entry")
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}

	if _, err := s.DB.ExecContext(ctx, upsertCacheEntry, key, isList, string(data), s.now().UnixMilli()); err != nil {
		log.Err(err).Str("func", "localStore.putCache").Str("cache_key", key).Msg("failed to write cache entry")
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	return nil
}

func (s *localStore) GetCache(ctx context.Context, key string) (models.Payload, bool) {
	entry, ok := s.GetCacheEntry(ctx, key)
	if !ok || entry.List != nil {
		return nil, false
	}
	return entry.Payload, true
}

func (s *localStore) GetCacheList(ctx context.Context, key string) ([]models.Payload, bool) {
	entry, ok := s.GetCacheEntry(ctx, key)
	if !ok || entry.List == nil {
		return nil, false
	}
	return entry.List, true
}

// GetCacheEntry returns the raw entry with its timestamp. Exactly one of
// Payload and List is non-nil on success.
func (s *localStore) GetCacheEntry(ctx context.Context, key string) (models.CacheEntry, bool) {
	log := logger.FromContextOr(ctx, s.logger)

	var (
		isList   bool
		raw      string
		cachedAt int64
	)
	err := s.DB.QueryRowContext(ctx, getCacheEntry, key).Scan(&isList, &raw, &cachedAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "localStore.GetCacheEntry").Str("cache_key", key).Msg("failed to read cache entry")
		}
		return models.CacheEntry{}, false
	}

	entry := models.CacheEntry{Key: key, CachedAt: time.UnixMilli(cachedAt)}
	if isList {
		var list []models.Payload
		if err := json.Unmarshal([]byte(raw), &list); err != nil || list == nil {
			log.Warn().Err(err).Str("func", "localStore.GetCacheEntry").Str("cache_key", key).Msg("malformed cached list")
			return models.CacheEntry{}, false
		}
		entry.List = list
	} else {
		var payload models.Payload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload == nil {
			log.Warn().Err(err).Str("func", "localStore.GetCacheEntry").Str("cache_key", key).Msg("malformed cached payload")
			return models.CacheEntry{}, false
		}
		entry.Payload = payload
	}

	return entry, true
}

func (s *localStore) IsCacheFresh(ctx context.Context, key string, maxAge time.Duration) bool {
	entry, ok := s.GetCacheEntry(ctx, key)
	if !ok {
		return false
	}
	return entry.IsFresh(s.now(), maxAge)
}

func (s *localStore) InvalidateCache(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, deleteCacheEntry, key); err != nil {
		logger.FromContextOr(ctx, s.logger).Err(err).Str("func", "localStore.InvalidateCache").Str("cache_key", key).Msg("failed to invalidate cache entry")
		return fmt.Errorf("failed to invalidate cache entry %s: %w", key, err)
	}
	return nil
}

func (s *localStore) ClearAllCache(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, deleteAllCacheEntries); err != nil {
		logger.FromContextOr(ctx, s.logger).Err(err).Str("func", "localStore.ClearAllCache").Msg("failed to clear cache")
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// ── sync metadata ────────────────────────────────────────────────────────────

func (s *localStore) GetLastSyncTime(ctx context.Context, entityType string) (time.Time, bool) {
	log := logger.FromContextOr(ctx, s.logger)

	var raw string
	err := s.DB.QueryRowContext(ctx, getSyncMetadata, lastSyncMetaKey(entityType)).Scan(&raw)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", "localStore.GetLastSyncTime").Str("entity_type", entityType).Msg("failed to read last sync time")
		}
		return time.Time{}, false
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Warn().Err(err).Str("func", "localStore.GetLastSyncTime").Str("entity_type", entityType).Msg("malformed last sync time")
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

func (s *localStore) SetLastSyncTime(ctx context.Context, entityType string, t time.Time) error {
	value := strconv.FormatInt(t.UnixMilli(), 10)
	if _, err := s.DB.ExecContext(ctx, upsertSyncMetadata, lastSyncMetaKey(entityType), value); err != nil {
		logger.FromContextOr(ctx, s.logger).Err(err).Str("func", "localStore.SetLastSyncTime").Str("entity_type", entityType).Msg("failed to write last sync time")
		return fmt.Errorf("failed to set last sync time for %s: %w", entityType, err)
	}
	return nil
}

// ── conflict review queue ────────────────────────────────────────────────────

func (s *localStore) SaveConflict(ctx context.Context, c models.Conflict) error {
	log := logger.FromContextOr(ctx, s.logger)

	if c.Key == "" {
		c.Key = c.Mutation.Key
	}
	if c.DetectedAt.IsZero() {
		c.DetectedAt = s.now()
	}

	payload, err := marshalPayload(c.Mutation.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode conflict payload %s: %w", c.Key, err)
	}
	serverPayload, err := marshalPayload(c.ServerPayload)
	if err != nil {
		return fmt.Errorf("failed to encode conflict server payload %s: %w", c.Key, err)
	}

	_, err = s.DB.ExecContext(ctx, upsertSyncConflict,
		c.Key,
		string(c.Mutation.Operation),
		c.Mutation.EntityType,
		c.Mutation.EntityID,
		payload,
		c.Mutation.EnqueuedAt.UnixMilli(),
		c.Mutation.RetryCount,
		string(c.Mutation.Resolution),
		serverPayload,
		c.DetectedAt.UnixMilli(),
	)
	if err != nil {
		log.Err(err).
			Str("func", "localStore.SaveConflict").
			Str("key", c.Key).
			Str("entity_type", c.Mutation.EntityType).
			Str("entity_id", c.Mutation.EntityID).
			Msg("failed to persist sync conflict")
		return fmt.Errorf("failed to save conflict %s: %w", c.Key, err)
	}
	return nil
}

func (s *localStore) ListConflicts(ctx context.Context) []models.Conflict {
	log := logger.FromContextOr(ctx, s.logger)

	rows, err := s.DB.QueryContext(ctx, listSyncConflicts)
	if err != nil {
		log.Err(err).Str("func", "localStore.ListConflicts").Msg("failed to query conflicts")
		return nil
	}
	defer rows.Close()

	var out []models.Conflict
	for rows.Next() {
		c, err := scanConflict(rows)
		if err != nil {
			log.Warn().Err(err).Str("func", "localStore.ListConflicts").Msg("skipping malformed conflict")
			continue
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "localStore.ListConflicts").Msg("failed iterating conflicts")
	}
	return out
}

func (s *localStore) GetConflict(ctx context.Context, key string) (models.Conflict, bool) {
	log := logger.FromContextOr(ctx, s.logger)

	c, err := scanConflict(s.DB.QueryRowContext(ctx, getSyncConflict, key))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Warn().Err(err).Str("func", "localStore.GetConflict").Str("key", key).Msg("failed to read conflict")
		}
		return models.Conflict{}, false
	}
	return c, true
}

func (s *localStore) RemoveConflict(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, deleteSyncConflict, key); err != nil {
		logger.FromContextOr(ctx, s.logger).Err(err).Str("func", "localStore.RemoveConflict").Str("key", key).Msg("failed to remove conflict")
		return fmt.Errorf("failed to remove conflict %s: %w", key, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConflict(row rowScanner) (models.Conflict, error) {
	var (
		c                      models.Conflict
		op, resolution         string
		payload, serverPayload sql.NullString
		enqueuedAt, detectedAt int64
	)
	if err := row.Scan(&c.Key, &op, &c.Mutation.EntityType, &c.Mutation.EntityID, &payload, &enqueuedAt, &c.Mutation.RetryCount, &resolution, &serverPayload, &detectedAt); err != nil {
		return models.Conflict{}, err
	}

	var err error
	if c.Mutation.Operation, err = models.ParseOperationKind(op); err != nil {
		return models.Conflict{}, err
	}
	if c.Mutation.Payload, err = unmarshalPayload(payload); err != nil {
		return models.Conflict{}, err
	}
	if c.ServerPayload, err = unmarshalPayload(serverPayload); err != nil {
		return models.Conflict{}, err
	}
	c.Mutation.Key = c.Key
	c.Mutation.Resolution = models.ParseConflictResolution(resolution)
	c.Mutation.EnqueuedAt = time.UnixMilli(enqueuedAt)
	c.DetectedAt = time.UnixMilli(detectedAt)

	return c, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func marshalPayload(p models.Payload) (sql.NullString, error) {
	if p == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func unmarshalPayload(raw sql.NullString) (models.Payload, error) {
	if !raw.Valid {
		return nil, nil
	}
	var p models.Payload
	if err := json.Unmarshal([]byte(raw.String), &p); err != nil {
		return nil, fmt.Errorf("malformed payload: %w", err)
	}
	return p, nil
}

func unixMilliOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
