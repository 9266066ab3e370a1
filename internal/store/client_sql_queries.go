// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	upsertPendingMutation = `
		INSERT INTO pending_mutations (
			mutation_key,
			operation,
			entity_type,
			entity_id,
			payload,
			enqueued_at,
			retry_count,
			resolution,
			last_error,
			last_attempt_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (mutation_key) DO UPDATE SET
			payload         = excluded.payload,
			retry_count     = excluded.retry_count,
			resolution      = excluded.resolution,
			last_error      = excluded.last_error,
			last_attempt_at = excluded.last_attempt_at;`

	listPendingMutations = `
		SELECT
			mutation_key,
			operation,
			entity_type,
			entity_id,
			payload,
			enqueued_at,
			retry_count,
			resolution,
			last_error,
			last_attempt_at
		FROM pending_mutations
		ORDER BY enqueued_at ASC, seq ASC;`

	countPendingMutations = `SELECT COUNT(*) FROM pending_mutations;`

	deletePendingMutation = `DELETE FROM pending_mutations WHERE mutation_key = ?;`

	deleteAllPendingMutations = `DELETE FROM pending_mutations;`

	upsertCacheEntry = `
		INSERT INTO cache_entries (cache_key, is_list, payload, cached_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (cache_key) DO UPDATE SET
			is_list   = excluded.is_list,
			payload   = excluded.payload,
			cached_at = excluded.cached_at;`

	getCacheEntry = `SELECT is_list, payload, cached_at FROM cache_entries WHERE cache_key = ?;`

	deleteCacheEntry = `DELETE FROM cache_entries WHERE cache_key = ?;`

	deleteAllCacheEntries = `DELETE FROM cache_entries;`

	upsertSyncMetadata = `
		INSERT INTO sync_metadata (meta_key, meta_value)
		VALUES (?, ?)
		ON CONFLICT (meta_key) DO UPDATE SET meta_value = excluded.meta_value;`

	getSyncMetadata = `SELECT meta_value FROM sync_metadata WHERE meta_key = ?;`

	upsertSyncConflict = `
		INSERT INTO sync_conflicts (
			conflict_key,
			operation,
			entity_type,
			entity_id,
			payload,
			enqueued_at,
			retry_count,
			resolution,
			server_payload,
			detected_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (conflict_key) DO UPDATE SET
			payload        = excluded.payload,
			server_payload = excluded.server_payload,
			detected_at    = excluded.detected_at;`

	selectSyncConflicts = `
		SELECT
			conflict_key,
			operation,
			entity_type,
			entity_id,
			payload,
			enqueued_at,
			retry_count,
			resolution,
			server_payload,
			detected_at
		FROM sync_conflicts`

	listSyncConflicts = selectSyncConflicts + ` ORDER BY detected_at ASC, conflict_key ASC;`

	getSyncConflict = selectSyncConflicts + ` WHERE conflict_key = ?;`

	deleteSyncConflict = `DELETE FROM sync_conflicts WHERE conflict_key = ?;`
)

// lastSyncMetaKey is the sync_metadata key of an entity type's last sync time.
func lastSyncMetaKey(entityType string) string {
	return "last_sync:" + entityType
}
