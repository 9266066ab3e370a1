// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
	"time"
)

// Payload is an opaque JSON object owned by a feature module.
// The sync layer never interprets it except for the identity and audit
// fields "id", "createdAt" and "updatedAt".
type Payload map[string]any

// Identity and audit fields the server owns on every entity payload.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Clone returns a shallow copy of p. A nil payload stays nil.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// OperationKind is the kind of write a pending mutation replays.
type OperationKind string

const (
	OperationCreate OperationKind = "create"
	OperationUpdate OperationKind = "update"
	OperationDelete OperationKind = "delete"
)

// ParseOperationKind converts a stored value back into an [OperationKind].
// Unknown values are reported as an error so that the caller can skip the record.
func ParseOperationKind(s string) (OperationKind, error) {
	switch OperationKind(s) {
	case OperationCreate, OperationUpdate, OperationDelete:
		return OperationKind(s), nil
	default:
		return "", fmt.Errorf("unknown operation kind %q", s)
	}
}

// ConflictResolution is the policy applied when a queued update meets a
// server record that may have changed since the update was enqueued.
type ConflictResolution string

const (
	// ResolutionServerWins skips the queued update when the server record was
	// updated strictly after the mutation was enqueued.
	ResolutionServerWins ConflictResolution = "server_wins"
	// ResolutionClientWins always applies the queued payload.
	ResolutionClientWins ConflictResolution = "client_wins"
	// ResolutionMerge overlays queued fields on top of the server record.
	ResolutionMerge ConflictResolution = "merge"
	// ResolutionManual moves a conflicting update into the review queue.
	ResolutionManual ConflictResolution = "manual"
)

// ParseConflictResolution maps a stored value to a policy.
// Empty and unknown values fall back to [ResolutionServerWins].
func ParseConflictResolution(s string) ConflictResolution {
	switch ConflictResolution(s) {
	case ResolutionClientWins, ResolutionMerge, ResolutionManual:
		return ConflictResolution(s)
	default:
		return ResolutionServerWins
	}
}

// PendingMutation is a queued create, update or delete that has not yet
// been confirmed by the remote API.
type PendingMutation struct {
	Key        string
	Operation  OperationKind
	EntityType string
	EntityID   string
	// Payload is nil for deletes.
	Payload    Payload
	EnqueuedAt time.Time
	RetryCount int
	Resolution ConflictResolution

	LastError     string
	LastAttemptAt time.Time
}

// BuildMutationKey derives the queue key of a mutation from its identity and
// enqueue time. nonce disambiguates enqueues landing in the same millisecond.
func BuildMutationKey(entityType, entityID string, op OperationKind, enqueuedAt time.Time, nonce string) string {
	return strings.Join([]string{
		entityType,
		entityID,
		string(op),
		fmt.Sprintf("%d", enqueuedAt.UnixMilli()),
		nonce,
	}, ":")
}
