package service

import (
	"strings"
	"time"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

// conflictDecision is what the engine does with a queued update after
// comparing it with the server record.
type conflictDecision int

const (
	// decisionApply writes the resolved payload.
	decisionApply conflictDecision = iota
	// decisionSkip keeps the server version; nothing is written.
	decisionSkip
	// decisionEscalate moves the update to the conflict review queue.
	decisionEscalate
)

// resolveConflict reconciles a queued update with the current server record.
// A nil server record means the entity does not exist remotely and the
// queued payload is applied as is.
func resolveConflict(m models.PendingMutation, server models.Payload) (models.Payload, conflictDecision) {
	if server == nil {
		return m.Payload, decisionApply
	}

	switch m.Resolution {
	case models.ResolutionClientWins:
		return m.Payload, decisionApply

	case models.ResolutionMerge:
		return mergePayloads(server, m.Payload), decisionApply

	case models.ResolutionManual:
		if serverChangedAfter(server, m.EnqueuedAt) {
			return nil, decisionEscalate
		}
		return m.Payload, decisionApply

	default: // models.ResolutionServerWins
		if serverChangedAfter(server, m.EnqueuedAt) {
			return nil, decisionSkip
		}
		return m.Payload, decisionApply
	}
}

// mergePayloads overlays local on a copy of server. Identity and audit
// fields always keep the server values.
func mergePayloads(server, local models.Payload) models.Payload {
	out := server.Clone()
	if out == nil {
		out = models.Payload{}
	}
	for k, v := range local {
		switch k {
		case models.FieldID, models.FieldCreatedAt, models.FieldUpdatedAt:
			continue
		}
		out[k] = v
	}
	return out
}

// serverChangedAfter reports whether the server updatedAt is strictly after t.
// A missing or unreadable timestamp counts as not changed.
func serverChangedAfter(server models.Payload, t time.Time) bool {
	updatedAt, ok := parseUpdatedAt(server[models.FieldUpdatedAt])
	return ok && updatedAt.After(t)
}

// parseUpdatedAt accepts RFC 3339 strings and epoch milliseconds.
func parseUpdatedAt(v any) (time.Time, bool) {
	switch ts := v.(type) {
	case string:
		ts = strings.TrimSpace(ts)
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
			if t, err := time.Parse(layout, ts); err == nil {
				return t, true
			}
		}
	case float64:
		return time.UnixMilli(int64(ts)), true
	case int64:
		return time.UnixMilli(ts), true
	case int:
		return time.UnixMilli(int64(ts)), true
	}
	return time.Time{}, false
}
