// Package utils provides general-purpose helpers shared by the sync client
// and the reference backend: typed context keys, JSON response writing,
// the resty-based HTTP client, JWT helpers, identifier generation and a
// generic fan-out broadcaster for event streams.
package utils

import (
	"context"
)

// contextKey is a private type for context keys, preventing collisions with
// string keys set by other packages.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// TenantIDCtxKey stores the authenticated tenant identifier in a request context.
var TenantIDCtxKey = contextKey("tenantID")

// WithTenantID returns a copy of ctx carrying tenantID.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, TenantIDCtxKey, tenantID)
}

// GetTenantIDFromContext retrieves the tenant identifier from ctx.
// ok is false when the value is missing, empty or of an unexpected type.
func GetTenantIDFromContext(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(TenantIDCtxKey).(string)
	return tenantID, ok && tenantID != ""
}
