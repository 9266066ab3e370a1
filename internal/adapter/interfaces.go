// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client's transport to the tenant REST backend.
//
// The primary abstraction is [RemoteAPI], which decouples the sync engine and
// the offline repositories from the underlying protocol. The package ships a
// JSON/REST implementation on resty ([NewHTTPRemoteAPI]) that authenticates
// as a tenant and keeps its bearer token fresh.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for protocol-agnostic
// handling (e.g. [ErrNotFound] for 404). Connection-level failures wrap
// [ErrTransport].
package adapter

import (
	"context"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_api_mock.go -package=mock

// RemoteAPI performs JSON REST calls against the backend. Paths are absolute
// ("/api/customers/c1"); see [Endpoints] for the entity type to path table.
type RemoteAPI interface {
	// Get fetches a single object.
	Get(ctx context.Context, path string) (models.Payload, error)

	// List fetches a JSON array of objects.
	List(ctx context.Context, path string) ([]models.Payload, error)

	// Create POSTs payload to a collection path and returns the stored object.
	// An empty response body yields a nil payload.
	Create(ctx context.Context, path string, payload models.Payload) (models.Payload, error)

	// Update PUTs payload to an object path and returns the stored object.
	Update(ctx context.Context, path string, payload models.Payload) (models.Payload, error)

	// Delete removes the object at path.
	Delete(ctx context.Context, path string) error

	// Ping checks that the backend is reachable. It does not authenticate.
	Ping(ctx context.Context) error
}
