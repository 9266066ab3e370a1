// Package http implements the REST transport of the reference backend.
//
// It exposes the tenant-scoped entity API consumed by the sync client, the
// token endpoint and the health probe. Authentication, request tracing,
// access logging and response compression are handled here before requests
// are delegated to the service layer.
package http
