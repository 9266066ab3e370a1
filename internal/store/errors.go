package store

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrInvalidMutation is returned by EnqueueMutation for a mutation without
	// a known operation kind, entity type or entity id.
	ErrInvalidMutation = errors.New("invalid pending mutation")

	// ErrMutationNotSaved is returned when the queue write fails. The caller
	// must treat the write as lost.
	ErrMutationNotSaved = errors.New("pending mutation was not saved")

	// ErrEntityNotFound is returned when no entity matches the tenant,
	// collection and id.
	ErrEntityNotFound = errors.New("entity was not found")

	// ErrEntityAlreadyExists is returned on a create whose id is taken.
	ErrEntityAlreadyExists = errors.New("entity already exists")

	// ErrTenantNotFound is returned when the tenant id is unknown.
	ErrTenantNotFound = errors.New("tenant was not found")

	// ErrTenantAlreadyExists is returned when registering a taken tenant id.
	ErrTenantAlreadyExists = errors.New("tenant already exists")

	// ErrStoreUnavailable wraps errors the Postgres classifier marks as
	// retryable (connection loss, serialization failure, deadlock).
	ErrStoreUnavailable = errors.New("store temporarily unavailable")
)

// Low-level database operation errors.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a query fails to execute.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails midway.
	ErrScanningRows = errors.New("failed to scan rows")
)
