package service

import "errors"

var (
	// ErrNoCachedData is returned by cache-fallback reads when neither a live
	// call nor a cached value is available.
	ErrNoCachedData = errors.New("no connectivity and no cached data")

	// ErrConflictNotFound is returned by ResolveConflict for an unknown key.
	ErrConflictNotFound = errors.New("conflict was not found")

	// ErrUnknownOperation is returned when a queued mutation carries an
	// operation the engine cannot apply.
	ErrUnknownOperation = errors.New("unknown mutation operation")
)
