package adapter

import "errors"

// Errors mapped from backend responses.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected http status")

	// ErrTransport wraps failures below HTTP: refused connections, DNS
	// errors, timeouts. The offline repositories treat it as "offline".
	ErrTransport = errors.New("transport failure")

	// ErrMalformedResponse is returned when a 2xx body is not the expected JSON.
	ErrMalformedResponse = errors.New("malformed response body")
)
