// Package server runs the backend HTTP server: startup, signal handling and
// graceful shutdown.
package server
