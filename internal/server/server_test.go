package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/config"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/handler"
	myHTTP "github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/handler/http"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_RequiresHTTPHandler(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, config.Server{HTTPAddress: ":0"}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)

	_, err = NewServer(nil, config.Server{HTTPAddress: ":0"}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewHTTPServer_AppliesTimeouts(t *testing.T) {
	plain := newHTTPServer(http.NotFoundHandler(), config.Server{HTTPAddress: ":8080"}, logger.Nop())
	assert.Equal(t, ":8080", plain.server.Addr)
	assert.Equal(t, readHeaderTimeout, plain.server.ReadHeaderTimeout)

	bounded := newHTTPServer(http.NotFoundHandler(), config.Server{HTTPAddress: ":8080", RequestTimeout: time.Second}, logger.Nop())
	_, unwrapped := bounded.server.Handler.(http.HandlerFunc)
	assert.False(t, unwrapped)
}

func TestServer_RunStopsOnContextCancel(t *testing.T) {
	handlers := &handler.Handlers{HTTP: myHTTP.NewHandler(&service.Services{}, logger.Nop())}
	srv, err := NewServer(handlers, config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.(*server).run(ctx)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}
