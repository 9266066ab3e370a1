package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test-role")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-role", entry["role"])
	_, hasTime := entry["time"]
	assert.True(t, hasTime, "expected 'time' field in log entry")
}

func TestNewLogger_CallerFieldName(t *testing.T) {
	NewLogger("caller-role")
	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewClientLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")
	l := NewClientLogger("client", path)

	l.Info().Str("entity_type", "customer").Msg("queued")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"entity_type":"customer"`))
	assert.True(t, strings.Contains(string(data), `"role":"client"`))
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

func TestGetChildLogger_DoesNotAffectParent(t *testing.T) {
	var parentBuf, childBuf bytes.Buffer
	parent := &Logger{zerolog.New(&parentBuf)}
	child := parent.GetChildLogger()
	child.Logger = child.Output(&childBuf).With().Str("trace_id", "abc").Logger()

	parent.Info().Msg("parent")
	child.Info().Msg("child")

	assert.NotContains(t, parentBuf.String(), "trace_id")
	assert.Contains(t, childBuf.String(), "trace_id")
}

func TestFromContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{zerolog.New(&buf).With().Str("k", "v").Logger()}
	ctx := l.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from ctx")

	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestFromRequest_UsesRequestContext(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{zerolog.New(&buf)}
	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(l.WithContext(r.Context()))

	FromRequest(r).Info().Msg("from request")

	assert.Contains(t, buf.String(), "from request")
}

func TestFromContext_WithoutLoggerIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		FromContext(context.Background()).Info().Msg("dropped")
	})
}

func TestFromContextOr(t *testing.T) {
	var fallbackBuf, ctxBuf bytes.Buffer
	fallback := &Logger{zerolog.New(&fallbackBuf)}

	FromContextOr(context.Background(), fallback).Info().Msg("to fallback")
	assert.Contains(t, fallbackBuf.String(), "to fallback")

	attached := &Logger{zerolog.New(&ctxBuf)}
	ctx := attached.WithContext(context.Background())
	FromContextOr(ctx, fallback).Info().Msg("to ctx")
	assert.Contains(t, ctxBuf.String(), "to ctx")
	assert.NotContains(t, fallbackBuf.String(), "to ctx")
}
