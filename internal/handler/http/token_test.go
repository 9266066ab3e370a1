package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/service"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/store"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenHandler(issue func(context.Context, models.TokenRequest) (models.Token, error)) *Handler {
	return NewHandler(&service.Services{AuthService: &mockAuthService{issueFn: issue}}, logger.Nop())
}

func postToken(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.issueToken(rec, req)
	return rec
}

func TestIssueToken(t *testing.T) {
	expiresAt := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	h := newTokenHandler(func(_ context.Context, req models.TokenRequest) (models.Token, error) {
		assert.Equal(t, models.TokenRequest{TenantID: "acme", APIKey: "secret"}, req)
		return models.Token{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expiresAt)},
			SignedString:     "signed.jwt.value",
			TenantID:         "acme",
		}, nil
	})

	rec := postToken(h, `{"tenantId":"acme","apiKey":"secret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "signed.jwt.value", resp.Token)
	assert.Equal(t, expiresAt.Unix(), resp.ExpiresAt)
}

func TestIssueToken_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "malformed body", body: `{"tenantId":`, wantStatus: http.StatusBadRequest},
		{name: "incomplete request", body: `{"tenantId":"acme"}`, err: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
		{name: "wrong credentials", body: `{"tenantId":"acme","apiKey":"x"}`, err: service.ErrWrongCredentials, wantStatus: http.StatusUnauthorized},
		{name: "database down", body: `{"tenantId":"acme","apiKey":"x"}`, err: store.ErrStoreUnavailable, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTokenHandler(func(context.Context, models.TokenRequest) (models.Token, error) {
				return models.Token{}, tt.err
			})

			rec := postToken(h, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
