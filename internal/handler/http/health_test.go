package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/service"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		resp       models.HealthResponse
		wantStatus int
		wantBody   string
	}{
		{
			name:       "ok",
			resp:       models.HealthResponse{Status: service.HealthStatusOK, Version: "1.2.0"},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ok","version":"1.2.0"}`,
		},
		{
			name:       "degraded",
			resp:       models.HealthResponse{Status: service.HealthStatusDegraded, Version: "1.2.0"},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"degraded","version":"1.2.0"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&service.Services{AppInfoService: &mockAppInfoService{resp: tt.resp}}, logger.Nop())

			rec := httptest.NewRecorder()
			h.health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
