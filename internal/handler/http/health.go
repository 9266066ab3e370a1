package http

import (
	"net/http"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/service"
)

// health answers 200 while the backend can serve requests and 503 when its
// database is unreachable, so connectivity probes treat it as offline.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	resp := h.services.AppInfoService.Health(r.Context())

	status := http.StatusOK
	if resp.Status != service.HealthStatusOK {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, r, resp, status)
}
