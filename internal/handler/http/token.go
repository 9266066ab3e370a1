package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

// issueToken exchanges tenant credentials for a bearer token.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.issueToken").Msg("error decoding token request")
		writeServiceError(w, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err))
		return
	}

	token, err := h.services.AuthService.IssueToken(r.Context(), req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.issueToken").Str("tenant_id", req.TenantID).Msg("token was not issued")
		writeServiceError(w, err)
		return
	}

	resp := models.TokenResponse{Token: token.SignedString}
	if token.ExpiresAt != nil {
		resp.ExpiresAt = token.ExpiresAt.Unix()
	}

	log.Info().Str("tenant_id", token.TenantID).Msg("token issued")
	h.writeJSON(w, r, resp, http.StatusOK)
}
