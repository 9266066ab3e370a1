package http

import (
	"net/http"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/utils"
	"github.com/rs/zerolog"
)

// auth enforces bearer JWT authentication.
//
// On success the tenant named by the token subject is stored in the request
// context with [utils.WithTenantID], which scopes every downstream storage
// call to that tenant. Missing, malformed, expired or foreign tokens are
// rejected with 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteError(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		token, err := h.services.AuthService.ParseToken(r.Context(), tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			writeServiceError(w, err)
			return
		}

		l := log.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("tenant_id", token.TenantID)
		})
		ctx := l.WithContext(utils.WithTenantID(r.Context(), token.TenantID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
