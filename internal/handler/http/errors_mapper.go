package http

import (
	"errors"
	"net/http"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/service"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/store"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/utils"
)

var errorStatusMap = map[error]int{
	ErrInvalidRequestBody:              http.StatusBadRequest,
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongCredentials:        http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrNoTenantInContext:       http.StatusUnauthorized,

	store.ErrEntityNotFound:      http.StatusNotFound,
	store.ErrTenantNotFound:      http.StatusNotFound,
	store.ErrEntityAlreadyExists: http.StatusConflict,
	store.ErrTenantAlreadyExists: http.StatusConflict,
	store.ErrStoreUnavailable:    http.StatusServiceUnavailable,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError maps err to a status code. Internal failures are not
// echoed to the caller.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	utils.WriteError(w, msg, status)
}
