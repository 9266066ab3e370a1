// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/service"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/store"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/validators"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "good-token"

var entityTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newEntityRouter serves the full router with a token that always resolves
// to tenant "acme".
func newEntityRouter(entities *mockEntityService) http.Handler {
	h := NewHandler(&service.Services{
		EntityService: entities,
		AuthService: &mockAuthService{
			parseFn: func(_ context.Context, tokenString string) (models.Token, error) {
				if tokenString != testToken {
					return models.Token{}, service.ErrTokenIsExpiredOrInvalid
				}
				return models.Token{TenantID: "acme"}, nil
			},
		},
	}, logger.Nop())
	return h.Init()
}

func doEntityRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+testToken)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func storedEntity(id string, data models.Payload) models.Entity {
	return models.Entity{
		TenantID:   "acme",
		Collection: "customers",
		ID:         id,
		Data:       data,
		CreatedAt:  entityTime,
		UpdatedAt:  entityTime,
	}
}

func TestListEntities(t *testing.T) {
	router := newEntityRouter(&mockEntityService{
		listFn: func(ctx context.Context, collection string) ([]models.Entity, error) {
			assert.Equal(t, "acme", tenantFromCtx(ctx))
			assert.Equal(t, "customers", collection)
			return []models.Entity{storedEntity("c1", models.Payload{"name": "Jane"})}, nil
		},
	})

	rec := doEntityRequest(t, router, http.MethodGet, "/api/customers", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[{
		"id": "c1",
		"name": "Jane",
		"createdAt": "2026-03-01T12:00:00Z",
		"updatedAt": "2026-03-01T12:00:00Z"
	}]`, rec.Body.String())
}

func TestListEntities_EmptyCollectionIsArray(t *testing.T) {
	router := newEntityRouter(&mockEntityService{
		listFn: func(context.Context, string) ([]models.Entity, error) { return nil, nil },
	})

	rec := doEntityRequest(t, router, http.MethodGet, "/api/bookings", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetEntity(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "found", wantStatus: http.StatusOK},
		{name: "missing", err: store.ErrEntityNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid id", err: fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrInvalidEntityID), wantStatus: http.StatusBadRequest},
		{name: "database down", err: store.ErrStoreUnavailable, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newEntityRouter(&mockEntityService{
				getFn: func(_ context.Context, collection, id string) (models.Entity, error) {
					assert.Equal(t, "customers", collection)
					assert.Equal(t, "c1", id)
					if tt.err != nil {
						return models.Entity{}, tt.err
					}
					return storedEntity("c1", models.Payload{"name": "Jane"}), nil
				},
			})

			rec := doEntityRequest(t, router, http.MethodGet, "/api/customers/c1", "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.err != nil {
				var body models.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.NotEmpty(t, body.Error)
			}
		})
	}
}

func TestGetEntity_InternalErrorIsNotEchoed(t *testing.T) {
	router := newEntityRouter(&mockEntityService{
		getFn: func(context.Context, string, string) (models.Entity, error) {
			return models.Entity{}, fmt.Errorf("%w: relation entities does not exist", store.ErrExecutingQuery)
		},
	})

	rec := doEntityRequest(t, router, http.MethodGet, "/api/customers/c1", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "relation")
}

func TestCreateEntity(t *testing.T) {
	router := newEntityRouter(&mockEntityService{
		createFn: func(ctx context.Context, collection string, data models.Payload) (models.Entity, error) {
			assert.Equal(t, "acme", tenantFromCtx(ctx))
			assert.Equal(t, models.Payload{"id": "c1", "name": "Jane"}, data)
			return storedEntity("c1", models.Payload{"name": "Jane"}), nil
		},
	})

	rec := doEntityRequest(t, router, http.MethodPost, "/api/customers", `{"id":"c1","name":"Jane"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got models.Payload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "c1", got["id"])
	assert.Equal(t, "2026-03-01T12:00:00Z", got["updatedAt"])
}

func TestCreateEntity_Duplicate(t *testing.T) {
	router := newEntityRouter(&mockEntityService{
		createFn: func(context.Context, string, models.Payload) (models.Entity, error) {
			return models.Entity{}, store.ErrEntityAlreadyExists
		},
	})

	rec := doEntityRequest(t, router, http.MethodPost, "/api/customers", `{"id":"c1"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateEntity_RejectsNonObjectBody(t *testing.T) {
	router := newEntityRouter(&mockEntityService{
		createFn: func(context.Context, string, models.Payload) (models.Entity, error) {
			t.Error("service must not be called")
			return models.Entity{}, nil
		},
	})

	for _, body := range []string{"null", "[1,2]", `"text"`, "{broken"} {
		rec := doEntityRequest(t, router, http.MethodPost, "/api/customers", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestUpdateEntity(t *testing.T) {
	router := newEntityRouter(&mockEntityService{
		updateFn: func(_ context.Context, collection, id string, data models.Payload) (models.Entity, error) {
			assert.Equal(t, "customers", collection)
			assert.Equal(t, "c1", id)
			assert.Equal(t, "Janet", data["name"])
			return storedEntity(id, data), nil
		},
	})

	rec := doEntityRequest(t, router, http.MethodPut, "/api/customers/c1", `{"name":"Janet"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Janet"`)
}

func TestDeleteEntity(t *testing.T) {
	deleted := false
	router := newEntityRouter(&mockEntityService{
		deleteFn: func(ctx context.Context, collection, id string) error {
			assert.Equal(t, "acme", tenantFromCtx(ctx))
			deleted = collection == "customers" && id == "c1"
			return nil
		},
	})

	rec := doEntityRequest(t, router, http.MethodDelete, "/api/customers/c1", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.True(t, deleted)
}

func TestDeleteEntity_Missing(t *testing.T) {
	router := newEntityRouter(&mockEntityService{
		deleteFn: func(context.Context, string, string) error { return store.ErrEntityNotFound },
	})

	rec := doEntityRequest(t, router, http.MethodDelete, "/api/customers/c1", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
