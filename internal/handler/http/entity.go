package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/logger"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/internal/utils"
	"github.com/hiddenbraintechnologies-sys/Enterprise-Tenant-Manager-sub007/models"
)

// maxEntityBodyBytes caps a single entity document.
const maxEntityBodyBytes = 1 << 20

func (h *Handler) listEntities(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	collection := chi.URLParam(r, collectionParam)

	entities, err := h.services.EntityService.ListEntities(r.Context(), collection)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listEntities").Str("collection", collection).Msg("listing entities failed")
		writeServiceError(w, err)
		return
	}

	out := make([]models.Payload, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.ToPayload())
	}
	h.writeJSON(w, r, out, http.StatusOK)
}

func (h *Handler) getEntity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	collection, id := chi.URLParam(r, collectionParam), chi.URLParam(r, entityIDParam)

	entity, err := h.services.EntityService.GetEntity(r.Context(), collection, id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getEntity").Str("collection", collection).Str("entity_id", id).Send()
		writeServiceError(w, err)
		return
	}

	h.writeJSON(w, r, entity.ToPayload(), http.StatusOK)
}

func (h *Handler) createEntity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	collection := chi.URLParam(r, collectionParam)

	data, err := decodePayload(w, r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createEntity").Msg("error decoding entity")
		writeServiceError(w, err)
		return
	}

	entity, err := h.services.EntityService.CreateEntity(r.Context(), collection, data)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createEntity").Str("collection", collection).Msg("entity creation failed")
		writeServiceError(w, err)
		return
	}

	h.writeJSON(w, r, entity.ToPayload(), http.StatusCreated)
}

func (h *Handler) updateEntity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	collection, id := chi.URLParam(r, collectionParam), chi.URLParam(r, entityIDParam)

	data, err := decodePayload(w, r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateEntity").Msg("error decoding entity")
		writeServiceError(w, err)
		return
	}

	entity, err := h.services.EntityService.UpdateEntity(r.Context(), collection, id, data)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateEntity").Str("collection", collection).Str("entity_id", id).Msg("entity update failed")
		writeServiceError(w, err)
		return
	}

	h.writeJSON(w, r, entity.ToPayload(), http.StatusOK)
}

func (h *Handler) deleteEntity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	collection, id := chi.URLParam(r, collectionParam), chi.URLParam(r, entityIDParam)

	if err := h.services.EntityService.DeleteEntity(r.Context(), collection, id); err != nil {
		log.Err(err).Str("func", "*Handler.deleteEntity").Str("collection", collection).Str("entity_id", id).Send()
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.writeJSON").Msg("error writing response")
	}
}

// decodePayload reads a JSON object body. null, arrays and scalars are rejected.
func decodePayload(w http.ResponseWriter, r *http.Request) (models.Payload, error) {
	var data models.Payload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEntityBodyBytes)).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	if data == nil {
		return nil, ErrInvalidRequestBody
	}
	return data, nil
}
