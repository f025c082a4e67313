package handler

import (
	"encoding/json"
	"net/http"

	"garage-backend/internal/model"
	"garage-backend/internal/pagination"
	"garage-backend/internal/service"

	"github.com/rs/zerolog"
)

// StoreHandler handles store-related HTTP requests.
type StoreHandler struct {
	service service.StoreService
	logger  zerolog.Logger
}

// NewStoreHandler creates a new store handler.
func NewStoreHandler(service service.StoreService, logger zerolog.Logger) *StoreHandler {
	return &StoreHandler{
		service: service,
		logger:  logger.With().Str("handler", "store").Logger(),
	}
}

// Create handles POST /api/stores requests.
func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.StoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid request body", h.logger)
		return
	}

	store, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, store)
}

// GetByID handles GET /api/stores/{id} requests.
func (h *StoreHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	storeID, ok := h.storeID(w, r)
	if !ok {
		return
	}

	store, err := h.service.GetByID(r.Context(), storeID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, store)
}

// List handles GET /api/stores requests with limit/page paging.
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromQuery(r.URL.Query())

	stores, err := h.service.List(r.Context(), params.Limit, params.Offset())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Stores []model.Store    `json:"stores"`
		Links  pagination.Links `json:"links"`
	}{
		Stores: stores,
		Links:  params.PageLinks("/api/stores", len(stores)),
	})
}

// Update handles PUT /api/stores/{id} requests.
func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	storeID, ok := h.storeID(w, r)
	if !ok {
		return
	}

	var req model.StoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid request body", h.logger)
		return
	}

	store, err := h.service.Update(r.Context(), storeID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, store)
}

// Delete handles DELETE /api/stores/{id} requests.
func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	storeID, ok := h.storeID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), storeID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *StoreHandler) storeID(w http.ResponseWriter, r *http.Request) (model.StoreID, bool) {
	id, ok := pathID(r.URL.Path, "/api/stores/")
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid store ID", h.logger)
		return 0, false
	}
	storeID, err := model.NewStoreID(id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return 0, false
	}
	return storeID, true
}
