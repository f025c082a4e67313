package handler

import (
	"encoding/json"
	"net/http"

	"garage-backend/internal/model"
	"garage-backend/internal/pagination"
	"garage-backend/internal/service"

	"github.com/rs/zerolog"
)

// DriverHandler handles driver-related HTTP requests.
type DriverHandler struct {
	service service.DriverService
	logger  zerolog.Logger
}

// NewDriverHandler creates a new driver handler.
func NewDriverHandler(service service.DriverService, logger zerolog.Logger) *DriverHandler {
	return &DriverHandler{
		service: service,
		logger:  logger.With().Str("handler", "driver").Logger(),
	}
}

// Create handles POST /api/drivers requests.
func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.DriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid request body", h.logger)
		return
	}

	driver, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, driver)
}

// GetByID handles GET /api/drivers/{id} requests.
func (h *DriverHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	driverID, ok := h.driverID(w, r)
	if !ok {
		return
	}

	driver, err := h.service.GetByID(r.Context(), driverID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, driver)
}

// List handles GET /api/drivers requests with limit/page paging.
func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromQuery(r.URL.Query())

	drivers, err := h.service.List(r.Context(), params.Limit, params.Offset())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Drivers []model.Driver   `json:"drivers"`
		Links   pagination.Links `json:"links"`
	}{
		Drivers: drivers,
		Links:   params.PageLinks("/api/drivers", len(drivers)),
	})
}

// Update handles PUT /api/drivers/{id} requests.
func (h *DriverHandler) Update(w http.ResponseWriter, r *http.Request) {
	driverID, ok := h.driverID(w, r)
	if !ok {
		return
	}

	var req model.DriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid request body", h.logger)
		return
	}

	driver, err := h.service.Update(r.Context(), driverID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, driver)
}

// Delete handles DELETE /api/drivers/{id} requests.
func (h *DriverHandler) Delete(w http.ResponseWriter, r *http.Request) {
	driverID, ok := h.driverID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), driverID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DriverHandler) driverID(w http.ResponseWriter, r *http.Request) (model.DriverID, bool) {
	id, ok := pathID(r.URL.Path, "/api/drivers/")
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid driver ID", h.logger)
		return 0, false
	}
	driverID, err := model.NewDriverID(id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return 0, false
	}
	return driverID, true
}
