package handler

import (
	"encoding/json"
	"net/http"

	"garage-backend/internal/model"
	"garage-backend/internal/service"

	"github.com/rs/zerolog"
)

// BillHandler handles bill-related HTTP requests.
type BillHandler struct {
	service service.BillService
	logger  zerolog.Logger
}

// NewBillHandler creates a new bill handler.
func NewBillHandler(service service.BillService, logger zerolog.Logger) *BillHandler {
	return &BillHandler{
		service: service,
		logger:  logger.With().Str("handler", "bill").Logger(),
	}
}

// Create handles POST /api/bills requests.
func (h *BillHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid request body", h.logger)
		return
	}

	aggregate, err := h.service.CreateBill(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, aggregate)
}

// GetByID handles GET /api/bills/{id} requests.
func (h *BillHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/bills/")
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid bill ID", h.logger)
		return
	}
	billID, err := model.NewBillID(id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	aggregate, err := h.service.GetBill(r.Context(), billID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, aggregate)
}

// Delete handles DELETE /api/bills/{id} requests.
func (h *BillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/bills/")
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid bill ID", h.logger)
		return
	}
	billID, err := model.NewBillID(id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := h.service.DeleteBill(r.Context(), billID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
