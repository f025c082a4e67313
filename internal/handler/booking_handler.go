package handler

import (
	"encoding/json"
	"net/http"

	"garage-backend/internal/model"
	"garage-backend/internal/pagination"
	"garage-backend/internal/service"

	"github.com/rs/zerolog"
)

// BookingHandler handles walk-in rental-car booking HTTP requests.
type BookingHandler struct {
	service service.BookingService
	logger  zerolog.Logger
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(service service.BookingService, logger zerolog.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		logger:  logger.With().Str("handler", "booking").Logger(),
	}
}

// Create handles POST /api/bookings requests.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid request body", h.logger)
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

// GetByID handles GET /api/bookings/{id} requests.
func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/bookings/")
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid booking ID", h.logger)
		return
	}
	bookingID, err := model.NewBookingID(id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// List handles GET /api/bookings requests with limit/page paging.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromQuery(r.URL.Query())

	bookings, err := h.service.List(r.Context(), params.Limit, params.Offset())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Bookings []model.Booking  `json:"bookings"`
		Links    pagination.Links `json:"links"`
	}{
		Bookings: bookings,
		Links:    params.PageLinks("/api/bookings", len(bookings)),
	})
}

// UpdateStatus handles PATCH /api/bookings/{id} requests.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/bookings/")
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid booking ID", h.logger)
		return
	}
	bookingID, err := model.NewBookingID(id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid request body", h.logger)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), bookingID, req.Status); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/bookings/{id} requests.
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/bookings/")
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid booking ID", h.logger)
		return
	}
	bookingID, err := model.NewBookingID(id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), bookingID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
