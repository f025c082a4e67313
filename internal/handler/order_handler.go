package handler

import (
	"encoding/json"
	"net/http"

	"garage-backend/internal/model"
	"garage-backend/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Save handles POST /api/orders requests. A request body carrying an orderId
// updates that order; otherwise a new order is created.
func (h *OrderHandler) Save(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidation, "method not allowed", h.logger)
		return
	}

	var req model.SaveOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid request body", h.logger)
		return
	}

	aggregate, err := h.service.SaveOrder(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	status := http.StatusCreated
	if req.OrderID != nil {
		status = http.StatusOK
	}
	writeJSON(w, status, aggregate)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/orders/")
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid order ID", h.logger)
		return
	}
	orderID, err := model.NewOrderID(id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	aggregate, err := h.service.LoadOrder(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, aggregate)
}

// Delete handles DELETE /api/orders/{id} requests and returns the deleted
// aggregate.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r.URL.Path, "/api/orders/")
	if !ok {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid order ID", h.logger)
		return
	}
	orderID, err := model.NewOrderID(id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	aggregate, err := h.service.DeleteOrder(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, aggregate)
}

// DeleteLine handles POST /api/orders/{id}/lines/delete requests, removing a
// single line item by catalog and service id.
func (h *OrderHandler) DeleteLine(w http.ResponseWriter, r *http.Request, orderIDRaw int64) {
	orderID, err := model.NewOrderID(orderIDRaw)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	var req model.DeleteLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid request body", h.logger)
		return
	}

	if err := h.service.DeleteLine(r.Context(), orderID, &req); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
