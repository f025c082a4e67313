package handler

import (
	"encoding/json"
	"net/http"

	"garage-backend/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a domain error code onto an HTTP status.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	code := model.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case model.ErrCodeValidation:
		status = http.StatusBadRequest
	case model.ErrCodeNotFound:
		status = http.StatusNotFound
	case model.ErrCodeConflict:
		status = http.StatusConflict
	}
	writeError(w, status, code, err.Error(), logger)
}

// pathID extracts the trailing numeric id from a path like /api/orders/42.
func pathID(path, prefix string) (int64, bool) {
	if len(path) <= len(prefix) {
		return 0, false
	}
	raw := path[len(prefix):]

	var id int64
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0, false
		}
		id = id*10 + int64(c-'0')
	}
	if id == 0 {
		return 0, false
	}
	return id, true
}
