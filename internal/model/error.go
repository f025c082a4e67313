package model

import "errors"

// Standard error codes for API responses
const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeStorage      = "STORAGE_ERROR"
	ErrCodeUnauthorised = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
)

// DomainError is a business error carrying a stable code that handlers map
// to an HTTP status.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidID        = NewDomainError(ErrCodeValidation, "Identifier must be a positive integer")
	ErrCurrencyMismatch = NewDomainError(ErrCodeValidation, "All amounts on an order must share the order's currency")
	ErrInvalidQuantity  = NewDomainError(ErrCodeValidation, "Quantity must not be negative")
	ErrInvalidStatus    = NewDomainError(ErrCodeValidation, "Unknown status value")
	ErrInvalidDay       = NewDomainError(ErrCodeValidation, "Scheduled day must be between 1 and 5")
	ErrOrderNotFound    = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrBillNotFound     = NewDomainError(ErrCodeNotFound, "Bill not found")
	ErrBookingNotFound  = NewDomainError(ErrCodeNotFound, "Booking not found")
	ErrDriverNotFound   = NewDomainError(ErrCodeNotFound, "Driver not found")
	ErrStoreNotFound    = NewDomainError(ErrCodeNotFound, "Store not found")
	ErrDuplicateBooking = NewDomainError(ErrCodeConflict, "Order already has a rental-car booking")
	ErrUnknownReference = NewDomainError(ErrCodeValidation, "Referenced row does not exist")
)

// CodeOf extracts the domain error code from err, or ErrCodeStorage when the
// error did not originate from a domain rule.
func CodeOf(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ErrCodeStorage
}

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}
