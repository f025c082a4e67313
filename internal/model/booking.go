package model

import "time"

// BookingStatus enumerates the lifecycle states of a rental-car booking.
type BookingStatus string

const (
	BookingStatusReserved  BookingStatus = "Reserved"
	BookingStatusActive    BookingStatus = "Active"
	BookingStatusReturned  BookingStatus = "Returned"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

// Valid reports whether the status is one of the known states.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusReserved, BookingStatusActive, BookingStatusReturned, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking is a rental-car booking. It may stand alone (walk-in rental) or be
// linked to at most one order.
type Booking struct {
	ID                 BookingID     `json:"bookingId"`
	OrderID            *OrderID      `json:"orderId,omitempty"`
	RegistrationNumber string        `json:"registrationNumber"`
	Start              time.Time     `json:"start"`
	End                time.Time     `json:"end"`
	BookedBy           *EmployeeID   `json:"bookedBy,omitempty"`
	Status             BookingStatus `json:"status"`
	SubmissionTime     time.Time     `json:"submissionTime"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// BookingRequest is the wire form of a rental-car booking. BookingID is set
// when the caller targets an existing booking.
type BookingRequest struct {
	BookingID          *int64    `json:"bookingId,omitempty"`
	RegistrationNumber string    `json:"registrationNumber"`
	Start              time.Time `json:"start"`
	End                time.Time `json:"end"`
	BookedBy           *int64    `json:"bookedBy,omitempty"`
	Status             string    `json:"status"`
	SubmissionTime     time.Time `json:"submissionTime"`
}
