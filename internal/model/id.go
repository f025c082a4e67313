package model

import "fmt"

// Identifiers are distinct int64 newtypes so an OrderID can never be passed
// where a ServiceID is expected. Zero is not a valid id; each constructor
// rejects non-positive values.

type OrderID int64

type ServiceID int64

type VariantID int64

type BillID int64

type BookingID int64

type DriverID int64

type VehicleID int64

type StoreID int64

type EmployeeID int64

type RentalCarID int64

// NewOrderID validates and wraps a raw order id.
func NewOrderID(id int64) (OrderID, error) {
	if id <= 0 {
		return 0, fmt.Errorf("invalid order id %d: %w", id, ErrInvalidID)
	}
	return OrderID(id), nil
}

// NewServiceID validates and wraps a raw service id.
func NewServiceID(id int64) (ServiceID, error) {
	if id <= 0 {
		return 0, fmt.Errorf("invalid service id %d: %w", id, ErrInvalidID)
	}
	return ServiceID(id), nil
}

// NewVariantID validates and wraps a raw variant id.
func NewVariantID(id int64) (VariantID, error) {
	if id <= 0 {
		return 0, fmt.Errorf("invalid variant id %d: %w", id, ErrInvalidID)
	}
	return VariantID(id), nil
}

// NewBillID validates and wraps a raw bill id.
func NewBillID(id int64) (BillID, error) {
	if id <= 0 {
		return 0, fmt.Errorf("invalid bill id %d: %w", id, ErrInvalidID)
	}
	return BillID(id), nil
}

// NewBookingID validates and wraps a raw booking id.
func NewBookingID(id int64) (BookingID, error) {
	if id <= 0 {
		return 0, fmt.Errorf("invalid booking id %d: %w", id, ErrInvalidID)
	}
	return BookingID(id), nil
}

// NewDriverID validates and wraps a raw driver id.
func NewDriverID(id int64) (DriverID, error) {
	if id <= 0 {
		return 0, fmt.Errorf("invalid driver id %d: %w", id, ErrInvalidID)
	}
	return DriverID(id), nil
}

// NewVehicleID validates and wraps a raw vehicle id.
func NewVehicleID(id int64) (VehicleID, error) {
	if id <= 0 {
		return 0, fmt.Errorf("invalid vehicle id %d: %w", id, ErrInvalidID)
	}
	return VehicleID(id), nil
}

// NewStoreID validates and wraps a raw store id.
func NewStoreID(id int64) (StoreID, error) {
	if id <= 0 {
		return 0, fmt.Errorf("invalid store id %d: %w", id, ErrInvalidID)
	}
	return StoreID(id), nil
}

// NewEmployeeID validates and wraps a raw employee id.
func NewEmployeeID(id int64) (EmployeeID, error) {
	if id <= 0 {
		return 0, fmt.Errorf("invalid employee id %d: %w", id, ErrInvalidID)
	}
	return EmployeeID(id), nil
}

func (id OrderID) Valid() bool    { return id > 0 }
func (id ServiceID) Valid() bool  { return id > 0 }
func (id VariantID) Valid() bool  { return id > 0 }
func (id BillID) Valid() bool     { return id > 0 }
func (id BookingID) Valid() bool  { return id > 0 }
func (id DriverID) Valid() bool   { return id > 0 }
func (id VehicleID) Valid() bool  { return id > 0 }
func (id StoreID) Valid() bool    { return id > 0 }
func (id EmployeeID) Valid() bool { return id > 0 }

func (id OrderID) Int64() int64    { return int64(id) }
func (id ServiceID) Int64() int64  { return int64(id) }
func (id VariantID) Int64() int64  { return int64(id) }
func (id BillID) Int64() int64     { return int64(id) }
func (id BookingID) Int64() int64  { return int64(id) }
func (id DriverID) Int64() int64   { return int64(id) }
func (id VehicleID) Int64() int64  { return int64(id) }
func (id StoreID) Int64() int64    { return int64(id) }
func (id EmployeeID) Int64() int64 { return int64(id) }
