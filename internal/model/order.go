package model

import (
	"time"
)

// OrderStatus enumerates the lifecycle states of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusInProgress OrderStatus = "InProgress"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether the status is one of the known states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Catalog distinguishes the two structurally identical line-item catalogs:
// the shared service catalog and the store-local one.
type Catalog string

const (
	CatalogService      Catalog = "service"
	CatalogLocalService Catalog = "local_service"
)

// Order is the header row describing one customer job, excluding its line
// items. Currency is fixed for the lifetime of the order.
type Order struct {
	ID             OrderID     `json:"orderId"`
	DriverID       DriverID    `json:"driverId"`
	VehicleID      VehicleID   `json:"vehicleId"`
	StoreID        StoreID     `json:"storeId"`
	BookedBy       *EmployeeID `json:"bookedBy,omitempty"`
	Notes          *string     `json:"notes,omitempty"`
	SubmissionTime time.Time   `json:"submissionTime"`
	PickupTime     time.Time   `json:"pickupTime"`
	VATFree        bool        `json:"vatFree"`
	Discount       Money       `json:"discount"`
	Currency       string      `json:"currency"`
	Status         OrderStatus `json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// ScheduledDay is one of up to five day/duration/employee triples on a line
// item. Every field is independently optional.
type ScheduledDay struct {
	Date        *time.Time  `json:"date,omitempty"`
	WorkMinutes *int        `json:"workMinutes,omitempty"`
	EmployeeID  *EmployeeID `json:"employeeId,omitempty"`
}

// IsSet reports whether any field of the day is populated.
func (d ScheduledDay) IsSet() bool {
	return d.Date != nil || d.WorkMinutes != nil || d.EmployeeID != nil
}

// ServiceLine is one billable line item attached to an order, uniquely
// identified by (order id, service id) within its catalog.
type ServiceLine struct {
	OrderID   OrderID         `json:"orderId"`
	ServiceID ServiceID       `json:"serviceId"`
	VariantID *VariantID      `json:"variantId,omitempty"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitCost  Money           `json:"unitCost"`
	VATFree   bool            `json:"vatFree"`
	Notes     *string         `json:"notes,omitempty"`
	Days      [5]ScheduledDay `json:"days"`
}

// LineTotal returns unit cost multiplied by quantity, in minor units.
func (l ServiceLine) LineTotal() Money {
	return l.UnitCost.MultiplyByQuantity(l.Quantity)
}

// OrderAggregate is the composed shape returned by the transaction manager
// and the reader: header, derived cost, both line lists and the booking (if
// any), mirroring the transactional unit.
type OrderAggregate struct {
	Order             Order         `json:"order"`
	Cost              Money         `json:"cost"`
	ServiceLines      []ServiceLine `json:"serviceLines"`
	LocalServiceLines []ServiceLine `json:"localServiceLines"`
	Booking           *Booking      `json:"booking,omitempty"`
}

// ScheduledDayRequest is the wire form of one scheduled day, addressed by
// its 1-based day number.
type ScheduledDayRequest struct {
	Day         int        `json:"day"`
	Date        *time.Time `json:"date,omitempty"`
	WorkMinutes *int       `json:"workMinutes,omitempty"`
	EmployeeID  *int64     `json:"employeeId,omitempty"`
}

// ServiceLineRequest is the wire form of one desired line item.
type ServiceLineRequest struct {
	ServiceID      int64                 `json:"serviceId"`
	VariantID      *int64                `json:"variantId,omitempty"`
	Name           string                `json:"name"`
	Quantity       int                   `json:"quantity"`
	UnitCostAmount int64                 `json:"unitCostAmount"`
	Currency       string                `json:"currency"`
	VATFree        bool                  `json:"vatFree"`
	Notes          *string               `json:"notes,omitempty"`
	Days           []ScheduledDayRequest `json:"days,omitempty"`
}

// SaveOrderRequest is the request payload for creating or updating an order
// together with its line items and optional rental-car booking.
type SaveOrderRequest struct {
	OrderID           *int64               `json:"orderId,omitempty"`
	DriverID          int64                `json:"driverId"`
	VehicleID         int64                `json:"vehicleId"`
	StoreID           int64                `json:"storeId"`
	BookedBy          *int64               `json:"bookedBy,omitempty"`
	Notes             *string              `json:"notes,omitempty"`
	SubmissionTime    time.Time            `json:"submissionTime"`
	PickupTime        time.Time            `json:"pickupTime"`
	VATFree           bool                 `json:"vatFree"`
	DiscountAmount    int64                `json:"discountAmount"`
	Currency          string               `json:"currency"`
	Status            string               `json:"status"`
	ServiceLines      []ServiceLineRequest `json:"serviceLines"`
	LocalServiceLines []ServiceLineRequest `json:"localServiceLines"`
	Booking           *BookingRequest      `json:"booking,omitempty"`
}

// DeleteLineRequest identifies a single line item for explicit deletion.
type DeleteLineRequest struct {
	Catalog   Catalog `json:"catalog"`
	ServiceID int64   `json:"serviceId"`
}
