package service

import (
	"context"

	"garage-backend/internal/model"
)

// OrderService is the order transaction manager and reader: every mutation
// runs as exactly one database transaction, and the returned aggregate is an
// exact reflection of what was written.
type OrderService interface {
	// SaveOrder atomically creates or updates an order header, reconciles both
	// line-item catalogs and upserts the optional rental-car booking, then
	// returns the aggregate with its computed cost.
	SaveOrder(ctx context.Context, req *model.SaveOrderRequest) (*model.OrderAggregate, error)

	// LoadOrder reconstructs the aggregate from storage.
	LoadOrder(ctx context.Context, id model.OrderID) (*model.OrderAggregate, error)

	// DeleteOrder atomically removes the order's line items, detaches its
	// booking and deletes the header, returning the pre-deletion aggregate.
	DeleteOrder(ctx context.Context, id model.OrderID) (*model.OrderAggregate, error)

	// DeleteLine removes a single line item identified by (order id,
	// service id) within one catalog.
	DeleteLine(ctx context.Context, id model.OrderID, req *model.DeleteLineRequest) error
}

// BillService rolls completed orders up into bills. The bill's order-row
// view is recomputed from the linked orders' line items on every read.
type BillService interface {
	// CreateBill creates a bill header with a snapshot of driver details,
	// links the given orders and returns the aggregated view.
	CreateBill(ctx context.Context, req *model.CreateBillRequest) (*model.BillAggregate, error)

	// GetBill re-aggregates the bill against its linked orders.
	GetBill(ctx context.Context, id model.BillID) (*model.BillAggregate, error)

	// DeleteBill removes the bill and its links, never the linked orders.
	DeleteBill(ctx context.Context, id model.BillID) error
}

// BookingService manages standalone (walk-in) rental-car bookings.
type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id model.BookingID) (*model.Booking, error)
	List(ctx context.Context, limit, offset int) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id model.BookingID, status string) error
	Delete(ctx context.Context, id model.BookingID) error
}

// DriverService manages drivers (customers).
type DriverService interface {
	Create(ctx context.Context, req *model.DriverRequest) (*model.Driver, error)
	GetByID(ctx context.Context, id model.DriverID) (*model.Driver, error)
	List(ctx context.Context, limit, offset int) ([]model.Driver, error)
	Update(ctx context.Context, id model.DriverID, req *model.DriverRequest) (*model.Driver, error)
	Delete(ctx context.Context, id model.DriverID) error
}

// StoreService manages stores.
type StoreService interface {
	Create(ctx context.Context, req *model.StoreRequest) (*model.Store, error)
	GetByID(ctx context.Context, id model.StoreID) (*model.Store, error)
	List(ctx context.Context, limit, offset int) ([]model.Store, error)
	Update(ctx context.Context, id model.StoreID, req *model.StoreRequest) (*model.Store, error)
	Delete(ctx context.Context, id model.StoreID) error
}
