package repository

import (
	"context"

	"garage-backend/internal/model"

	"github.com/jackc/pgx/v5"
)

// Querier is the subset of query methods shared by *pgxpool.Pool and pgx.Tx.
// Read helpers take a Querier so the bill aggregator can run them inside its
// creation transaction and the read paths can run them directly on the pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// OrderRepository defines data access for orders, their line items and the
// order-linked rental-car booking.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// InsertOrder inserts a new order header and returns the generated id.
	InsertOrder(ctx context.Context, tx pgx.Tx, order *model.Order) (model.OrderID, error)

	// UpdateOrder updates an existing order header by id.
	UpdateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// UpsertServiceLines reconciles the given lines against the catalog table:
	// new (order id, service id) pairs are inserted, existing pairs are
	// overwritten in place. Lines not in the input are left untouched.
	UpsertServiceLines(ctx context.Context, tx pgx.Tx, catalog model.Catalog, orderID model.OrderID, lines []model.ServiceLine) error

	// DeleteServiceLine removes a single line item by its identifying pair.
	DeleteServiceLine(ctx context.Context, tx pgx.Tx, catalog model.Catalog, orderID model.OrderID, serviceID model.ServiceID) error

	// DeleteServiceLines removes every line item of an order in one catalog.
	DeleteServiceLines(ctx context.Context, tx pgx.Tx, catalog model.Catalog, orderID model.OrderID) error

	// ListServiceLines returns every line item in one catalog belonging to any
	// of the given orders, in one query.
	ListServiceLines(ctx context.Context, q Querier, catalog model.Catalog, orderIDs []model.OrderID) ([]model.ServiceLine, error)

	// UpsertBooking inserts the booking or, when (booking id, order id) already
	// exists, overwrites it. The generated id is written back into booking.
	UpsertBooking(ctx context.Context, tx pgx.Tx, booking *model.Booking) error

	// DetachBooking unlinks any booking from the order without deleting the
	// booking itself.
	DetachBooking(ctx context.Context, tx pgx.Tx, orderID model.OrderID) error

	// DeleteOrderHeader removes the order header row.
	DeleteOrderHeader(ctx context.Context, tx pgx.Tx, orderID model.OrderID) error

	// GetAggregate loads the order header, both line-item lists and the linked
	// booking in a single joined query. Returns a nil order when the header
	// does not exist.
	GetAggregate(ctx context.Context, orderID model.OrderID) (*model.Order, []model.ServiceLine, []model.ServiceLine, *model.Booking, error)
}

// BillRepository defines data access for bills and their order links.
type BillRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// OrderSummaries returns id, discount and currency for every order in ids
	// that exists, in one query.
	OrderSummaries(ctx context.Context, q Querier, orderIDs []model.OrderID) ([]model.OrderSummary, error)

	// InsertBill inserts the bill header and returns the generated id.
	InsertBill(ctx context.Context, tx pgx.Tx, bill *model.Bill) (model.BillID, error)

	// LinkOrders inserts one bill-order link row per order id.
	LinkOrders(ctx context.Context, tx pgx.Tx, billID model.BillID, orderIDs []model.OrderID) error

	// GetBill returns the bill header, or nil when it does not exist.
	GetBill(ctx context.Context, billID model.BillID) (*model.Bill, error)

	// ListBillOrders returns the order ids linked to a bill.
	ListBillOrders(ctx context.Context, q Querier, billID model.BillID) ([]model.OrderID, error)

	// DeleteBill removes the bill header and its links, never the orders.
	// Returns false when the bill did not exist.
	DeleteBill(ctx context.Context, tx pgx.Tx, billID model.BillID) (bool, error)
}

// BookingRepository defines data access for standalone (walk-in) rental-car
// bookings.
type BookingRepository interface {
	// Create inserts a booking and returns the generated id.
	Create(ctx context.Context, booking *model.Booking) (model.BookingID, error)

	// GetByID returns the booking, or nil when it does not exist.
	GetByID(ctx context.Context, id model.BookingID) (*model.Booking, error)

	// List returns bookings ordered by id with limit/offset paging.
	List(ctx context.Context, limit, offset int) ([]model.Booking, error)

	// UpdateStatus sets the booking status. Returns false when the booking
	// does not exist.
	UpdateStatus(ctx context.Context, id model.BookingID, status model.BookingStatus) (bool, error)

	// Delete removes the booking. Returns false when it did not exist.
	Delete(ctx context.Context, id model.BookingID) (bool, error)
}

// DriverRepository defines data access for drivers (customers).
type DriverRepository interface {
	Create(ctx context.Context, driver *model.Driver) (model.DriverID, error)
	GetByID(ctx context.Context, id model.DriverID) (*model.Driver, error)
	List(ctx context.Context, limit, offset int) ([]model.Driver, error)
	Update(ctx context.Context, driver *model.Driver) (bool, error)
	Delete(ctx context.Context, id model.DriverID) (bool, error)
}

// StoreRepository defines data access for stores.
type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) (model.StoreID, error)
	GetByID(ctx context.Context, id model.StoreID) (*model.Store, error)
	List(ctx context.Context, limit, offset int) ([]model.Store, error)
	Update(ctx context.Context, store *model.Store) (bool, error)
	Delete(ctx context.Context, id model.StoreID) (bool, error)
}
