package repository

import (
	"context"
	"errors"
	"fmt"

	"garage-backend/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// billRepository implements the BillRepository interface using PostgreSQL.
type billRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBillRepository creates a new PostgreSQL-backed bill repository.
func NewBillRepository(pool *pgxpool.Pool, logger zerolog.Logger) BillRepository {
	return &billRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "bill").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *billRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// OrderSummaries returns id, discount and currency for every order in ids
// that exists. Missing ids are simply absent from the result; the caller
// compares counts.
func (r *billRepository) OrderSummaries(ctx context.Context, q Querier, orderIDs []model.OrderID) ([]model.OrderSummary, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT order_id, discount_amount, currency
		FROM orders
		WHERE order_id = ANY($1)
		ORDER BY order_id
	`

	rows, err := q.Query(ctx, query, orderIDArgs(orderIDs))
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order summaries")
		return nil, fmt.Errorf("failed to query order summaries: %w", err)
	}
	defer rows.Close()

	var summaries []model.OrderSummary
	for rows.Next() {
		var (
			id             int64
			discountAmount int64
			currency       string
		)
		if err := rows.Scan(&id, &discountAmount, &currency); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order summary row")
			return nil, fmt.Errorf("failed to scan order summary: %w", err)
		}
		summaries = append(summaries, model.OrderSummary{
			ID:       model.OrderID(id),
			Discount: model.NewMoney(discountAmount, currency),
		})
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order summary rows")
		return nil, fmt.Errorf("error iterating order summaries: %w", err)
	}

	return summaries, nil
}

// InsertBill inserts the bill header within the provided transaction and
// returns the generated bill id.
func (r *billRepository) InsertBill(ctx context.Context, tx pgx.Tx, bill *model.Bill) (model.BillID, error) {
	query := `
		INSERT INTO bills (status, booked_by, billing_date, payment_date,
			payment_days, driver_id, first_name, last_name, email, phone,
			address, postal_code, city, country, card_number, card_expiry,
			company_reference, org_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING bill_id
	`

	var id int64
	err := tx.QueryRow(ctx, query,
		string(bill.Status), employeeArg(bill.BookedBy), bill.BillingDate,
		bill.PaymentDate, bill.PaymentDays, bill.DriverID.Int64(),
		bill.FirstName, bill.LastName, bill.Email, bill.Phone,
		bill.Address, bill.PostalCode, bill.City, bill.Country,
		bill.CardNumber, bill.CardExpiry, bill.CompanyReference, bill.OrgNumber,
		bill.CreatedAt, bill.UpdatedAt,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to insert bill")
		return 0, classify(err, "failed to insert bill")
	}

	r.logger.Debug().Int64("bill_id", id).Msg("bill inserted")
	return model.BillID(id), nil
}

// LinkOrders inserts one bill_orders row per order id within the provided
// transaction.
func (r *billRepository) LinkOrders(ctx context.Context, tx pgx.Tx, billID model.BillID, orderIDs []model.OrderID) error {
	if len(orderIDs) == 0 {
		return nil
	}

	query := `INSERT INTO bill_orders (bill_id, order_id) VALUES ($1, $2)`

	batch := &pgx.Batch{}
	for _, orderID := range orderIDs {
		batch.Queue(query, billID.Int64(), orderID.Int64())
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(orderIDs); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Int64("bill_id", billID.Int64()).
				Int64("order_id", orderIDs[i].Int64()).
				Msg("failed to link order to bill")
			return classify(err, "failed to link order to bill")
		}
	}

	r.logger.Debug().
		Int64("bill_id", billID.Int64()).
		Int("count", len(orderIDs)).
		Msg("orders linked to bill")

	return nil
}

// GetBill retrieves the bill header, or nil when it does not exist.
func (r *billRepository) GetBill(ctx context.Context, billID model.BillID) (*model.Bill, error) {
	query := `
		SELECT bill_id, status, booked_by, billing_date, payment_date,
			payment_days, driver_id, first_name, last_name, email, phone,
			address, postal_code, city, country, card_number, card_expiry,
			company_reference, org_number, created_at, updated_at
		FROM bills
		WHERE bill_id = $1
	`

	var (
		bill     model.Bill
		id       int64
		driverID int64
		bookedBy *int64
		status   string
	)
	err := r.pool.QueryRow(ctx, query, billID.Int64()).Scan(
		&id, &status, &bookedBy, &bill.BillingDate, &bill.PaymentDate,
		&bill.PaymentDays, &driverID, &bill.FirstName, &bill.LastName,
		&bill.Email, &bill.Phone, &bill.Address, &bill.PostalCode, &bill.City,
		&bill.Country, &bill.CardNumber, &bill.CardExpiry,
		&bill.CompanyReference, &bill.OrgNumber, &bill.CreatedAt, &bill.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("bill_id", billID.Int64()).Msg("bill not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("bill_id", billID.Int64()).Msg("failed to query bill")
		return nil, fmt.Errorf("failed to query bill: %w", err)
	}

	bill.ID = model.BillID(id)
	bill.DriverID = model.DriverID(driverID)
	bill.Status = model.BillStatus(status)
	if bookedBy != nil {
		employee := model.EmployeeID(*bookedBy)
		bill.BookedBy = &employee
	}

	return &bill, nil
}

// ListBillOrders returns the order ids linked to a bill.
func (r *billRepository) ListBillOrders(ctx context.Context, q Querier, billID model.BillID) ([]model.OrderID, error) {
	query := `SELECT order_id FROM bill_orders WHERE bill_id = $1 ORDER BY order_id`

	rows, err := q.Query(ctx, query, billID.Int64())
	if err != nil {
		r.logger.Error().Err(err).Int64("bill_id", billID.Int64()).Msg("failed to query bill orders")
		return nil, fmt.Errorf("failed to query bill orders: %w", err)
	}
	defer rows.Close()

	var orderIDs []model.OrderID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan bill order row")
			return nil, fmt.Errorf("failed to scan bill order: %w", err)
		}
		orderIDs = append(orderIDs, model.OrderID(id))
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating bill order rows")
		return nil, fmt.Errorf("error iterating bill orders: %w", err)
	}

	return orderIDs, nil
}

// DeleteBill removes the bill and its order links. Linked orders are never
// deleted. Returns false when the bill did not exist.
func (r *billRepository) DeleteBill(ctx context.Context, tx pgx.Tx, billID model.BillID) (bool, error) {
	if _, err := tx.Exec(ctx, `DELETE FROM bill_orders WHERE bill_id = $1`, billID.Int64()); err != nil {
		r.logger.Error().Err(err).Int64("bill_id", billID.Int64()).Msg("failed to delete bill links")
		return false, classify(err, "failed to delete bill links")
	}

	tag, err := tx.Exec(ctx, `DELETE FROM bills WHERE bill_id = $1`, billID.Int64())
	if err != nil {
		r.logger.Error().Err(err).Int64("bill_id", billID.Int64()).Msg("failed to delete bill")
		return false, classify(err, "failed to delete bill")
	}

	r.logger.Debug().Int64("bill_id", billID.Int64()).Msg("bill deleted")
	return tag.RowsAffected() > 0, nil
}
