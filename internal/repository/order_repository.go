package repository

import (
	"context"
	"fmt"
	"time"

	"garage-backend/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// lineTable maps a catalog onto its table name. Both tables are structurally
// identical; they reference different pricing catalogs.
func lineTable(catalog model.Catalog) string {
	if catalog == model.CatalogLocalService {
		return "order_local_services"
	}
	return "order_services"
}

const lineColumns = `order_id, service_id, variant_id, name, quantity,
		day1, day1_work, day1_employee,
		day2, day2_work, day2_employee,
		day3, day3_work, day3_employee,
		day4, day4_work, day4_employee,
		day5, day5_work, day5_employee,
		unit_cost_amount, currency, vat_free, notes`

const upsertLineSQL = `
	INSERT INTO %s (` + lineColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		$16, $17, $18, $19, $20, $21, $22, $23, $24)
	ON CONFLICT (order_id, service_id) DO UPDATE SET
		variant_id = EXCLUDED.variant_id,
		name = EXCLUDED.name,
		quantity = EXCLUDED.quantity,
		day1 = EXCLUDED.day1, day1_work = EXCLUDED.day1_work, day1_employee = EXCLUDED.day1_employee,
		day2 = EXCLUDED.day2, day2_work = EXCLUDED.day2_work, day2_employee = EXCLUDED.day2_employee,
		day3 = EXCLUDED.day3, day3_work = EXCLUDED.day3_work, day3_employee = EXCLUDED.day3_employee,
		day4 = EXCLUDED.day4, day4_work = EXCLUDED.day4_work, day4_employee = EXCLUDED.day4_employee,
		day5 = EXCLUDED.day5, day5_work = EXCLUDED.day5_work, day5_employee = EXCLUDED.day5_employee,
		unit_cost_amount = EXCLUDED.unit_cost_amount,
		currency = EXCLUDED.currency,
		vat_free = EXCLUDED.vat_free,
		notes = EXCLUDED.notes
`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// InsertOrder inserts a new order header within the provided transaction and
// returns the generated order id.
func (r *orderRepository) InsertOrder(ctx context.Context, tx pgx.Tx, order *model.Order) (model.OrderID, error) {
	query := `
		INSERT INTO orders (driver_id, vehicle_id, store_id, booked_by, notes,
			submission_time, pickup_time, vat_free, discount_amount, currency,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING order_id
	`

	var id int64
	err := tx.QueryRow(ctx, query,
		order.DriverID.Int64(), order.VehicleID.Int64(), order.StoreID.Int64(),
		employeeArg(order.BookedBy), order.Notes,
		order.SubmissionTime, order.PickupTime, order.VATFree,
		order.Discount.Amount(), order.Currency,
		string(order.Status), order.CreatedAt, order.UpdatedAt,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to insert order")
		return 0, classify(err, "failed to insert order")
	}

	r.logger.Debug().Int64("order_id", id).Msg("order inserted")
	return model.OrderID(id), nil
}

// UpdateOrder updates an existing order header within the provided transaction.
func (r *orderRepository) UpdateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		UPDATE orders
		SET driver_id = $1, vehicle_id = $2, store_id = $3, booked_by = $4,
			notes = $5, submission_time = $6, pickup_time = $7, vat_free = $8,
			discount_amount = $9, currency = $10, status = $11, updated_at = $12
		WHERE order_id = $13
	`

	tag, err := tx.Exec(ctx, query,
		order.DriverID.Int64(), order.VehicleID.Int64(), order.StoreID.Int64(),
		employeeArg(order.BookedBy), order.Notes,
		order.SubmissionTime, order.PickupTime, order.VATFree,
		order.Discount.Amount(), order.Currency,
		string(order.Status), order.UpdatedAt,
		order.ID.Int64(),
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", order.ID.Int64()).Msg("failed to update order")
		return classify(err, "failed to update order")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", order.ID.Int64(), model.ErrOrderNotFound)
	}

	r.logger.Debug().Int64("order_id", order.ID.Int64()).Msg("order updated")
	return nil
}

// UpsertServiceLines reconciles line items against the catalog table in one
// batch: insert, and on a conflicting (order_id, service_id) pair overwrite
// every column except the identifying pair. Lines absent from the input are
// left untouched.
func (r *orderRepository) UpsertServiceLines(ctx context.Context, tx pgx.Tx, catalog model.Catalog, orderID model.OrderID, lines []model.ServiceLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := fmt.Sprintf(upsertLineSQL, lineTable(catalog))

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(query, lineArgs(orderID, line)...)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(lines); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Int64("order_id", orderID.Int64()).
				Int64("service_id", lines[i].ServiceID.Int64()).
				Str("catalog", string(catalog)).
				Msg("failed to upsert line item")
			return classify(err, "failed to upsert line item")
		}
	}

	r.logger.Debug().
		Int64("order_id", orderID.Int64()).
		Str("catalog", string(catalog)).
		Int("count", len(lines)).
		Msg("line items reconciled")

	return nil
}

// DeleteServiceLine removes a single line item by (order_id, service_id).
func (r *orderRepository) DeleteServiceLine(ctx context.Context, tx pgx.Tx, catalog model.Catalog, orderID model.OrderID, serviceID model.ServiceID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE order_id = $1 AND service_id = $2`, lineTable(catalog))

	_, err := tx.Exec(ctx, query, orderID.Int64(), serviceID.Int64())
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("order_id", orderID.Int64()).
			Int64("service_id", serviceID.Int64()).
			Msg("failed to delete line item")
		return classify(err, "failed to delete line item")
	}
	return nil
}

// DeleteServiceLines removes every line item of the order in one catalog.
func (r *orderRepository) DeleteServiceLines(ctx context.Context, tx pgx.Tx, catalog model.Catalog, orderID model.OrderID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE order_id = $1`, lineTable(catalog))

	if _, err := tx.Exec(ctx, query, orderID.Int64()); err != nil {
		r.logger.Error().
			Err(err).
			Int64("order_id", orderID.Int64()).
			Str("catalog", string(catalog)).
			Msg("failed to delete line items")
		return classify(err, "failed to delete line items")
	}
	return nil
}

// ListServiceLines returns every line item in one catalog belonging to the
// given set of orders, in a single query.
func (r *orderRepository) ListServiceLines(ctx context.Context, q Querier, catalog model.Catalog, orderIDs []model.OrderID) ([]model.ServiceLine, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT `+lineColumns+`
		FROM %s
		WHERE order_id = ANY($1)
		ORDER BY order_id, service_id
	`, lineTable(catalog))

	rows, err := q.Query(ctx, query, orderIDArgs(orderIDs))
	if err != nil {
		r.logger.Error().Err(err).Str("catalog", string(catalog)).Msg("failed to query line items")
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer rows.Close()

	var lines []model.ServiceLine
	for rows.Next() {
		var row lineRow
		if err := rows.Scan(row.targets()...); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan line item row")
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		lines = append(lines, row.toModel())
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating line item rows")
		return nil, fmt.Errorf("error iterating line items: %w", err)
	}

	return lines, nil
}

// UpsertBooking inserts or overwrites the rental-car booking. A zero booking
// id means a fresh insert; the generated id is written back. A non-zero id
// upserts on the (booking_id, order_id) pair, so replaying the same booking
// for the same order updates it in place while a clash with another order
// surfaces as a conflict.
func (r *orderRepository) UpsertBooking(ctx context.Context, tx pgx.Tx, booking *model.Booking) error {
	if booking.ID == 0 {
		query := `
			INSERT INTO rent_car_bookings (order_id, registration_number, start_time,
				end_time, booked_by, status, submission_time, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING booking_id
		`

		var id int64
		err := tx.QueryRow(ctx, query,
			orderArg(booking.OrderID), booking.RegistrationNumber,
			booking.Start, booking.End, employeeArg(booking.BookedBy),
			string(booking.Status), booking.SubmissionTime,
			booking.CreatedAt, booking.UpdatedAt,
		).Scan(&id)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to insert booking")
			return classify(err, "failed to insert booking")
		}

		booking.ID = model.BookingID(id)
		r.logger.Debug().Int64("booking_id", id).Msg("booking inserted")
		return nil
	}

	query := `
		INSERT INTO rent_car_bookings (booking_id, order_id, registration_number,
			start_time, end_time, booked_by, status, submission_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (booking_id, order_id) DO UPDATE SET
			registration_number = EXCLUDED.registration_number,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			booked_by = EXCLUDED.booked_by,
			status = EXCLUDED.status,
			submission_time = EXCLUDED.submission_time,
			updated_at = EXCLUDED.updated_at
	`

	_, err := tx.Exec(ctx, query,
		booking.ID.Int64(), orderArg(booking.OrderID), booking.RegistrationNumber,
		booking.Start, booking.End, employeeArg(booking.BookedBy),
		string(booking.Status), booking.SubmissionTime,
		booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("booking_id", booking.ID.Int64()).Msg("failed to upsert booking")
		return classify(err, "failed to upsert booking")
	}

	r.logger.Debug().Int64("booking_id", booking.ID.Int64()).Msg("booking upserted")
	return nil
}

// DetachBooking unlinks any booking from the order. The booking itself
// survives as a walk-in rental.
func (r *orderRepository) DetachBooking(ctx context.Context, tx pgx.Tx, orderID model.OrderID) error {
	query := `UPDATE rent_car_bookings SET order_id = NULL, updated_at = $2 WHERE order_id = $1`

	if _, err := tx.Exec(ctx, query, orderID.Int64(), time.Now()); err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID.Int64()).Msg("failed to detach booking")
		return classify(err, "failed to detach booking")
	}
	return nil
}

// DeleteOrderHeader removes the order header row.
func (r *orderRepository) DeleteOrderHeader(ctx context.Context, tx pgx.Tx, orderID model.OrderID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE order_id = $1`, orderID.Int64())
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID.Int64()).Msg("failed to delete order")
		return classify(err, "failed to delete order")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", orderID.Int64(), model.ErrOrderNotFound)
	}

	r.logger.Debug().Int64("order_id", orderID.Int64()).Msg("order deleted")
	return nil
}

const aggregateSQL = `
	SELECT
		o.order_id, o.driver_id, o.vehicle_id, o.store_id, o.booked_by, o.notes,
		o.submission_time, o.pickup_time, o.vat_free, o.discount_amount,
		o.currency, o.status, o.created_at, o.updated_at,
		b.booking_id, b.registration_number, b.start_time, b.end_time,
		b.booked_by, b.status, b.submission_time, b.created_at, b.updated_at,
		s.service_id, s.variant_id, s.name, s.quantity,
		s.day1, s.day1_work, s.day1_employee,
		s.day2, s.day2_work, s.day2_employee,
		s.day3, s.day3_work, s.day3_employee,
		s.day4, s.day4_work, s.day4_employee,
		s.day5, s.day5_work, s.day5_employee,
		s.unit_cost_amount, s.currency, s.vat_free, s.notes,
		l.service_id, l.variant_id, l.name, l.quantity,
		l.day1, l.day1_work, l.day1_employee,
		l.day2, l.day2_work, l.day2_employee,
		l.day3, l.day3_work, l.day3_employee,
		l.day4, l.day4_work, l.day4_employee,
		l.day5, l.day5_work, l.day5_employee,
		l.unit_cost_amount, l.currency, l.vat_free, l.notes
	FROM orders o
	LEFT JOIN rent_car_bookings b ON b.order_id = o.order_id
	LEFT JOIN order_services s ON s.order_id = o.order_id
	LEFT JOIN order_local_services l ON l.order_id = o.order_id
	WHERE o.order_id = $1
`

// GetAggregate loads the order header, its booking and both line-item
// catalogs in one joined query. The join fans out to one row per line-item
// combination; the fold below collapses the duplicated header, booking and
// line columns back into the aggregate shape. A nil order means the header
// does not exist, which is distinct from a header with zero lines.
func (r *orderRepository) GetAggregate(ctx context.Context, orderID model.OrderID) (*model.Order, []model.ServiceLine, []model.ServiceLine, *model.Booking, error) {
	rows, err := r.pool.Query(ctx, aggregateSQL, orderID.Int64())
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID.Int64()).Msg("failed to query order aggregate")
		return nil, nil, nil, nil, fmt.Errorf("failed to query order aggregate: %w", err)
	}
	defer rows.Close()

	var (
		order        *model.Order
		booking      *model.Booking
		serviceLines []model.ServiceLine
		localLines   []model.ServiceLine
		seenService  = make(map[int64]bool)
		seenLocal    = make(map[int64]bool)
	)

	for rows.Next() {
		var (
			hdr     headerRow
			bkg     bookingRow
			svc     joinedLineRow
			local   joinedLineRow
			targets []any
		)
		targets = append(targets, hdr.targets()...)
		targets = append(targets, bkg.targets()...)
		targets = append(targets, svc.targets()...)
		targets = append(targets, local.targets()...)

		if err := rows.Scan(targets...); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order aggregate row")
			return nil, nil, nil, nil, fmt.Errorf("failed to scan order aggregate: %w", err)
		}

		if order == nil {
			o := hdr.toModel()
			order = &o
		}
		if booking == nil && bkg.bookingID != nil {
			b := bkg.toModel(order.ID)
			booking = &b
		}
		if svc.serviceID != nil && !seenService[*svc.serviceID] {
			seenService[*svc.serviceID] = true
			serviceLines = append(serviceLines, svc.toModel(order.ID))
		}
		if local.serviceID != nil && !seenLocal[*local.serviceID] {
			seenLocal[*local.serviceID] = true
			localLines = append(localLines, local.toModel(order.ID))
		}
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order aggregate rows")
		return nil, nil, nil, nil, fmt.Errorf("error iterating order aggregate: %w", err)
	}

	if order == nil {
		r.logger.Debug().Int64("order_id", orderID.Int64()).Msg("order not found")
		return nil, nil, nil, nil, nil
	}

	return order, serviceLines, localLines, booking, nil
}
