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

// driverRepository implements the DriverRepository interface using PostgreSQL.
type driverRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDriverRepository creates a new PostgreSQL-backed driver repository.
func NewDriverRepository(pool *pgxpool.Pool, logger zerolog.Logger) DriverRepository {
	return &driverRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "driver").Logger(),
	}
}

const driverColumns = `driver_id, first_name, last_name, email, phone,
	address, postal_code, city, country, created_at, updated_at`

func (r *driverRepository) Create(ctx context.Context, driver *model.Driver) (model.DriverID, error) {
	query := `
		INSERT INTO drivers (first_name, last_name, email, phone, address,
			postal_code, city, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING driver_id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		driver.FirstName, driver.LastName, driver.Email, driver.Phone,
		driver.Address, driver.PostalCode, driver.City, driver.Country,
		driver.CreatedAt, driver.UpdatedAt,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create driver")
		return 0, classify(err, "failed to create driver")
	}

	r.logger.Debug().Int64("driver_id", id).Msg("driver created")
	return model.DriverID(id), nil
}

func (r *driverRepository) GetByID(ctx context.Context, id model.DriverID) (*model.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE driver_id = $1`

	driver, err := scanDriver(r.pool.QueryRow(ctx, query, id.Int64()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("driver_id", id.Int64()).Msg("driver not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("driver_id", id.Int64()).Msg("failed to query driver")
		return nil, fmt.Errorf("failed to query driver: %w", err)
	}

	return driver, nil
}

func (r *driverRepository) List(ctx context.Context, limit, offset int) ([]model.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers ORDER BY driver_id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query drivers")
		return nil, fmt.Errorf("failed to query drivers: %w", err)
	}
	defer rows.Close()

	var drivers []model.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan driver row")
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, *driver)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating driver rows")
		return nil, fmt.Errorf("error iterating drivers: %w", err)
	}

	return drivers, nil
}

func (r *driverRepository) Update(ctx context.Context, driver *model.Driver) (bool, error) {
	query := `
		UPDATE drivers
		SET first_name = $1, last_name = $2, email = $3, phone = $4,
			address = $5, postal_code = $6, city = $7, country = $8, updated_at = $9
		WHERE driver_id = $10
	`

	tag, err := r.pool.Exec(ctx, query,
		driver.FirstName, driver.LastName, driver.Email, driver.Phone,
		driver.Address, driver.PostalCode, driver.City, driver.Country,
		driver.UpdatedAt, driver.ID.Int64(),
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("driver_id", driver.ID.Int64()).Msg("failed to update driver")
		return false, classify(err, "failed to update driver")
	}

	return tag.RowsAffected() > 0, nil
}

func (r *driverRepository) Delete(ctx context.Context, id model.DriverID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM drivers WHERE driver_id = $1`, id.Int64())
	if err != nil {
		r.logger.Error().Err(err).Int64("driver_id", id.Int64()).Msg("failed to delete driver")
		return false, classify(err, "failed to delete driver")
	}

	return tag.RowsAffected() > 0, nil
}

// scanDriver reads one driver from a row in driverColumns order.
func scanDriver(row pgx.Row) (*model.Driver, error) {
	var (
		driver model.Driver
		id     int64
	)
	err := row.Scan(
		&id, &driver.FirstName, &driver.LastName, &driver.Email, &driver.Phone,
		&driver.Address, &driver.PostalCode, &driver.City, &driver.Country,
		&driver.CreatedAt, &driver.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	driver.ID = model.DriverID(id)
	return &driver, nil
}
