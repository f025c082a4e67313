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

// storeRepository implements the StoreRepository interface using PostgreSQL.
type storeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewStoreRepository creates a new PostgreSQL-backed store repository.
func NewStoreRepository(pool *pgxpool.Pool, logger zerolog.Logger) StoreRepository {
	return &storeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "store").Logger(),
	}
}

const storeColumns = `store_id, name, address, phone, email, currency, created_at, updated_at`

func (r *storeRepository) Create(ctx context.Context, store *model.Store) (model.StoreID, error) {
	query := `
		INSERT INTO stores (name, address, phone, email, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING store_id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		store.Name, store.Address, store.Phone, store.Email, store.Currency,
		store.CreatedAt, store.UpdatedAt,
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create store")
		return 0, classify(err, "failed to create store")
	}

	r.logger.Debug().Int64("store_id", id).Msg("store created")
	return model.StoreID(id), nil
}

func (r *storeRepository) GetByID(ctx context.Context, id model.StoreID) (*model.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE store_id = $1`

	store, err := scanStore(r.pool.QueryRow(ctx, query, id.Int64()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("store_id", id.Int64()).Msg("store not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("store_id", id.Int64()).Msg("failed to query store")
		return nil, fmt.Errorf("failed to query store: %w", err)
	}

	return store, nil
}

func (r *storeRepository) List(ctx context.Context, limit, offset int) ([]model.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores ORDER BY store_id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query stores")
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	var stores []model.Store
	for rows.Next() {
		store, err := scanStore(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan store row")
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, *store)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating store rows")
		return nil, fmt.Errorf("error iterating stores: %w", err)
	}

	return stores, nil
}

func (r *storeRepository) Update(ctx context.Context, store *model.Store) (bool, error) {
	query := `
		UPDATE stores
		SET name = $1, address = $2, phone = $3, email = $4, currency = $5, updated_at = $6
		WHERE store_id = $7
	`

	tag, err := r.pool.Exec(ctx, query,
		store.Name, store.Address, store.Phone, store.Email, store.Currency,
		store.UpdatedAt, store.ID.Int64(),
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("store_id", store.ID.Int64()).Msg("failed to update store")
		return false, classify(err, "failed to update store")
	}

	return tag.RowsAffected() > 0, nil
}

func (r *storeRepository) Delete(ctx context.Context, id model.StoreID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stores WHERE store_id = $1`, id.Int64())
	if err != nil {
		r.logger.Error().Err(err).Int64("store_id", id.Int64()).Msg("failed to delete store")
		return false, classify(err, "failed to delete store")
	}

	return tag.RowsAffected() > 0, nil
}

// scanStore reads one store from a row in storeColumns order.
func scanStore(row pgx.Row) (*model.Store, error) {
	var (
		store model.Store
		id    int64
	)
	err := row.Scan(
		&id, &store.Name, &store.Address, &store.Phone, &store.Email,
		&store.Currency, &store.CreatedAt, &store.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	store.ID = model.StoreID(id)
	return &store, nil
}
