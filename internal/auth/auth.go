// Package auth resolves role-based permissions for employees. The
// transactional core never consults it; authorization happens at the HTTP
// boundary before a core operation is invoked.
package auth

import (
	"context"
	"fmt"

	"garage-backend/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Permission names checked on mutating routes.
const (
	PermOrdersWrite   = "orders:write"
	PermBillsWrite    = "bills:write"
	PermBookingsWrite = "bookings:write"
	PermDriversWrite  = "drivers:write"
	PermStoresWrite   = "stores:write"
)

// Authorizer answers whether an employee holds a named permission.
type Authorizer interface {
	Authorize(ctx context.Context, employeeID model.EmployeeID, permission string) (bool, error)
}

// permissionRepository implements Authorizer against the
// employee_permissions table.
type permissionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPermissionRepository creates a PostgreSQL-backed Authorizer.
func NewPermissionRepository(pool *pgxpool.Pool, logger zerolog.Logger) Authorizer {
	return &permissionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "permission").Logger(),
	}
}

// Authorize reports whether the employee holds the permission.
func (r *permissionRepository) Authorize(ctx context.Context, employeeID model.EmployeeID, permission string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM employee_permissions
			WHERE employee_id = $1 AND permission = $2
		)
	`

	var allowed bool
	if err := r.pool.QueryRow(ctx, query, employeeID.Int64(), permission).Scan(&allowed); err != nil {
		r.logger.Error().
			Err(err).
			Int64("employee_id", employeeID.Int64()).
			Str("permission", permission).
			Msg("failed to query permission")
		return false, fmt.Errorf("failed to query permission: %w", err)
	}

	return allowed, nil
}
