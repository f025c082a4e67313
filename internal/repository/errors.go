package repository

import (
	"errors"
	"fmt"

	"garage-backend/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the repositories translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// classify maps a constraint violation onto the matching domain error and
// wraps everything else as a storage failure. The original database error
// stays in the chain for logging.
func classify(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, model.NewDomainError(model.ErrCodeConflict, "Uniqueness constraint violated"), pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", op, model.ErrUnknownReference, pgErr.ConstraintName)
		case pgCheckViolation:
			return fmt.Errorf("%s: %w: %s", op, model.ErrInvalidQuantity, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
