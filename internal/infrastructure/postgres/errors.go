package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chinmayajanata/backend/internal/domain/repository"
)

const uniqueViolation = "23505"

// mapError translates pgx errors into the repository taxonomy so callers
// never match on driver types. Anything unrecognized is wrapped as
// ErrUnavailable rather than swallowed.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrConflict
	}
	return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
}
