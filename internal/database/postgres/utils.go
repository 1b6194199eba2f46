package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/CineLoot_Go/internal/domain"
)

// rowScanner is satisfied by pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// isUniqueViolation reports whether err is a unique constraint violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}

// persistenceError marks err as a storage failure, keeping msg as context
func persistenceError(msg string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistenceFailure, msg, err)
}

func ptrToInt4(v *int) any {
	if v == nil {
		return nil
	}
	return int32(*v)
}
