package repository

import (
	"errors"
	"fmt"

	"taskboard/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// translateErr maps driver errors onto the domain taxonomy so services never
// see pgx types.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// retryNumbering reruns a sequential-number insert that can collide with a
// concurrent insert picking the same number. A collision under this scheme is
// a server-side race, not a client conflict, so exhausting the attempts
// surfaces a plain internal error (%v strips the pgconn type) rather than
// domain.ErrConflict.
func retryNumbering(attempts int, insert func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = insert()
		if !isUniqueViolation(err) {
			return translateErr(err)
		}
	}
	return fmt.Errorf("numbering retries exhausted: %v", err)
}
