package store

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update violates a unique
// constraint (duplicate cpf, email, skill or category name, join row).
var ErrConflict = errors.New("conflict")

// uniqueViolation is the Postgres error code for unique_violation.
const uniqueViolation = "23505"

// foreignKeyViolation is the Postgres error code for foreign_key_violation.
const foreignKeyViolation = "23503"

func mapConstraintErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return ErrConflict
		case foreignKeyViolation:
			return ErrNotFound
		}
	}
	return err
}
