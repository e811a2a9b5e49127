package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrDuplicate is returned when an insert or update violates a unique constraint
	ErrDuplicate = errors.New("duplicate value")
	// ErrInvalidReference is returned when a foreign key points at a missing row
	ErrInvalidReference = errors.New("invalid reference")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// mapError translates Postgres constraint violations into repository errors
func mapError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
	case pqForeignKeyViolation:
		return fmt.Errorf("%w: %s", ErrInvalidReference, pqErr.Constraint)
	}
	return err
}

// helper to convert a nullable string column into a pointer
func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
