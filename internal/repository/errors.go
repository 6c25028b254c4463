// Package repository provides persistence implementations for the domain
// entities against a PostgreSQL database. Every query is scoped to the
// owning user so one user can never observe another user's rows.
package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when no row matches the id for the given user.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates the per-user
	// business-key constraint.
	ErrDuplicate = errors.New("already exists")
)

const uniqueViolation = "23505"

// translateError maps driver-level unique violations to ErrDuplicate.
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}
