// Package storage defines the Storage interface that every database
// backend implements, and the errors handlers use to tell storage failures
// apart.
//
// Handlers depend only on this package, never on a concrete driver, so the
// SQLite and Postgres backends are interchangeable and tests can use a mock.
package storage

//go:generate mockgen -source=storage.go -destination=mocks/mocks.go -package=mocks Storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/customers-api/internal/types"
)

// ErrEmailExists is returned when an insert violates the UNIQUE constraint
// on customer.email.
var ErrEmailExists = errors.New("email already registered")

// Storage is the database contract.
type Storage interface {
	// CreateCustomer inserts a validated customer and returns the
	// store-assigned id.
	CreateCustomer(ctx context.Context, customer types.Customer) (int64, error)

	// Close releases the underlying connection pool.
	Close() error
}

// QueryError wraps a driver failure other than a uniqueness violation.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Message is the driver's own description of the failure.
func (e *QueryError) Message() string {
	return e.Err.Error()
}
