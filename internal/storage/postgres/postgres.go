// Package postgres implements storage.Storage on PostgreSQL through lib/pq.
// The schema and error mapping mirror the SQLite backend, so the HTTP
// layer behaves identically on either.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/aanand-mishra/customers-api/internal/config"
	"github.com/aanand-mishra/customers-api/internal/storage"
	"github.com/aanand-mishra/customers-api/internal/types"
)

const uniqueViolation = "unique_violation"

const createTable = `
	CREATE TABLE IF NOT EXISTS customer (
		id             BIGSERIAL PRIMARY KEY,
		name           TEXT    NOT NULL,
		address        TEXT    NOT NULL,
		email          TEXT    NOT NULL UNIQUE,
		dateOfbirth    TEXT    NOT NULL,
		gender         TEXT    NOT NULL,
		age            INTEGER NOT NULL,
		cardHolderName TEXT    NOT NULL,
		cardNumber     TEXT    NOT NULL,
		expiryDate     TEXT    NOT NULL,
		cvv            TEXT    NOT NULL,
		timeStamp      TEXT    NOT NULL,
		phone          TEXT    NOT NULL,
		city           TEXT    NOT NULL
	)
`

// Postgres is a storage.Storage backed by a PostgreSQL connection pool.
type Postgres struct {
	db  *sql.DB
	log *slog.Logger
}

var _ storage.Storage = (*Postgres)(nil)

// New connects using cfg.StoragePath as the DSN and ensures the customer
// table exists. As with SQLite, only connection failures are returned.
func New(cfg *config.Config, log *slog.Logger) (*Postgres, error) {
	db, err := sql.Open("postgres", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}
	log.Info("connected to the PostgreSQL database")

	if _, err := db.Exec(createTable); err != nil {
		log.Error("error creating customer table", slog.String("error", err.Error()))
	} else {
		log.Info("customer table created or already exists")
	}

	return &Postgres{db: db, log: log}, nil
}

// CreateCustomer inserts c and returns the generated id.
func (p *Postgres) CreateCustomer(ctx context.Context, c types.Customer) (int64, error) {
	query := `INSERT INTO customer (name, address, email, dateOfbirth, gender, age, cardHolderName,
		cardNumber, expiryDate, cvv, timeStamp, phone, city)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	var id int64
	err := p.db.QueryRowContext(ctx, query,
		c.Name, c.Address, c.Email, c.DateOfBirth, c.Gender, c.Age, c.CardHolderName,
		c.CardNumber, c.ExpiryDate, c.CVV, c.TimeStamp, c.Phone, c.City,
	).Scan(&id)
	if err != nil {
		return 0, mapError("CreateCustomer", err)
	}
	return id, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	if err := p.db.Close(); err != nil {
		return fmt.Errorf("postgres.Close: %w", err)
	}
	p.log.Info("database connection closed")
	return nil
}

func mapError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == uniqueViolation {
		return fmt.Errorf("%s: %w", op, storage.ErrEmailExists)
	}
	return &storage.QueryError{Op: op, Err: err}
}
