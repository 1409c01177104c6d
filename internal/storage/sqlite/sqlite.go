// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The whole database is a single file created on first use. Importing
// go-sqlite3 registers the "sqlite3" driver with database/sql; its Error
// type is also used to recognise constraint violations.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/customers-api/internal/config"
	"github.com/aanand-mishra/customers-api/internal/storage"
	"github.com/aanand-mishra/customers-api/internal/types"
)

const createTable = `
	CREATE TABLE IF NOT EXISTS customer (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
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

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db  *sql.DB
	log *slog.Logger
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database at cfg.StoragePath and makes sure the
// customer table exists.
//
// Only a failure to open the database is returned. A failure to create the
// table is logged and the handle is returned anyway; inserts will report
// the real problem.
func New(cfg *config.Config, log *slog.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// sql.Open is lazy; Ping forces the file to be opened now.
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: connect: %w", err)
	}
	log.Info("connected to the SQLite database", slog.String("path", cfg.StoragePath))

	if _, err := db.Exec(createTable); err != nil {
		log.Error("error creating customer table", slog.String("error", err.Error()))
	} else {
		log.Info("customer table created or already exists")
	}

	return &SQLite{Db: db, log: log}, nil
}

// CreateCustomer inserts a new row into the customer table.
func (s *SQLite) CreateCustomer(ctx context.Context, c types.Customer) (int64, error) {
	stmt, err := s.Db.PrepareContext(ctx, `
		INSERT INTO customer (name, address, email, dateOfbirth, gender, age, cardHolderName,
			cardNumber, expiryDate, cvv, timeStamp, phone, city)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, &storage.QueryError{Op: "CreateCustomer: prepare", Err: err}
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		c.Name, c.Address, c.Email, c.DateOfBirth, c.Gender, c.Age, c.CardHolderName,
		c.CardNumber, c.ExpiryDate, c.CVV, c.TimeStamp, c.Phone, c.City,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("CreateCustomer: %w", storage.ErrEmailExists)
		}
		return 0, &storage.QueryError{Op: "CreateCustomer: exec", Err: err}
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, &storage.QueryError{Op: "CreateCustomer: last insert id", Err: err}
	}

	return lastID, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	if err := s.Db.Close(); err != nil {
		return fmt.Errorf("sqlite.Close: %w", err)
	}
	s.log.Info("database connection closed")
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
