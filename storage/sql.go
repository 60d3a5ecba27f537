package storage

import (
	"context"
	"database/sql"

	"github.com/cyverse-de/notification-preferences/db"
	"github.com/pkg/errors"
)

// SQL is a key-value store kept in the `settings` table of a relational database.
type SQL struct {
	db *sql.DB
}

// NewSQL returns a key-value store that uses the given database connection.
func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

// Get returns the value stored under the given key.
func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	wrapMsg := "unable to read from the settings table"

	// Begin a database transaction.
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return "", false, errors.Wrap(err, wrapMsg)
	}
	defer func() { _ = tx.Rollback() }()

	// Look up the value.
	value, found, err := db.GetSetting(ctx, tx, key)
	if err != nil {
		return "", false, errors.Wrap(err, wrapMsg)
	}

	return value, found, nil
}

// Set stores a value under the given key.
func (s *SQL) Set(ctx context.Context, key, value string) error {
	wrapMsg := "unable to write to the settings table"

	// Begin a database transaction.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	defer func() { _ = tx.Rollback() }()

	// Store the value.
	if err = db.PutSetting(ctx, tx, key, value); err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	// Commit the transaction.
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	return nil
}

// Close closes the database connection.
func (s *SQL) Close() error {
	return s.db.Close()
}
