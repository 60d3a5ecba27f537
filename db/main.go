package db

import (
	"context"
	"database/sql"

	"github.com/cyverse-de/dbutil"
	"github.com/pkg/errors"

	_ "github.com/lib/pq"
)

// schema creates the table that settings are stored in if it doesn't exist yet.
const schema = `CREATE TABLE IF NOT EXISTS settings (
    name text PRIMARY KEY,
    value text NOT NULL
)`

// InitDatabase establishes a database connection, waiting up to connectTimeout for the database to
// become reachable, and makes sure that the settings table exists.
func InitDatabase(ctx context.Context, driverName, databaseURI, connectTimeout string) (*sql.DB, error) {
	wrapMsg := "unable to initialize the database"

	// Create a database connector to establish the connection.
	connector, err := dbutil.NewDefaultConnector(connectTimeout)
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Establish the database connection.
	db, err := connector.Connect(driverName, databaseURI)
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Create the settings table.
	if err = EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, wrapMsg)
	}

	return db, nil
}

// EnsureSchema creates the settings table if it doesn't exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "unable to create the settings table")
	}
	return nil
}
