package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"
)

// GetSetting obtains the value stored under the given name. The second return value is false if no
// value has been stored under the name yet.
func GetSetting(ctx context.Context, tx *sql.Tx, name string) (string, bool, error) {
	wrapMsg := fmt.Sprintf("unable to get the setting `%s`", name)

	// Build the query.
	query, args, err := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select("value").
		From("settings").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return "", false, errors.Wrap(err, wrapMsg)
	}

	// Query the database.
	var value string
	err = tx.QueryRowContext(ctx, query, args...).Scan(&value)

	// A missing row just means that nothing has been saved yet.
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, wrapMsg)
	}

	return value, true, nil
}

// PutSetting stores a value under the given name, replacing any value that was stored previously.
func PutSetting(ctx context.Context, tx *sql.Tx, name, value string) error {
	wrapMsg := fmt.Sprintf("unable to store the setting `%s`", name)

	// Build the statement.
	statement, args, err := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Insert("settings").
		Columns("name", "value").
		Values(name, value).
		Suffix("ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value").
		ToSql()
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	// Execute the statement and verify that the correct number of rows was affected.
	result, err := tx.ExecContext(ctx, statement, args...)
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}
	if rowsAffected != 1 {
		return fmt.Errorf("%s: unexpected number of rows affected: %d", wrapMsg, rowsAffected)
	}

	return nil
}
