/**
 * CONTEXT:   Typed statement-binding and row-iteration helpers over database/sql
 * INPUT:     SQL text, positional parameters, a row-scanning callback
 * OUTPUT:    Prepared *sql.Stmt handles and single-column string slices
 * BUSINESS:  Every C5/C6/C12 query goes through the same narrow binding surface
 * CHANGE:    Adds typed positional binders, a row-iteration helper, and a
 *            single-column string-slice reader shared by every query package
 * RISK:      Low - thin wrapper, errors always propagate with query context
 */

package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
)

// PrepareStatement prepares sql against the pooled connection, wrapping any
// failure with the statement text so callers don't need to repeat it.
func (db *DB) PrepareStatement(ctx context.Context, query string) (*sql.Stmt, error) {
	stmt, err := db.SQL().PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: failed to prepare statement %q: %w", query, err)
	}
	return stmt, nil
}

// IntParam and TextParam exist so call sites building positional argument
// slices read as typed bindings rather than bare interface{} literals.
type IntParam int64

// TextParam binds a plain string parameter.
type TextParam string

// BindArgs converts a mixed slice of IntParam/TextParam/driver-native values
// into the []interface{} database/sql expects, leaving already-native values
// (string, int64, nil) untouched.
func BindArgs(params ...interface{}) []interface{} {
	args := make([]interface{}, len(params))
	for i, p := range params {
		switch v := p.(type) {
		case IntParam:
			args[i] = int64(v)
		case TextParam:
			args[i] = string(v)
		default:
			args[i] = v
		}
	}
	return args
}

// RowVisitor is called once per result row with a *sql.Rows positioned at
// that row; it must call Scan itself since column counts vary by query.
type RowVisitor func(rows *sql.Rows) error

// IterateRows runs query with args and invokes visit for every row, the
// single place row-scanning errors and close semantics are handled.
func (db *DB) IterateRows(ctx context.Context, query string, args []interface{}, visit RowVisitor) error {
	rows, err := db.SQL().QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqlitestore: query failed %q: %w", query, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := visit(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// QueryStringColumn runs query and collects the first result column from
// every row into a string slice, for label/path listings (distinct project
// paths, distinct dates) that need nothing richer than a flat list.
func (db *DB) QueryStringColumn(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	var values []string
	err := db.IterateRows(ctx, query, args, func(rows *sql.Rows) error {
		var v string
		if err := rows.Scan(&v); err != nil {
			return fmt.Errorf("sqlitestore: failed to scan string column: %w", err)
		}
		values = append(values, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}
