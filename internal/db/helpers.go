package db

import (
	"context"
	"database/sql"
)

// QueryRower is satisfied by *sql.DB and *sql.Tx.
type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// HasTable reports whether table exists in the current schema. Any error,
// including a bad connection, is reported as "missing" so callers can fall back.
func HasTable(ctx context.Context, q QueryRower, table string) bool {
	if q == nil {
		return false
	}
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}
