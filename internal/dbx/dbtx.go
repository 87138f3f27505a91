// Package dbx provides a tiny DB abstraction shared by the query layer:
// a minimal read interface (DBTX) implemented by *sql.DB, *sql.Conn and
// *sql.Tx alike, so the same queries run against a pooled handle, a pinned
// connection or an in-memory test database.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the entry queries.
// *sql.DB, *sql.Conn and *sql.Tx all satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
