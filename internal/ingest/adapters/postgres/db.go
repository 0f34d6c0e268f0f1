package postgres

import (
	"context"
	"database/sql"
)

// DB is the write half of the connection pool. *sql.DB satisfies it; the
// read side lives in the analytics page source.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var _ DB = (*sql.DB)(nil)
