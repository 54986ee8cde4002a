// Package conn provides the statement execution primitive used by the schema
// adapters: execute, query and single value selection over database/sql.
package conn

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNoConnection is returned by a Recorder asked to read without a backing connection
var ErrNoConnection = errors.New("no database connection")

// Conn executes statements against a database
type Conn interface {
	// Execute runs a statement that returns no rows
	Execute(ctx context.Context, query string, args ...any) error
	// Query runs a statement that returns rows. The caller closes them.
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	// SelectString returns the first column of the first row
	SelectString(ctx context.Context, query string, args ...any) (sql.NullString, error)
}

// DB is a Conn backed by *sql.DB
type DB struct {
	db     *sql.DB
	logger *zap.Logger
}

// New wraps db. A nil logger disables statement logging.
func New(db *sql.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{db: db, logger: logger}
}

// Execute runs a statement that returns no rows
func (c *DB) Execute(ctx context.Context, query string, args ...any) error {
	c.logger.Debug("execute", zap.String("sql", query), zap.Int("args", len(args)))

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("executing statement: %w", err)
	}
	return nil
}

// Query runs a statement that returns rows
func (c *DB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	c.logger.Debug("query", zap.String("sql", query), zap.Int("args", len(args)))

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	return rows, nil
}

// SelectString returns the first column of the first row. No rows yields an
// invalid NullString and no error.
func (c *DB) SelectString(ctx context.Context, query string, args ...any) (sql.NullString, error) {
	c.logger.Debug("select value", zap.String("sql", query), zap.Int("args", len(args)))

	var value sql.NullString
	err := c.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return sql.NullString{}, nil
	}
	if err != nil {
		return sql.NullString{}, fmt.Errorf("selecting value: %w", err)
	}
	return value, nil
}
