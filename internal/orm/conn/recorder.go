package conn

import (
	"context"
	"database/sql"
	"strings"
)

// Recorder captures executed statements instead of running them. Reads are
// forwarded to the wrapped connection so introspection keeps working in dry
// runs; without one they fail with ErrNoConnection.
type Recorder struct {
	inner      Conn
	statements []string
}

// NewRecorder wraps inner, which may be nil
func NewRecorder(inner Conn) *Recorder {
	return &Recorder{inner: inner}
}

// Execute records the statement
func (r *Recorder) Execute(_ context.Context, query string, _ ...any) error {
	r.statements = append(r.statements, query)
	return nil
}

// Query forwards to the wrapped connection
func (r *Recorder) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if r.inner == nil {
		return nil, ErrNoConnection
	}
	return r.inner.Query(ctx, query, args...)
}

// SelectString forwards to the wrapped connection
func (r *Recorder) SelectString(ctx context.Context, query string, args ...any) (sql.NullString, error) {
	if r.inner == nil {
		return sql.NullString{}, ErrNoConnection
	}
	return r.inner.SelectString(ctx, query, args...)
}

// Statements returns the recorded statements in execution order
func (r *Recorder) Statements() []string {
	return r.statements
}

// Script joins the recorded statements into one semicolon terminated script
func (r *Recorder) Script() string {
	if len(r.statements) == 0 {
		return ""
	}
	return strings.Join(r.statements, ";\n") + ";"
}

// Reset discards the recorded statements
func (r *Recorder) Reset() {
	r.statements = nil
}
