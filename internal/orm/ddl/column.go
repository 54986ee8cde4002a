// Package ddl is the host side of the ORM schema layer: identifier quoting,
// ordinary column and table definitions, and the introspected column shape
// that spatial columns decorate.
package ddl

import (
	"database/sql"
)

// ColumnInfo is implemented by every introspected column, ordinary or spatial
type ColumnInfo interface {
	ColumnName() string
	IsSpatial() bool
}

// Column is an introspected ordinary column
type Column struct {
	Name     string
	SQLType  string
	Default  sql.NullString
	Nullable bool
}

// NewColumn builds the host column for an introspected row
func NewColumn(name, sqlType string, def sql.NullString, nullable bool) Column {
	return Column{
		Name:     name,
		SQLType:  sqlType,
		Default:  def,
		Nullable: nullable,
	}
}

// ColumnName returns the column name
func (c Column) ColumnName() string {
	return c.Name
}

// IsSpatial reports false for ordinary columns
func (c Column) IsSpatial() bool {
	return false
}

// ColumnOptions configures an ordinary column declaration
type ColumnOptions struct {
	NotNull    bool
	Default    any
	HasDefault bool

	Limit     *int // string(N)
	Precision *int // decimal(P,S)
	Scale     *int // decimal(P,S)
}
