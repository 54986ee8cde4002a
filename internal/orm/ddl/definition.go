package ddl

import (
	"fmt"
	"strings"
)

// ColumnDefinition is one column inside a CREATE TABLE or ADD COLUMN statement
type ColumnDefinition struct {
	Name       string
	SQLType    string
	NotNull    bool
	Default    string // already rendered as a SQL literal
	HasDefault bool
}

// SQL renders the column definition with quoted identifiers
func (c *ColumnDefinition) SQL(q Quoter) string {
	var parts []string

	parts = append(parts, q.QuoteColumn(c.Name), c.SQLType)

	if c.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if c.HasDefault {
		parts = append(parts, "DEFAULT "+c.Default)
	}

	return strings.Join(parts, " ")
}

// TableDefinition collects the columns of a table in declaration order
type TableDefinition struct {
	quoter  Quoter
	mapper  *TypeMapper
	columns []*ColumnDefinition
}

// NewTableDefinition creates an empty table definition for a dialect
func NewTableDefinition(dialect Dialect) *TableDefinition {
	return &TableDefinition{
		quoter: dialect.Quoter(),
		mapper: NewTypeMapper(dialect),
	}
}

// Quoter returns the quoting rules of the table's dialect
func (t *TableDefinition) Quoter() Quoter {
	return t.quoter
}

// PrimaryKey declares an auto-incrementing primary key column
func (t *TableDefinition) PrimaryKey(name string) error {
	return t.Column(name, "primary_key", ColumnOptions{})
}

// Column declares an ordinary column, mapping its abstract type name
func (t *TableDefinition) Column(name, typeName string, opts ColumnOptions) error {
	sqlType, err := t.mapper.MapType(typeName, opts)
	if err != nil {
		return fmt.Errorf("column %s: %w", name, err)
	}

	def, err := NewColumnDefinition(t.quoter, name, sqlType, opts)
	if err != nil {
		return err
	}

	t.Add(def)
	return nil
}

// Add appends a prepared definition. A column declared twice keeps its
// original position and takes the new definition.
func (t *TableDefinition) Add(def *ColumnDefinition) {
	for i, existing := range t.columns {
		if existing.Name == def.Name {
			t.columns[i] = def
			return
		}
	}
	t.columns = append(t.columns, def)
}

// Remove drops a declared column and reports whether it was present
func (t *TableDefinition) Remove(name string) bool {
	for i, c := range t.columns {
		if c.Name == name {
			t.columns = append(t.columns[:i], t.columns[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the definition of a declared column
func (t *TableDefinition) Get(name string) (*ColumnDefinition, bool) {
	for _, c := range t.columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Columns returns the declared columns in order
func (t *TableDefinition) Columns() []*ColumnDefinition {
	return t.columns
}

// SQL renders the comma separated column list
func (t *TableDefinition) SQL() string {
	defs := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		defs = append(defs, c.SQL(t.quoter))
	}
	return strings.Join(defs, ", ")
}

// NewColumnDefinition builds a definition for an already mapped SQL type,
// rendering the default value with the quoter
func NewColumnDefinition(q Quoter, name, sqlType string, opts ColumnOptions) (*ColumnDefinition, error) {
	def := &ColumnDefinition{
		Name:    name,
		SQLType: sqlType,
		NotNull: opts.NotNull,
	}

	if opts.HasDefault {
		literal, err := q.Quote(opts.Default)
		if err != nil {
			return nil, fmt.Errorf("column %s default: %w", name, err)
		}
		def.Default = literal
		def.HasDefault = true
	}

	return def, nil
}
