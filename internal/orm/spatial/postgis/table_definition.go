package postgis

import (
	"errors"
	"strings"

	"github.com/conduit-lang/spatial/internal/orm/ddl"
	"github.com/conduit-lang/spatial/internal/orm/spatial"
	"github.com/conduit-lang/spatial/internal/orm/spatial/codec"
)

// TableDefinition builds a CREATE TABLE for PostGIS. Ordinary, geography and
// inline geometry columns go into the column list; planar geometry columns
// registered through AddGeometryColumn are held back as pending columns.
type TableDefinition struct {
	host    *ddl.TableDefinition
	codec   codec.Codec
	pending []*PendingColumn
}

var _ spatial.TableBuilder = (*TableDefinition)(nil)

// NewTableDefinition creates an empty definition
func NewTableDefinition() *TableDefinition {
	return &TableDefinition{
		host:  ddl.NewTableDefinition(ddl.DialectPostgres),
		codec: codec.HexEWKB{},
	}
}

// PrimaryKey declares the auto-incrementing primary key
func (t *TableDefinition) PrimaryKey(name string) error {
	return t.host.PrimaryKey(name)
}

// Column declares a column. Spatial type names take the spatial path, every
// other name is handed to the host type mapper.
func (t *TableDefinition) Column(name, typeName string, opts spatial.ColumnOptions) error {
	if st, err := spatial.ParseType(typeName); err == nil {
		return t.Spatial(st, opts, name)
	}

	if err := t.host.Column(name, typeName, opts.ColumnOptions); err != nil {
		if errors.Is(err, ddl.ErrUnsupportedType) {
			return &spatial.ConfigurationError{Op: "declare column", Name: typeName, Err: err}
		}
		return err
	}
	t.removePending(name)
	return nil
}

// Spatial declares columns of one spatial type
func (t *TableDefinition) Spatial(st spatial.Type, opts spatial.ColumnOptions, names ...string) error {
	if !st.Valid() {
		return &spatial.ConfigurationError{Op: "declare column", Name: st.String(), Err: spatial.ErrUnknownType}
	}

	for _, name := range names {
		d := opts.Descriptor(name, st)

		var literal string
		if opts.HasDefault {
			var err error
			literal, err = quoteValue(t.host.Quoter(), t.codec, opts.Default)
			if err != nil {
				return err
			}
		}

		if deferred(opts) {
			t.addPending(&PendingColumn{Descriptor: d, Default: literal, HasDefault: opts.HasDefault})
			continue
		}

		d.SQLType = InlineType(d)
		t.removePending(name)
		t.host.Add(&ddl.ColumnDefinition{
			Name:       name,
			SQLType:    d.SQLType,
			NotNull:    opts.NotNull,
			Default:    literal,
			HasDefault: opts.HasDefault,
		})
	}
	return nil
}

// addPending queues a column. Redeclaring a pending name replaces it in
// place; an inline column of the same name is dropped.
func (t *TableDefinition) addPending(p *PendingColumn) {
	t.host.Remove(p.Name)
	for i, existing := range t.pending {
		if existing.Name == p.Name {
			t.pending[i] = p
			return
		}
	}
	t.pending = append(t.pending, p)
}

func (t *TableDefinition) removePending(name string) {
	for i, p := range t.pending {
		if p.Name == name {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the deferred columns in declaration order
func (t *TableDefinition) Pending() []*PendingColumn {
	return t.pending
}

// Columns returns the inline column definitions
func (t *TableDefinition) Columns() []*ddl.ColumnDefinition {
	return t.host.Columns()
}

// SQL renders the base CREATE TABLE followed by one registration sequence per
// pending column, all separated by semicolons. Binding the table name here
// consumes the pending columns.
func (t *TableDefinition) SQL(table string, opts spatial.TableOptions) string {
	q := t.host.Quoter()

	var b strings.Builder
	b.WriteString("CREATE ")
	if opts.Temporary {
		b.WriteString("TEMPORARY ")
	}
	b.WriteString("TABLE ")
	b.WriteString(q.QuoteTable(table))
	b.WriteString(" (")
	b.WriteString(t.host.SQL())
	b.WriteString(")")
	if o := strings.TrimSpace(opts.Options); o != "" {
		b.WriteString(" ")
		b.WriteString(o)
	}

	for _, p := range t.pending {
		p.TableName = table
		b.WriteString("; ")
		b.WriteString(p.SQL(q))
	}

	return b.String()
}
