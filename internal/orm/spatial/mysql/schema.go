package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/conduit-lang/spatial/internal/orm/ddl"
	"github.com/conduit-lang/spatial/internal/orm/spatial"
)

// ColumnType renders the MySQL 8 inline declaration type: KEYWORD [SRID n]
func ColumnType(d *spatial.Descriptor) string {
	if d.HasSRID() {
		return fmt.Sprintf("%s SRID %d", d.Type.Keyword(), d.SRID)
	}
	return d.Type.Keyword()
}

// MariaDBColumnType renders the MariaDB form: KEYWORD [REF_SYSTEM_ID=n]
func MariaDBColumnType(d *spatial.Descriptor) string {
	if d.HasSRID() {
		return fmt.Sprintf("%s REF_SYSTEM_ID=%d", d.Type.Keyword(), d.SRID)
	}
	return d.Type.Keyword()
}

func (a *Adapter) columnType(d *spatial.Descriptor) string {
	if a.flavor == FlavorMariaDB {
		return MariaDBColumnType(d)
	}
	return ColumnType(d)
}

// checkModifiers rejects what MySQL cannot store
func checkModifiers(st spatial.Type, opts spatial.ColumnOptions) error {
	var unsupported []string
	if opts.WithZ {
		unsupported = append(unsupported, "z")
	}
	if opts.WithM {
		unsupported = append(unsupported, "m")
	}
	if opts.Geographic {
		unsupported = append(unsupported, "geographic")
	}
	if len(unsupported) == 0 {
		return nil
	}
	return &spatial.ConfigurationError{
		Op:   "declare column",
		Name: st.String(),
		Err:  fmt.Errorf("%w: %s", spatial.ErrUnsupportedModifier, strings.Join(unsupported, ", ")),
	}
}

// TableDefinition builds a MySQL CREATE TABLE; every column is inline
type TableDefinition struct {
	adapter *Adapter
	host    *ddl.TableDefinition
}

var _ spatial.TableBuilder = (*TableDefinition)(nil)

// NewTableDefinition creates an empty definition
func (a *Adapter) NewTableDefinition() *TableDefinition {
	return &TableDefinition{
		adapter: a,
		host:    ddl.NewTableDefinition(ddl.DialectMySQL),
	}
}

// PrimaryKey declares the auto-incrementing primary key
func (t *TableDefinition) PrimaryKey(name string) error {
	return t.host.PrimaryKey(name)
}

// Column declares a column; spatial type names take the spatial path
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
	return nil
}

// Spatial declares columns of one spatial type
func (t *TableDefinition) Spatial(st spatial.Type, opts spatial.ColumnOptions, names ...string) error {
	for _, name := range names {
		def, err := t.adapter.spatialDefinition(name, st, opts)
		if err != nil {
			return err
		}
		t.host.Add(def)
	}
	return nil
}

// Columns returns the declared columns in order
func (t *TableDefinition) Columns() []*ddl.ColumnDefinition {
	return t.host.Columns()
}

// SQL renders CREATE [TEMPORARY] TABLE name (columns) [options]
func (t *TableDefinition) SQL(table string, opts spatial.TableOptions) string {
	var b strings.Builder
	b.WriteString("CREATE ")
	if opts.Temporary {
		b.WriteString("TEMPORARY ")
	}
	b.WriteString("TABLE ")
	b.WriteString(t.host.Quoter().QuoteTable(table))
	b.WriteString(" (")
	b.WriteString(t.host.SQL())
	b.WriteString(")")
	if o := strings.TrimSpace(opts.Options); o != "" {
		b.WriteString(" ")
		b.WriteString(o)
	}
	return b.String()
}

func (a *Adapter) spatialDefinition(name string, st spatial.Type, opts spatial.ColumnOptions) (*ddl.ColumnDefinition, error) {
	if !st.Valid() {
		return nil, &spatial.ConfigurationError{Op: "declare column", Name: st.String(), Err: spatial.ErrUnknownType}
	}
	if err := checkModifiers(st, opts); err != nil {
		return nil, err
	}

	def := &ddl.ColumnDefinition{
		Name:    name,
		SQLType: a.columnType(opts.Descriptor(name, st)),
		NotNull: opts.NotNull,
	}
	if opts.HasDefault {
		literal, err := a.Quote(opts.Default)
		if err != nil {
			return nil, fmt.Errorf("column %s default: %w", name, err)
		}
		def.Default = literal
		def.HasDefault = true
	}
	return def, nil
}

// CreateTableSQL builds the CREATE TABLE statement without running it
func (a *Adapter) CreateTableSQL(table string, opts spatial.TableOptions, build func(spatial.TableBuilder) error) (string, error) {
	t := a.NewTableDefinition()

	if !opts.NoID {
		if err := t.PrimaryKey(opts.PrimaryKeyName()); err != nil {
			return "", err
		}
	}
	if build != nil {
		if err := build(t); err != nil {
			return "", fmt.Errorf("table %s: %w", table, err)
		}
	}

	return t.SQL(table, opts), nil
}

// CreateTable creates a table in a single statement
func (a *Adapter) CreateTable(ctx context.Context, table string, opts spatial.TableOptions, build func(spatial.TableBuilder) error) error {
	stmt, err := a.CreateTableSQL(table, opts, build)
	if err != nil {
		return err
	}

	if opts.Force {
		if err := a.conn.Execute(ctx, ddl.DropTableSQL(a.quoter, table)); err != nil {
			return fmt.Errorf("dropping table %s: %w", table, err)
		}
	}

	if err := a.conn.Execute(ctx, stmt); err != nil {
		return fmt.Errorf("creating table %s: %w", table, err)
	}
	return nil
}

// AddColumnSQL returns the single ALTER TABLE ADD COLUMN statement
func (a *Adapter) AddColumnSQL(table, column, typeName string, opts spatial.ColumnOptions) ([]string, error) {
	var def *ddl.ColumnDefinition

	if st, err := spatial.ParseType(typeName); err == nil {
		def, err = a.spatialDefinition(column, st, opts)
		if err != nil {
			return nil, err
		}
	} else {
		sqlType, err := ddl.NewTypeMapper(ddl.DialectMySQL).MapType(typeName, opts.ColumnOptions)
		if err != nil {
			if errors.Is(err, ddl.ErrUnsupportedType) {
				return nil, &spatial.ConfigurationError{Op: "add column", Name: typeName, Err: err}
			}
			return nil, err
		}
		def, err = ddl.NewColumnDefinition(a.quoter, column, sqlType, opts.ColumnOptions)
		if err != nil {
			return nil, err
		}
	}

	return []string{ddl.AddColumnSQL(a.quoter, table, def)}, nil
}

// AddColumn adds a column to an existing table
func (a *Adapter) AddColumn(ctx context.Context, table, column, typeName string, opts spatial.ColumnOptions) error {
	stmts, err := a.AddColumnSQL(table, column, typeName, opts)
	if err != nil {
		return err
	}

	for _, stmt := range stmts {
		if err := a.conn.Execute(ctx, stmt); err != nil {
			return fmt.Errorf("adding column %s.%s: %w", table, column, err)
		}
	}
	return nil
}

// RemoveColumn drops columns; MySQL has no registry to update
func (a *Adapter) RemoveColumn(ctx context.Context, table string, columns ...string) error {
	for _, name := range columns {
		if err := a.conn.Execute(ctx, ddl.DropColumnSQL(a.quoter, table, name)); err != nil {
			return fmt.Errorf("removing column %s.%s: %w", table, name, err)
		}
	}
	return nil
}
