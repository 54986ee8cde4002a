package postgis

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/conduit-lang/spatial/internal/orm/ddl"
	"github.com/conduit-lang/spatial/internal/orm/spatial"
)

// CreateTableSQL builds the CREATE TABLE script without running it
func (a *Adapter) CreateTableSQL(table string, opts spatial.TableOptions, build func(spatial.TableBuilder) error) (string, error) {
	t := NewTableDefinition()

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

// CreateTable creates a table. Pending geometry registrations run in the same
// script right after the base statement; no transaction is opened here.
func (a *Adapter) CreateTable(ctx context.Context, table string, opts spatial.TableOptions, build func(spatial.TableBuilder) error) error {
	script, err := a.CreateTableSQL(table, opts, build)
	if err != nil {
		return err
	}

	if opts.Force {
		if err := a.conn.Execute(ctx, ddl.DropTableSQL(a.quoter, table)); err != nil {
			return fmt.Errorf("dropping table %s: %w", table, err)
		}
	}

	if err := a.conn.Execute(ctx, script); err != nil {
		return fmt.Errorf("creating table %s: %w", table, err)
	}
	return nil
}

// AddColumnSQL returns the statements that add a column to an existing table.
// Geography and inline columns use ALTER TABLE ADD COLUMN, planar geometry
// columns the registration call. Defaults and NOT NULL follow as separate
// statements on both spatial paths.
func (a *Adapter) AddColumnSQL(table, column, typeName string, opts spatial.ColumnOptions) ([]string, error) {
	st, err := spatial.ParseType(typeName)
	if err != nil {
		return a.hostAddColumnSQL(table, column, typeName, opts)
	}

	d := opts.Descriptor(column, st)

	var stmts []string
	if deferred(opts) {
		stmts = append(stmts, AddGeometryColumnSQL(table, d))
	} else {
		stmts = append(stmts, ddl.AddColumnSQL(a.quoter, table, &ddl.ColumnDefinition{
			Name:    column,
			SQLType: InlineType(d),
		}))
	}

	var literal string
	if opts.HasDefault {
		literal, err = quoteValue(a.quoter, a.codec, opts.Default)
		if err != nil {
			return nil, fmt.Errorf("column %s default: %w", column, err)
		}
		stmts = append(stmts, ddl.SetDefaultSQL(a.quoter, table, column, literal))
	}

	if opts.NotNull {
		if opts.HasDefault && opts.Default != nil {
			stmts = append(stmts, ddl.BackfillSQL(a.quoter, table, column, literal))
		}
		stmts = append(stmts, ddl.SetNotNullSQL(a.quoter, table, column))
	}

	return stmts, nil
}

// hostAddColumnSQL handles ordinary column types in a single statement
func (a *Adapter) hostAddColumnSQL(table, column, typeName string, opts spatial.ColumnOptions) ([]string, error) {
	sqlType, err := ddl.NewTypeMapper(ddl.DialectPostgres).MapType(typeName, opts.ColumnOptions)
	if err != nil {
		if errors.Is(err, ddl.ErrUnsupportedType) {
			return nil, &spatial.ConfigurationError{Op: "add column", Name: typeName, Err: err}
		}
		return nil, err
	}

	def, err := ddl.NewColumnDefinition(a.quoter, column, sqlType, opts.ColumnOptions)
	if err != nil {
		return nil, err
	}
	return []string{ddl.AddColumnSQL(a.quoter, table, def)}, nil
}

// AddColumn adds a column to an existing table. Statements run in order and
// the first failure is returned as is; earlier statements are not undone.
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

// RemoveColumn drops columns. Registered planar geometry columns are removed
// with DropGeometryColumn so geometry_columns stays consistent; everything
// else, including names the table does not have, uses DROP COLUMN and lets
// the database report problems.
func (a *Adapter) RemoveColumn(ctx context.Context, table string, columns ...string) error {
	existing, err := a.Columns(ctx, table)
	if err != nil {
		return err
	}

	byName := make(map[string]ddl.ColumnInfo, len(existing))
	for _, col := range existing {
		byName[col.ColumnName()] = col
	}

	for _, name := range columns {
		stmt := ddl.DropColumnSQL(a.quoter, table, name)
		// DropGeometryColumn raises for columns missing from geometry_columns
		if d, ok := byName[name].(*spatial.Descriptor); ok && d.Registered && !d.Geographic {
			stmt = DropGeometryColumnSQL(table, name)
		} else if _, ok := byName[name]; !ok {
			a.logger.Debug("removing column not reported by introspection",
				zap.String("table", table), zap.String("column", name))
		}

		if err := a.conn.Execute(ctx, stmt); err != nil {
			return fmt.Errorf("removing column %s.%s: %w", table, name, err)
		}
	}
	return nil
}

// Quote renders a value for interpolation, geometries as quoted hex EWKB
func (a *Adapter) Quote(v any) (string, error) {
	return quoteValue(a.quoter, a.codec, v)
}
