package postgis

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/conduit-lang/spatial/internal/orm/ddl"
	"github.com/conduit-lang/spatial/internal/orm/spatial"
)

const registryQuery = `SELECT f_geometry_column, coord_dimension, srid, type
FROM geometry_columns
WHERE f_table_name = $1`

const registrySchemaFilter = ` AND f_table_schema = $2`

const columnsQuery = `SELECT a.attname, format_type(a.atttypid, a.atttypmod), pg_get_expr(d.adbin, d.adrelid), a.attnotnull
FROM pg_attribute a
LEFT JOIN pg_attrdef d ON a.attrelid = d.adrelid AND a.attnum = d.adnum
WHERE a.attrelid = $1::regclass AND a.attnum > 0 AND NOT a.attisdropped
ORDER BY a.attnum`

// GeometryRegistry reads the geometry_columns rows of a table, keyed by
// column name and already normalized
func (a *Adapter) GeometryRegistry(ctx context.Context, table string) (map[string]*spatial.RawGeomInfo, error) {
	schema, name := splitTable(table)

	query := registryQuery
	args := []any{name}
	if schema != "" {
		query += registrySchemaFilter
		args = append(args, schema)
	}

	rows, err := a.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reading geometry registry for %s: %w", table, err)
	}
	defer rows.Close()

	infos := make(map[string]*spatial.RawGeomInfo)
	for rows.Next() {
		var (
			column   string
			dim      sql.NullInt64
			srid     sql.NullInt64
			typeName sql.NullString
		)
		if err := rows.Scan(&column, &dim, &srid, &typeName); err != nil {
			return nil, fmt.Errorf("scanning geometry registry row: %w", err)
		}

		info := spatial.NewRawGeomInfo(typeName.String, int(dim.Int64), int(srid.Int64))
		info.Normalize()
		infos[column] = info
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading geometry registry for %s: %w", table, err)
	}

	return infos, nil
}

// Columns lists the columns of a table. Geography columns are described from
// their type modifiers, geometry columns from the registry, and every other
// column is returned as an ordinary ddl.Column. A geometry column missing
// from the registry gets a simplified descriptor instead of failing the call.
func (a *Adapter) Columns(ctx context.Context, table string) ([]ddl.ColumnInfo, error) {
	registry, err := a.GeometryRegistry(ctx, table)
	if err != nil {
		return nil, err
	}

	rows, err := a.conn.Query(ctx, columnsQuery, a.quoter.QuoteTable(table))
	if err != nil {
		return nil, fmt.Errorf("listing columns of %s: %w", table, err)
	}
	defer rows.Close()

	var columns []ddl.ColumnInfo
	for rows.Next() {
		var (
			name    string
			sqlType string
			def     sql.NullString
			notNull bool
		)
		if err := rows.Scan(&name, &sqlType, &def, &notNull); err != nil {
			return nil, fmt.Errorf("scanning column row: %w", err)
		}

		columns = append(columns, a.describe(table, name, sqlType, def, !notNull, registry))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing columns of %s: %w", table, err)
	}

	return columns, nil
}

func (a *Adapter) describe(table, name, sqlType string, def sql.NullString, nullable bool, registry map[string]*spatial.RawGeomInfo) ddl.ColumnInfo {
	var d *spatial.Descriptor

	switch {
	case spatial.IsGeographyType(sqlType):
		d = spatial.FromGeography(name, sqlType)
	case spatial.IsGeometryType(sqlType):
		if info, ok := registry[name]; ok {
			d = info.Descriptor(name)
		} else if typed, ok := spatial.FromGeometryTypmod(name, sqlType); ok {
			d = typed
		} else {
			a.logger.Warn("geometry column has no registry entry",
				zap.String("table", table), zap.String("column", name))
			d = spatial.Simplified(name)
		}
	default:
		return ddl.NewColumn(name, sqlType, def, nullable)
	}

	d.SQLType = sqlType
	d.Default = def
	d.Nullable = nullable
	return d
}
