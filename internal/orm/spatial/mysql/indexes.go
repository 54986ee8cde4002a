package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/conduit-lang/spatial/internal/orm/ddl"
	"github.com/conduit-lang/spatial/internal/orm/spatial"
)

const indexesQuery = `SELECT s.INDEX_NAME, s.NON_UNIQUE, s.COLUMN_NAME, s.INDEX_TYPE, c.DATA_TYPE
FROM information_schema.STATISTICS s
LEFT JOIN information_schema.COLUMNS c
  ON c.TABLE_SCHEMA = s.TABLE_SCHEMA AND c.TABLE_NAME = s.TABLE_NAME AND c.COLUMN_NAME = s.COLUMN_NAME
WHERE s.TABLE_SCHEMA = %s AND s.TABLE_NAME = ? AND s.INDEX_NAME <> 'PRIMARY'
ORDER BY s.INDEX_NAME, s.SEQ_IN_INDEX`

// Indexes lists the non primary key indexes of a table. An index is spatial
// when MySQL reports the SPATIAL type and it covers one geometric column.
func (a *Adapter) Indexes(ctx context.Context, table string) ([]spatial.IndexDescriptor, error) {
	schema, args := tableScope(table)

	rows, err := a.conn.Query(ctx, fmt.Sprintf(indexesQuery, schema), args...)
	if err != nil {
		return nil, fmt.Errorf("listing indexes of %s: %w", table, err)
	}
	defer rows.Close()

	var (
		indexes []spatial.IndexDescriptor
		types   [][]string
	)
	for rows.Next() {
		var (
			name      string
			nonUnique int
			column    sql.NullString
			method    string
			dataType  sql.NullString
		)
		if err := rows.Scan(&name, &nonUnique, &column, &method, &dataType); err != nil {
			return nil, fmt.Errorf("scanning index row: %w", err)
		}

		last := len(indexes) - 1
		if last < 0 || indexes[last].Name != name {
			indexes = append(indexes, spatial.IndexDescriptor{
				Table:  table,
				Name:   name,
				Unique: nonUnique == 0,
				Method: strings.ToLower(method),
			})
			types = append(types, nil)
			last++
		}

		// functional key parts have no column
		if column.Valid {
			indexes[last].Columns = append(indexes[last].Columns, column.String)
		}
		types[last] = append(types[last], dataType.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing indexes of %s: %w", table, err)
	}

	for i := range indexes {
		indexes[i].Spatial = spatial.ClassifySpatial(indexes[i].Method, spatial.MethodSpatial, types[i], spatial.IsKeywordType)
	}
	return indexes, nil
}

// AddIndexSQL renders CREATE [UNIQUE|SPATIAL] INDEX name ON table (columns)
func (a *Adapter) AddIndexSQL(table string, columns []string, opts spatial.IndexOptions) string {
	name := opts.Name
	if name == "" {
		name = ddl.IndexName(table, columns)
	}

	var b strings.Builder
	b.WriteString("CREATE ")
	switch {
	case opts.Spatial:
		b.WriteString("SPATIAL ")
	case opts.Unique:
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX ")
	b.WriteString(a.quoter.QuoteColumn(name))
	b.WriteString(" ON ")
	b.WriteString(a.quoter.QuoteTable(table))
	b.WriteString(" (")
	b.WriteString(ddl.QuoteColumns(a.quoter, columns))
	b.WriteString(")")
	return b.String()
}

// AddIndex creates an index. SPATIAL indexes require a NOT NULL column with
// an SRID attribute; that is left to MySQL to enforce.
func (a *Adapter) AddIndex(ctx context.Context, table string, columns []string, opts spatial.IndexOptions) error {
	if err := a.conn.Execute(ctx, a.AddIndexSQL(table, columns, opts)); err != nil {
		return fmt.Errorf("adding index on %s: %w", table, err)
	}
	return nil
}

// RemoveIndex drops an index by name
func (a *Adapter) RemoveIndex(ctx context.Context, table, name string) error {
	stmt := fmt.Sprintf("DROP INDEX %s ON %s", a.quoter.QuoteColumn(name), a.quoter.QuoteTable(table))
	if err := a.conn.Execute(ctx, stmt); err != nil {
		return fmt.Errorf("removing index %s: %w", name, err)
	}
	return nil
}
