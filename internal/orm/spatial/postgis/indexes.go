package postgis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/conduit-lang/spatial/internal/orm/ddl"
	"github.com/conduit-lang/spatial/internal/orm/spatial"
)

const indexesQuery = `SELECT DISTINCT i.relname, d.indisunique, d.indkey::text, t.oid, am.amname
FROM pg_class t
INNER JOIN pg_index d ON t.oid = d.indrelid
INNER JOIN pg_class i ON d.indexrelid = i.oid
INNER JOIN pg_am am ON i.relam = am.oid
WHERE i.relkind = 'i' AND d.indisprimary = false AND t.relname = $1`

const currentSchemasFilter = ` AND i.relnamespace IN (SELECT oid FROM pg_namespace WHERE nspname = ANY (current_schemas(false)))`

const schemaFilter = ` AND i.relnamespace = (SELECT oid FROM pg_namespace WHERE nspname = $2)`

const indexOrder = ` ORDER BY i.relname`

const indexColumnsQuery = `SELECT a.attnum, a.attname, t.typname
FROM pg_attribute a
INNER JOIN pg_type t ON a.atttypid = t.oid
WHERE a.attrelid = $1 AND a.attnum = ANY ($2::int2[])`

type indexRow struct {
	name   string
	unique bool
	keys   []int
	oid    int64
	method string
}

type indexColumn struct {
	name    string
	typname string
}

// Indexes lists the non primary key indexes of a table. An index is spatial
// when it uses GiST over exactly one geometry or geography column.
func (a *Adapter) Indexes(ctx context.Context, table string) ([]spatial.IndexDescriptor, error) {
	found, err := a.indexRows(ctx, table)
	if err != nil {
		return nil, err
	}

	indexes := make([]spatial.IndexDescriptor, 0, len(found))
	for _, row := range found {
		attrs, err := a.indexColumns(ctx, row.oid, row.keys)
		if err != nil {
			return nil, fmt.Errorf("index %s: %w", row.name, err)
		}

		// keys keep the index order; expression keys (attnum 0) have no column
		var columns, types []string
		for _, key := range row.keys {
			if col, ok := attrs[key]; ok {
				columns = append(columns, col.name)
				types = append(types, col.typname)
			}
		}

		indexes = append(indexes, spatial.IndexDescriptor{
			Table:   table,
			Name:    row.name,
			Unique:  row.unique,
			Columns: columns,
			Method:  row.method,
			Spatial: len(row.keys) == 1 &&
				spatial.ClassifySpatial(row.method, spatial.MethodGiST, types, spatial.IsPostGISType),
		})
	}

	return indexes, nil
}

func (a *Adapter) indexRows(ctx context.Context, table string) ([]indexRow, error) {
	schema, name := splitTable(table)

	query := indexesQuery
	args := []any{name}
	if schema != "" {
		query += schemaFilter
		args = append(args, schema)
	} else {
		query += currentSchemasFilter
	}
	query += indexOrder

	rows, err := a.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing indexes of %s: %w", table, err)
	}
	defer rows.Close()

	var found []indexRow
	for rows.Next() {
		var (
			row    indexRow
			indkey string
		)
		if err := rows.Scan(&row.name, &row.unique, &indkey, &row.oid, &row.method); err != nil {
			return nil, fmt.Errorf("scanning index row: %w", err)
		}

		row.keys, err = parseIndexKeys(indkey)
		if err != nil {
			return nil, fmt.Errorf("index %s: %w", row.name, err)
		}
		found = append(found, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing indexes of %s: %w", table, err)
	}

	return found, nil
}

func (a *Adapter) indexColumns(ctx context.Context, oid int64, keys []int) (map[int]indexColumn, error) {
	nums := make([]int64, len(keys))
	for i, k := range keys {
		nums[i] = int64(k)
	}

	rows, err := a.conn.Query(ctx, indexColumnsQuery, oid, pq.Array(nums))
	if err != nil {
		return nil, fmt.Errorf("reading index columns: %w", err)
	}
	defer rows.Close()

	attrs := make(map[int]indexColumn, len(keys))
	for rows.Next() {
		var (
			num int
			col indexColumn
		)
		if err := rows.Scan(&num, &col.name, &col.typname); err != nil {
			return nil, fmt.Errorf("scanning index column: %w", err)
		}
		attrs[num] = col
	}
	return attrs, rows.Err()
}

// parseIndexKeys reads the int2vector text form: "1 3"
func parseIndexKeys(s string) ([]int, error) {
	fields := strings.Fields(s)
	keys := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("parsing index key %q: %w", s, err)
		}
		keys = append(keys, n)
	}
	return keys, nil
}

// AddIndexSQL renders CREATE [UNIQUE] INDEX name ON table [USING GIST] (columns)
func (a *Adapter) AddIndexSQL(table string, columns []string, opts spatial.IndexOptions) string {
	name := opts.Name
	if name == "" {
		name = ddl.IndexName(table, columns)
	}

	var b strings.Builder
	b.WriteString("CREATE ")
	if opts.Unique {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX ")
	b.WriteString(a.quoter.QuoteColumn(name))
	b.WriteString(" ON ")
	b.WriteString(a.quoter.QuoteTable(table))
	if opts.Spatial {
		b.WriteString(" USING GIST")
	}
	b.WriteString(" (")
	b.WriteString(ddl.QuoteColumns(a.quoter, columns))
	b.WriteString(")")
	return b.String()
}

// AddIndex creates an index. A spatial index is expected to cover a single
// geometry or geography column; that is not checked here.
func (a *Adapter) AddIndex(ctx context.Context, table string, columns []string, opts spatial.IndexOptions) error {
	if err := a.conn.Execute(ctx, a.AddIndexSQL(table, columns, opts)); err != nil {
		return fmt.Errorf("adding index on %s: %w", table, err)
	}
	return nil
}

// RemoveIndex drops an index by name. The index lives in the table's schema.
func (a *Adapter) RemoveIndex(ctx context.Context, table, name string) error {
	schema, _ := splitTable(table)
	if schema != "" {
		name = schema + "." + name
	}

	if err := a.conn.Execute(ctx, "DROP INDEX "+a.quoter.QuoteTable(name)); err != nil {
		return fmt.Errorf("removing index %s: %w", name, err)
	}
	return nil
}
