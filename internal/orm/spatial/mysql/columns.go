package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/conduit-lang/spatial/internal/orm/ddl"
	"github.com/conduit-lang/spatial/internal/orm/spatial"
)

const columnsQuery = `SELECT COLUMN_NAME, COLUMN_TYPE, COLUMN_DEFAULT, IS_NULLABLE, %s
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = %s AND TABLE_NAME = ?
ORDER BY ORDINAL_POSITION`

// sridColumn is the information_schema column holding a column's SRID.
// MariaDB has none.
func (a *Adapter) sridColumn() string {
	if a.flavor == FlavorMariaDB {
		return "NULL AS SRS_ID"
	}
	return "SRS_ID"
}

// tableScope returns the schema predicate operand and the query arguments
// for a possibly qualified table name
func tableScope(table string) (string, []any) {
	if i := strings.LastIndexByte(table, '.'); i >= 0 {
		return "?", []any{table[:i], table[i+1:]}
	}
	return "DATABASE()", []any{table}
}

// Columns lists the columns of a table. Geometric columns are recognized by
// their reported type keyword and carry the column's SRS_ID, or an
// unspecified SRID when the column has none or the server is MariaDB.
func (a *Adapter) Columns(ctx context.Context, table string) ([]ddl.ColumnInfo, error) {
	schema, args := tableScope(table)

	rows, err := a.conn.Query(ctx, fmt.Sprintf(columnsQuery, a.sridColumn(), schema), args...)
	if err != nil {
		return nil, fmt.Errorf("listing columns of %s: %w", table, err)
	}
	defer rows.Close()

	var columns []ddl.ColumnInfo
	for rows.Next() {
		var (
			name     string
			sqlType  string
			def      sql.NullString
			nullable string
			srid     sql.NullInt64
		)
		if err := rows.Scan(&name, &sqlType, &def, &nullable, &srid); err != nil {
			return nil, fmt.Errorf("scanning column row: %w", err)
		}

		columns = append(columns, describe(name, sqlType, def, strings.EqualFold(nullable, "YES"), srid))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing columns of %s: %w", table, err)
	}

	return columns, nil
}

func describe(name, sqlType string, def sql.NullString, nullable bool, srid sql.NullInt64) ddl.ColumnInfo {
	if !spatial.IsKeywordType(sqlType) {
		return ddl.NewColumn(name, sqlType, def, nullable)
	}

	t, err := spatial.TypeFromKeyword(keywordOf(sqlType))
	if err != nil {
		t = spatial.Geometry
	}

	d := spatial.NewDescriptor(name, t)
	d.SQLType = sqlType
	d.Default = def
	d.Nullable = nullable
	if srid.Valid {
		d.SRID = int(srid.Int64)
	}
	return d
}

func keywordOf(sqlType string) string {
	base := strings.TrimSpace(sqlType)
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = base[:i]
	}
	return base
}
