package ddl

import (
	"fmt"
	"strings"
)

// IndexName derives the conventional index name for a set of columns
func IndexName(table string, columns []string) string {
	table = strings.ReplaceAll(table, ".", "_")
	return fmt.Sprintf("idx_%s_%s", table, strings.Join(columns, "_"))
}

// QuoteColumns quotes each column name and joins them with ", "
func QuoteColumns(q Quoter, columns []string) string {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = q.QuoteColumn(col)
	}
	return strings.Join(quoted, ", ")
}

// AddColumnSQL renders ALTER TABLE ... ADD COLUMN
func AddColumnSQL(q Quoter, table string, def *ColumnDefinition) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", q.QuoteTable(table), def.SQL(q))
}

// DropColumnSQL renders ALTER TABLE ... DROP COLUMN
func DropColumnSQL(q Quoter, table, column string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", q.QuoteTable(table), q.QuoteColumn(column))
}

// SetDefaultSQL renders ALTER TABLE ... ALTER COLUMN ... SET DEFAULT
func SetDefaultSQL(q Quoter, table, column, literal string) string {
	return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s",
		q.QuoteTable(table), q.QuoteColumn(column), literal)
}

// BackfillSQL renders the UPDATE that replaces NULLs before a NOT NULL change
func BackfillSQL(q Quoter, table, column, literal string) string {
	return fmt.Sprintf("UPDATE %s SET %s = %s WHERE %s IS NULL",
		q.QuoteTable(table), q.QuoteColumn(column), literal, q.QuoteColumn(column))
}

// SetNotNullSQL renders ALTER TABLE ... ALTER COLUMN ... SET NOT NULL
func SetNotNullSQL(q Quoter, table, column string) string {
	return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET NOT NULL",
		q.QuoteTable(table), q.QuoteColumn(column))
}

// DropTableSQL renders DROP TABLE IF EXISTS
func DropTableSQL(q Quoter, table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", q.QuoteTable(table))
}
