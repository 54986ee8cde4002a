package ddl

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Quoter quotes identifiers and literal values for one SQL dialect
type Quoter interface {
	// QuoteTable quotes a possibly schema-qualified table name
	QuoteTable(name string) string
	// QuoteColumn quotes a single identifier
	QuoteColumn(name string) string
	// Quote renders a Go value as a SQL literal
	Quote(v any) (string, error)
}

// PostgresQuoter quotes for PostgreSQL
type PostgresQuoter struct{}

// QuoteTable quotes each dot separated part: public.places -> "public"."places"
func (PostgresQuoter) QuoteTable(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = pq.QuoteIdentifier(part)
	}
	return strings.Join(parts, ".")
}

// QuoteColumn wraps the identifier in double quotes, doubling embedded quotes
func (PostgresQuoter) QuoteColumn(name string) string {
	return pq.QuoteIdentifier(name)
}

// Quote renders v as a PostgreSQL literal
func (PostgresQuoter) Quote(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(pq.QuoteLiteral(val)), nil
	case []byte:
		return fmt.Sprintf(`'\x%s'::bytea`, hex.EncodeToString(val)), nil
	case time.Time:
		return strings.TrimSpace(pq.QuoteLiteral(val.UTC().Format(time.RFC3339Nano))), nil
	}
	return quoteScalar(v)
}

// MySQLQuoter quotes for MySQL
type MySQLQuoter struct{}

// QuoteTable quotes each dot separated part with backticks
func (q MySQLQuoter) QuoteTable(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = q.QuoteColumn(part)
	}
	return strings.Join(parts, ".")
}

// QuoteColumn wraps the identifier in backticks, doubling embedded backticks
func (MySQLQuoter) QuoteColumn(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Quote renders v as a MySQL literal
func (MySQLQuoter) Quote(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return QuoteMySQLString(val), nil
	case []byte:
		return "X'" + strings.ToUpper(hex.EncodeToString(val)) + "'", nil
	case time.Time:
		return QuoteMySQLString(val.UTC().Format("2006-01-02 15:04:05.999999")), nil
	}
	return quoteScalar(v)
}

var mysqlEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `''`,
	"\x00", `\0`,
	"\n", `\n`,
	"\r", `\r`,
	"\x1a", `\Z`,
)

// QuoteMySQLString quotes a string literal for MySQL
func QuoteMySQLString(s string) string {
	return "'" + mysqlEscaper.Replace(s) + "'"
}

// quoteScalar handles the dialect independent literals
func quoteScalar(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "NULL", nil
	case bool:
		if val {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.Itoa(val), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}
