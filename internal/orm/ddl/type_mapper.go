package ddl

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is returned for column types the host cannot map
	ErrUnsupportedType = errors.New("unsupported column type")

	// ErrUnsupportedValue is returned for default values that cannot be quoted
	ErrUnsupportedValue = errors.New("unsupported value type")
)

// Dialect selects the SQL flavor of generated statements
type Dialect int

const (
	DialectPostgres Dialect = iota
	DialectMySQL
)

// String returns the dialect name
func (d Dialect) String() string {
	switch d {
	case DialectPostgres:
		return "postgresql"
	case DialectMySQL:
		return "mysql"
	default:
		return "unknown"
	}
}

// Quoter returns the quoting rules of the dialect
func (d Dialect) Quoter() Quoter {
	if d == DialectMySQL {
		return MySQLQuoter{}
	}
	return PostgresQuoter{}
}

// TypeNames are the abstract column types MapType accepts
var TypeNames = []string{
	"string", "text", "integer", "bigint", "float", "decimal", "boolean",
	"timestamp", "datetime", "date", "time", "binary", "uuid", "json", "jsonb",
}

// TypeMapper maps abstract column type names to dialect column types
type TypeMapper struct {
	dialect Dialect
}

// NewTypeMapper creates a new TypeMapper
func NewTypeMapper(dialect Dialect) *TypeMapper {
	return &TypeMapper{dialect: dialect}
}

// MapType converts an abstract type name to the dialect's column type
func (tm *TypeMapper) MapType(typeName string, opts ColumnOptions) (string, error) {
	mysql := tm.dialect == DialectMySQL

	switch typeName {
	case "primary_key":
		if mysql {
			return "BIGINT AUTO_INCREMENT PRIMARY KEY", nil
		}
		return "BIGSERIAL PRIMARY KEY", nil

	case "string":
		if opts.Limit != nil {
			return fmt.Sprintf("VARCHAR(%d)", *opts.Limit), nil
		}
		return "VARCHAR(255)", nil // Default length

	case "text":
		return "TEXT", nil

	case "integer":
		if mysql {
			return "INT", nil
		}
		return "INTEGER", nil

	case "bigint":
		return "BIGINT", nil

	case "float":
		if mysql {
			return "DOUBLE", nil
		}
		return "DOUBLE PRECISION", nil

	case "decimal":
		name := "NUMERIC"
		if mysql {
			name = "DECIMAL"
		}
		if opts.Precision != nil && opts.Scale != nil {
			return fmt.Sprintf("%s(%d,%d)", name, *opts.Precision, *opts.Scale), nil
		}
		return name, nil

	case "boolean":
		if mysql {
			return "TINYINT(1)", nil
		}
		return "BOOLEAN", nil

	case "timestamp", "datetime":
		if mysql {
			return "DATETIME", nil
		}
		return "TIMESTAMP WITH TIME ZONE", nil

	case "date":
		return "DATE", nil

	case "time":
		return "TIME", nil

	case "binary":
		if mysql {
			return "BLOB", nil
		}
		return "BYTEA", nil

	case "uuid":
		if mysql {
			// Stored in canonical text form
			return "CHAR(36)", nil
		}
		return "UUID", nil

	case "json":
		return "JSON", nil

	case "jsonb":
		if mysql {
			return "JSON", nil
		}
		return "JSONB", nil

	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, typeName)
	}
}
