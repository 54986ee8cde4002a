package postgis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/conduit-lang/spatial/internal/orm/ddl"
	"github.com/conduit-lang/spatial/internal/orm/spatial"
)

// PendingColumn is a planar geometry column waiting for its table. It is
// created while the table definition is built and turned into an
// AddGeometryColumn call once the CREATE TABLE statement is emitted.
type PendingColumn struct {
	*spatial.Descriptor

	TableName  string
	Default    string // rendered literal
	HasDefault bool
}

// Statements returns the registration call followed by the follow-ups the
// procedure cannot express. The table name must be bound.
func (p *PendingColumn) Statements(q ddl.Quoter) []string {
	stmts := []string{AddGeometryColumnSQL(p.TableName, p.Descriptor)}
	if p.HasDefault {
		stmts = append(stmts, ddl.SetDefaultSQL(q, p.TableName, p.Name, p.Default))
	}
	if !p.Nullable {
		stmts = append(stmts, ddl.SetNotNullSQL(q, p.TableName, p.Name))
	}
	return stmts
}

// SQL joins Statements with semicolons
func (p *PendingColumn) SQL(q ddl.Quoter) string {
	return strings.Join(p.Statements(q), ";")
}

// AddGeometryColumnSQL renders the registration call. Names are passed as
// string literals; a schema qualified table uses the schema form.
//
//	SELECT AddGeometryColumn('places','loc',4326,'POINT',2)
func AddGeometryColumnSQL(table string, d *spatial.Descriptor) string {
	schema, name := splitTable(table)

	args := make([]string, 0, 6)
	if schema != "" {
		args = append(args, literal(schema))
	}
	args = append(args,
		literal(name),
		literal(d.Name),
		strconv.Itoa(d.SRID),
		literal(d.PlanarKeyword()),
		strconv.Itoa(d.Dimension()),
	)

	return fmt.Sprintf("SELECT AddGeometryColumn(%s)", strings.Join(args, ","))
}

// DropGeometryColumnSQL renders the matching deregistration call
func DropGeometryColumnSQL(table, column string) string {
	schema, name := splitTable(table)

	args := make([]string, 0, 3)
	if schema != "" {
		args = append(args, literal(schema))
	}
	args = append(args, literal(name), literal(column))

	return fmt.Sprintf("SELECT DropGeometryColumn(%s)", strings.Join(args, ","))
}

// GeographyType renders geography(TYPE[Z][M]). The SRID cannot be chosen on
// this path; PostGIS applies its default of 4326.
func GeographyType(d *spatial.Descriptor) string {
	return fmt.Sprintf("geography(%s)", d.GeographicKeyword())
}

// TypmodType renders the inline PostGIS 2 form geometry(TYPE[Z][M][,srid])
func TypmodType(d *spatial.Descriptor) string {
	if d.HasSRID() {
		return fmt.Sprintf("geometry(%s,%d)", d.GeographicKeyword(), d.SRID)
	}
	return fmt.Sprintf("geometry(%s)", d.GeographicKeyword())
}

// InlineType returns the column type for a spatial column declared inline
func InlineType(d *spatial.Descriptor) string {
	if d.Geographic {
		return GeographyType(d)
	}
	return TypmodType(d)
}

// deferred reports whether a declaration goes through AddGeometryColumn
func deferred(opts spatial.ColumnOptions) bool {
	return !opts.Geographic && opts.CreateUsingAddGeometryColumn
}

func literal(s string) string {
	return strings.TrimSpace(pq.QuoteLiteral(s))
}

// splitTable separates an optional schema: "gis.places" -> ("gis", "places")
func splitTable(table string) (string, string) {
	if i := strings.LastIndexByte(table, '.'); i >= 0 {
		return table[:i], table[i+1:]
	}
	return "", table
}
