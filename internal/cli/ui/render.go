package ui

import (
	"io"
	"strconv"
	"strings"

	"github.com/conduit-lang/spatial/internal/orm/ddl"
	"github.com/conduit-lang/spatial/internal/orm/spatial"
)

// Columns renders introspected columns, spatial ones with their modifiers
func Columns(w io.Writer, columns []ddl.ColumnInfo, noColor bool) {
	t := NewTable(w, noColor, "COLUMN", "TYPE", "SPATIAL", "SRID", "DIM", "NULL")

	for _, col := range columns {
		switch c := col.(type) {
		case *spatial.Descriptor:
			kind := "geometry"
			if c.Geographic {
				kind = "geography"
			}
			t.AddRow(c.Name, c.GeographicKeyword(), kind, strconv.Itoa(c.SRID), strconv.Itoa(c.Dimension()), YesNo(c.Nullable))
		case ddl.Column:
			t.AddRow(c.Name, c.SQLType, "", "", "", YesNo(c.Nullable))
		default:
			t.AddRow(col.ColumnName())
		}
	}

	t.Render()
}

// Indexes renders index descriptors
func Indexes(w io.Writer, indexes []spatial.IndexDescriptor, noColor bool) {
	t := NewTable(w, noColor, "INDEX", "COLUMNS", "METHOD", "UNIQUE", "SPATIAL")

	for _, idx := range indexes {
		t.AddRow(idx.Name, strings.Join(idx.Columns, ", "), idx.Method, YesNo(idx.Unique), YesNo(idx.Spatial))
	}

	t.Render()
}

// YesNo renders a flag as yes or no
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
