package ui

import (
	"bytes"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conduit-lang/spatial/internal/orm/ddl"
	"github.com/conduit-lang/spatial/internal/orm/spatial"
)

func TestColumns(t *testing.T) {
	loc := spatial.NewDescriptor("loc", spatial.Point)
	loc.SRID = 4326
	loc.Nullable = false

	area := spatial.NewDescriptor("area", spatial.Polygon)
	area.SRID = 4326
	area.WithZ = true
	area.Geographic = true

	columns := []ddl.ColumnInfo{
		ddl.NewColumn("name", "character varying(255)", sql.NullString{}, true),
		loc,
		area,
	}

	var buf bytes.Buffer
	Columns(&buf, columns, true)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, []string{"COLUMN", "TYPE", "SPATIAL", "SRID", "DIM", "NULL"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"name", "character", "varying(255)", "yes"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"loc", "POINT", "geometry", "4326", "2", "no"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"area", "POLYGONZ", "geography", "4326", "3", "yes"}, strings.Fields(lines[4]))
}

func TestIndexes(t *testing.T) {
	indexes := []spatial.IndexDescriptor{
		{Table: "places", Name: "idx_places_loc", Columns: []string{"loc"}, Method: "gist", Spatial: true},
		{Table: "places", Name: "by_name", Columns: []string{"name", "kind"}, Method: "btree", Unique: true},
	}

	var buf bytes.Buffer
	Indexes(&buf, indexes, true)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, []string{"idx_places_loc", "loc", "gist", "no", "yes"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"by_name", "name,", "kind", "btree", "yes", "no"}, strings.Fields(lines[3]))
}
