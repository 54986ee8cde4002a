package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeParams(t *testing.T) {
	tests := []struct {
		in     string
		want   TypeParams
		parsed bool
	}{
		{"geography(PointZM,4326)", TypeParams{Type: Point, WithZ: true, WithM: true, SRID: 4326}, true},
		{"geography(Point)", TypeParams{Type: Point}, true},
		{"geography(POINTM, 4269)", TypeParams{Type: Point, WithM: true, SRID: 4269}, true},
		{"geography(MultiPolygonZ,4326)", TypeParams{Type: MultiPolygon, WithZ: true, SRID: 4326}, true},
		{"geometry(LineString,3857)", TypeParams{Type: LineString, SRID: 3857}, true},
		{"geography", TypeParams{Type: Geometry}, true},
		{"GEOGRAPHY (Polygon)", TypeParams{Type: Polygon}, true},
		{"geography(Circle,4326)", TypeParams{Type: Geometry, SRID: 4326}, true},
		{"text", TypeParams{Type: Geometry}, false},
		{"geography(Point", TypeParams{Type: Geometry}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTypeParams(tt.in)
			assert.Equal(t, tt.parsed, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromGeography(t *testing.T) {
	d := FromGeography("route", "geography(LineStringZ,4326)")

	require.NotNil(t, d)
	assert.Equal(t, "route", d.Name)
	assert.Equal(t, LineString, d.Type)
	assert.True(t, d.Geographic)
	assert.True(t, d.WithZ)
	assert.False(t, d.WithM)
	assert.Equal(t, 4326, d.SRID)
	assert.Equal(t, "geography(LineStringZ,4326)", d.SQLType)
	assert.False(t, d.Registered)
}

func TestFromGeographyUnparsable(t *testing.T) {
	d := FromGeography("g", "geography(")

	assert.Equal(t, Geometry, d.Type)
	assert.Equal(t, 0, d.SRID)
	assert.True(t, d.Geographic)
}

func TestSimplified(t *testing.T) {
	d := Simplified("legacy")

	assert.Equal(t, Geometry, d.Type)
	assert.Equal(t, UnspecifiedSRID, d.SRID)
	assert.Equal(t, 2, d.Dimension())
	assert.False(t, d.Geographic)
	assert.False(t, d.Registered)
}

func TestFromGeometryTypmod(t *testing.T) {
	d, ok := FromGeometryTypmod("loc", "geometry(PointZ,4326)")
	require.True(t, ok)
	assert.Equal(t, Point, d.Type)
	assert.True(t, d.WithZ)
	assert.False(t, d.WithM)
	assert.Equal(t, 4326, d.SRID)
	assert.False(t, d.Geographic)
	assert.False(t, d.Registered)

	d, ok = FromGeometryTypmod("path", "geometry(LineString)")
	require.True(t, ok)
	assert.Equal(t, LineString, d.Type)
	assert.Equal(t, UnspecifiedSRID, d.SRID)

	for _, s := range []string{"geometry", "geography(Point,4326)", "geometry(", "text"} {
		_, ok := FromGeometryTypmod("c", s)
		assert.False(t, ok, s)
	}
}

func TestStorageTypeChecks(t *testing.T) {
	assert.True(t, IsGeographyType("GEOGRAPHY(Point,4326)"))
	assert.False(t, IsGeographyType("geometry"))
	assert.True(t, IsGeometryType("geometry(Point,4326)"))
	assert.False(t, IsGeometryType("point"))
}
