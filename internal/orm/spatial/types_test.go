package spatial

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeKeywords(t *testing.T) {
	tests := []struct {
		typ     Type
		name    string
		keyword string
	}{
		{Point, "point", "POINT"},
		{LineString, "line_string", "LINESTRING"},
		{Polygon, "polygon", "POLYGON"},
		{GeometryCollection, "geometry_collection", "GEOMETRYCOLLECTION"},
		{MultiPoint, "multi_point", "MULTIPOINT"},
		{MultiLineString, "multi_line_string", "MULTILINESTRING"},
		{MultiPolygon, "multi_polygon", "MULTIPOLYGON"},
		{Geometry, "geometry", "GEOMETRY"},
	}

	require.Len(t, Types, len(tests))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.typ.String())
			assert.Equal(t, tt.keyword, tt.typ.Keyword())
			assert.True(t, tt.typ.Valid())

			parsed, err := ParseType(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, parsed)
		})
	}
}

func TestParseTypeRejectsUnknownNames(t *testing.T) {
	for _, name := range []string{"", "circle", "POINT", "linestring", "geography"} {
		typ, err := ParseType(name)
		require.Error(t, err, name)
		assert.Equal(t, TypeUnknown, typ)
		assert.ErrorIs(t, err, ErrUnknownType)
		assert.True(t, IsConfigurationError(err))
		assert.False(t, IsType(name))
	}
}

func TestTypeFromKeyword(t *testing.T) {
	typ, err := TypeFromKeyword("multipolygon")
	require.NoError(t, err)
	assert.Equal(t, MultiPolygon, typ)

	typ, err = TypeFromKeyword(" Point ")
	require.NoError(t, err)
	assert.Equal(t, Point, typ)

	typ, err = TypeFromKeyword("geomcollection")
	require.NoError(t, err)
	assert.Equal(t, GeometryCollection, typ)

	_, err = TypeFromKeyword("POINTM")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestTypeUnknown(t *testing.T) {
	assert.False(t, TypeUnknown.Valid())
	assert.Equal(t, "unknown", TypeUnknown.String())
	assert.Empty(t, TypeUnknown.Keyword())
	assert.False(t, Type(42).Valid())
}

func TestProperty_KeywordRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("TypeFromKeyword inverts Keyword in any letter case", prop.ForAll(
		func(i int, lower bool) bool {
			typ := Types[i]
			kw := typ.Keyword()
			if lower {
				kw = strings.ToLower(kw)
			}
			back, err := TypeFromKeyword(kw)
			return err == nil && back == typ
		},
		gen.IntRange(0, len(Types)-1),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
