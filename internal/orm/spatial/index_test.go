package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySpatial(t *testing.T) {
	tests := []struct {
		name   string
		method string
		types  []string
		want   bool
	}{
		{"gist over geometry", "gist", []string{"geometry"}, true},
		{"gist over geography", "GIST", []string{"geography"}, true},
		{"gist over two columns", "gist", []string{"geometry", "geometry"}, false},
		{"gist over range", "gist", []string{"tsrange"}, false},
		{"gist over native point", "gist", []string{"point"}, false},
		{"btree over geometry", "btree", []string{"geometry"}, false},
		{"no columns", "gist", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySpatial(tt.method, MethodGiST, tt.types, IsPostGISType))
		})
	}
}

func TestClassifySpatialKeywordTypes(t *testing.T) {
	assert.True(t, ClassifySpatial("spatial", MethodSpatial, []string{"point"}, IsKeywordType))
	assert.True(t, ClassifySpatial("SPATIAL", MethodSpatial, []string{"geomcollection"}, IsKeywordType))
	assert.False(t, ClassifySpatial("btree", MethodSpatial, []string{"point"}, IsKeywordType))
	assert.False(t, ClassifySpatial("spatial", MethodSpatial, []string{"varchar"}, IsKeywordType))
}

func TestIsKeywordType(t *testing.T) {
	assert.True(t, IsKeywordType("multipolygon"))
	assert.True(t, IsKeywordType("point(0)"))
	assert.True(t, IsKeywordType(" GEOMETRY "))
	assert.False(t, IsKeywordType("varchar(255)"))
	assert.False(t, IsKeywordType(""))
}
