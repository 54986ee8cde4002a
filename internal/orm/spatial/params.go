package spatial

import (
	"regexp"
	"strconv"
	"strings"
)

// TypeParams are the modifiers carried by a parameterized type string such as
// geography(PointZM,4326).
type TypeParams struct {
	Type  Type
	WithZ bool
	WithM bool
	SRID  int
}

// typmodPattern matches the grammar
//
//	base [ "(" name [Z] [M] [ "," digits ] ")" ]
//
// case-insensitively. Missing groups leave flags false and the SRID zero.
var typmodPattern = regexp.MustCompile(`(?i)^\s*(geography|geometry)\s*(?:\(\s*([a-z]+?)(z)?(m)?\s*(?:,\s*(\d+)\s*)?\))?\s*$`)

// ParseTypeParams extracts the modifiers of a geography or geometry type string.
// The second result is false when s does not follow the grammar at all.
// A name outside the catalog degrades to a generic geometry.
func ParseTypeParams(s string) (TypeParams, bool) {
	params := TypeParams{Type: Geometry}

	m := typmodPattern.FindStringSubmatch(s)
	if m == nil {
		return params, false
	}

	if m[2] != "" {
		if t, err := TypeFromKeyword(m[2]); err == nil {
			params.Type = t
		}
	}
	params.WithZ = strings.EqualFold(m[3], "z")
	params.WithM = strings.EqualFold(m[4], "m")
	if m[5] != "" {
		if srid, err := strconv.Atoi(m[5]); err == nil {
			params.SRID = srid
		}
	}

	return params, true
}

// IsGeographyType reports whether a reported column type names geography storage
func IsGeographyType(sqlType string) bool {
	return strings.Contains(strings.ToLower(sqlType), "geography")
}

// IsGeometryType reports whether a reported column type names geometry storage
func IsGeometryType(sqlType string) bool {
	return strings.Contains(strings.ToLower(sqlType), "geometry")
}

// FromGeography builds the descriptor of a geography column from its reported
// type. Unparsable strings fall back to a plain geography with SRID 0.
func FromGeography(name, sqlType string) *Descriptor {
	params, _ := ParseTypeParams(sqlType)

	d := NewDescriptor(name, params.Type)
	d.SQLType = sqlType
	d.Geographic = true
	d.WithZ = params.WithZ
	d.WithM = params.WithM
	d.SRID = params.SRID
	return d
}

// FromGeometryTypmod builds the descriptor of an unregistered geometry column
// whose reported type carries a typmod, such as geometry(PointZ,4326). It
// reports false for a bare geometry type.
func FromGeometryTypmod(name, sqlType string) (*Descriptor, bool) {
	if !strings.Contains(sqlType, "(") {
		return nil, false
	}
	m := typmodPattern.FindStringSubmatch(sqlType)
	if m == nil || !strings.EqualFold(m[1], "geometry") || m[2] == "" {
		return nil, false
	}
	params, _ := ParseTypeParams(sqlType)

	d := NewDescriptor(name, params.Type)
	d.SQLType = sqlType
	d.WithZ = params.WithZ
	d.WithM = params.WithM
	if m[5] != "" {
		d.SRID = params.SRID
	}
	return d, true
}

// Simplified builds the descriptor of a geometry column that has no registry
// entry: generic type, unknown SRID, two dimensions.
func Simplified(name string) *Descriptor {
	d := NewDescriptor(name, Geometry)
	d.SQLType = "geometry"
	return d
}
