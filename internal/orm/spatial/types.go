// Package spatial provides the backend-neutral model for geometric columns:
// the catalog of supported spatial types, the normalized column descriptor,
// column options, index classification and backend selection.
package spatial

import (
	"strings"
)

// Type represents one of the supported spatial column types
type Type int

const (
	TypeUnknown Type = iota
	Point
	LineString
	Polygon
	GeometryCollection
	MultiPoint
	MultiLineString
	MultiPolygon
	Geometry
)

// Types lists every supported spatial type in catalog order
var Types = []Type{
	Point,
	LineString,
	Polygon,
	GeometryCollection,
	MultiPoint,
	MultiLineString,
	MultiPolygon,
	Geometry,
}

// String returns the snake_case name used in column declarations
func (t Type) String() string {
	switch t {
	case Point:
		return "point"
	case LineString:
		return "line_string"
	case Polygon:
		return "polygon"
	case GeometryCollection:
		return "geometry_collection"
	case MultiPoint:
		return "multi_point"
	case MultiLineString:
		return "multi_line_string"
	case MultiPolygon:
		return "multi_polygon"
	case Geometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// Keyword returns the canonical uppercase SQL keyword for the type
func (t Type) Keyword() string {
	switch t {
	case Point:
		return "POINT"
	case LineString:
		return "LINESTRING"
	case Polygon:
		return "POLYGON"
	case GeometryCollection:
		return "GEOMETRYCOLLECTION"
	case MultiPoint:
		return "MULTIPOINT"
	case MultiLineString:
		return "MULTILINESTRING"
	case MultiPolygon:
		return "MULTIPOLYGON"
	case Geometry:
		return "GEOMETRY"
	default:
		return ""
	}
}

// Valid reports whether t is a member of the catalog
func (t Type) Valid() bool {
	return t >= Point && t <= Geometry
}

// ParseType converts a declaration name such as "multi_polygon" to a Type.
// Unknown names are rejected with a ConfigurationError.
func ParseType(name string) (Type, error) {
	switch name {
	case "point":
		return Point, nil
	case "line_string":
		return LineString, nil
	case "polygon":
		return Polygon, nil
	case "geometry_collection":
		return GeometryCollection, nil
	case "multi_point":
		return MultiPoint, nil
	case "multi_line_string":
		return MultiLineString, nil
	case "multi_polygon":
		return MultiPolygon, nil
	case "geometry":
		return Geometry, nil
	default:
		return TypeUnknown, &ConfigurationError{Op: "parse type", Name: name, Err: ErrUnknownType}
	}
}

// IsType reports whether name is a spatial declaration name
func IsType(name string) bool {
	_, err := ParseType(name)
	return err == nil
}

// TypeFromKeyword converts a SQL keyword (any case) back to a Type.
// MySQL 8 reports geometry collections as GEOMCOLLECTION.
func TypeFromKeyword(keyword string) (Type, error) {
	kw := strings.ToUpper(strings.TrimSpace(keyword))
	if kw == "GEOMCOLLECTION" {
		return GeometryCollection, nil
	}
	for _, t := range Types {
		if t.Keyword() == kw {
			return t, nil
		}
	}
	return TypeUnknown, &ConfigurationError{Op: "parse keyword", Name: keyword, Err: ErrUnknownType}
}
