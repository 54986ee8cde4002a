package spatial

import (
	"strings"
)

// Index access methods that denote spatial indexes
const (
	MethodGiST    = "gist"
	MethodSpatial = "spatial"
)

// IndexOptions configures index creation
type IndexOptions struct {
	Name    string // derived from table and columns when empty
	Unique  bool
	Spatial bool // forces the backend's spatial index method
}

// IndexDescriptor describes an existing index. It is read-only once built.
type IndexDescriptor struct {
	Table   string
	Name    string
	Unique  bool
	Columns []string
	Method  string
	Spatial bool
}

// ClassifySpatial decides whether an index is spatial: it must use the
// spatial access method, cover exactly one column, and that column's reported
// type must satisfy isSpatialType. Composite indexes never qualify.
func ClassifySpatial(method, spatialMethod string, columnTypes []string, isSpatialType func(string) bool) bool {
	if !strings.EqualFold(method, spatialMethod) {
		return false
	}
	if len(columnTypes) != 1 {
		return false
	}
	return isSpatialType(columnTypes[0])
}

// IsPostGISType reports whether a pg_type name is geometry or geography.
// The built-in PostgreSQL point type does not count.
func IsPostGISType(typname string) bool {
	return strings.EqualFold(typname, "geometry") || strings.EqualFold(typname, "geography")
}

// IsKeywordType reports whether a reported type is one of the catalog keywords,
// as MySQL reports geometric columns
func IsKeywordType(sqlType string) bool {
	base := strings.TrimSpace(sqlType)
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = base[:i]
	}
	_, err := TypeFromKeyword(base)
	return err == nil
}
