package spatial

import (
	"strings"
)

// RawGeomInfo holds one geometry registry row while the registry is scanned.
// It is consumed by Normalize and then discarded.
type RawGeomInfo struct {
	Type      string
	Dimension int
	SRID      int
	WithM     bool
	WithZ     bool

	marked bool
}

// NewRawGeomInfo builds the intermediate record for a registry row, splitting
// the trailing M marker off the reported type string.
func NewRawGeomInfo(registryType string, dimension, srid int) *RawGeomInfo {
	typ, measured := ParseRegistryType(registryType)
	return &RawGeomInfo{
		Type:      typ,
		Dimension: dimension,
		SRID:      srid,
		WithM:     measured,
		marked:    measured,
	}
}

// ParseRegistryType strips a single trailing M marker: "POINTM" -> ("POINT", true)
func ParseRegistryType(s string) (string, bool) {
	if strings.HasSuffix(s, "M") {
		return s[:len(s)-1], true
	}
	return s, false
}

// RegistryType re-adds the marker stripped by ParseRegistryType
func (r *RawGeomInfo) RegistryType() string {
	if r.marked {
		return r.Type + "M"
	}
	return r.Type
}

// Normalize derives the Z and M flags from the dimension:
// 4 means both, 3 means M when the marker was present and Z otherwise.
// A missing type constraint means a generic geometry.
func (r *RawGeomInfo) Normalize() {
	if r.Type == "" {
		r.Type = Geometry.Keyword()
	}
	switch {
	case r.Dimension >= 4:
		r.WithZ = true
		r.WithM = true
	case r.Dimension == 3:
		r.WithZ = !r.WithM
	default:
		r.WithZ = false
		r.WithM = false
	}
}

// Descriptor turns a normalized record into a column descriptor. Keywords the
// catalog does not know degrade to a generic geometry.
func (r *RawGeomInfo) Descriptor(name string) *Descriptor {
	t, err := TypeFromKeyword(r.Type)
	if err != nil {
		t = Geometry
	}
	d := NewDescriptor(name, t)
	d.SRID = r.SRID
	d.WithZ = r.WithZ
	d.WithM = r.WithM
	d.Registered = true
	return d
}
