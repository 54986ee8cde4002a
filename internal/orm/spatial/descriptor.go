package spatial

import (
	"fmt"

	"github.com/conduit-lang/spatial/internal/orm/ddl"
)

// UnspecifiedSRID marks a column whose reference system is left to the backend
const UnspecifiedSRID = -1

// Descriptor is the normalized metadata of one spatial column. It decorates
// the host column so it can be returned wherever ddl.ColumnInfo is expected.
// Descriptors are built fresh by each introspection call.
type Descriptor struct {
	ddl.Column

	Type       Type
	SRID       int
	WithZ      bool
	WithM      bool
	Geographic bool

	// Registered is set when the column was found in the backend's geometry
	// registry, as opposed to being inferred from its type alone
	Registered bool
}

// NewDescriptor creates a descriptor with an unspecified SRID
func NewDescriptor(name string, t Type) *Descriptor {
	return &Descriptor{
		Column: ddl.Column{Name: name, Nullable: true},
		Type:   t,
		SRID:   UnspecifiedSRID,
	}
}

// IsSpatial always reports true for spatial columns
func (Descriptor) IsSpatial() bool {
	return true
}

// Dimension returns the coordinate dimension: 2 plus one for Z and one for M
func (d *Descriptor) Dimension() int {
	return Dimension(d.WithZ, d.WithM)
}

// PlanarKeyword returns the type keyword used for geometry registration. Only a
// measured 2D geometry carries a suffix; Z is conveyed by the dimension.
func (d *Descriptor) PlanarKeyword() string {
	return PlanarKeyword(d.Type, d.WithZ, d.WithM)
}

// GeographicKeyword returns the keyword with explicit Z then M suffixes
func (d *Descriptor) GeographicKeyword() string {
	return GeographicKeyword(d.Type, d.WithZ, d.WithM)
}

// HasSRID reports whether an SRID was given explicitly
func (d *Descriptor) HasSRID() bool {
	return d.SRID != UnspecifiedSRID
}

func (d *Descriptor) String() string {
	kind := "geometry"
	if d.Geographic {
		kind = "geography"
	}
	return fmt.Sprintf("%s %s(%s, srid=%d)", d.Name, kind, d.GeographicKeyword(), d.SRID)
}

// Dimension computes the coordinate dimension for the given flags
func Dimension(withZ, withM bool) int {
	dim := 2
	if withZ {
		dim++
	}
	if withM {
		dim++
	}
	return dim
}

// PlanarKeyword builds the keyword for a geometry column: TYPE, or TYPEM when
// the column is measured without elevation.
func PlanarKeyword(t Type, withZ, withM bool) string {
	kw := t.Keyword()
	if withM && !withZ {
		kw += "M"
	}
	return kw
}

// GeographicKeyword builds TYPE[Z][M]
func GeographicKeyword(t Type, withZ, withM bool) string {
	kw := t.Keyword()
	if withZ {
		kw += "Z"
	}
	if withM {
		kw += "M"
	}
	return kw
}
