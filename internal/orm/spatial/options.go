package spatial

import (
	"github.com/conduit-lang/spatial/internal/orm/ddl"
)

// ColumnOptions configures a spatial column declaration. The embedded host
// options carry nullability and the default value.
type ColumnOptions struct {
	ddl.ColumnOptions

	SRID       int  // UnspecifiedSRID leaves the reference system to the backend
	WithZ      bool // elevation coordinate present
	WithM      bool // measure coordinate present
	Geographic bool // geography storage instead of planar geometry

	// CreateUsingAddGeometryColumn selects registration through the
	// AddGeometryColumn procedure. When false the column is declared inline.
	CreateUsingAddGeometryColumn bool
}

// ColumnOption mutates ColumnOptions
type ColumnOption func(*ColumnOptions)

// NewColumnOptions returns the defaults with opts applied
func NewColumnOptions(opts ...ColumnOption) ColumnOptions {
	o := ColumnOptions{
		SRID:                         UnspecifiedSRID,
		CreateUsingAddGeometryColumn: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSRID sets the spatial reference system identifier
func WithSRID(srid int) ColumnOption {
	return func(o *ColumnOptions) { o.SRID = srid }
}

// WithZ adds the elevation coordinate
func WithZ() ColumnOption {
	return func(o *ColumnOptions) { o.WithZ = true }
}

// WithM adds the measure coordinate
func WithM() ColumnOption {
	return func(o *ColumnOptions) { o.WithM = true }
}

// Geographic selects geography storage
func Geographic() ColumnOption {
	return func(o *ColumnOptions) { o.Geographic = true }
}

// NotNull forbids NULL values
func NotNull() ColumnOption {
	return func(o *ColumnOptions) { o.NotNull = true }
}

// WithDefault sets the column default. Geometry values are encoded by the
// backend codec before quoting.
func WithDefault(v any) ColumnOption {
	return func(o *ColumnOptions) {
		o.Default = v
		o.HasDefault = true
	}
}

// Inline bypasses the AddGeometryColumn registration sequence
func Inline() ColumnOption {
	return func(o *ColumnOptions) { o.CreateUsingAddGeometryColumn = false }
}

// Descriptor builds the descriptor a declaration with these options describes
func (o ColumnOptions) Descriptor(name string, t Type) *Descriptor {
	d := NewDescriptor(name, t)
	d.Nullable = !o.NotNull
	d.SRID = o.SRID
	d.WithZ = o.WithZ
	d.WithM = o.WithM
	d.Geographic = o.Geographic
	return d
}
