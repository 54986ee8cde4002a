// Package codec converts geometry values to and from the wire representation
// each backend uses: hex encoded extended well-known binary for PostGIS and
// a 4-byte SRID prefix followed by well-known binary for MySQL.
//
// Decoding never fails loudly. Anything that cannot be parsed decodes to nil,
// so callers treat a malformed value exactly like an absent one. DecodeStrict
// is available when the distinction matters.
package codec

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
)

var (
	// ErrMalformedGeometry is returned by DecodeStrict for unparsable input
	ErrMalformedGeometry = errors.New("malformed geometry")

	// ErrNilGeometry is returned when encoding a nil geometry
	ErrNilGeometry = errors.New("nil geometry")

	errTrailingBytes = errors.New("trailing bytes after geometry")
)

// byteOrder is used for every payload this package writes
var byteOrder = binary.LittleEndian

// Codec encodes and decodes geometry values for one backend
type Codec interface {
	// Encode returns the hex wire text of g
	Encode(g geom.T) (string, error)
	// Decode parses src. Geometries pass through, everything unparsable is nil.
	Decode(src any) geom.T
	// DecodeStrict parses src and reports malformed input
	DecodeStrict(src any) (geom.T, error)
	// Value returns what is bound as a statement parameter
	Value(g geom.T) (driver.Value, error)
}

// unmarshalEWKB parses exactly one EWKB value spanning all of b
func unmarshalEWKB(b []byte) (geom.T, error) {
	r := bytes.NewReader(b)
	t, err := ewkb.Read(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d", errTrailingBytes, r.Len())
	}
	return t, nil
}

// decodeFunc parses the raw bytes of a string-like value
type decodeFunc func(raw []byte, text bool) (geom.T, error)

// decodeStrict runs the shared input dispatch, turning decoder panics into errors
func decodeStrict(src any, parse decodeFunc) (t geom.T, err error) {
	defer func() {
		if r := recover(); r != nil {
			t, err = nil, fmt.Errorf("%w: %v", ErrMalformedGeometry, r)
		}
	}()

	switch v := src.(type) {
	case nil:
		return nil, nil
	case geom.T:
		return v, nil
	case string:
		t, err = parse([]byte(v), true)
	case []byte:
		t, err = parse(v, false)
	case sql.RawBytes:
		t, err = parse(v, false)
	default:
		return nil, fmt.Errorf("%w: unsupported source type %T", ErrMalformedGeometry, src)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeometry, err)
	}
	return t, nil
}

// decodeLenient is Decode: DecodeStrict with every failure collapsed to nil
func decodeLenient(src any, parse decodeFunc) geom.T {
	t, err := decodeStrict(src, parse)
	if err != nil {
		return nil
	}
	return t
}

// SetSRID sets the SRID of a decoded geometry in place.
// geom.T does not expose SetSRID, so each concrete type is handled.
func SetSRID(t geom.T, srid int) error {
	switch t := t.(type) {
	case *geom.Point:
		t.SetSRID(srid)
	case *geom.LineString:
		t.SetSRID(srid)
	case *geom.Polygon:
		t.SetSRID(srid)
	case *geom.GeometryCollection:
		t.SetSRID(srid)
	case *geom.MultiPoint:
		t.SetSRID(srid)
	case *geom.MultiLineString:
		t.SetSRID(srid)
	case *geom.MultiPolygon:
		t.SetSRID(srid)
	default:
		return fmt.Errorf("codec: unknown geom type %T", t)
	}
	return nil
}
