package codec

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

var errNoCodec = errors.New("codec: geometry has no codec")

// Geometry adapts a geometry to database/sql. Scan is the row materialization
// hook and Value the parameter binding hook. An unparsable column value scans
// as a nil Geom without error.
type Geometry struct {
	Geom  geom.T
	Codec Codec
}

// NewGeometry wraps g for binding with c
func NewGeometry(c Codec, g geom.T) *Geometry {
	return &Geometry{Geom: g, Codec: c}
}

// Scan implements sql.Scanner
func (g *Geometry) Scan(src any) error {
	if g.Codec == nil {
		return errNoCodec
	}
	g.Geom = g.Codec.Decode(src)
	return nil
}

// Value implements driver.Valuer
func (g Geometry) Value() (driver.Value, error) {
	if g.Geom == nil {
		return nil, nil
	}
	if g.Codec == nil {
		return nil, errNoCodec
	}
	return g.Codec.Value(g.Geom)
}

// Valid reports whether a geometry was scanned
func (g *Geometry) Valid() bool {
	return g.Geom != nil
}

// EWKT renders g as text, prefixed with SRID=n; when an SRID is set
func EWKT(g geom.T) (string, error) {
	text, err := WKT(g)
	if err != nil {
		return "", err
	}
	if g.SRID() != 0 {
		text = fmt.Sprintf("SRID=%d;%s", g.SRID(), text)
	}
	return text, nil
}

// WKT renders g as well-known text without an SRID
func WKT(g geom.T) (string, error) {
	if g == nil {
		return "", ErrNilGeometry
	}
	return wkt.Marshal(g)
}
