package codec

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
)

const (
	// PrefixSize is the length of the SRID header MySQL puts before the WKB payload
	PrefixSize = 4

	ewkbSRIDFlag   = 0x20000000
	wkbHeaderSize  = 5 // byte order + geometry type
	ewkbHeaderSize = wkbHeaderSize + 4
)

var errShortValue = errors.New("value shorter than the SRID prefix")

// Prefixed is the MySQL codec: a 4-byte little endian SRID followed by the
// well-known binary payload
type Prefixed struct{}

// Encode returns the hex text of the prefixed internal representation
func (c Prefixed) Encode(g geom.T) (string, error) {
	raw, err := c.Marshal(g)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// Marshal returns the raw prefixed bytes
func (Prefixed) Marshal(g geom.T) ([]byte, error) {
	if g == nil {
		return nil, ErrNilGeometry
	}

	payload, err := ewkb.Marshal(g, byteOrder)
	if err != nil {
		return nil, err
	}
	payload, err = stripSRID(payload)
	if err != nil {
		return nil, err
	}

	srid := g.SRID()
	if srid < 0 {
		srid = 0
	}

	out := make([]byte, PrefixSize, PrefixSize+len(payload))
	binary.LittleEndian.PutUint32(out, uint32(srid))
	return append(out, payload...), nil
}

// Decode strips the SRID prefix and parses the remainder. Hex text input
// carries the prefix as 8 hex digits, binary input as 4 bytes.
func (Prefixed) Decode(src any) geom.T {
	return decodeLenient(src, parsePrefixed)
}

// DecodeStrict is Decode with malformed input reported
func (Prefixed) DecodeStrict(src any) (geom.T, error) {
	return decodeStrict(src, parsePrefixed)
}

// Value binds the raw internal bytes, which MySQL stores as is
func (c Prefixed) Value(g geom.T) (driver.Value, error) {
	return c.Marshal(g)
}

func parsePrefixed(raw []byte, text bool) (geom.T, error) {
	if text && isHex(raw) {
		decoded, err := decodeHex(raw)
		if err != nil {
			return nil, err
		}
		raw = decoded
	}
	if len(raw) <= PrefixSize {
		return nil, errShortValue
	}

	t, err := unmarshalEWKB(raw[PrefixSize:])
	if err != nil {
		return nil, err
	}

	if srid := int(binary.LittleEndian.Uint32(raw[:PrefixSize])); srid != 0 && t.SRID() == 0 {
		if err := SetSRID(t, srid); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// stripSRID removes the top level SRID from an EWKB payload, leaving the
// plain well-known binary MySQL expects after its prefix. Nested geometries
// never carry an SRID.
func stripSRID(b []byte) ([]byte, error) {
	if len(b) < wkbHeaderSize {
		return nil, fmt.Errorf("codec: payload of %d bytes has no header", len(b))
	}

	var order binary.ByteOrder = binary.LittleEndian
	if b[0] == 0 {
		order = binary.BigEndian
	}

	typ := order.Uint32(b[1:wkbHeaderSize])
	if typ&ewkbSRIDFlag == 0 {
		return b, nil
	}
	if len(b) < ewkbHeaderSize {
		return nil, fmt.Errorf("codec: payload of %d bytes truncates the SRID", len(b))
	}

	out := make([]byte, wkbHeaderSize, len(b)-4)
	out[0] = b[0]
	order.PutUint32(out[1:wkbHeaderSize], typ&^ewkbSRIDFlag)
	return append(out, b[ewkbHeaderSize:]...), nil
}
