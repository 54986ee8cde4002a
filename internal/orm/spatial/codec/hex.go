package codec

import (
	"database/sql/driver"
	"encoding/hex"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkbhex"
)

// HexEWKB is the PostGIS codec: the whole value is hex encoded EWKB
type HexEWKB struct{}

// Encode returns lowercase hex EWKB, including the SRID when it is set
func (HexEWKB) Encode(g geom.T) (string, error) {
	if g == nil {
		return "", ErrNilGeometry
	}
	return ewkbhex.Encode(g, byteOrder)
}

// Decode parses hex EWKB text, or raw EWKB bytes when the driver hands them
// over in binary form
func (HexEWKB) Decode(src any) geom.T {
	return decodeLenient(src, parseHexEWKB)
}

// DecodeStrict is Decode with malformed input reported
func (HexEWKB) DecodeStrict(src any) (geom.T, error) {
	return decodeStrict(src, parseHexEWKB)
}

// Value binds the hex text, which PostGIS casts to geometry and geography
func (c HexEWKB) Value(g geom.T) (driver.Value, error) {
	return c.Encode(g)
}

func parseHexEWKB(raw []byte, _ bool) (geom.T, error) {
	if isHex(raw) {
		decoded, err := decodeHex(raw)
		if err != nil {
			return nil, err
		}
		raw = decoded
	}
	return unmarshalEWKB(raw)
}

// isHex reports whether b is non-empty, even length text of hex digits
func isHex(b []byte) bool {
	if len(b) == 0 || len(b)%2 != 0 {
		return false
	}
	for _, c := range b {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// decodeHex decodes hex text that isHex accepted
func decodeHex(b []byte) ([]byte, error) {
	out := make([]byte, hex.DecodedLen(len(b)))
	if _, err := hex.Decode(out, b); err != nil {
		return nil, err
	}
	return out, nil
}
