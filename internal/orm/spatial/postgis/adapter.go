// Package postgis implements the spatial backend for PostgreSQL with PostGIS.
//
// Planar geometry columns are registered through AddGeometryColumn, which
// must run after the table exists, so CREATE TABLE defers them to statements
// appended after the base statement. Geography columns are declared inline.
// Introspection combines the geometry_columns registry with the generic
// column list, and GiST indexes over a single geometry or geography column
// are reported as spatial.
package postgis

import (
	"fmt"

	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/conduit-lang/spatial/internal/orm/conn"
	"github.com/conduit-lang/spatial/internal/orm/ddl"
	"github.com/conduit-lang/spatial/internal/orm/spatial"
	"github.com/conduit-lang/spatial/internal/orm/spatial/codec"
)

// BackendName is the canonical registry name
const BackendName = "postgresql"

func init() {
	spatial.Register(BackendName, func(c conn.Conn, logger *zap.Logger) spatial.Backend {
		return New(c, logger)
	}, "postgres", "postgis")
}

// Adapter is the PostGIS spatial backend
type Adapter struct {
	conn   conn.Conn
	quoter ddl.PostgresQuoter
	codec  codec.HexEWKB
	logger *zap.Logger
}

// New creates an adapter on top of c
func New(c conn.Conn, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		conn:   c,
		logger: logger.With(zap.String("backend", BackendName)),
	}
}

// Name returns the canonical backend name
func (a *Adapter) Name() string {
	return BackendName
}

// Codec returns the hex EWKB codec
func (a *Adapter) Codec() codec.Codec {
	return a.codec
}

// Quoter returns the PostgreSQL quoting rules
func (a *Adapter) Quoter() ddl.Quoter {
	return a.quoter
}

// quoteValue renders a value as a literal. Geometries become quoted hex EWKB.
func quoteValue(q ddl.Quoter, c codec.Codec, v any) (string, error) {
	if g, ok := v.(geom.T); ok {
		hex, err := c.Encode(g)
		if err != nil {
			return "", fmt.Errorf("encoding geometry: %w", err)
		}
		return q.Quote(hex)
	}
	return q.Quote(v)
}
