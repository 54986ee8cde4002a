// Package mysql implements the spatial backend for MySQL and MariaDB.
//
// MySQL declares geometric columns inline with the bare type keyword and an
// optional SRID attribute. It has no registry to keep in sync and stores
// neither Z nor M coordinates, so those modifiers are rejected when the
// statement is built. Values travel as a 4-byte SRID prefix followed by
// well-known binary.
//
// MariaDB spells the SRID attribute REF_SYSTEM_ID=n and does not report it in
// information_schema, so its columns introspect with an unspecified SRID.
package mysql

import (
	"fmt"

	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/conduit-lang/spatial/internal/orm/conn"
	"github.com/conduit-lang/spatial/internal/orm/ddl"
	"github.com/conduit-lang/spatial/internal/orm/spatial"
	"github.com/conduit-lang/spatial/internal/orm/spatial/codec"
)

const (
	// BackendName is the canonical registry name
	BackendName = "mysql"
	// MariaDBName selects the MariaDB flavor
	MariaDBName = "mariadb"
)

// Flavor is the server dialect an adapter targets
type Flavor int

const (
	FlavorMySQL Flavor = iota
	FlavorMariaDB
)

func init() {
	spatial.Register(BackendName, func(c conn.Conn, logger *zap.Logger) spatial.Backend {
		return New(c, logger)
	}, "mysql2")
	spatial.Register(MariaDBName, func(c conn.Conn, logger *zap.Logger) spatial.Backend {
		return NewMariaDB(c, logger)
	})
}

// Adapter is the MySQL spatial backend
type Adapter struct {
	conn   conn.Conn
	quoter ddl.MySQLQuoter
	codec  codec.Prefixed
	flavor Flavor
	logger *zap.Logger
}

// New creates a MySQL adapter on top of c
func New(c conn.Conn, logger *zap.Logger) *Adapter {
	return newAdapter(c, logger, FlavorMySQL)
}

// NewMariaDB creates a MariaDB adapter on top of c
func NewMariaDB(c conn.Conn, logger *zap.Logger) *Adapter {
	return newAdapter(c, logger, FlavorMariaDB)
}

func newAdapter(c conn.Conn, logger *zap.Logger, flavor Flavor) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Adapter{conn: c, flavor: flavor}
	a.logger = logger.With(zap.String("backend", a.Name()))
	return a
}

// Name returns the canonical backend name of the flavor
func (a *Adapter) Name() string {
	if a.flavor == FlavorMariaDB {
		return MariaDBName
	}
	return BackendName
}

// Flavor returns the targeted server dialect
func (a *Adapter) Flavor() Flavor {
	return a.flavor
}

// Codec returns the SRID prefixed codec
func (a *Adapter) Codec() codec.Codec {
	return a.codec
}

// Quoter returns the MySQL quoting rules
func (a *Adapter) Quoter() ddl.Quoter {
	return a.quoter
}

// Quote renders a value for interpolation. Geometries become a constructor
// expression over their text form since MySQL has no geometry literal.
func (a *Adapter) Quote(v any) (string, error) {
	g, ok := v.(geom.T)
	if !ok {
		return a.quoter.Quote(v)
	}

	text, err := codec.WKT(g)
	if err != nil {
		return "", fmt.Errorf("encoding geometry: %w", err)
	}
	return fmt.Sprintf("(ST_GeomFromText(%s, %d))", ddl.QuoteMySQLString(text), max(g.SRID(), 0)), nil
}
