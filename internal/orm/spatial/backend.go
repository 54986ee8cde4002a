package spatial

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/conduit-lang/spatial/internal/orm/conn"
	"github.com/conduit-lang/spatial/internal/orm/ddl"
	"github.com/conduit-lang/spatial/internal/orm/spatial/codec"
)

// TableOptions configures CREATE TABLE
type TableOptions struct {
	Temporary  bool
	Force      bool   // drop an existing table first
	NoID       bool   // skip the implicit primary key
	PrimaryKey string // primary key column name, "id" when empty
	Options    string // appended verbatim after the column list
}

// PrimaryKeyName returns the primary key column name
func (o TableOptions) PrimaryKeyName() string {
	if o.PrimaryKey == "" {
		return "id"
	}
	return o.PrimaryKey
}

// TableBuilder declares columns while a table definition is built
type TableBuilder interface {
	// Column declares a column by type name; spatial names take the spatial path
	Column(name, typeName string, opts ColumnOptions) error
	// Spatial declares one or more columns of the same spatial type
	Spatial(t Type, opts ColumnOptions, names ...string) error
}

// Backend is the spatial capability of one database. A backend is selected
// once from configuration and never mixed with another at runtime.
type Backend interface {
	// Name returns the canonical backend name
	Name() string
	// Codec returns the geometry value codec for the backend's wire format
	Codec() codec.Codec

	// CreateTable builds a table, deferring whatever the backend cannot declare inline
	CreateTable(ctx context.Context, table string, opts TableOptions, build func(TableBuilder) error) error
	// AddColumnSQL returns the statements that add a column, without running them
	AddColumnSQL(table, column, typeName string, opts ColumnOptions) ([]string, error)
	// AddColumn adds a column to an existing table
	AddColumn(ctx context.Context, table, column, typeName string, opts ColumnOptions) error
	// RemoveColumn drops columns, keeping backend catalogs consistent
	RemoveColumn(ctx context.Context, table string, columns ...string) error
	// Columns introspects a table. Spatial columns are *Descriptor values.
	Columns(ctx context.Context, table string) ([]ddl.ColumnInfo, error)

	// AddIndex creates an index, spatial when requested
	AddIndex(ctx context.Context, table string, columns []string, opts IndexOptions) error
	// RemoveIndex drops an index
	RemoveIndex(ctx context.Context, table, name string) error
	// Indexes lists the non primary key indexes of a table
	Indexes(ctx context.Context, table string) ([]IndexDescriptor, error)
}

// Factory creates a backend on top of a connection
type Factory func(c conn.Conn, logger *zap.Logger) Backend

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a backend available under name and its aliases.
// It panics when a name is registered twice.
func Register(name string, factory Factory, aliases ...string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("spatial: Register factory is nil")
	}
	for _, n := range append([]string{name}, aliases...) {
		key := strings.ToLower(n)
		if _, dup := registry[key]; dup {
			panic("spatial: Register called twice for backend " + n)
		}
		registry[key] = factory
	}
}

// Open selects the backend registered under name
func Open(name string, c conn.Conn, logger *zap.Logger) (Backend, error) {
	registryMu.RLock()
	factory, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	registryMu.RUnlock()

	if !ok {
		return nil, &ConfigurationError{Op: "open backend", Name: name, Err: ErrUnsupportedBackend}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return factory(c, logger), nil
}

// Backends returns the registered names, aliases included, sorted
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
