package postgis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/conduit-lang/spatial/internal/orm/conn"
	"github.com/conduit-lang/spatial/internal/orm/spatial"
)

func setupRecorder() (*Adapter, *conn.Recorder) {
	r := conn.NewRecorder(nil)
	return New(r, nil), r
}

func TestCreateTablePendingOrdering(t *testing.T) {
	a, r := setupRecorder()

	err := a.CreateTable(context.Background(), "places", spatial.TableOptions{}, func(t spatial.TableBuilder) error {
		if err := t.Column("name", "string", spatial.NewColumnOptions()); err != nil {
			return err
		}
		if err := t.Column("loc", "point", spatial.NewColumnOptions(spatial.WithSRID(4326))); err != nil {
			return err
		}
		return t.Column("area", "polygon", spatial.NewColumnOptions(spatial.Geographic()))
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		`CREATE TABLE "places" ("id" BIGSERIAL PRIMARY KEY, "name" VARCHAR(255), "area" geography(POLYGON)); ` +
			`SELECT AddGeometryColumn('places','loc',4326,'POINT',2)`,
	}, r.Statements())
}

func TestCreateTablePendingFollowUps(t *testing.T) {
	a, _ := setupRecorder()

	p, err := geom.NewPoint(geom.XY).SetCoords(geom.Coord{1, 2})
	require.NoError(t, err)

	sql, err := a.CreateTableSQL("places", spatial.TableOptions{NoID: true}, func(t spatial.TableBuilder) error {
		if err := t.Spatial(spatial.Point, spatial.NewColumnOptions(spatial.WithSRID(4326), spatial.NotNull(), spatial.WithDefault(p.SetSRID(4326))), "loc"); err != nil {
			return err
		}
		return t.Spatial(spatial.LineString, spatial.NewColumnOptions(spatial.WithM()), "track", "route")
	})
	require.NoError(t, err)

	assert.Equal(t, `CREATE TABLE "places" (); `+
		`SELECT AddGeometryColumn('places','loc',4326,'POINT',2);`+
		`ALTER TABLE "places" ALTER COLUMN "loc" SET DEFAULT '0101000020e6100000000000000000f03f0000000000000040';`+
		`ALTER TABLE "places" ALTER COLUMN "loc" SET NOT NULL; `+
		`SELECT AddGeometryColumn('places','track',-1,'LINESTRINGM',3); `+
		`SELECT AddGeometryColumn('places','route',-1,'LINESTRINGM',3)`, sql)
}

func TestCreateTableInlineAndOptions(t *testing.T) {
	a, _ := setupRecorder()

	sql, err := a.CreateTableSQL("gis.places", spatial.TableOptions{Temporary: true, PrimaryKey: "uid", Options: "WITH (fillfactor=70)"}, func(t spatial.TableBuilder) error {
		return t.Column("loc", "point", spatial.NewColumnOptions(spatial.WithSRID(4326), spatial.WithZ(), spatial.Inline(), spatial.NotNull()))
	})
	require.NoError(t, err)

	assert.Equal(t, `CREATE TEMPORARY TABLE "gis"."places" ("uid" BIGSERIAL PRIMARY KEY, "loc" geometry(POINTZ,4326) NOT NULL) WITH (fillfactor=70)`, sql)
}

func TestCreateTableSchemaQualifiedRegistration(t *testing.T) {
	a, _ := setupRecorder()

	sql, err := a.CreateTableSQL("gis.places", spatial.TableOptions{NoID: true}, func(t spatial.TableBuilder) error {
		return t.Column("loc", "multi_point", spatial.NewColumnOptions(spatial.WithSRID(3857), spatial.WithZ(), spatial.WithM()))
	})
	require.NoError(t, err)

	assert.Equal(t, `CREATE TABLE "gis"."places" (); SELECT AddGeometryColumn('gis','places','loc',3857,'MULTIPOINT',4)`, sql)
}

func TestCreateTableForce(t *testing.T) {
	a, r := setupRecorder()

	err := a.CreateTable(context.Background(), "places", spatial.TableOptions{Force: true, NoID: true}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{`DROP TABLE IF EXISTS "places"`, `CREATE TABLE "places" ()`}, r.Statements())
}

func TestCreateTableRejectsUnknownTypes(t *testing.T) {
	a, r := setupRecorder()

	err := a.CreateTable(context.Background(), "places", spatial.TableOptions{}, func(t spatial.TableBuilder) error {
		return t.Column("shape", "circle", spatial.NewColumnOptions())
	})
	require.Error(t, err)
	assert.True(t, spatial.IsConfigurationError(err))
	assert.Empty(t, r.Statements())

	err = a.CreateTable(context.Background(), "places", spatial.TableOptions{}, func(t spatial.TableBuilder) error {
		return t.Spatial(spatial.TypeUnknown, spatial.NewColumnOptions(), "shape")
	})
	assert.ErrorIs(t, err, spatial.ErrUnknownType)
	assert.Empty(t, r.Statements())
}

func TestTableDefinitionRedeclaresPendingInPlace(t *testing.T) {
	td := NewTableDefinition()

	require.NoError(t, td.Column("a", "point", spatial.NewColumnOptions()))
	require.NoError(t, td.Column("b", "point", spatial.NewColumnOptions()))
	require.NoError(t, td.Column("a", "polygon", spatial.NewColumnOptions(spatial.WithSRID(4326))))

	pending := td.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "a", pending[0].Name)
	assert.Equal(t, spatial.Polygon, pending[0].Type)
	assert.Equal(t, "b", pending[1].Name)
	assert.Empty(t, td.Columns())
}

func TestTableDefinitionRedeclaresAcrossPaths(t *testing.T) {
	td := NewTableDefinition()

	require.NoError(t, td.Column("loc", "string", spatial.NewColumnOptions()))
	require.NoError(t, td.Column("loc", "point", spatial.NewColumnOptions()))
	require.NoError(t, td.Column("g", "point", spatial.NewColumnOptions()))
	require.NoError(t, td.Column("g", "point", spatial.NewColumnOptions(spatial.Geographic())))
	require.NoError(t, td.Column("h", "point", spatial.NewColumnOptions()))
	require.NoError(t, td.Column("h", "text", spatial.NewColumnOptions()))

	assert.Equal(t,
		`CREATE TABLE "places" ("g" geography(POINT), "h" TEXT); SELECT AddGeometryColumn('places','loc',-1,'POINT',2)`,
		td.SQL("places", spatial.TableOptions{}))
}

func TestAddColumnSQL(t *testing.T) {
	a, _ := setupRecorder()

	p, err := geom.NewPoint(geom.XY).SetCoords(geom.Coord{1, 2})
	require.NoError(t, err)

	tests := []struct {
		name     string
		column   string
		typeName string
		opts     spatial.ColumnOptions
		want     []string
	}{
		{
			name:     "planar",
			column:   "loc",
			typeName: "point",
			opts:     spatial.NewColumnOptions(spatial.WithSRID(4326)),
			want:     []string{`SELECT AddGeometryColumn('places','loc',4326,'POINT',2)`},
		},
		{
			name:     "planar with default and not null",
			column:   "loc",
			typeName: "point",
			opts:     spatial.NewColumnOptions(spatial.WithSRID(4326), spatial.NotNull(), spatial.WithDefault(p.SetSRID(4326))),
			want: []string{
				`SELECT AddGeometryColumn('places','loc',4326,'POINT',2)`,
				`ALTER TABLE "places" ALTER COLUMN "loc" SET DEFAULT '0101000020e6100000000000000000f03f0000000000000040'`,
				`UPDATE "places" SET "loc" = '0101000020e6100000000000000000f03f0000000000000040' WHERE "loc" IS NULL`,
				`ALTER TABLE "places" ALTER COLUMN "loc" SET NOT NULL`,
			},
		},
		{
			name:     "not null without default",
			column:   "loc",
			typeName: "point",
			opts:     spatial.NewColumnOptions(spatial.NotNull()),
			want: []string{
				`SELECT AddGeometryColumn('places','loc',-1,'POINT',2)`,
				`ALTER TABLE "places" ALTER COLUMN "loc" SET NOT NULL`,
			},
		},
		{
			name:     "geographic",
			column:   "area",
			typeName: "polygon",
			opts:     spatial.NewColumnOptions(spatial.Geographic(), spatial.WithZ(), spatial.WithSRID(4269)),
			want:     []string{`ALTER TABLE "places" ADD COLUMN "area" geography(POLYGONZ)`},
		},
		{
			name:     "inline typmod",
			column:   "loc",
			typeName: "point",
			opts:     spatial.NewColumnOptions(spatial.Inline(), spatial.WithM()),
			want:     []string{`ALTER TABLE "places" ADD COLUMN "loc" geometry(POINTM)`},
		},
		{
			name:     "ordinary column",
			column:   "name",
			typeName: "string",
			opts:     spatial.NewColumnOptions(spatial.NotNull(), spatial.WithDefault("x")),
			want:     []string{`ALTER TABLE "places" ADD COLUMN "name" VARCHAR(255) NOT NULL DEFAULT 'x'`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.AddColumnSQL("places", tt.column, tt.typeName, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddColumnExecutesInOrder(t *testing.T) {
	a, r := setupRecorder()

	err := a.AddColumn(context.Background(), "places", "loc", "point", spatial.NewColumnOptions(spatial.NotNull()))
	require.NoError(t, err)
	assert.Len(t, r.Statements(), 2)

	err = a.AddColumn(context.Background(), "places", "shape", "circle", spatial.NewColumnOptions())
	assert.True(t, spatial.IsConfigurationError(err))
	assert.Len(t, r.Statements(), 2)
}

func TestQuoteGeometry(t *testing.T) {
	a, _ := setupRecorder()

	p, err := geom.NewPoint(geom.XY).SetCoords(geom.Coord{1, 2})
	require.NoError(t, err)

	got, err := a.Quote(p)
	require.NoError(t, err)
	assert.Equal(t, "'0101000000000000000000f03f0000000000000040'", got)

	got, err = a.Quote("o'clock")
	require.NoError(t, err)
	assert.Equal(t, "'o''clock'", got)
}
