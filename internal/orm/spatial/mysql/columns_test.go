package mysql

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/spatial/internal/orm/conn"
	"github.com/conduit-lang/spatial/internal/orm/ddl"
	"github.com/conduit-lang/spatial/internal/orm/spatial"
)

func setupAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(conn.New(db, nil), nil), mock
}

var columnRows = []string{"COLUMN_NAME", "COLUMN_TYPE", "COLUMN_DEFAULT", "IS_NULLABLE", "SRS_ID"}

func TestColumns(t *testing.T) {
	a, mock := setupAdapter(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?")).
		WithArgs("places").
		WillReturnRows(sqlmock.NewRows(columnRows).
			AddRow("id", "bigint", nil, "NO", nil).
			AddRow("loc", "point", nil, "NO", 4326).
			AddRow("area", "polygon", nil, "YES", nil).
			AddRow("shapes", "geomcollection", nil, "YES", 0))

	columns, err := a.Columns(context.Background(), "places")
	require.NoError(t, err)
	require.Len(t, columns, 4)

	id, ok := columns[0].(ddl.Column)
	require.True(t, ok)
	assert.False(t, id.IsSpatial())
	assert.False(t, id.Nullable)

	loc := columns[1].(*spatial.Descriptor)
	assert.Equal(t, spatial.Point, loc.Type)
	assert.Equal(t, 4326, loc.SRID)
	assert.False(t, loc.WithZ)
	assert.False(t, loc.WithM)
	assert.False(t, loc.Geographic)
	assert.False(t, loc.Nullable)

	area := columns[2].(*spatial.Descriptor)
	assert.Equal(t, spatial.Polygon, area.Type)
	assert.Equal(t, spatial.UnspecifiedSRID, area.SRID)
	assert.True(t, area.Nullable)

	shapes := columns[3].(*spatial.Descriptor)
	assert.Equal(t, spatial.GeometryCollection, shapes.Type)
	assert.Equal(t, 0, shapes.SRID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestColumnsSchemaQualified(t *testing.T) {
	a, mock := setupAdapter(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?")).
		WithArgs("gis", "places").
		WillReturnRows(sqlmock.NewRows(columnRows))

	columns, err := a.Columns(context.Background(), "gis.places")
	require.NoError(t, err)
	assert.Empty(t, columns)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKeywordOf(t *testing.T) {
	assert.Equal(t, "varchar", keywordOf("varchar(255)"))
	assert.Equal(t, "point", keywordOf(" point "))
}

func TestColumnsMariaDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	a := NewMariaDB(conn.New(db, nil), nil)
	assert.Equal(t, MariaDBName, a.Name())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COLUMN_NAME, COLUMN_TYPE, COLUMN_DEFAULT, IS_NULLABLE, NULL AS SRS_ID")).
		WithArgs("places").
		WillReturnRows(sqlmock.NewRows(columnRows).
			AddRow("loc", "point", nil, "NO", nil))

	columns, err := a.Columns(context.Background(), "places")
	require.NoError(t, err)
	require.Len(t, columns, 1)

	loc := columns[0].(*spatial.Descriptor)
	assert.Equal(t, spatial.Point, loc.Type)
	assert.Equal(t, spatial.UnspecifiedSRID, loc.SRID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
