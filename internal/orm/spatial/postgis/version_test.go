package postgis

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	v, ok := ParseVersion(`POSTGIS="3.4.2 c19ce56" [EXTENSION] PGSQL="160" GEOS="3.12.1-CAPI-1.18.1"`)
	require.True(t, ok)
	assert.Equal(t, Version{Major: 3, Minor: 4, Patch: 2}, v)
	assert.True(t, v.SupportsGeographic())
	assert.True(t, v.SupportsTypmod())
	assert.Equal(t, "3.4.2", v.String())

	v, ok = ParseVersion(`POSTGIS="1.5" GEOS="3.2.2-CAPI-1.6.2"`)
	require.True(t, ok)
	assert.True(t, v.SupportsGeographic())
	assert.False(t, v.SupportsTypmod())

	v, ok = ParseVersion(`POSTGIS="1.4.1"`)
	require.True(t, ok)
	assert.False(t, v.SupportsGeographic())

	_, ok = ParseVersion("PostgreSQL 16.2")
	assert.False(t, ok)
	assert.Equal(t, "not installed", Version{}.String())
}

func TestVersion(t *testing.T) {
	a, mock := setupAdapter(t, nil)

	mock.ExpectQuery(`SELECT postgis_full_version\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"postgis_full_version"}).AddRow(`POSTGIS="3.3.0 0" [EXTENSION]`))

	v, err := a.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, v.Major)
	assert.Equal(t, 3, v.Minor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionWithoutPostGIS(t *testing.T) {
	for _, undefined := range []error{
		&pgconn.PgError{Code: "42883", Message: "function postgis_full_version() does not exist"},
		&pq.Error{Code: "42883"},
	} {
		a, mock := setupAdapter(t, nil)
		mock.ExpectQuery(`SELECT postgis_full_version\(\)`).WillReturnError(undefined)

		installed, err := a.Spatial(context.Background())
		require.NoError(t, err)
		assert.False(t, installed)
	}
}

func TestVersionOtherErrors(t *testing.T) {
	a, mock := setupAdapter(t, nil)
	mock.ExpectQuery(`SELECT postgis_full_version\(\)`).WillReturnError(errors.New("connection reset"))

	_, err := a.Version(context.Background())
	assert.Error(t, err)

	a, mock = setupAdapter(t, nil)
	mock.ExpectQuery(`SELECT postgis_full_version\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow("garbage"))
	_, err = a.Version(context.Background())
	assert.Error(t, err)
}

func TestTablesWithoutPostGIS(t *testing.T) {
	got := TablesWithoutPostGIS([]string{"places", "geometry_columns", "spatial_ref_sys", "routes"})
	assert.Equal(t, []string{"places", "routes"}, got)
}
