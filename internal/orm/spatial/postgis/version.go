package postgis

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// undefinedFunction is SQLSTATE 42883, raised when postgis_full_version is missing
const undefinedFunction = "42883"

var versionPattern = regexp.MustCompile(`POSTGIS="(\d+)\.(\d+)(?:\.(\d+))?`)

// Version is the installed PostGIS version. The zero value means PostGIS is
// not installed.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Installed reports whether PostGIS was found
func (v Version) Installed() bool {
	return v.Major > 0
}

// AtLeast compares against major.minor
func (v Version) AtLeast(major, minor int) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// SupportsGeographic reports geography type support, added in 1.5
func (v Version) SupportsGeographic() bool {
	return v.AtLeast(1, 5)
}

// SupportsTypmod reports geometry(TYPE,srid) column support, added in 2.0
func (v Version) SupportsTypmod() bool {
	return v.AtLeast(2, 0)
}

func (v Version) String() string {
	if !v.Installed() {
		return "not installed"
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion extracts the version from postgis_full_version() output
func ParseVersion(s string) (Version, bool) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, false
	}

	var v Version
	v.Major, _ = strconv.Atoi(m[1])
	v.Minor, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		v.Patch, _ = strconv.Atoi(m[3])
	}
	return v, true
}

// Version queries the installed PostGIS version. A database without the
// extension yields the zero Version and no error.
func (a *Adapter) Version(ctx context.Context) (Version, error) {
	value, err := a.conn.SelectString(ctx, "SELECT postgis_full_version()")
	if err != nil {
		if isUndefinedFunction(err) {
			return Version{}, nil
		}
		return Version{}, fmt.Errorf("reading postgis version: %w", err)
	}

	v, ok := ParseVersion(value.String)
	if !ok {
		return Version{}, fmt.Errorf("unrecognized postgis version %q", value.String)
	}
	return v, nil
}

// Spatial reports whether the database has PostGIS installed
func (a *Adapter) Spatial(ctx context.Context) (bool, error) {
	v, err := a.Version(ctx)
	if err != nil {
		return false, err
	}
	return v.Installed(), nil
}

// TablesWithoutPostGIS lists the PostGIS bookkeeping tables that schema dumps
// should skip
func TablesWithoutPostGIS(tables []string) []string {
	skip := map[string]bool{
		"geometry_columns": true,
		"spatial_ref_sys":  true,
		"layer":            true,
		"topology":         true,
	}

	out := make([]string, 0, len(tables))
	for _, t := range tables {
		if !skip[t] {
			out = append(out, t)
		}
	}
	return out
}

func isUndefinedFunction(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == undefinedFunction
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == undefinedFunction
	}
	return false
}
