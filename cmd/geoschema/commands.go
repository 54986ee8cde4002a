package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/conduit-lang/spatial/internal/cli/ui"
	"github.com/conduit-lang/spatial/internal/orm/spatial"
	"github.com/conduit-lang/spatial/internal/orm/spatial/codec"
	"github.com/conduit-lang/spatial/internal/orm/spatial/postgis"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "geoschema version: %s\n", Version)
			fmt.Fprintf(out, "Git commit: %s\n", GitCommit)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "Backends: %s\n", strings.Join(spatial.Backends(), ", "))
		},
	}
}

func newColumnsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "columns TABLE",
		Short: "List the columns of a table with their spatial metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags, true)
			if err != nil {
				return err
			}
			defer s.Close()

			columns, err := s.backend.Columns(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			ui.Header(s.out, args[0], s.noColor)
			ui.Columns(s.out, columns, s.noColor)
			return nil
		},
	}
}

func newIndexesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "indexes TABLE",
		Short: "List the indexes of a table, marking spatial ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags, true)
			if err != nil {
				return err
			}
			defer s.Close()

			indexes, err := s.backend.Indexes(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			ui.Header(s.out, args[0]+" indexes", s.noColor)
			ui.Indexes(s.out, indexes, s.noColor)
			return nil
		},
	}
}

// columnFlags are the declaration options shared by create-table and add-column
type columnFlags struct {
	srid       int
	withZ      bool
	withM      bool
	geographic bool
	notNull    bool
	inline     bool
	def        string
}

func (f *columnFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.srid, "srid", spatial.UnspecifiedSRID, "spatial reference system identifier")
	fs.BoolVar(&f.withZ, "z", false, "store an elevation coordinate")
	fs.BoolVar(&f.withM, "m", false, "store a measure coordinate")
	fs.BoolVar(&f.geographic, "geographic", false, "use geography storage")
	fs.BoolVar(&f.notNull, "not-null", false, "forbid NULL values")
	fs.BoolVar(&f.inline, "inline", false, "declare geometry columns inline instead of through AddGeometryColumn")
	fs.StringVar(&f.def, "default", "", "default value; WKT for spatial columns")
}

// options builds the column options for a column of typeName
func (f *columnFlags) options(cmd *cobra.Command, typeName string) (spatial.ColumnOptions, error) {
	var opts []spatial.ColumnOption
	opts = append(opts, spatial.WithSRID(f.srid))
	if f.withZ {
		opts = append(opts, spatial.WithZ())
	}
	if f.withM {
		opts = append(opts, spatial.WithM())
	}
	if f.geographic {
		opts = append(opts, spatial.Geographic())
	}
	if f.notNull {
		opts = append(opts, spatial.NotNull())
	}
	if f.inline {
		opts = append(opts, spatial.Inline())
	}

	if cmd.Flags().Changed("default") {
		value, err := defaultValue(typeName, f.def, f.srid)
		if err != nil {
			return spatial.ColumnOptions{}, err
		}
		opts = append(opts, spatial.WithDefault(value))
	}

	return spatial.NewColumnOptions(opts...), nil
}

// defaultValue parses WKT defaults for spatial types and keeps others as text
func defaultValue(typeName, text string, srid int) (any, error) {
	if !spatial.IsType(typeName) {
		return text, nil
	}

	g, err := wkt.Unmarshal(text)
	if err != nil {
		return nil, fmt.Errorf("default %q: %w", text, err)
	}
	if srid > 0 {
		if err := codec.SetSRID(g, srid); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func newCreateTableCmd(flags *globalFlags) *cobra.Command {
	var (
		cf        columnFlags
		columns   []string
		force     bool
		temporary bool
		noID      bool
	)

	cmd := &cobra.Command{
		Use:   "create-table TABLE --column NAME:TYPE...",
		Short: "Create a table; modifiers apply to every spatial column",
		Example: `  geoschema create-table places --column name:string --column loc:point --srid 4326
  geoschema create-table routes --column path:line_string --geographic --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := parseColumnSpecs(columns)
			if err != nil {
				return err
			}

			s, err := newSession(cmd, flags, false)
			if err != nil {
				return err
			}
			defer s.Close()

			opts := spatial.TableOptions{Force: force, Temporary: temporary, NoID: noID}
			err = s.backend.CreateTable(commandContext(cmd), args[0], opts, func(t spatial.TableBuilder) error {
				for _, d := range defs {
					colOpts := spatial.NewColumnOptions()
					if spatial.IsType(d.typeName) {
						colOpts, err = cf.options(cmd, d.typeName)
						if err != nil {
							return err
						}
					}
					if err := t.Column(d.name, d.typeName, colOpts); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			s.done(fmt.Sprintf("created table %s", args[0]))
			return nil
		},
	}

	cf.register(cmd)
	cmd.Flags().StringArrayVar(&columns, "column", nil, "column as NAME:TYPE, repeatable")
	cmd.Flags().BoolVar(&force, "force", false, "drop an existing table first")
	cmd.Flags().BoolVar(&temporary, "temporary", false, "create a temporary table")
	cmd.Flags().BoolVar(&noID, "no-id", false, "skip the id primary key")
	return cmd
}

type columnSpec struct {
	name     string
	typeName string
}

func parseColumnSpecs(specs []string) ([]columnSpec, error) {
	out := make([]columnSpec, 0, len(specs))
	for _, spec := range specs {
		name, typeName, ok := strings.Cut(spec, ":")
		if !ok || name == "" || typeName == "" {
			return nil, fmt.Errorf("column %q must be NAME:TYPE", spec)
		}
		out = append(out, columnSpec{name: name, typeName: strings.ToLower(typeName)})
	}
	return out, nil
}

func newAddColumnCmd(flags *globalFlags) *cobra.Command {
	var cf columnFlags

	cmd := &cobra.Command{
		Use:     "add-column TABLE COLUMN TYPE",
		Short:   "Add a column to an existing table",
		Example: `  geoschema add-column places loc point --srid 4326 --not-null --default 'POINT (0 0)'`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, column, typeName := args[0], args[1], strings.ToLower(args[2])

			opts, err := cf.options(cmd, typeName)
			if err != nil {
				return err
			}

			s, err := newSession(cmd, flags, false)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.backend.AddColumn(commandContext(cmd), table, column, typeName, opts); err != nil {
				return err
			}
			s.done(fmt.Sprintf("added column %s.%s", table, column))
			return nil
		},
	}

	cf.register(cmd)
	return cmd
}

func newRemoveColumnCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-column TABLE COLUMN...",
		Short: "Remove columns, deregistering geometry columns",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags, true)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.backend.RemoveColumn(commandContext(cmd), args[0], args[1:]...); err != nil {
				return err
			}
			s.done(fmt.Sprintf("removed %s from %s", strings.Join(args[1:], ", "), args[0]))
			return nil
		},
	}
}

func newAddIndexCmd(flags *globalFlags) *cobra.Command {
	var opts spatial.IndexOptions

	cmd := &cobra.Command{
		Use:   "add-index TABLE COLUMN...",
		Short: "Create an index, optionally spatial",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags, false)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.backend.AddIndex(commandContext(cmd), args[0], args[1:], opts); err != nil {
				return err
			}
			s.done(fmt.Sprintf("added index on %s (%s)", args[0], strings.Join(args[1:], ", ")))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "index name")
	cmd.Flags().BoolVar(&opts.Unique, "unique", false, "create a unique index")
	cmd.Flags().BoolVar(&opts.Spatial, "spatial", false, "create a spatial index")
	return cmd
}

func newRemoveIndexCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-index TABLE NAME",
		Short: "Drop an index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags, false)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.backend.RemoveIndex(commandContext(cmd), args[0], args[1]); err != nil {
				return err
			}
			s.done(fmt.Sprintf("removed index %s", args[1]))
			return nil
		},
	}
}

func newPostGISCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "postgis-version",
		Short: "Show the installed PostGIS version and its capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags, true)
			if err != nil {
				return err
			}
			defer s.Close()

			adapter, ok := s.backend.(*postgis.Adapter)
			if !ok {
				return fmt.Errorf("postgis-version requires the postgresql adapter, configured: %s", s.backend.Name())
			}

			v, err := adapter.Version(commandContext(cmd))
			if err != nil {
				return err
			}

			kv := ui.NewKeyValueTable(s.out, s.noColor)
			kv.AddRow("PostGIS", v.String())
			kv.AddRow("Geography", ui.YesNo(v.SupportsGeographic()))
			kv.AddRow("Typmod columns", ui.YesNo(v.SupportsTypmod()))
			kv.Render()
			return nil
		},
	}
}
