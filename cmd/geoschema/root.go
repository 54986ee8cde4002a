package main

import (
	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	configDir string
	adapter   string
	url       string
	dryRun    bool
	noColor   bool
	verbose   bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "geoschema",
		Short: "Inspect and change spatial columns on PostGIS and MySQL",
		Long: `geoschema reads and writes spatial schema: geometry and geography columns,
their SRID and Z/M modifiers, and spatial indexes.

The backend is chosen once from configuration (geoschema.yaml, GEOSCHEMA_*
variables) or the --adapter flag. DATABASE_URL overrides the configured URL.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configDir, "config", "", "directory containing geoschema.yaml")
	pf.StringVar(&flags.adapter, "adapter", "", "spatial backend (postgresql, mysql)")
	pf.StringVar(&flags.url, "url", "", "database URL")
	pf.BoolVar(&flags.dryRun, "dry-run", false, "print statements instead of executing them")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log every statement")

	rootCmd.AddCommand(
		newVersionCmd(),
		newColumnsCmd(flags),
		newIndexesCmd(flags),
		newCreateTableCmd(flags),
		newAddColumnCmd(flags),
		newRemoveColumnCmd(flags),
		newAddIndexCmd(flags),
		newRemoveIndexCmd(flags),
		newPostGISCmd(flags),
	)

	return rootCmd
}
