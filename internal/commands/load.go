package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"route-manager/internal/analysis"
	"route-manager/internal/config"
	"route-manager/internal/database"
)

// NewLoadCommand creates the 'load' subcommand for importing the datasets into SQLite
// Usage: route-manager load --AIRLINES=a.yaml --AIRPORTS=b.yaml --ROUTES=c.yaml [--db routes.db]
func NewLoadCommand(sources *sourceFlags) *cobra.Command {
	var dbFile string

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the route datasets into a SQLite database",
		Long: `Parse the airlines, airports and routes records files and store them in a SQLite
database, together with the joined views the questions are answered from:

- route_details:   every route with its destination airport and airline (left joins)
- altitude_routes: every route with destination (_x) and origin (_y) airport (inner joins)

Loading replaces any tables and views already in the database. Use the query
command to explore the result.

Example:
  route-manager load --AIRLINES=airlines.yaml --AIRPORTS=airports.yaml --ROUTES=routes.yaml --db routes.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(config.DefaultEnvFile)
			if err != nil {
				return err
			}
			return runLoadCommand(cmd.OutOrStdout(), sources.withDefaults(settings), dbFile)
		},
	}

	// Define command flags
	cmd.Flags().StringVarP(&dbFile, "db", "d", config.DefaultDatabaseFile, config.DatabaseFileDescription)

	return cmd
}

// runLoadCommand executes the dataset loading logic
func runLoadCommand(out io.Writer, src analysis.Sources, dbFile string) error {
	// Validate input files exist
	for _, path := range []string{src.Airlines, src.Airports, src.Routes} {
		if path == "" {
			return fmt.Errorf("--AIRLINES, --AIRPORTS and --ROUTES are all required")
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("records file does not exist: %s", path)
		}
	}

	fmt.Fprintf(out, "Loading airlines: %s\n", src.Airlines)
	fmt.Fprintf(out, "Loading airports: %s\n", src.Airports)
	fmt.Fprintf(out, "Loading routes:   %s\n", src.Routes)
	fmt.Fprintf(out, "Target database:  %s\n", dbFile)

	// Initialize database connection
	db, err := database.Initialize(dbFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := analysis.Load(db, src); err != nil {
		return err
	}
	if err := analysis.CreateRouteDetailsView(db); err != nil {
		return err
	}
	if err := analysis.CreateAltitudeRoutesView(db); err != nil {
		return err
	}

	for _, relation := range []string{config.AirlinesTable, config.AirportsTable, config.RoutesTable, config.RouteDetailsView, config.AltitudeRoutesView} {
		result, err := database.ExecuteQuery(db, fmt.Sprintf("SELECT COUNT(*) AS count FROM %q", relation))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-16s %v rows\n", relation, result.Rows[0]["count"])
	}

	fmt.Fprintf(out, "Successfully loaded datasets into %s\n", dbFile)
	return nil
}
