// Package config provides shared configuration constants and settings
// for the route manager application
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	// DefaultDatabaseFile is the default SQLite database filename
	// used by both load and query commands when no --db flag is provided
	DefaultDatabaseFile = "routes.db"

	// MemoryDatabase keeps a single question run entirely in memory
	MemoryDatabase = ":memory:"

	// DatabaseFileDescription is the help text description for the database file flag
	DatabaseFileDescription = "Path to SQLite database file"

	// Table names for the three loaded datasets
	AirlinesTable = "airlines"
	AirportsTable = "airports"
	RoutesTable   = "routes"

	// RouteDetailsView joins every route with its destination airport and airline
	RouteDetailsView = "route_details"

	// AltitudeRoutesView joins every route with both its destination and origin airport
	AltitudeRoutesView = "altitude_routes"

	// DefaultOutputDir is where q<N>.csv and q<N>.pdf are written
	DefaultOutputDir = "."

	// DefaultEnvFile is read on startup when present
	DefaultEnvFile = ".env"
)

// Environment variables consulted by Load
const (
	EnvOutputDir = "ROUTE_MANAGER_OUTPUT_DIR"
	EnvAirlines  = "AIRLINES"
	EnvAirports  = "AIRPORTS"
	EnvRoutes    = "ROUTES"
	EnvGraphType = "GRAPH_TYPE"
)

// Settings holds values that may come from the environment rather than flags
type Settings struct {
	OutputDir string
	Airlines  string
	Airports  string
	Routes    string
	GraphType string
}

// Load reads envFile (if it exists) into the process environment and returns
// the resulting settings. Variables already set in the environment win over
// the file, matching godotenv.Load semantics.
func Load(envFile string) (Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	settings := Settings{
		OutputDir: os.Getenv(EnvOutputDir),
		Airlines:  os.Getenv(EnvAirlines),
		Airports:  os.Getenv(EnvAirports),
		Routes:    os.Getenv(EnvRoutes),
		GraphType: os.Getenv(EnvGraphType),
	}
	if settings.OutputDir == "" {
		settings.OutputDir = DefaultOutputDir
	}

	return settings, nil
}
