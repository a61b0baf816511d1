// Package analysis loads the route datasets, joins them and answers the fixed questions
package analysis

import (
	"fmt"

	"route-manager/internal/config"
	"route-manager/internal/database"
	"route-manager/internal/logging"
	"route-manager/internal/models"
	"route-manager/internal/parser"
)

// Sources are the paths of the three structured-record files.
// Airlines may be empty when only the altitude view is needed.
type Sources struct {
	Airlines string
	Airports string
	Routes   string
}

// Trim rules for the known formatting noise in each source
var (
	AirlinesTrim = parser.TrimRule{Columns: true}
	AirportsTrim = parser.TrimRule{Values: []string{models.ColAirportCountry}}
	RoutesTrim   = parser.TrimRule{Columns: true}
)

// Load reads every non-empty source into db as the airlines, airports and routes tables
func Load(db database.DB, src Sources) error {
	inputs := []struct {
		table string
		path  string
		rule  parser.TrimRule
	}{
		{config.AirlinesTable, src.Airlines, AirlinesTrim},
		{config.AirportsTable, src.Airports, AirportsTrim},
		{config.RoutesTable, src.Routes, RoutesTrim},
	}

	for _, in := range inputs {
		if in.path == "" {
			continue
		}

		table, err := parser.LoadRecords(in.path, in.table, in.rule)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", in.table, err)
		}

		count, err := database.StoreTable(db, table)
		if err != nil {
			return fmt.Errorf("failed to store %s: %w", in.table, err)
		}

		logging.Logger().Debug("dataset loaded", "table", in.table, "path", in.path, "rows", count)
	}

	return nil
}

// CreateRouteDetailsView joins every route with its destination airport and its airline.
// Both joins are left joins, so the view has exactly one row per route.
func CreateRouteDetailsView(db database.DB) error {
	_, err := database.CreateJoinView(db, config.RouteDetailsView, config.RoutesTable,
		database.JoinStep{
			Kind:    database.LeftJoin,
			Right:   config.AirportsTable,
			LeftOn:  models.ColRouteToAirportID,
			RightOn: models.ColAirportID,
		},
		database.JoinStep{
			Kind:    database.LeftJoin,
			Right:   config.AirlinesTable,
			LeftOn:  models.ColRouteAirlineID,
			RightOn: models.ColAirlineID,
		},
	)
	return err
}

// CreateAltitudeRoutesView inner-joins every route with its destination airport
// (columns suffixed _x) and its origin airport (columns suffixed _y).
// Routes with an unknown endpoint are dropped.
func CreateAltitudeRoutesView(db database.DB) error {
	_, err := database.CreateJoinView(db, config.AltitudeRoutesView, config.RoutesTable,
		database.JoinStep{
			Kind:    database.InnerJoin,
			Right:   config.AirportsTable,
			LeftOn:  models.ColRouteToAirportID,
			RightOn: models.ColAirportID,
		},
		database.JoinStep{
			Kind:    database.InnerJoin,
			Right:   config.AirportsTable,
			LeftOn:  models.ColRouteFromAirportID,
			RightOn: models.ColAirportID,
		},
	)
	return err
}

// destination and origin airport columns of the altitude view
func destColumn(name string) string   { return name + database.LeftSuffix }
func originColumn(name string) string { return name + database.RightSuffix }
