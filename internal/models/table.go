// Package models defines the data structures used throughout the application
package models

import (
	"database/sql"
	"strconv"
)

// Field names of the structured-record sources. They are part of the external
// contract: joins and question handlers reference them verbatim.
const (
	ColAirlineID       = "airline_id"
	ColAirlineName     = "airline_name"
	ColAirlineCountry  = "airline_country"
	ColAirlineICAOCode = "airline_icao_unique_code"

	ColAirportID       = "airport_id"
	ColAirportName     = "airport_name"
	ColAirportCity     = "airport_city"
	ColAirportCountry  = "airport_country"
	ColAirportAltitude = "airport_altitude"
	ColAirportICAOCode = "airport_icao_unique_code"

	ColRouteAirlineID     = "route_airline_id"
	ColRouteFromAirportID = "route_from_aiport_id" // sic, as spelled in the source data
	ColRouteToAirportID   = "route_to_airport_id"
)

// Table is a loaded dataset: ordered column names and rows of nullable text values.
// Rows are aligned with Columns; a value that was absent or null in the source is
// an invalid sql.NullString.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]sql.NullString
}

// ColumnIndex returns the position of the named column, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Value returns the value at row for the named column.
// The second result is false when the column does not exist.
func (t *Table) Value(row int, column string) (sql.NullString, bool) {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return sql.NullString{}, false
	}
	return t.Rows[row][idx], true
}

// Result columns shared by every question handler, the result sink and the chart renderer
const (
	SubjectColumn   = "subject"
	StatisticColumn = "statistic"
)

// ResultRow is one ranked line of a question's answer
type ResultRow struct {
	Subject   string  `json:"subject"`
	Statistic float64 `json:"statistic"`
}

// FormatStatistic renders the statistic in its shortest decimal form,
// so counts print as integers ("12") and differences keep their fraction.
func (r ResultRow) FormatStatistic() string {
	return strconv.FormatFloat(r.Statistic, 'f', -1, 64)
}

// Result is the two-column answer to one question
type Result struct {
	Question string      `json:"question"`
	Rows     []ResultRow `json:"rows"`
}

// ChartLabels are the question-specific texts drawn on a chart
type ChartLabels struct {
	Title string
	XAxis string
	YAxis string
}
