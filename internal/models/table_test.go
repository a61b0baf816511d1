package models

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableValue(t *testing.T) {
	table := &Table{
		Name:    "airports",
		Columns: []string{ColAirportID, ColAirportCountry},
		Rows: [][]sql.NullString{
			{{String: "1", Valid: true}, {String: "Canada", Valid: true}},
			{{String: "2", Valid: true}, {}},
		},
	}

	tests := []struct {
		name      string
		row       int
		column    string
		want      sql.NullString
		wantFound bool
	}{
		{name: "present value", row: 0, column: ColAirportCountry, want: sql.NullString{String: "Canada", Valid: true}, wantFound: true},
		{name: "null value", row: 1, column: ColAirportCountry, want: sql.NullString{}, wantFound: true},
		{name: "unknown column", row: 0, column: ColAirlineName, wantFound: false},
		{name: "row out of range", row: 5, column: ColAirportID, wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := table.Value(tt.row, tt.column)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatStatistic(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{value: 12, want: "12"},
		{value: 0, want: "0"},
		{value: 1234.5, want: "1234.5"},
		{value: 800, want: "800"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultRow{Statistic: tt.value}.FormatStatistic())
		})
	}
}
