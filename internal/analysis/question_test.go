package analysis

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-manager/internal/database"
	"route-manager/internal/models"
)

var fixtures = Sources{
	Airlines: filepath.Join("..", "..", "testdata", "airlines.yaml"),
	Airports: filepath.Join("..", "..", "testdata", "airports.yaml"),
	Routes:   filepath.Join("..", "..", "testdata", "routes.yaml"),
}

func newTestDB(t *testing.T) database.DB {
	t.Helper()
	db, err := database.Initialize(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func answer(t *testing.T, src Sources, q Question, limit int) *models.Result {
	t.Helper()
	result, err := Answer(newTestDB(t), src, q, limit)
	require.NoError(t, err)
	return result
}

// TestQuestions checks every answer against the fixture datasets
func TestQuestions(t *testing.T) {
	tests := []struct {
		question Question
		want     []models.ResultRow
	}{
		{
			question: Q1,
			want: []models.ResultRow{
				{Subject: "Air Canada (ACA)", Statistic: 3},
				{Subject: "WestJet (WJA)", Statistic: 3},
				{Subject: "British Airways (BAW)", Statistic: 2},
			},
		},
		{
			question: Q2,
			want: []models.ResultRow{
				{Subject: "United Kingdom", Statistic: 1},
				{Subject: "United States", Statistic: 1},
				{Subject: "Canada", Statistic: 8},
			},
		},
		{
			question: Q3,
			want: []models.ResultRow{
				{Subject: "Toronto Pearson (CYYZ), Toronto, Canada", Statistic: 5},
				{Subject: "Calgary Intl (CYYC), Calgary, Canada", Statistic: 1},
				{Subject: "Heathrow (EGLL), London, United Kingdom", Statistic: 1},
				{Subject: "JFK (KJFK), New York, United States", Statistic: 1},
				{Subject: "London Intl (CYXU), London, Canada", Statistic: 1},
				{Subject: "Vancouver Intl (CYVR), Vancouver, Canada", Statistic: 1},
				{Subject: "nan (nan), nan, nan", Statistic: 1},
			},
		},
		{
			question: Q4,
			want: []models.ResultRow{
				{Subject: "Toronto, Canada", Statistic: 5},
				{Subject: "Calgary, Canada", Statistic: 1},
				{Subject: "London, Canada", Statistic: 1},
				{Subject: "London, United Kingdom", Statistic: 1},
				{Subject: "New York, United States", Statistic: 1},
				{Subject: "Vancouver, Canada", Statistic: 1},
			},
		},
		{
			question: Q5,
			want: []models.ResultRow{
				{Subject: "CYYZ-CYYC", Statistic: 2988},
				{Subject: "CYYC-CYYZ", Statistic: 2988},
				{Subject: "CYYZ-CYVR", Statistic: 555},
				{Subject: "CYVR-CYYZ", Statistic: 555},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.question.Name, func(t *testing.T) {
			result := answer(t, fixtures, tt.question, 0)
			assert.Equal(t, tt.question.Name, result.Question)
			assert.Equal(t, tt.want, result.Rows)
			assert.LessOrEqual(t, len(result.Rows), tt.question.Limit)
		})
	}
}

// TestRunLimit tests that an explicit limit truncates the ranking
func TestRunLimit(t *testing.T) {
	result := answer(t, fixtures, Q3, 2)
	assert.Equal(t, []models.ResultRow{
		{Subject: "Toronto Pearson (CYYZ), Toronto, Canada", Statistic: 5},
		{Subject: "Calgary Intl (CYYC), Calgary, Canada", Statistic: 1},
	}, result.Rows)
}

// TestAnswerIdempotent tests that repeated runs give identical answers
func TestAnswerIdempotent(t *testing.T) {
	for _, q := range All {
		t.Run(q.Name, func(t *testing.T) {
			first := answer(t, fixtures, q, 0)
			second := answer(t, fixtures, q, 0)
			assert.Equal(t, first, second)
		})
	}
}

// TestQ5DoesNotNeedAirlines tests that the altitude question ignores the airlines source
func TestQ5DoesNotNeedAirlines(t *testing.T) {
	src := fixtures
	src.Airlines = filepath.Join(t.TempDir(), "missing.yaml")

	result := answer(t, src, Q5, 0)
	assert.Len(t, result.Rows, 4)
}

// TestAnswerMissingSource tests that an unreadable source is fatal
func TestAnswerMissingSource(t *testing.T) {
	src := fixtures
	src.Routes = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := Answer(newTestDB(t), src, Q2, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load routes")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestQ5AltitudeDifference uses three Canadian airports at 100, 500 and 900 feet
func TestQ5AltitudeDifference(t *testing.T) {
	dir := t.TempDir()
	src := Sources{
		Airports: writeFile(t, dir, "airports.yaml", `airports:
- {airport_id: 1, airport_name: A, airport_city: A, airport_country: Canada, airport_altitude: 100, airport_icao_unique_code: AAAA}
- {airport_id: 2, airport_name: B, airport_city: B, airport_country: Canada, airport_altitude: 500, airport_icao_unique_code: BBBB}
- {airport_id: 3, airport_name: C, airport_city: C, airport_country: Canada, airport_altitude: 900, airport_icao_unique_code: CCCC}
`),
		Routes: writeFile(t, dir, "routes.yaml", `routes:
- {route_airline_id: 1, route_from_aiport_id: 1, route_to_airport_id: 3}
- {route_airline_id: 1, route_from_aiport_id: 2, route_to_airport_id: 1}
- {route_airline_id: 2, route_from_aiport_id: 2, route_to_airport_id: 1}
`),
	}

	result := answer(t, src, Q5, 0)
	assert.Equal(t, []models.ResultRow{
		{Subject: "AAAA-CCCC", Statistic: 800},
		{Subject: "BBBB-AAAA", Statistic: 400},
	}, result.Rows)
}

// TestQ5KeepsFirstRankedPair tests that a route pair reachable through two airports
// sharing a code is reported once, with its largest difference
func TestQ5KeepsFirstRankedPair(t *testing.T) {
	dir := t.TempDir()
	src := Sources{
		Airports: writeFile(t, dir, "airports.yaml", `airports:
- {airport_id: 1, airport_country: Canada, airport_altitude: 100, airport_icao_unique_code: AAAA}
- {airport_id: 2, airport_country: Canada, airport_altitude: 500, airport_icao_unique_code: BBBB}
- {airport_id: 3, airport_country: Canada, airport_altitude: 900, airport_icao_unique_code: BBBB}
`),
		Routes: writeFile(t, dir, "routes.yaml", `routes:
- {route_airline_id: 1, route_from_aiport_id: 1, route_to_airport_id: 2}
- {route_airline_id: 1, route_from_aiport_id: 1, route_to_airport_id: 3}
`),
	}

	result := answer(t, src, Q5, 0)
	assert.Equal(t, []models.ResultRow{{Subject: "AAAA-BBBB", Statistic: 800}}, result.Rows)
}

// TestQ5RequiresCanadianOrigin tests that both endpoints must be in Canada
func TestQ5RequiresCanadianOrigin(t *testing.T) {
	dir := t.TempDir()
	src := Sources{
		Airports: writeFile(t, dir, "airports.yaml", `airports:
- {airport_id: 1, airport_country: Canada, airport_altitude: 100, airport_icao_unique_code: AAAA}
- {airport_id: 2, airport_country: France, airport_altitude: 500, airport_icao_unique_code: LFPG}
`),
		Routes: writeFile(t, dir, "routes.yaml", `routes:
- {route_airline_id: 1, route_from_aiport_id: 2, route_to_airport_id: 1}
`),
	}

	result := answer(t, src, Q5, 0)
	assert.Empty(t, result.Rows)
}

// TestQ5Truncation tests that the unique pairs are taken from the top ten groups
func TestQ5Truncation(t *testing.T) {
	dir := t.TempDir()

	airports := "airports:\n"
	routes := "routes:\n"
	for i := 0; i < 13; i++ {
		airports += "- {airport_id: " + itoa(i) + ", airport_country: Canada, airport_altitude: " +
			itoa(i*100) + ", airport_icao_unique_code: C" + string(rune('A'+i)) + "}\n"
		if i > 0 {
			routes += "- {route_airline_id: 1, route_from_aiport_id: 0, route_to_airport_id: " + itoa(i) + "}\n"
		}
	}

	src := Sources{
		Airports: writeFile(t, dir, "airports.yaml", airports),
		Routes:   writeFile(t, dir, "routes.yaml", routes),
	}

	result := answer(t, src, Q5, 0)
	require.Len(t, result.Rows, 10)
	assert.Equal(t, models.ResultRow{Subject: "CA-CM", Statistic: 1200}, result.Rows[0])
	assert.Equal(t, models.ResultRow{Subject: "CA-CD", Statistic: 300}, result.Rows[9])
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		wantOK bool
	}{
		{name: "q1", wantOK: true},
		{name: "q5", wantOK: true},
		{name: "q6", wantOK: false},
		{name: "Q1", wantOK: false},
		{name: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := Lookup(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.name, q.Name)
			}
		})
	}
}

func TestQuestionSQL(t *testing.T) {
	sql := Q2.SQL(30)
	assert.Contains(t, sql, "SELECT airport_country AS subject, COUNT(*) AS statistic")
	assert.Contains(t, sql, `FROM "route_details"`)
	assert.Contains(t, sql, "ORDER BY statistic ASC, subject ASC")
	assert.Contains(t, sql, "LIMIT 30")

	assert.True(t, Q1.NeedsAirlines())
	assert.False(t, Q5.NeedsAirlines())
}
