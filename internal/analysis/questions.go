package analysis

import (
	"strings"

	"route-manager/internal/config"
	"route-manager/internal/models"
)

// canada is the destination country the q1 and q5 answers are restricted to
const canada = "'Canada'"

// Q1 ranks airlines by the number of routes they fly into Canada
var Q1 = Question{
	Name:    "q1",
	View:    config.RouteDetailsView,
	Subject: models.ColAirlineName + " || ' (' || " + models.ColAirlineICAOCode + " || ')'",
	Where:   []string{models.ColAirportCountry + " = " + canada},
	GroupBy: []string{models.SubjectColumn},
	OrderBy: []string{models.StatisticColumn + " DESC", models.SubjectColumn + " ASC"},
	Limit:   20,
	Labels: models.ChartLabels{
		Title: "Top 20 airlines with destination as Canada",
		XAxis: "Airline Offering the routes",
		YAxis: "No. of routes offered to Canada",
	},
}

// Q2 lists the countries that appear least often as a route destination
var Q2 = Question{
	Name:    "q2",
	View:    config.RouteDetailsView,
	Subject: models.ColAirportCountry,
	GroupBy: []string{models.SubjectColumn},
	OrderBy: []string{models.StatisticColumn + " ASC", models.SubjectColumn + " ASC"},
	Limit:   30,
	Labels: models.ChartLabels{
		Title: "Top 30 countries with least appearances as destination country",
		XAxis: "Destination Country",
		YAxis: "Number of appearances",
	},
}

// Q3 ranks destination airports by the number of routes arriving there.
// Routes to an unknown airport are counted under "nan (nan), nan, nan".
var Q3 = Question{
	Name: "q3",
	View: config.RouteDetailsView,
	Subject: strings.Join([]string{
		nanIfNull(models.ColAirportName), "' ('", nanIfNull(models.ColAirportICAOCode), "'), '",
		nanIfNull(models.ColAirportCity), "', '", nanIfNull(models.ColAirportCountry),
	}, " || "),
	GroupBy: []string{models.SubjectColumn},
	OrderBy: []string{models.StatisticColumn + " DESC", models.SubjectColumn + " ASC"},
	Limit:   10,
	Labels: models.ChartLabels{
		Title: "Top 10 destination airports",
		XAxis: "Airport Name",
		YAxis: "Number of appearances",
	},
}

// Q4 ranks destination cities. Cities are grouped together with their country
// so same-named cities in different countries stay apart.
var Q4 = Question{
	Name:    "q4",
	View:    config.RouteDetailsView,
	Subject: models.ColAirportCity + " || ', ' || " + models.ColAirportCountry,
	GroupBy: []string{models.ColAirportCity, models.ColAirportCountry},
	OrderBy: []string{
		models.StatisticColumn + " DESC",
		models.ColAirportCity + " ASC",
		models.ColAirportCountry + " ASC",
	},
	Limit: 15,
	Labels: models.ChartLabels{
		Title: "Top 15 destination cities",
		XAxis: "Airport City",
		YAxis: "Number of appearances",
	},
}

// Q5 ranks routes between two Canadian airports by the absolute difference
// between destination and origin altitude. Each route pair is reported once.
var Q5 = Question{
	Name:    "q5",
	View:    config.AltitudeRoutesView,
	Subject: originColumn(models.ColAirportICAOCode) + " || '-' || " + destColumn(models.ColAirportICAOCode),
	Statistic: "abs(to_numeric(" + destColumn(models.ColAirportAltitude) + ") - to_numeric(" +
		originColumn(models.ColAirportAltitude) + "))",
	Where: []string{
		destColumn(models.ColAirportCountry) + " = " + canada,
		originColumn(models.ColAirportCountry) + " = " + canada,
		"to_numeric(" + destColumn(models.ColAirportAltitude) + ") IS NOT NULL",
		"to_numeric(" + originColumn(models.ColAirportAltitude) + ") IS NOT NULL",
	},
	GroupBy:        []string{models.SubjectColumn, models.StatisticColumn},
	OrderBy:        []string{models.StatisticColumn + " DESC", models.SubjectColumn + " DESC"},
	Limit:          10,
	UniqueSubjects: true,
	Labels: models.ChartLabels{
		Title: "Unique top 10 Canadian routes with most difference between the destination altitude and the origin altitude",
		XAxis: "Route",
		YAxis: "Altitude Difference",
	},
}

// missingText stands in for an absent value in a composed subject
const missingText = "'nan'"

func nanIfNull(column string) string {
	return "COALESCE(" + column + ", " + missingText + ")"
}

// All lists the questions in the order they are numbered
var All = []Question{Q1, Q2, Q3, Q4, Q5}

// Lookup finds a question by name ("q1" ... "q5")
func Lookup(name string) (Question, bool) {
	for _, q := range All {
		if q.Name == name {
			return q, true
		}
	}
	return Question{}, false
}
