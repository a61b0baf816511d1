package analysis

import (
	"fmt"
	"strings"

	"route-manager/internal/config"
	"route-manager/internal/database"
	"route-manager/internal/logging"
	"route-manager/internal/models"
)

// Question is one fixed analytical question answered by a single grouped query
// over a join view.
//
// The generated statement selects Subject and Statistic, filters with Where,
// groups by GroupBy, orders by OrderBy and keeps the first Limit rows. Groups
// whose subject is NULL never appear in the answer.
type Question struct {
	Name string
	View string

	Subject   string // SQL expression for the subject column
	Statistic string // SQL expression for the statistic column; COUNT(*) when empty

	Where   []string
	GroupBy []string
	OrderBy []string
	Limit   int

	// UniqueSubjects keeps only the first row of each subject after truncation
	UniqueSubjects bool

	Labels models.ChartLabels
}

// NeedsAirlines reports whether the question's view joins the airlines table
func (q Question) NeedsAirlines() bool {
	return q.View == config.RouteDetailsView
}

// SQL renders the question's query, truncated to limit rows
func (q Question) SQL(limit int) string {
	statistic := q.Statistic
	if statistic == "" {
		statistic = "COUNT(*)"
	}

	where := append([]string{fmt.Sprintf("(%s) IS NOT NULL", q.Subject)}, q.Where...)

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s AS %s, %s AS %s\n", q.Subject, models.SubjectColumn, statistic, models.StatisticColumn)
	fmt.Fprintf(&b, "FROM %q\n", q.View)
	fmt.Fprintf(&b, "WHERE %s\n", strings.Join(where, "\n  AND "))
	if len(q.GroupBy) > 0 {
		fmt.Fprintf(&b, "GROUP BY %s\n", strings.Join(q.GroupBy, ", "))
	}
	if len(q.OrderBy) > 0 {
		fmt.Fprintf(&b, "ORDER BY %s\n", strings.Join(q.OrderBy, ", "))
	}
	fmt.Fprintf(&b, "LIMIT %d", limit)
	return b.String()
}

// Prepare creates the join view the question reads from
func (q Question) Prepare(db database.DB) error {
	switch q.View {
	case config.RouteDetailsView:
		return CreateRouteDetailsView(db)
	case config.AltitudeRoutesView:
		return CreateAltitudeRoutesView(db)
	default:
		return fmt.Errorf("question %s reads unknown view %s", q.Name, q.View)
	}
}

// Run answers the question against an already prepared database.
// A limit of zero or less uses the question's own truncation size.
func Run(db database.DB, q Question, limit int) (*models.Result, error) {
	if limit <= 0 {
		limit = q.Limit
	}

	rows, err := database.ExecuteQuery(db, q.SQL(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to answer %s: %w", q.Name, err)
	}

	result := &models.Result{Question: q.Name, Rows: make([]models.ResultRow, 0, len(rows.Rows))}
	seen := make(map[string]bool)

	for _, row := range rows.Rows {
		subject := fmt.Sprint(row[models.SubjectColumn])
		statistic, err := toFloat(row[models.StatisticColumn])
		if err != nil {
			return nil, fmt.Errorf("failed to answer %s: subject %q: %w", q.Name, subject, err)
		}

		if q.UniqueSubjects {
			if seen[subject] {
				continue
			}
			seen[subject] = true
		}

		result.Rows = append(result.Rows, models.ResultRow{Subject: subject, Statistic: statistic})
	}

	logging.WithQuestion(q.Name).Debug("question answered", "rows", len(result.Rows), "limit", limit)
	return result, nil
}

// Answer loads the sources into db, builds the question's view and runs it
func Answer(db database.DB, src Sources, q Question, limit int) (*models.Result, error) {
	if !q.NeedsAirlines() {
		src.Airlines = ""
	}

	if err := Load(db, src); err != nil {
		return nil, err
	}
	if err := q.Prepare(db); err != nil {
		return nil, err
	}
	return Run(db, q, limit)
}

func toFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case int64:
		return float64(val), nil
	case float64:
		return val, nil
	default:
		return 0, fmt.Errorf("statistic %v is not numeric", v)
	}
}
