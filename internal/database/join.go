package database

import (
	"fmt"
	"strings"

	"route-manager/internal/logging"
)

// JoinKind selects left or inner join semantics
type JoinKind int

const (
	// LeftJoin keeps every left row, with NULLs where the right side has no match
	LeftJoin JoinKind = iota
	// InnerJoin keeps only rows matched on both sides
	InnerJoin
)

// String returns the SQL keyword for the join kind
func (k JoinKind) String() string {
	if k == InnerJoin {
		return "INNER JOIN"
	}
	return "LEFT JOIN"
}

// Suffixes appended when both sides carry a column of the same name
const (
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)

// JoinStep joins the accumulated relation with Right on LeftOn = RightOn.
// LeftOn names a column of the accumulated output, after any earlier renames.
type JoinStep struct {
	Kind    JoinKind
	Right   string
	LeftOn  string
	RightOn string
}

// outputColumn is one column of the view being built and the expression producing it
type outputColumn struct {
	name string
	expr string
}

// TableColumns returns the column names of a table or view in declaration order
func TableColumns(db DB, relation string) ([]string, error) {
	result, err := ExecuteQuery(db, fmt.Sprintf("PRAGMA table_info(%s)", quote(relation)))
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", relation, err)
	}
	if len(result.Rows) == 0 {
		return nil, fmt.Errorf("relation %s does not exist", relation)
	}

	columns := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		name, _ := row["name"].(string)
		columns = append(columns, name)
	}
	return columns, nil
}

// CreateJoinView creates (or replaces) a view named name that joins left with each
// step in order, and returns the view's columns.
//
// The view holds the union of all columns. When an incoming column name is
// already present, the existing column is renamed with LeftSuffix and the
// incoming one with RightSuffix.
func CreateJoinView(db DB, name, left string, steps ...JoinStep) ([]string, error) {
	leftColumns, err := TableColumns(db, left)
	if err != nil {
		return nil, err
	}

	output := make([]outputColumn, 0, len(leftColumns))
	for _, c := range leftColumns {
		output = append(output, outputColumn{name: c, expr: "t0." + quote(c)})
	}

	var from strings.Builder
	fmt.Fprintf(&from, "%s AS t0", quote(left))

	for i, step := range steps {
		alias := fmt.Sprintf("t%d", i+1)

		leftExpr, ok := lookupColumn(output, step.LeftOn)
		if !ok {
			return nil, fmt.Errorf("join %s: column %s not found in %s", name, step.LeftOn, left)
		}

		rightColumns, err := TableColumns(db, step.Right)
		if err != nil {
			return nil, err
		}
		if !contains(rightColumns, step.RightOn) {
			return nil, fmt.Errorf("join %s: column %s not found in %s", name, step.RightOn, step.Right)
		}

		fmt.Fprintf(&from, "\n  %s %s AS %s ON %s = %s.%s",
			step.Kind, quote(step.Right), alias, leftExpr, alias, quote(step.RightOn))

		for _, c := range rightColumns {
			incoming := outputColumn{name: c, expr: alias + "." + quote(c)}
			if idx := indexOf(output, c); idx >= 0 {
				output[idx].name = c + LeftSuffix
				incoming.name = c + RightSuffix
			}
			output = append(output, incoming)
		}
	}

	selectList := make([]string, len(output))
	columns := make([]string, len(output))
	for i, c := range output {
		selectList[i] = fmt.Sprintf("%s AS %s", c.expr, quote(c.name))
		columns[i] = c.name
	}

	stmts := []string{
		fmt.Sprintf("DROP VIEW IF EXISTS %s", quote(name)),
		fmt.Sprintf("CREATE VIEW %s AS\nSELECT %s\nFROM %s",
			quote(name), strings.Join(selectList, ",\n  "), from.String()),
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("failed to create view %s: %w", name, err)
		}
	}

	logging.Logger().Debug("join view created", "view", name, "columns", len(columns), "steps", len(steps))
	return columns, nil
}

func lookupColumn(output []outputColumn, name string) (string, bool) {
	if idx := indexOf(output, name); idx >= 0 {
		return output[idx].expr, true
	}
	return "", false
}

func indexOf(output []outputColumn, name string) int {
	for i, c := range output {
		if c.name == name {
			return i
		}
	}
	return -1
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// quote double-quotes an identifier for SQLite
func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
