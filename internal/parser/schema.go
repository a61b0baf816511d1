package parser

import (
	"fmt"
	"strings"

	"route-manager/internal/models"
)

// ColumnSchema represents the schema for a single column
type ColumnSchema struct {
	Name  string
	Index bool // Whether to create an index on this column
}

// TableSchema represents the complete schema for a table
type TableSchema struct {
	Name    string
	Columns []ColumnSchema
}

// DetectSchema derives the SQLite schema for a loaded table.
// Every column is stored as TEXT so values keep the exact form they had in the
// source; numeric coercion is left to the queries that need it.
func DetectSchema(table *models.Table) (*TableSchema, error) {
	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("no columns found in %s", table.Name)
	}

	schema := &TableSchema{
		Name:    sanitizeColumnName(table.Name),
		Columns: make([]ColumnSchema, len(table.Columns)),
	}

	seen := make(map[string]string, len(table.Columns))
	for i, column := range table.Columns {
		name := sanitizeColumnName(column)
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("columns %q and %q both map to %q", prev, column, name)
		}
		seen[name] = column

		schema.Columns[i] = ColumnSchema{
			Name:  name,
			Index: shouldIndex(name),
		}
	}

	return schema, nil
}

// sanitizeColumnName cleans up column names to be SQL-safe
func sanitizeColumnName(name string) string {
	name = strings.TrimSpace(name)

	// Replace spaces and special characters with underscores
	replacer := strings.NewReplacer(" ", "_", "-", "_", ".", "_", "/", "_", "\\", "_", "\"", "_")
	name = replacer.Replace(name)

	// Ensure it doesn't start with a number
	if len(name) > 0 && name[0] >= '0' && name[0] <= '9' {
		name = "col_" + name
	}

	// Ensure it's not empty
	if name == "" {
		name = "unnamed_column"
	}

	return name
}

// shouldIndex marks the foreign-key-like columns the join views match on
func shouldIndex(columnName string) bool {
	lower := strings.ToLower(columnName)
	return lower == "id" || strings.HasSuffix(lower, "_id")
}

// quoteIdent double-quotes an identifier for SQLite
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// GenerateDropTableSQL generates the statement removing any previous copy of the table
func (ts *TableSchema) GenerateDropTableSQL() string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(ts.Name))
}

// GenerateCreateTableSQL generates the SQL CREATE TABLE statement for the detected schema
func (ts *TableSchema) GenerateCreateTableSQL() string {
	columns := make([]string, 0, len(ts.Columns))
	for _, col := range ts.Columns {
		columns = append(columns, fmt.Sprintf("%s TEXT", quoteIdent(col.Name)))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n)",
		quoteIdent(ts.Name),
		strings.Join(columns, ",\n  "))
}

// GenerateIndexSQL generates the SQL statements to create indexes for marked columns
func (ts *TableSchema) GenerateIndexSQL() []string {
	var indexStatements []string

	for _, col := range ts.Columns {
		if col.Index {
			indexSQL := fmt.Sprintf(
				"CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
				quoteIdent("idx_"+ts.Name+"_"+col.Name), quoteIdent(ts.Name), quoteIdent(col.Name),
			)
			indexStatements = append(indexStatements, indexSQL)
		}
	}

	return indexStatements
}

// GenerateInsertSQL generates a parameterised INSERT covering every column in order
func (ts *TableSchema) GenerateInsertSQL() string {
	names := make([]string, len(ts.Columns))
	placeholders := make([]string, len(ts.Columns))
	for i, col := range ts.Columns {
		names[i] = quoteIdent(col.Name)
		placeholders[i] = "?"
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(ts.Name),
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "))
}
