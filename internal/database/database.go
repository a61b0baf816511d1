// Package database provides SQLite storage, joins and query execution for the route datasets
package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-sqlite3"

	"route-manager/internal/logging"
	"route-manager/internal/models"
	"route-manager/internal/parser"
)

// driverName is the go-sqlite3 driver registered with the to_numeric function
const driverName = "sqlite3_routes"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("to_numeric", toNumeric, true)
		},
	})
}

// toNumeric coerces a value to a number, returning NULL when it cannot be parsed
func toNumeric(v interface{}) interface{} {
	switch val := v.(type) {
	case int64:
		return float64(val)
	case float64:
		return val
	case string:
		return parseNumber(val)
	case []byte:
		return parseNumber(string(val))
	default:
		return nil
	}
}

func parseNumber(s string) interface{} {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return f
}

// DB interface defines database operations for easier testing and extensibility
type DB interface {
	Close() error
	Begin() (*sql.Tx, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// sqliteDB implements the DB interface for SQLite
type sqliteDB struct {
	*sql.DB
}

// Initialize opens a SQLite database at dbPath (":memory:" for a throwaway one).
// Returns a DB interface that can be used for all database operations.
func Initialize(dbPath string) (DB, error) {
	// Creates the file if it doesn't exist
	sqlDB, err := sql.Open(driverName, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps an in-memory database visible to every statement
	sqlDB.SetMaxOpenConns(1)

	db := &sqliteDB{sqlDB}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// CreateTable drops any previous table of the same name, creates it from schema
// and adds indexes on its key columns
func CreateTable(db DB, schema *parser.TableSchema) error {
	statements := []string{schema.GenerateDropTableSQL(), schema.GenerateCreateTableSQL()}
	statements = append(statements, schema.GenerateIndexSQL()...)

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table %s: %w", schema.Name, err)
		}
	}
	return nil
}

// InsertRows bulk inserts the rows of table into the table described by schema.
// Uses a transaction for better performance and data consistency.
func InsertRows(db DB, schema *parser.TableSchema, table *models.Table) (int64, error) {
	if len(table.Rows) == 0 {
		return 0, nil
	}
	if len(schema.Columns) != len(table.Columns) {
		return 0, fmt.Errorf("schema for %s has %d columns, table has %d", schema.Name, len(schema.Columns), len(table.Columns))
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(schema.GenerateInsertSQL())
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]interface{}, len(schema.Columns))
	var insertedCount int64
	for _, row := range table.Rows {
		for i := range args {
			args[i] = row[i]
		}
		if _, err := stmt.Exec(args...); err != nil {
			return 0, fmt.Errorf("failed to insert row %d: %w", insertedCount+1, err)
		}
		insertedCount++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit rows: %w", err)
	}

	logging.Logger().Debug("rows inserted", "table", schema.Name, "rows", insertedCount)
	return insertedCount, nil
}

// StoreTable derives a schema for table, creates it and loads every row
func StoreTable(db DB, table *models.Table) (int64, error) {
	schema, err := parser.DetectSchema(table)
	if err != nil {
		return 0, fmt.Errorf("failed to derive schema: %w", err)
	}
	if err := CreateTable(db, schema); err != nil {
		return 0, err
	}
	return InsertRows(db, schema, table)
}

// QueryResult holds the rows of a query along with the column order
type QueryResult struct {
	Columns []string
	Rows    []map[string]interface{}
}

// ExecuteQuery executes a SQL query and returns results as a slice of maps
// This generic approach allows for flexible query results without predefined structs
func ExecuteQuery(db DB, query string, args ...interface{}) (*QueryResult, error) {
	logging.Logger().Debug("executing query", "sql", query)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	// Get column names
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	result := &QueryResult{Columns: columns}

	// Process each row
	for rows.Next() {
		// Create a slice of interfaces to hold row values
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))

		for i := range values {
			valuePtrs[i] = &values[i]
		}

		// Scan row values
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		// Create map for this row
		row := make(map[string]interface{})
		for i, column := range columns {
			// Handle NULL values and convert byte slices to strings
			val := values[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[column] = val
		}

		result.Rows = append(result.Rows, row)
	}

	// Check for iteration errors
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}

	return result, nil
}
