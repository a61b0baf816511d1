package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"route-manager/internal/config"
	"route-manager/internal/database"
)

// NewQueryCommand creates the 'query' subcommand for executing SQL queries
// Usage: route-manager query [--db routes.db] [--sql "SELECT * FROM route_details"]
func NewQueryCommand() *cobra.Command {
	var dbFile string
	var sqlQuery string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Execute SQL queries against a loaded route database",
		Long: `Execute SQL queries against a SQLite database created by the load command.

You can either provide a query directly via the --sql flag or enter interactive mode
to execute multiple queries.

SECURITY: Only read-only queries are allowed. Write operations (INSERT, UPDATE, DELETE,
CREATE, DROP, etc.) are blocked for data protection.

Tables: airlines, airports, routes
Views:  route_details, altitude_routes

Common example queries:
  # Routes flown by each airline
  SELECT airline_name, COUNT(*) AS routes FROM route_details GROUP BY airline_name ORDER BY routes DESC;

  # Canadian routes with both altitudes
  SELECT airport_icao_unique_code_y, airport_icao_unique_code_x,
         to_numeric(airport_altitude_y), to_numeric(airport_altitude_x)
  FROM altitude_routes
  WHERE airport_country_x = 'Canada' AND airport_country_y = 'Canada';

Interactive mode:
  route-manager query --db routes.db

Direct query:
  route-manager query --db routes.db --sql "SELECT COUNT(*) FROM routes"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryCommand(cmd.OutOrStdout(), cmd.InOrStdin(), dbFile, sqlQuery)
		},
	}

	// Define command flags
	cmd.Flags().StringVarP(&dbFile, "db", "d", config.DefaultDatabaseFile, config.DatabaseFileDescription)
	cmd.Flags().StringVarP(&sqlQuery, "sql", "s", "", "SQL query to execute (if not provided, enters interactive mode)")

	return cmd
}

// runQueryCommand executes the query logic
func runQueryCommand(out io.Writer, in io.Reader, dbFile, sqlQuery string) error {
	// Validate database file exists
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		return fmt.Errorf("database file does not exist: %s\nPlease run 'load' command first", dbFile)
	}

	// Initialize database connection
	db, err := database.Initialize(dbFile)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Execute single query or enter interactive mode
	if sqlQuery != "" {
		return executeSingleQuery(out, db, sqlQuery)
	}

	return enterInteractiveMode(out, in, db, dbFile)
}

// executeSingleQuery runs a single SQL query and displays results
func executeSingleQuery(out io.Writer, db database.DB, query string) error {
	fmt.Fprintf(out, "Executing query: %s\n\n", query)

	// Validate that query is read-only
	if err := ValidateReadOnlyQuery(query); err != nil {
		return fmt.Errorf("query validation failed: %w", err)
	}

	result, err := database.ExecuteQuery(db, query)
	if err != nil {
		return err
	}

	displayResults(out, result)
	return nil
}

// enterInteractiveMode provides an interactive SQL query interface
func enterInteractiveMode(out io.Writer, in io.Reader, db database.DB, dbFile string) error {
	fmt.Fprintf(out, "Connected to database: %s\n", dbFile)
	fmt.Fprintln(out, "Interactive SQL query mode. Type 'exit' or 'quit' to exit.")
	fmt.Fprintln(out, "SECURITY: Only read-only queries (SELECT, WITH, EXPLAIN) are allowed.")
	fmt.Fprintln(out, "Example queries:")
	fmt.Fprintln(out, "  SELECT COUNT(*) FROM routes;")
	fmt.Fprintln(out, "  SELECT airport_country, COUNT(*) FROM route_details GROUP BY airport_country;")
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "sql> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())

		// Handle exit commands
		if input == "exit" || input == "quit" {
			fmt.Fprintln(out, "Goodbye!")
			break
		}

		// Skip empty input
		if input == "" {
			continue
		}

		// Validate that query is read-only
		if err := ValidateReadOnlyQuery(input); err != nil {
			fmt.Fprintf(out, "Error: %v\n\n", err)
			continue
		}

		result, err := database.ExecuteQuery(db, input)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n\n", err)
			continue
		}

		displayResults(out, result)
		fmt.Fprintln(out)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}

// displayResults formats and prints query results in column order
func displayResults(out io.Writer, result *database.QueryResult) {
	if len(result.Rows) == 0 {
		fmt.Fprintln(out, "No results found.")
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader(result.Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, row := range result.Rows {
		cells := make([]string, len(result.Columns))
		for i, column := range result.Columns {
			if v := row[column]; v != nil {
				cells[i] = fmt.Sprint(v)
			} else {
				cells[i] = "NULL"
			}
		}
		table.Append(cells)
	}
	table.Render()

	fmt.Fprintf(out, "\n(%d rows)\n", len(result.Rows))
}

var (
	lineCommentRegex  = regexp.MustCompile(`--.*`)
	blockCommentRegex = regexp.MustCompile(`(?s)/\*.*?\*/`)

	// Define allowed read-only operations
	allowedPrefixes = []string{
		"select",  // SELECT queries
		"with",    // Common Table Expressions (CTEs)
		"explain", // Query execution plans
	}

	// Read-only PRAGMA statements
	allowedPragmas = []string{
		"pragma table_info(",
		"pragma table_xinfo(",
		"pragma index_list(",
		"pragma index_info(",
		"pragma foreign_key_list(",
		"pragma schema_version",
		"pragma user_version",
		"pragma database_list",
		"pragma compile_options",
	}

	// Keywords that indicate write operations, matched as whole words
	forbiddenKeywords = compileKeywords(
		"insert", "update", "delete", "drop", "create", "alter",
		"truncate", "replace", "merge", "upsert",
		"attach", "detach", "vacuum", "reindex",
		"begin", "commit", "rollback", "savepoint",
	)
)

type keyword struct {
	word  string
	regex *regexp.Regexp
}

func compileKeywords(words ...string) []keyword {
	keywords := make([]keyword, len(words))
	for i, w := range words {
		keywords[i] = keyword{word: w, regex: regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)}
	}
	return keywords
}

// ValidateReadOnlyQuery ensures the SQL query is read-only and safe to execute
// Prevents data modification, schema changes, and other potentially harmful operations
func ValidateReadOnlyQuery(query string) error {
	// Normalize query: trim whitespace and convert to lowercase
	normalizedQuery := strings.TrimSpace(strings.ToLower(query))

	// Remove comments
	normalizedQuery = lineCommentRegex.ReplaceAllString(normalizedQuery, "")
	normalizedQuery = blockCommentRegex.ReplaceAllString(normalizedQuery, "")
	normalizedQuery = strings.TrimSpace(normalizedQuery)

	if normalizedQuery == "" {
		return fmt.Errorf("empty query")
	}

	// Check if query starts with an allowed operation
	queryStartsWithAllowed := false
	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(normalizedQuery, prefix) {
			queryStartsWithAllowed = true
			break
		}
	}

	if strings.HasPrefix(normalizedQuery, "pragma") {
		pragmaAllowed := false
		for _, allowedPragma := range allowedPragmas {
			if strings.HasPrefix(normalizedQuery, allowedPragma) {
				pragmaAllowed = true
				break
			}
		}

		if !pragmaAllowed {
			return fmt.Errorf("PRAGMA statement not allowed. Only read-only PRAGMA statements are permitted")
		}
		queryStartsWithAllowed = true
	}

	if !queryStartsWithAllowed {
		return fmt.Errorf("only read-only queries are allowed (SELECT, WITH, EXPLAIN, and read-only PRAGMA)")
	}

	// Check for forbidden keywords anywhere in the query, subqueries included
	for _, kw := range forbiddenKeywords {
		if kw.regex.MatchString(normalizedQuery) {
			return fmt.Errorf("forbidden keyword '%s' detected. Only read-only operations are allowed", strings.ToUpper(kw.word))
		}
	}

	// Allow one statement + empty string after final semicolon
	statements := strings.Split(normalizedQuery, ";")
	if len(statements) > 2 {
		return fmt.Errorf("multiple statements not allowed. Please execute one query at a time")
	}

	return nil
}
