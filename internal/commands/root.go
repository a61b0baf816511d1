// Package commands implements the CLI commands for the route manager
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"route-manager/internal/analysis"
	"route-manager/internal/chart"
	"route-manager/internal/config"
	"route-manager/internal/database"
	"route-manager/internal/logging"
	"route-manager/internal/models"
	"route-manager/internal/sink"
)

// sourceFlags are the dataset paths shared by the root and load commands
type sourceFlags struct {
	airlines string
	airports string
	routes   string
}

// answerOptions collects everything a question run needs
type answerOptions struct {
	sources   analysis.Sources
	question  string
	graphType string
	limit     int
	outputDir string
}

// NewRootCommand creates the route-manager command.
// Usage: route-manager --AIRLINES=a.yaml --AIRPORTS=b.yaml --ROUTES=c.yaml --QUESTION=q1 [--GRAPH_TYPE=bar]
func NewRootCommand() *cobra.Command {
	var sources sourceFlags
	var question, graphType string
	var limit int
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "route-manager",
		Short: "Answer fixed questions about airline routes",
		Long: `Route Manager joins airline, airport and route datasets and answers five fixed questions.

  q1  Top 20 airlines with routes into Canada
  q2  Top 30 countries that appear least often as a destination
  q3  Top 10 destination airports
  q4  Top 15 destination cities
  q5  Top 10 unique Canadian routes by altitude difference

Each answer is written to q<N>.csv with the columns subject,statistic. With
--GRAPH_TYPE=bar or --GRAPH_TYPE=pie a chart is also written to q<N>.pdf.
An unknown --QUESTION does nothing.

Dataset paths and the graph type may also come from the AIRLINES, AIRPORTS,
ROUTES and GRAPH_TYPE environment variables or a .env file.

Example:
  route-manager --AIRLINES="airlines.yaml" --AIRPORTS="airports.yaml" --ROUTES="routes.yaml" --QUESTION="q1" --GRAPH_TYPE="bar"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(os.Stderr, logging.Level(verbose))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := analysis.Lookup(stripQuotes(question)); !ok {
				logging.Logger().Debug("no such question, nothing to do", "question", question)
				return nil
			}

			settings, err := config.Load(config.DefaultEnvFile)
			if err != nil {
				return err
			}

			opts := answerOptions{
				sources:   sources.withDefaults(settings),
				question:  stripQuotes(question),
				graphType: stripQuotes(firstNonEmpty(graphType, settings.GraphType)),
				limit:     limit,
				outputDir: settings.OutputDir,
			}
			return runAnswerCommand(cmd.OutOrStdout(), opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&sources.airlines, "AIRLINES", "", "Path to the airlines records file")
	flags.StringVar(&sources.airports, "AIRPORTS", "", "Path to the airports records file")
	flags.StringVar(&sources.routes, "ROUTES", "", "Path to the routes records file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().StringVar(&question, "QUESTION", "", "Question to answer (q1, q2, q3, q4 or q5)")
	rootCmd.Flags().StringVar(&graphType, "GRAPH_TYPE", "", "Chart to draw (bar or pie); omit for no chart")
	rootCmd.Flags().IntVar(&limit, "N", 0, "Override the number of rows kept (default depends on the question)")

	rootCmd.AddCommand(NewLoadCommand(&sources))
	rootCmd.AddCommand(NewQueryCommand())

	return rootCmd
}

// withDefaults fills empty paths from the environment and strips quotes
func (s sourceFlags) withDefaults(settings config.Settings) analysis.Sources {
	return analysis.Sources{
		Airlines: stripQuotes(firstNonEmpty(s.airlines, settings.Airlines)),
		Airports: stripQuotes(firstNonEmpty(s.airports, settings.Airports)),
		Routes:   stripQuotes(firstNonEmpty(s.routes, settings.Routes)),
	}
}

// runAnswerCommand answers one question, persists it and optionally charts it
func runAnswerCommand(out io.Writer, opts answerOptions) error {
	q, ok := analysis.Lookup(opts.question)
	if !ok {
		logging.Logger().Debug("no such question, nothing to do", "question", opts.question)
		return nil
	}
	log := logging.WithQuestion(q.Name)

	if err := validateSources(opts.sources, q); err != nil {
		return err
	}

	db, err := database.Initialize(config.MemoryDatabase)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	result, err := analysis.Answer(db, opts.sources, q, opts.limit)
	if err != nil {
		return err
	}

	csvPath, err := sink.Write(opts.outputDir, result)
	if err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	log.Debug("result written", "path", csvPath, "rows", len(result.Rows))

	fmt.Fprintf(out, "%s\n", q.Labels.Title)
	displayResult(out, result)

	success := color.New(color.FgGreen)
	success.Fprintf(out, "Wrote %s\n", csvPath)

	kind, ok := chart.ParseKind(opts.graphType)
	if !ok {
		return nil
	}

	pdfPath := filepath.Join(opts.outputDir, sink.ChartName(q.Name))
	if err := chart.Render(kind, csvPath, pdfPath, q.Labels, chart.DefaultConfig()); err != nil {
		return err
	}
	success.Fprintf(out, "Wrote %s (%s chart)\n", pdfPath, kind)

	return nil
}

// validateSources checks that every path the question reads was given
func validateSources(src analysis.Sources, q analysis.Question) error {
	var missing []string
	if q.NeedsAirlines() && src.Airlines == "" {
		missing = append(missing, "--AIRLINES")
	}
	if src.Airports == "" {
		missing = append(missing, "--AIRPORTS")
	}
	if src.Routes == "" {
		missing = append(missing, "--ROUTES")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s requires %s", q.Name, strings.Join(missing, ", "))
	}
	return nil
}

// displayResult prints the answer as a table
func displayResult(out io.Writer, result *models.Result) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"#", models.SubjectColumn, models.StatisticColumn})
	table.SetAutoWrapText(false)

	for i, row := range result.Rows {
		table.Append([]string{strconv.Itoa(i + 1), row.Subject, row.FormatStatistic()})
	}
	table.Render()
}

// stripQuotes removes surrounding double quotes left by some shells
func stripQuotes(s string) string {
	return strings.Trim(s, `"`)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
