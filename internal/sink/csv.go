// Package sink persists question answers as delimited text
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"route-manager/internal/models"
)

// CSVName returns the result file name for a question, e.g. "q1.csv"
func CSVName(question string) string {
	return question + ".csv"
}

// ChartName returns the chart file name for a question, e.g. "q1.pdf"
func ChartName(question string) string {
	return question + ".pdf"
}

// Write stores result as <dir>/<question>.csv with a subject,statistic header,
// replacing any existing file, and returns the path written.
func Write(dir string, result *models.Result) (string, error) {
	path := filepath.Join(dir, CSVName(result.Question))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{models.SubjectColumn, models.StatisticColumn}); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range result.Rows {
		if err := writer.Write([]string{row.Subject, row.FormatStatistic()}); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	return path, nil
}
