package chart

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"route-manager/internal/models"
)

// ReadResult reads a persisted subject,statistic file back in its original order
func ReadResult(path string) ([]models.ResultRow, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result file: %w", err)
	}

	// A header with no rows is a valid empty answer
	header := models.SubjectColumn + "," + models.StatisticColumn
	if string(bytes.TrimRight(content, "\r\n")) == header {
		return []models.ResultRow{}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(content),
		dataframe.WithTypes(map[string]series.Type{
			models.SubjectColumn:   series.String,
			models.StatisticColumn: series.Float,
		}),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, df.Err)
	}

	subjects := df.Col(models.SubjectColumn)
	if subjects.Err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, subjects.Err)
	}
	statistics := df.Col(models.StatisticColumn)
	if statistics.Err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, statistics.Err)
	}

	names := subjects.Records()
	values := statistics.Float()

	rows := make([]models.ResultRow, len(names))
	for i := range names {
		rows[i] = models.ResultRow{Subject: names[i], Statistic: values[i]}
	}
	return rows, nil
}
