// Package chart renders persisted question answers as bar or pie charts
package chart

import (
	"fmt"
	"strings"

	"gonum.org/v1/plot"

	"route-manager/internal/logging"
	"route-manager/internal/models"
)

// Kind selects the chart drawn for an answer
type Kind string

const (
	Bar Kind = "bar"
	Pie Kind = "pie"
)

// ParseKind maps a --GRAPH_TYPE value to a chart kind.
// The second result is false when no chart should be drawn.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.TrimSpace(s)); k {
	case Bar, Pie:
		return k, true
	default:
		return "", false
	}
}

// Render reads the answer stored at csvPath and draws it to pdfPath
func Render(kind Kind, csvPath, pdfPath string, labels models.ChartLabels, cfg Config) error {
	rows, err := ReadResult(csvPath)
	if err != nil {
		return err
	}

	var p *plot.Plot
	switch kind {
	case Bar:
		p, err = barPlot(rows, labels, cfg)
	case Pie:
		p, err = piePlot(rows, labels, cfg)
	default:
		return fmt.Errorf("unknown chart kind %q", kind)
	}
	if err != nil {
		return fmt.Errorf("failed to build %s chart: %w", kind, err)
	}

	if err := p.Save(cfg.Width, cfg.Height, pdfPath); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", pdfPath, err)
	}

	logging.Logger().Debug("chart rendered", "kind", kind, "path", pdfPath, "rows", len(rows))
	return nil
}
