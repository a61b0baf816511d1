package chart

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"route-manager/internal/models"
)

// barPlot draws one bar per subject with vertical category labels
func barPlot(rows []models.ResultRow, labels models.ChartLabels, cfg Config) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = labels.Title
	p.X.Label.Text = labels.XAxis
	p.Y.Label.Text = labels.YAxis

	if len(rows) == 0 {
		return p, nil
	}

	values := make(plotter.Values, len(rows))
	names := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row.Statistic
		names[i] = row.Subject
	}

	bars, err := plotter.NewBarChart(values, cfg.BarWidth)
	if err != nil {
		return nil, err
	}
	bars.Color = cfg.BarColor
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(names...)

	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	return p, nil
}
