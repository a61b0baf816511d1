package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"route-manager/internal/models"
)

// pieChart is a plot.Plotter drawing one wedge per row, proportional to its
// statistic, with the subject outside the wedge and its percentage inside.
type pieChart struct {
	rows      []models.ResultRow
	textStyle text.Style
}

// piePlot builds a plot holding a single pie and no axes
func piePlot(rows []models.ResultRow, labels models.ChartLabels, cfg Config) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = labels.Title
	p.Title.TextStyle.Font.Size = cfg.PieFontSize * 1.2
	p.HideAxes()

	sty := p.Title.TextStyle
	sty.Font.Size = cfg.PieFontSize
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YCenter

	p.Add(&pieChart{rows: rows, textStyle: sty})
	return p, nil
}

// Plot implements the plot.Plotter interface
func (pc *pieChart) Plot(c draw.Canvas, _ *plot.Plot) {
	var total float64
	for _, row := range pc.rows {
		total += row.Statistic
	}
	if total <= 0 {
		return
	}

	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	radius := vg.Length(math.Min(float64(c.Max.X-c.Min.X), float64(c.Max.Y-c.Min.Y))) * 0.35

	start := 0.0
	for i, row := range pc.rows {
		sweep := 2 * math.Pi * row.Statistic / total

		var wedge vg.Path
		wedge.Move(center)
		wedge.Arc(center, radius, start, sweep)
		wedge.Close()

		c.SetColor(sliceColor(i))
		c.Fill(wedge)

		mid := start + sweep/2
		c.FillText(pc.textStyle, polar(center, radius*1.15, mid), row.Subject)
		c.FillText(pc.textStyle, polar(center, radius*0.6, mid), fmt.Sprintf("%1.1f%%", 100*row.Statistic/total))

		start += sweep
	}
}

func polar(center vg.Point, r vg.Length, angle float64) vg.Point {
	return vg.Point{
		X: center.X + r*vg.Length(math.Cos(angle)),
		Y: center.Y + r*vg.Length(math.Sin(angle)),
	}
}

func sliceColor(i int) color.Color {
	return plotutil.Color(i)
}
