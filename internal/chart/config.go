package chart

import (
	"image/color"

	"gonum.org/v1/plot/vg"
)

// Config holds the drawing settings shared by both chart kinds.
// It is passed explicitly to Render; nothing is kept in package state.
type Config struct {
	Width  vg.Length
	Height vg.Length

	BarWidth vg.Length
	BarColor color.Color

	// PieFontSize is reduced so many slice labels fit
	PieFontSize vg.Length
}

// navy is the bar colour
var navy = color.RGBA{R: 0x00, G: 0x00, B: 0x80, A: 0xff}

// DefaultConfig returns a 6.4x4.8 inch page with navy bars and 5pt pie labels
func DefaultConfig() Config {
	return Config{
		Width:       6.4 * vg.Inch,
		Height:      4.8 * vg.Inch,
		BarWidth:    vg.Points(8),
		BarColor:    navy,
		PieFontSize: vg.Points(5),
	}
}
