// SPDX-License-Identifier: MIT

// Package render draws the radius-versus-∛A diagnostic plot: measured points
// with asymmetric error bars and the fitted line as a dashed overlay.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/katalvlaran/nucrad/measurement"
)

var (
	// ErrEmptySeries indicates a series without points.
	ErrEmptySeries = errors.New("render: empty series")

	// ErrLengthMismatch indicates X and Y of different lengths.
	ErrLengthMismatch = errors.New("render: X and Y lengths differ")

	// ErrBadSize indicates a non-positive canvas dimension.
	ErrBadSize = errors.New("render: width and height must be positive")
)

// Series is the measured data: exact abscissae and split-normal ordinates.
type Series struct {
	Label string
	X     []float64
	Y     []measurement.Asymmetric
}

// Line is the fitted trend y = Slope·x + Intercept.
type Line struct {
	Label     string
	Slope     float64
	Intercept float64
}

// Options controls labels and canvas size (inches).
type Options struct {
	Title  string  `yaml:"title"`
	XLabel string  `yaml:"x_label"`
	YLabel string  `yaml:"y_label"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DefaultOptions returns the labels of the radius plot on a 6×4 inch canvas.
func DefaultOptions() Options {
	return Options{
		Title:  "Nuclear radius vs cube root of mass number",
		XLabel: "A^(1/3)",
		YLabel: "R (fm)",
		Width:  6,
		Height: 4,
	}
}

// errPoints pairs coordinates with per-point low/high error magnitudes so a
// single value satisfies plotter.YErrorBars.
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Render writes the plot to path; the image format (png, svg, pdf, ...) is
// taken from the file extension.
func Render(path string, s Series, l Line, opts Options) error {
	if len(s.X) == 0 {
		return ErrEmptySeries
	}
	if len(s.X) != len(s.Y) {
		return fmt.Errorf("%d vs %d: %w", len(s.X), len(s.Y), ErrLengthMismatch)
	}
	if !(opts.Width > 0) || !(opts.Height > 0) {
		return ErrBadSize
	}

	pts := errPoints{
		XYs:     make(plotter.XYs, len(s.X)),
		YErrors: make(plotter.YErrors, len(s.X)),
	}
	xmin, xmax := math.Inf(1), math.Inf(-1)
	for i := range s.X {
		pts.XYs[i].X, pts.XYs[i].Y = s.X[i], s.Y[i].Value
		pts.YErrors[i].Low, pts.YErrors[i].High = s.Y[i].Minus, s.Y[i].Plus
		xmin, xmax = math.Min(xmin, s.X[i]), math.Max(xmax, s.X[i])
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("render: scatter: %w", err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Color = color.Black

	bars, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return fmt.Errorf("render: error bars: %w", err)
	}
	bars.LineStyle.Color = color.Black

	trend := plotter.NewFunction(func(x float64) float64 { return l.Slope*x + l.Intercept })
	trend.XMin, trend.XMax = xmin, xmax
	trend.Color = color.Gray{Y: 0x80}
	trend.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	trend.Width = vg.Points(1.5)

	p.Add(bars, scatter, trend)
	if s.Label != "" {
		p.Legend.Add(s.Label, scatter)
	}
	if l.Label != "" {
		p.Legend.Add(l.Label, trend)
	}
	p.Legend.Top = true

	if err = p.Save(vg.Length(opts.Width)*vg.Inch, vg.Length(opts.Height)*vg.Inch, path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}

	return nil
}
