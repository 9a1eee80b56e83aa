// SPDX-License-Identifier: MIT

// Package analysis is the end-to-end driver: it reads the Coulomb-energy
// table, converts every row to a radius, fits R against ∛A and writes the
// optional plot and YAML report.
package analysis

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/nucrad/dataset"
	"github.com/katalvlaran/nucrad/fit"
	"github.com/katalvlaran/nucrad/measurement"
	"github.com/katalvlaran/nucrad/radius"
	"github.com/katalvlaran/nucrad/render"
)

// ErrNoDataset indicates a Config without DatasetPath.
var ErrNoDataset = errors.New("analysis: dataset path is required")

// Config drives one Run.
type Config struct {
	DatasetPath string
	PlotPath    string // optional; format from extension
	ReportPath  string // optional YAML report
	FitOptions  []fit.Option
	Plot        render.Options // zero value selects render.DefaultOptions
}

// Point is one row with its derived quantities.
type Point struct {
	dataset.Row
	CubeRootA float64                // A^(1/3)
	Radius    measurement.Asymmetric // fm
}

// Result is everything Run computed.
type Result struct {
	Points      []Point
	Fit         fit.LineFitResult // R[fm] = Slope·A^(1/3) + Intercept
	Correlation float64           // weighted Pearson r of (A^(1/3), R)
}

// Run executes the pipeline. Outputs are only written once every computation
// has succeeded; a failing row aborts the run with its line and element.
func Run(cfg Config, log *zap.Logger) (*Result, error) {
	if cfg.DatasetPath == "" {
		return nil, ErrNoDataset
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Plot == (render.Options{}) {
		cfg.Plot = render.DefaultOptions()
	}

	rows, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}
	log.Info("dataset loaded", zap.String("path", cfg.DatasetPath), zap.Int("rows", len(rows)))

	res, err := Analyze(rows, log, cfg.FitOptions...)
	if err != nil {
		return nil, err
	}

	if err = writeOutputs(cfg, res, log); err != nil {
		return nil, err
	}

	return res, nil
}

// Analyze runs the computational part of the pipeline on parsed rows.
func Analyze(rows []dataset.Row, log *zap.Logger, opts ...fit.Option) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}

	points := make([]Point, 0, len(rows))
	for _, row := range rows {
		p, err := toPoint(row)
		if err != nil {
			return nil, err
		}
		log.Debug("radius estimated",
			zap.String("element", row.Element),
			zap.Float64("cbrt_a", p.CubeRootA),
			zap.Float64("radius_fm", p.Radius.Value),
			zap.Float64("minus_fm", p.Radius.Minus),
			zap.Float64("plus_fm", p.Radius.Plus),
		)
		points = append(points, p)
	}

	samples := make([]fit.Sample, len(points))
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	ws := make([]float64, len(points))
	for i, p := range points {
		samples[i] = fit.Sample{X: p.CubeRootA, Y: p.Radius}
		xs[i], ys[i] = p.CubeRootA, p.Radius.Value
		sigma := p.Radius.Symmetrized()
		ws[i] = 1 / (sigma * sigma)
	}

	lf, err := fit.FitAsymmetricLine(samples, opts...)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	corr, err := fit.WeightedCorr(xs, ys, ws)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}

	log.Info("line fitted",
		zap.Stringer("method", lf.Method),
		zap.Float64("slope_fm", lf.Slope),
		zap.Float64("slope_stderr", lf.SlopeStdErr),
		zap.Float64("intercept_fm", lf.Intercept),
		zap.Float64("intercept_stderr", lf.InterceptStdErr),
		zap.Float64("r", corr),
		zap.Int("iterations", lf.Iterations),
	)

	return &Result{Points: points, Fit: lf, Correlation: corr}, nil
}

func toPoint(row dataset.Row) (Point, error) {
	r, err := radius.EstimateRadiusAsymmetric(row.Energy(), row.AtomicNumber)
	if err != nil {
		return Point{}, fmt.Errorf("analysis: line %d (%s): %w", row.Line, row.Element, err)
	}

	return Point{
		Row:       row,
		CubeRootA: math.Cbrt(row.MassNumber),
		Radius:    r.Scale(1 / radius.Femtometre),
	}, nil
}
