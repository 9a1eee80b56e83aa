// SPDX-License-Identifier: MIT

// Package fit estimates a straight line y = a·x + b from samples whose y values
// carry asymmetric (split-normal) uncertainties.
//
// Each residual r = y − (a·x + b) is scored against σ⁺ when r ≥ 0 and σ⁻
// otherwise, and the fitter minimises the negative log-likelihood
//
//	NLL(a, b) = ½ Σ [ (r_i/σ_i)² + ln(2π σ_i²) ].
//
// Pipeline:
//
//	– Validate and copy the samples into canonical order (x, y, σ⁻, σ⁺).
//	– Initial guess: weighted least squares with w_i = 1/σ̄_i², σ̄ = ½(σ⁻+σ⁺),
//	  solved on x centred at its weighted mean.
//	– Refine with a derivative-free minimiser (compass search or Nelder–Mead).
//	– Covariance: (XᵀWX)⁻¹ with W_ii = 1/σ_i² frozen at the optimum.
//
// The NLL is discontinuous in (a, b) whenever σ⁻ ≠ σ⁺, which is why the
// minimisers never use gradients. The covariance ignores that discontinuity;
// it is the linearised estimate around the chosen sides.
//
// Complexity:
//
//	– Time:  O(n log n) for ordering + O(n) per objective evaluation.
//	– Space: O(n) for the ordered copy.
//
// Options:
//
//	– WithMethod:        CoordinateSearch (default) or NelderMead.
//	– WithTolerance:     relative stopping step, in units of the WLS standard errors.
//	– WithMaxIterations: cap on minimiser iterations.
//
// Errors (sentinel):
//
//	– ErrTooFewSamples    fewer than two samples.
//	– ErrNaNInf           a non-finite x, y or sigma.
//	– ErrNonPositiveSigma a sigma side ≤ 0.
//	– ErrDegenerateX      every x identical (singular design).
//
// Example usage:
//
//	res, err := fit.FitAsymmetricLine(samples, fit.WithMethod(fit.NelderMead))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("a = %.3f ± %.3f\n", res.Slope, res.SlopeStdErr)
package fit

import (
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/nucrad/measurement"
)

// Sentinel errors returned by the fitter and WeightedCorr.
var (
	// ErrTooFewSamples indicates fewer than two samples (or an empty vector).
	ErrTooFewSamples = errors.New("fit: at least two samples are required")

	// ErrNaNInf indicates a NaN or ±Inf among x, y or the uncertainties.
	ErrNaNInf = errors.New("fit: NaN or Inf encountered")

	// ErrNonPositiveSigma indicates an uncertainty side that is zero or negative.
	ErrNonPositiveSigma = errors.New("fit: uncertainty must be positive")

	// ErrDegenerateX indicates that every sample shares the same x, so the
	// slope is not identifiable.
	ErrDegenerateX = errors.New("fit: singular input, all x values are identical")

	// ErrLengthMismatch indicates vectors of different lengths.
	ErrLengthMismatch = errors.New("fit: length mismatch")

	// ErrInvalidWeight indicates a negative or non-finite weight, or weights summing to zero.
	ErrInvalidWeight = errors.New("fit: weights must be finite and non-negative with a positive sum")

	// ErrZeroVariance indicates a weighted variance of zero in x or y.
	ErrZeroVariance = errors.New("fit: zero weighted variance")

	// ErrBadTolerance indicates a tolerance that is not a positive finite number.
	ErrBadTolerance = errors.New("fit: tolerance must be positive and finite")

	// ErrBadMaxIterations indicates a non-positive iteration cap.
	ErrBadMaxIterations = errors.New("fit: max iterations must be positive")

	// ErrUnknownMethod indicates a Method value outside the defined set.
	ErrUnknownMethod = errors.New("fit: unknown method")
)

// Sample is one observation: an exact abscissa X and a split-normal ordinate Y.
type Sample struct {
	X float64                // abscissa, taken as exact
	Y measurement.Asymmetric // ordinate with lower/upper scales
}

// LineFitResult is the outcome of a line fit.
//
// Covariance is symmetric; SlopeStdErr and InterceptStdErr are the square roots
// of its diagonal. Covariance[0] refers to the slope, Covariance[1] to the intercept.
type LineFitResult struct {
	Slope           float64       `yaml:"slope"`
	Intercept       float64       `yaml:"intercept"`
	SlopeStdErr     float64       `yaml:"slope_stderr"`
	InterceptStdErr float64       `yaml:"intercept_stderr"`
	Covariance      [2][2]float64 `yaml:"covariance"`
	NLL             float64       `yaml:"nll"`        // objective at the returned point
	Iterations      int           `yaml:"iterations"` // minimiser iterations spent
	Method          Method        `yaml:"method"`     // minimiser used for refinement
}

// Predict evaluates the fitted line at x.
func (r LineFitResult) Predict(x float64) float64 { return r.Slope*x + r.Intercept }

// Method selects the derivative-free minimiser used for refinement.
type Method int

const (
	// CoordinateSearch polls ± steps along each parameter axis, halving the
	// steps when no poll improves the objective.
	CoordinateSearch Method = iota

	// NelderMead runs the gonum Nelder–Mead simplex.
	NelderMead

	// None skips refinement; the result is the weighted least-squares solution
	// with the split-normal covariance.
	None
)

// String returns the method name used in logs, reports and config files.
func (m Method) String() string {
	switch m {
	case CoordinateSearch:
		return "coordinate"
	case NelderMead:
		return "nelder-mead"
	case None:
		return "none"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// MarshalYAML renders the method by name.
func (m Method) MarshalYAML() (interface{}, error) { return m.String(), nil }

// UnmarshalYAML reads a method name written by MarshalYAML.
func (m *Method) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseMethod(name)
	if err != nil {
		return err
	}
	*m = parsed

	return nil
}

// ParseMethod maps a method name back to its Method.
func ParseMethod(name string) (Method, error) {
	for _, m := range []Method{CoordinateSearch, NelderMead, None} {
		if m.String() == name {
			return m, nil
		}
	}

	return 0, fmt.Errorf("%q: %w", name, ErrUnknownMethod)
}

// Options configures FitAsymmetricLine.
//
//   - Method: refinement minimiser. Default CoordinateSearch.
//   - Tolerance: the search stops once every step is below Tolerance × the
//     WLS standard error of that parameter. Must be > 0. Default 1e-6.
//   - MaxIterations: cap on polls (compass) or major iterations (simplex).
//     Must be > 0. Default 10000.
type Options struct {
	Method        Method
	Tolerance     float64
	MaxIterations int
}

// Option represents a functional option for configuring the fitter.
type Option func(*Options)

// DefaultOptions returns the defaults used when no Option is passed.
func DefaultOptions() Options {
	return Options{
		Method:        CoordinateSearch,
		Tolerance:     1e-6,
		MaxIterations: 10000,
	}
}

// WithMethod selects the refinement minimiser. Unknown values panic.
func WithMethod(m Method) Option {
	return func(o *Options) {
		if m < CoordinateSearch || m > None {
			panic(ErrUnknownMethod.Error())
		}
		o.Method = m
	}
}

// WithTolerance sets the relative stopping step. Must be positive and finite.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol <= 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
			panic(ErrBadTolerance.Error())
		}
		o.Tolerance = tol
	}
}

// WithMaxIterations caps minimiser iterations. Must be positive.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			panic(ErrBadMaxIterations.Error())
		}
		o.MaxIterations = n
	}
}
