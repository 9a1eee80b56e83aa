// SPDX-License-Identifier: MIT

package fit

import (
	"fmt"
)

// FitAsymmetricLine returns the maximum-likelihood line through samples under
// the split-normal noise model.
//
// Steps:
//  1. Validate; copy into canonical order so the result is independent of
//     the input permutation.
//  2. Weighted least squares with symmetrised sigmas as the starting point.
//  3. Derivative-free refinement of the NLL (Options.Method). The refined
//     point is kept only when its NLL is not above the start's.
//  4. Covariance (XᵀWX)⁻¹ with the sides frozen at the optimum.
//
// Errors: ErrTooFewSamples, ErrNaNInf, ErrNonPositiveSigma (with the sample
// index), ErrDegenerateX; matrix.ErrSingular if the normal matrix is
// numerically singular despite distinct x values.
func FitAsymmetricLine(samples []Sample, opts ...Option) (LineFitResult, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := validateSamples(samples); err != nil {
		return LineFitResult{}, fmt.Errorf("%s: %w", opFit, err)
	}
	ordered := canonical(samples)

	a0, b0, cov0, err := solveWLS(ordered, symmetrizedWeights(ordered))
	if err != nil {
		return LineFitResult{}, fmt.Errorf("%s: %w", opFit, err)
	}

	start := point{a: a0, b: b0}
	scale := point{a: stepScale(cov0[0][0], a0), b: stepScale(cov0[1][1], b0)}
	objective := func(p point) float64 { return NegLogLikelihood(ordered, p.a, p.b) }

	var (
		best  = start
		iters int
	)
	switch o.Method {
	case CoordinateSearch:
		best, iters = coordinateSearch(objective, start, scale, o.Tolerance, o.MaxIterations)
	case NelderMead:
		best, iters, err = nelderMead(objective, start, scale, o.Tolerance, o.MaxIterations)
		if err != nil {
			return LineFitResult{}, fmt.Errorf("%s: %w", opFit, err)
		}
	case None:
	default:
		return LineFitResult{}, fmt.Errorf("%s: %w", opFit, ErrUnknownMethod)
	}

	f0 := objective(start)
	fBest := objective(best)
	if !(fBest <= f0) {
		best, fBest = start, f0
	}

	cov, err := sidedCovariance(ordered, best.a, best.b)
	if err != nil {
		return LineFitResult{}, fmt.Errorf("%s: %w", opFit, err)
	}

	res := LineFitResult{
		Slope:      best.a,
		Intercept:  best.b,
		NLL:        fBest,
		Iterations: iters,
		Method:     o.Method,
	}
	res.setCovariance(cov)

	return res, nil
}
