// SPDX-License-Identifier: MIT

package fit

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// sampleErrorf tags err with the index of the offending sample.
func sampleErrorf(i int, err error) error {
	return fmt.Errorf("sample %d: %w", i, err)
}

// validateSamples checks every sample and the design as a whole.
// Sample indices in errors refer to the caller's slice, not the ordered copy.
func validateSamples(samples []Sample) error {
	if len(samples) < 2 {
		return fmt.Errorf("got %d: %w", len(samples), ErrTooFewSamples)
	}
	for i, s := range samples {
		if !isFinite(s.X) || !isFinite(s.Y.Value) || !isFinite(s.Y.Minus) || !isFinite(s.Y.Plus) {
			return sampleErrorf(i, ErrNaNInf)
		}
		if s.Y.Minus <= 0 || s.Y.Plus <= 0 {
			return sampleErrorf(i, ErrNonPositiveSigma)
		}
	}
	xs := abscissae(samples)
	if floats.Min(xs) == floats.Max(xs) {
		return ErrDegenerateX
	}

	return nil
}

// canonical returns a copy of samples sorted by (x, y, σ⁻, σ⁺), so that
// every floating-point reduction runs in the same order for any permutation
// of the input.
func canonical(samples []Sample) []Sample {
	out := slices.Clone(samples)
	slices.SortStableFunc(out, func(p, q Sample) int {
		return cmp.Or(
			cmp.Compare(p.X, q.X),
			cmp.Compare(p.Y.Value, q.Y.Value),
			cmp.Compare(p.Y.Minus, q.Y.Minus),
			cmp.Compare(p.Y.Plus, q.Y.Plus),
		)
	})

	return out
}

func abscissae(samples []Sample) []float64 {
	xs := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.X
	}

	return xs
}

func ordinates(samples []Sample) []float64 {
	ys := make([]float64, len(samples))
	for i, s := range samples {
		ys[i] = s.Y.Value
	}

	return ys
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
