// SPDX-License-Identifier: MIT

package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const opCorr = "WeightedCorr"

// WeightedCorr returns the weighted Pearson correlation of x and y:
//
//	cov_w(x, y) / √(var_w(x) · var_w(y))
//
// using gonum's stat.Correlation. The result is clamped to [−1, 1].
//
// Errors:
//   - ErrLengthMismatch when the three slices differ in length.
//   - ErrTooFewSamples for empty input.
//   - ErrNaNInf for a non-finite x or y.
//   - ErrInvalidWeight for a negative or non-finite weight, or a zero weight sum.
//   - ErrZeroVariance when x or y is constant over the positively weighted
//     entries; the correlation is undefined there and no NaN is returned.
func WeightedCorr(x, y, w []float64) (float64, error) {
	if len(x) != len(y) || len(x) != len(w) {
		return 0, fmt.Errorf("%s: len(x)=%d len(y)=%d len(w)=%d: %w", opCorr, len(x), len(y), len(w), ErrLengthMismatch)
	}
	if len(x) == 0 {
		return 0, fmt.Errorf("%s: %w", opCorr, ErrTooFewSamples)
	}
	for i := range x {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			return 0, fmt.Errorf("%s: index %d: %w", opCorr, i, ErrNaNInf)
		}
		if !isFinite(w[i]) || w[i] < 0 {
			return 0, fmt.Errorf("%s: index %d: %w", opCorr, i, ErrInvalidWeight)
		}
	}
	if floats.Sum(w) <= 0 {
		return 0, fmt.Errorf("%s: %w", opCorr, ErrInvalidWeight)
	}
	if constantOverWeights(x, w) || constantOverWeights(y, w) {
		return 0, fmt.Errorf("%s: %w", opCorr, ErrZeroVariance)
	}

	r := stat.Correlation(x, y, w)

	return math.Max(-1, math.Min(1, r)), nil
}

// constantOverWeights reports whether every positively weighted v_i is equal.
// Checked exactly rather than through a computed variance, which roundoff
// can leave slightly above zero.
func constantOverWeights(v, w []float64) bool {
	first := true
	var ref float64
	for i := range v {
		if w[i] == 0 {
			continue
		}
		if first {
			ref, first = v[i], false
			continue
		}
		if v[i] != ref {
			return false
		}
	}

	return true
}
