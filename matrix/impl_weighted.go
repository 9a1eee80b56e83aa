// SPDX-License-Identifier: MIT
// Package matrix - weighted normal-equation kernels.
//
// Purpose:
//   - Assemble XᵀWX and XᵀWy for a diagonal W given as a weight vector, without
//     materializing W (n×n) or Xᵀ.
//   - Solve the resulting p×p system and expose (XᵀWX)⁻¹ as the parameter covariance.
//
// Determinism:
//   - Row-outer, column-inner accumulation; identical inputs give identical sums.

package matrix

import "fmt"

const (
	opWeightedGram   = "WeightedGram"
	opWeightedMoment = "WeightedMoment"
	opSolveNormal    = "SolveNormal"
)

// WeightedGram returns G = XᵀWX where W = diag(w).
//
// Implementation:
//   - Stage 1: validate X non-nil, len(w) == X.Rows(), every w finite and ≥ 0.
//   - Stage 2: for each row i accumulate w[i]·x_i x_iᵀ into the upper triangle, then mirror.
//
// Behavior highlights:
//   - The result is exactly symmetric by construction.
//   - Rows with zero weight contribute nothing and are skipped.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrNegativeWeight.
//
// Complexity:
//   - Time O(n*p²), Space O(p²).
func WeightedGram(X Matrix, w []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opWeightedGram, err)
	}
	n, p := X.Rows(), X.Cols()
	if err := ValidateWeights(w, n); err != nil {
		return nil, matrixErrorf(opWeightedGram, err)
	}
	xd, err := toDense(X)
	if err != nil {
		return nil, matrixErrorf(opWeightedGram, err)
	}
	G, err := NewDense(p, p)
	if err != nil {
		return nil, matrixErrorf(opWeightedGram, err)
	}

	var (
		i, j, k, base int
		wi, xij       float64
	)
	for i = 0; i < n; i++ {
		wi = w[i]
		if wi == 0 {
			continue
		}
		base = i * p
		for j = 0; j < p; j++ {
			xij = wi * xd.data[base+j]
			for k = j; k < p; k++ {
				G.data[j*p+k] += xij * xd.data[base+k]
			}
		}
	}
	for j = 0; j < p; j++ {
		for k = j + 1; k < p; k++ {
			G.data[k*p+j] = G.data[j*p+k]
		}
	}

	return G, nil
}

// WeightedMoment returns m = XᵀWy where W = diag(w).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrNegativeWeight.
//
// Complexity:
//   - Time O(n*p), Space O(p).
func WeightedMoment(X Matrix, w, y []float64) ([]float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opWeightedMoment, err)
	}
	n, p := X.Rows(), X.Cols()
	if err := ValidateWeights(w, n); err != nil {
		return nil, matrixErrorf(opWeightedMoment, err)
	}
	if err := ValidateVecLen(y, n); err != nil {
		return nil, matrixErrorf(opWeightedMoment, err)
	}
	xd, err := toDense(X)
	if err != nil {
		return nil, matrixErrorf(opWeightedMoment, err)
	}

	out := make([]float64, p)
	var (
		i, j, base int
		wy         float64
	)
	for i = 0; i < n; i++ {
		wy = w[i] * y[i]
		if wy == 0 {
			continue
		}
		base = i * p
		for j = 0; j < p; j++ {
			out[j] += xd.data[base+j] * wy
		}
	}

	return out, nil
}

// SolveNormal solves the weighted least-squares normal equations
// (XᵀWX) β = XᵀWy and returns β together with (XᵀWX)⁻¹.
//
// Implementation:
//   - Stage 1: G = WeightedGram(X, w); m = WeightedMoment(X, w, y).
//   - Stage 2: G⁻¹ via Inverse (LU); β = G⁻¹ m.
//
// Behavior highlights:
//   - With w = 1/σ², the returned inverse is the parameter covariance matrix.
//
// Errors:
//   - ErrSingular when the design is rank deficient (e.g. all x identical).
//   - Everything WeightedGram/WeightedMoment can return.
//
// Complexity:
//   - Time O(n*p² + p³), Space O(p²).
func SolveNormal(X Matrix, w, y []float64) ([]float64, *Dense, error) {
	G, err := WeightedGram(X, w)
	if err != nil {
		return nil, nil, matrixErrorf(opSolveNormal, err)
	}
	m, err := WeightedMoment(X, w, y)
	if err != nil {
		return nil, nil, matrixErrorf(opSolveNormal, err)
	}
	inv, err := Inverse(G)
	if err != nil {
		return nil, nil, matrixErrorf(opSolveNormal, err)
	}
	beta, err := MatVec(inv, m)
	if err != nil {
		return nil, nil, matrixErrorf(opSolveNormal, err)
	}
	cov, ok := inv.(*Dense)
	if !ok {
		return nil, nil, matrixErrorf(opSolveNormal, fmt.Errorf("unexpected %T", inv))
	}

	return beta, cov, nil
}
