// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Single source of truth for shape/nil/symmetry/weight checks.
//   - Kernels stay minimal by delegating guards here and wrapping the result with their op tag.
//
// Determinism & Performance:
//   - All checks are pure and allocate nothing.
//   - Symmetry check runs O(n²) on the upper triangle only.
//
// Hints:
//   - Use ValidateSymmetric on a Gram matrix before trusting it as a covariance.
//   - Use ValidateWeights before any weighted reduction so negative weights fail fast.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols). Assumes m is not nil.
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures the vector is non-nil and has exactly n entries.
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols == b.Rows with both inputs non-nil.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateWeights checks a diagonal weight vector of length n:
// every entry finite and ≥ 0.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrNegativeWeight
// (the last two wrapped with the offending index).
// Complexity: O(n).
func ValidateWeights(w []float64, n int) error {
	if err := ValidateVecLen(w, n); err != nil {
		return validatorErrorf("ValidateWeights", err)
	}
	for i, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf("ValidateWeights", fmt.Errorf("w[%d]: %w", i, ErrNaNInf))
		}
		if v < 0 {
			return validatorErrorf("ValidateWeights", fmt.Errorf("w[%d]: %w", i, ErrNegativeWeight))
		}
	}

	return nil
}

// ValidateSymmetric checks |A[i,j] - A[j,i]| ≤ tol for all i<j.
//
// Errors: ErrNilMatrix/ErrDimensionMismatch on structure, ErrNaNInf on a
// non-finite tol, ErrAsymmetry on violation. A negative tol is taken by magnitude.
// Complexity: O(n²).
func ValidateSymmetric(m Matrix, tol float64) error {
	if m == nil {
		return validatorErrorf("ValidateSymmetric", ErrNilMatrix)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSymmetric", ErrDimensionMismatch)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	n := m.Rows()
	var (
		i, j     int
		aij, aji float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij, _ = m.At(i, j)
			aji, _ = m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
			}
		}
	}

	return nil
}
