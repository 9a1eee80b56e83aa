// SPDX-License-Identifier: MIT
// Package matrix - linear-algebra kernels used by the normal-equation solver.
//
// Purpose:
//   - Mul, Transpose and MatVec for assembling XᵀWX and XᵀWy by hand when needed.
//   - LU (Doolittle, no pivoting) and Inverse for the small symmetric systems of a line fit.
//
// Notes:
//   - Every kernel validates through validators.go and wraps sentinels via matrixErrorf.
//   - *Dense operands take a flat-slice fast path; other Matrix values go through At/Set.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial value of every accumulator in this file.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in LU/Inverse routines.
const ZeroPivot = 0.0

// PivotTolerance is the relative pivot threshold of LU: a pivot whose
// magnitude is at most PivotTolerance × the largest |entry| of its row in A
// is treated as zero.
const PivotTolerance = 1e-12

// Operation name constants for unified error wrapping.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opMatVec    = "MatVec"
	opLU        = "LU"
	opInverse   = "Inverse"
	opToDense   = "toDense"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
//
// Implementation:
//   - Stage 1: fmt.Errorf("%s: %w", tag, err) so errors.Is/As keep working.
//
// Notes:
//   - Callers gate on err != nil; wrapping nil produces a non-nil error around a nil cause.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// toDense returns m itself when it is already *Dense, otherwise a Dense copy.
// Lets factorization kernels keep a single flat-slice implementation.
func toDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	rows, cols := m.Rows(), m.Cols()
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opToDense, err)
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opToDense, err)
			}
			if err = out.Set(i, j, v); err != nil {
				return nil, matrixErrorf(opToDense, err)
			}
		}
	}

	return out, nil
}

// Mul returns C = A × B as a new *Dense. Operands that are not *Dense are
// materialized first; zero entries of A are skipped.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	n, c := da.c, db.c
	for i := 0; i < da.r; i++ {
		out := res.data[i*c : (i+1)*c]
		for k, av := range da.data[i*n : (i+1)*n] {
			if av == 0 {
				continue
			}
			for j, bv := range db.data[k*c : (k+1)*c] {
				out[j] += av * bv
			}
		}
	}

	return res, nil
}

// Transpose returns mᵀ as a new *Dense; m is never mutated.
// Complexity: Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(d.c, d.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	for idx, v := range d.data {
		i, j := idx/d.c, idx%d.c
		res.data[j*d.r+i] = v
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	var (
		i, j int
		acc  float64
	)
	if d, ok := m.(*Dense); ok {
		var base int
		for i = 0; i < rows; i++ {
			acc, base = ZeroSum, i*cols
			for j = 0; j < cols; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}

		return y, nil
	}

	var (
		v   float64
		err error
	)
	for i = 0; i < rows; i++ {
		acc = ZeroSum
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			acc += v * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// LU computes the Doolittle factorization A = L*U with unit diagonal on L (no pivoting).
//
// Implementation:
//   - Stage 1: validate (non-nil, square); materialize A as *Dense.
//   - Stage 2: for i=0..n-1 build row i of U, guard the pivot, then column i of L.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//   - ErrSingular when |U[i,i]| ≤ PivotTolerance·max_j |A[i,j]|, which also
//     catches matrices that are singular up to roundoff.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// Notes:
//   - No pivoting: results are bit-for-bit reproducible. The Gram matrices this
//     package factors are symmetric positive definite, for which Doolittle without
//     pivoting is stable.
func LU(m Matrix) (Matrix, Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	a, err := toDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	n := a.r
	L, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	U, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	var (
		i, j, k int
		sum     float64
		pivot   float64
	)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += L.data[i*n+k] * U.data[k*n+j]
			}
			U.data[i*n+j] = a.data[i*n+j] - sum
		}

		pivot = U.data[i*n+i]
		if math.Abs(pivot) <= PivotTolerance*rowMaxAbs(a.data[i*n:(i+1)*n]) {
			return nil, nil, matrixErrorf(opLU, fmt.Errorf("pivot %d = %g: %w", i, pivot, ErrSingular))
		}

		for j = i + 1; j < n; j++ {
			sum = ZeroSum
			for k = 0; k < i; k++ {
				sum += L.data[j*n+k] * U.data[k*n+i]
			}
			L.data[j*n+i] = (a.data[j*n+i] - sum) / pivot
		}
	}

	return L, U, nil
}

// Inverse computes A^{-1} through LU and n pairs of triangular solves.
//
// Implementation:
//   - Stage 1: validate; factor A = L*U.
//   - Stage 2: for each unit vector e_col solve L*y = e_col, then U*x = y; x is column col.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// Hints:
//   - Forming the inverse is what a covariance matrix needs; for a single right-hand
//     side prefer SolveNormal.
func Inverse(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	Lm, Um, err := LU(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	L, U := Lm.(*Dense), Um.(*Dense)

	n := m.Rows()
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var (
		col, i int
		rhs    = make([]float64, n)
		x      []float64
	)
	for col = 0; col < n; col++ {
		for i = 0; i < n; i++ {
			rhs[i] = 0
		}
		rhs[col] = 1
		if x, err = luSolve(L, U, rhs); err != nil {
			return nil, matrixErrorf(opInverse, err)
		}
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}

// luSolve solves (L*U) x = b by forward then backward substitution.
// L is unit lower triangular, U upper triangular; both n×n Dense.
func luSolve(L, U *Dense, b []float64) ([]float64, error) {
	n := L.r
	y := make([]float64, n)
	x := make([]float64, n)

	var (
		i, k  int
		sum   float64
		pivot float64
	)
	for i = 0; i < n; i++ {
		sum = ZeroSum
		for k = 0; k < i; k++ {
			sum += L.data[i*n+k] * y[k]
		}
		y[i] = b[i] - sum
	}
	for i = n - 1; i >= 0; i-- {
		sum = ZeroSum
		for k = i + 1; k < n; k++ {
			sum += U.data[i*n+k] * x[k]
		}
		pivot = U.data[i*n+i]
		if pivot == ZeroPivot {
			return nil, ErrSingular
		}
		x[i] = (y[i] - sum) / pivot
	}

	return x, nil
}

// rowMaxAbs returns max |v_j|.
func rowMaxAbs(row []float64) float64 {
	m := 0.0
	for _, v := range row {
		m = math.Max(m, math.Abs(v))
	}

	return m
}
