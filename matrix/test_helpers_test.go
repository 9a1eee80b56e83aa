// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   - Small, deterministic fixtures for kernels.
//   - hide masks *Dense so the interface fallback paths get exercised.

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/nucrad/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels onto their At/Set fallback path.
type hide struct{ matrix.Matrix }

// MustFromRows builds a *Dense from literal rows or fails the test.
func MustFromRows(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// RequireClose asserts m equals want element-wise within tol.
func RequireClose(t testing.TB, want [][]float64, m matrix.Matrix, tol float64) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "rows")
	for i := range want {
		require.Equal(t, len(want[i]), m.Cols(), "cols")
		for j := range want[i] {
			got := MustAt(t, m, i, j)
			require.LessOrEqualf(t, math.Abs(got-want[i][j]), tol,
				"[%d,%d]: got %g want %g", i, j, got, want[i][j])
		}
	}
}

// designMatrix returns the n×2 line design [x_i, 1].
func designMatrix(t testing.TB, xs []float64) *matrix.Dense {
	t.Helper()
	rows := make([][]float64, len(xs))
	for i, x := range xs {
		rows[i] = []float64{x, 1}
	}

	return MustFromRows(t, rows)
}
