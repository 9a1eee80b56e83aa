// SPDX-License-Identifier: MIT

// Package matrix provides the small dense linear-algebra core used by the
// fitters: a row-major Dense type, bounds-checked accessors and the kernels
// needed for weighted least squares.
//
// What is inside:
//
//   - Dense, Matrix: row-major storage, At/Set never panic on user input.
//   - Mul, Transpose, MatVec : canonical kernels with *Dense fast paths.
//   - LU, Inverse      : Doolittle factorisation without pivoting (deterministic).
//   - WeightedGram     : XᵀWX for a diagonal weight matrix W.
//   - WeightedMoment   : XᵀWy.
//   - SolveNormal      : (XᵀWX)⁻¹ and the solution β of (XᵀWX)β = XᵀWy.
//
// Determinism:
//
//	Every kernel uses fixed loop orders and no map iteration, so identical
//	inputs give bit-identical outputs.
//
// Errors:
//
//	All kernels return package sentinels (ErrSingular, ErrDimensionMismatch,
//	...) wrapped with an operation tag; match them with errors.Is.
//
// Matrices here are small (2×2 normal matrices, n×2 design matrices), so the
// package favours clarity and reproducibility over blocking or pivoting.
package matrix
