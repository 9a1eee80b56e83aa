// SPDX-License-Identifier: MIT

// Package measurement models physical quantities with uncertainty and
// propagates that uncertainty through the handful of operations the analysis
// needs.
//
// Two value types are provided:
//
//   - Measurement: a Gaussian quantity v ± σ.
//   - Asymmetric: a split-normal quantity v (−σ⁻, +σ⁺): two half-Gaussians
//     with different scales joined at the mode.
//
// Propagation is first order (linearisation around the nominal value) and
// treats every operand as independent:
//
//	f(v ± σ)        → f(v) ± |f'(v)|·σ
//	(a ± σa)+(b ± σb) → (a+b) ± √(σa² + σb²)
//	1/(v ± σ)       → 1/v ± σ/v²        (relative uncertainty preserved)
//
// Values are immutable; every operation returns a fresh value and the
// operands are never modified.
//
// Errors:
//
//	ErrNaNInf             : a NaN or ±Inf component.
//	ErrNegativeUncertainty: σ < 0 (or a negative split side).
//	ErrZeroValue          : division by, or reciprocal of, a zero nominal value.
package measurement
