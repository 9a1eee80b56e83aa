// SPDX-License-Identifier: MIT

package measurement

import (
	"fmt"
	"math"
)

// Operation tags used when wrapping sentinels.
const (
	opNew           = "New"
	opNewAsymmetric = "NewAsymmetric"
	opReciprocal    = "Reciprocal"
	opRelative      = "RelativeUncertainty"
	opDiv           = "Div"
	opApply         = "Apply"
)

// measurementErrorf wraps err with an operation tag, keeping errors.Is working.
func measurementErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Measurement is a Gaussian quantity: nominal Value with standard deviation
// Uncertainty (≥ 0). The zero value is an exact 0 ± 0.
type Measurement struct {
	Value       float64 // nominal value
	Uncertainty float64 // one standard deviation, >= 0
}

// New validates and builds a Measurement.
//
// Errors:
//   - ErrNaNInf if value or uncertainty is not finite.
//   - ErrNegativeUncertainty if uncertainty < 0.
func New(value, uncertainty float64) (Measurement, error) {
	m := Measurement{Value: value, Uncertainty: uncertainty}
	if err := m.Validate(); err != nil {
		return Measurement{}, measurementErrorf(opNew, err)
	}

	return m, nil
}

// Exact returns v ± 0.
func Exact(v float64) Measurement { return Measurement{Value: v} }

// Validate reports whether m satisfies the Measurement invariants.
func (m Measurement) Validate() error {
	if !isFinite(m.Value) || !isFinite(m.Uncertainty) {
		return ErrNaNInf
	}
	if m.Uncertainty < 0 {
		return ErrNegativeUncertainty
	}

	return nil
}

// RelativeUncertainty returns σ/|v|.
// Returns ErrZeroValue when the nominal value is zero.
func (m Measurement) RelativeUncertainty() (float64, error) {
	if m.Value == 0 {
		return 0, measurementErrorf(opRelative, ErrZeroValue)
	}

	return m.Uncertainty / math.Abs(m.Value), nil
}

// String renders "v ± σ".
func (m Measurement) String() string {
	return fmt.Sprintf("%g ± %g", m.Value, m.Uncertainty)
}

// Asymmetric is a split-normal quantity: the mode Value with a lower-side
// scale Minus and an upper-side scale Plus, both >= 0.
type Asymmetric struct {
	Value float64 // mode of the distribution
	Minus float64 // scale of the lower half-Gaussian
	Plus  float64 // scale of the upper half-Gaussian
}

// NewAsymmetric validates and builds an Asymmetric value.
//
// Errors:
//   - ErrNaNInf if any component is not finite.
//   - ErrNegativeUncertainty if minus < 0 or plus < 0.
func NewAsymmetric(value, minus, plus float64) (Asymmetric, error) {
	a := Asymmetric{Value: value, Minus: minus, Plus: plus}
	if err := a.Validate(); err != nil {
		return Asymmetric{}, measurementErrorf(opNewAsymmetric, err)
	}

	return a, nil
}

// FromSymmetric lifts m into a split-normal value with equal sides.
func FromSymmetric(m Measurement) Asymmetric {
	return Asymmetric{Value: m.Value, Minus: m.Uncertainty, Plus: m.Uncertainty}
}

// Validate reports whether a satisfies the Asymmetric invariants.
func (a Asymmetric) Validate() error {
	if !isFinite(a.Value) || !isFinite(a.Minus) || !isFinite(a.Plus) {
		return ErrNaNInf
	}
	if a.Minus < 0 || a.Plus < 0 {
		return ErrNegativeUncertainty
	}

	return nil
}

// Symmetrized returns the mean of both sides, 0.5·(Minus+Plus).
func (a Asymmetric) Symmetrized() float64 { return 0.5 * (a.Minus + a.Plus) }

// Sigma selects the side that applies to a residual observed − model:
// Plus when residual >= 0, Minus otherwise. A zero residual uses Plus.
func (a Asymmetric) Sigma(residual float64) float64 {
	if residual >= 0 {
		return a.Plus
	}

	return a.Minus
}

// IsSymmetric reports whether both sides are equal.
func (a Asymmetric) IsSymmetric() bool { return a.Minus == a.Plus }

// String renders "v -σ⁻ +σ⁺".
func (a Asymmetric) String() string {
	return fmt.Sprintf("%g -%g +%g", a.Value, a.Minus, a.Plus)
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
