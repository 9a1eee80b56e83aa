// SPDX-License-Identifier: MIT

package measurement

import "math"

// Scale returns k·m with uncertainty |k|·σ.
func (m Measurement) Scale(k float64) Measurement {
	return Measurement{Value: k * m.Value, Uncertainty: math.Abs(k) * m.Uncertainty}
}

// Offset returns m + c for an exact constant c; the uncertainty is unchanged.
func (m Measurement) Offset(c float64) Measurement {
	return Measurement{Value: m.Value + c, Uncertainty: m.Uncertainty}
}

// Reciprocal returns 1/m with uncertainty σ/v². The relative uncertainty of
// the result equals that of m.
// Returns ErrZeroValue when the nominal value is zero.
func (m Measurement) Reciprocal() (Measurement, error) {
	if m.Value == 0 {
		return Measurement{}, measurementErrorf(opReciprocal, ErrZeroValue)
	}
	inv := 1.0 / m.Value

	return Measurement{Value: inv, Uncertainty: m.Uncertainty * inv * inv}, nil
}

// Add returns m + o, combining independent uncertainties in quadrature.
func (m Measurement) Add(o Measurement) Measurement {
	return Measurement{Value: m.Value + o.Value, Uncertainty: math.Hypot(m.Uncertainty, o.Uncertainty)}
}

// Sub returns m − o, combining independent uncertainties in quadrature.
func (m Measurement) Sub(o Measurement) Measurement {
	return Measurement{Value: m.Value - o.Value, Uncertainty: math.Hypot(m.Uncertainty, o.Uncertainty)}
}

// Mul returns m·o for independent operands:
// σ = √((o·σm)² + (m·σo)²).
func (m Measurement) Mul(o Measurement) Measurement {
	return Measurement{
		Value:       m.Value * o.Value,
		Uncertainty: math.Hypot(o.Value*m.Uncertainty, m.Value*o.Uncertainty),
	}
}

// Div returns m/o for independent operands:
// σ = √((σm/o)² + (m·σo/o²)²).
// Returns ErrZeroValue when o's nominal value is zero.
func (m Measurement) Div(o Measurement) (Measurement, error) {
	if o.Value == 0 {
		return Measurement{}, measurementErrorf(opDiv, ErrZeroValue)
	}
	q := m.Value / o.Value

	return Measurement{
		Value:       q,
		Uncertainty: math.Hypot(m.Uncertainty/o.Value, q*o.Uncertainty/o.Value),
	}, nil
}

// Apply propagates m through a differentiable function f with derivative df:
// f(v) ± |df(v)|·σ.
// Returns ErrNaNInf when f(v) or df(v) is not finite (e.g. outside f's domain).
func (m Measurement) Apply(f, df func(float64) float64) (Measurement, error) {
	v, d := f(m.Value), df(m.Value)
	if !isFinite(v) || !isFinite(d) {
		return Measurement{}, measurementErrorf(opApply, ErrNaNInf)
	}

	return Measurement{Value: v, Uncertainty: math.Abs(d) * m.Uncertainty}, nil
}

// Scale returns k·a. A negative k mirrors the distribution, so the sides swap.
func (a Asymmetric) Scale(k float64) Asymmetric {
	ak := math.Abs(k)
	if k < 0 {
		return Asymmetric{Value: k * a.Value, Minus: ak * a.Plus, Plus: ak * a.Minus}
	}

	return Asymmetric{Value: k * a.Value, Minus: ak * a.Minus, Plus: ak * a.Plus}
}

// Reciprocal returns 1/a at first order. 1/v is decreasing on either side of
// zero, so the upper side of a maps onto the lower side of the result:
// minus' = plus/v², plus' = minus/v².
// Returns ErrZeroValue when the nominal value is zero.
func (a Asymmetric) Reciprocal() (Asymmetric, error) {
	if a.Value == 0 {
		return Asymmetric{}, measurementErrorf(opReciprocal, ErrZeroValue)
	}
	inv := 1.0 / a.Value
	inv2 := inv * inv

	return Asymmetric{Value: inv, Minus: a.Plus * inv2, Plus: a.Minus * inv2}, nil
}
