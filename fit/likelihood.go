// SPDX-License-Identifier: MIT

package fit

import "math"

// ln2Pi is ln(2π).
var ln2Pi = math.Log(2 * math.Pi)

// NegLogLikelihood returns the split-normal negative log-likelihood of the
// line y = a·x + b:
//
//	NLL = ½ Σ [ (r_i/σ_i)² + ln(2π σ_i²) ],  r_i = y_i − (a·x_i + b),
//
// where σ_i is Y.Plus for r_i ≥ 0 and Y.Minus otherwise. Samples are not
// validated; a zero sigma yields +Inf.
func NegLogLikelihood(samples []Sample, a, b float64) float64 {
	var (
		sum, r, sigma float64
	)
	for _, s := range samples {
		r = s.Y.Value - (a*s.X + b)
		sigma = s.Y.Sigma(r)
		sum += (r/sigma)*(r/sigma) + ln2Pi + 2*math.Log(sigma)
	}

	return 0.5 * sum
}

// sidedWeights returns w_i = 1/σ_i² with σ_i chosen by the residual sign at (a, b).
func sidedWeights(samples []Sample, a, b float64) []float64 {
	w := make([]float64, len(samples))
	var sigma float64
	for i, s := range samples {
		sigma = s.Y.Sigma(s.Y.Value - (a*s.X + b))
		w[i] = 1 / (sigma * sigma)
	}

	return w
}

// symmetrizedWeights returns w_i = 1/σ̄_i² with σ̄ = ½(σ⁻+σ⁺).
func symmetrizedWeights(samples []Sample) []float64 {
	w := make([]float64, len(samples))
	var sigma float64
	for i, s := range samples {
		sigma = s.Y.Symmetrized()
		w[i] = 1 / (sigma * sigma)
	}

	return w
}
