// SPDX-License-Identifier: MIT

package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/nucrad/matrix"
)

const (
	opWLS        = "WeightedLeastSquares"
	opCovariance = "covariance"
	opFit        = "FitAsymmetricLine"
)

// WeightedLeastSquares fits y = a·x + b by weighted least squares with
// w_i = 1/σ̄_i², σ̄ = ½(σ⁻+σ⁺), solving (XᵀWX)β = XᵀWy.
//
// This is the starting point of FitAsymmetricLine and, for symmetric
// uncertainties, already its maximum-likelihood answer. The reported NLL is
// the split-normal objective at the solution; Iterations is zero and Method
// is None.
//
// Errors: as FitAsymmetricLine.
func WeightedLeastSquares(samples []Sample) (LineFitResult, error) {
	if err := validateSamples(samples); err != nil {
		return LineFitResult{}, fmt.Errorf("%s: %w", opWLS, err)
	}
	ordered := canonical(samples)
	a, b, cov, err := solveWLS(ordered, symmetrizedWeights(ordered))
	if err != nil {
		return LineFitResult{}, fmt.Errorf("%s: %w", opWLS, err)
	}

	res := LineFitResult{Slope: a, Intercept: b, NLL: NegLogLikelihood(ordered, a, b), Method: None}
	res.setCovariance(cov)

	return res, nil
}

// centredDesign builds the n×2 matrix with rows [x_i − x̄, 1], where x̄ is the
// w-weighted mean of x. Centring keeps XᵀWX well conditioned when the
// abscissae sit far from zero; the fit in (a, b_c) maps back through
// uncentre.
func centredDesign(samples []Sample, w []float64) (*matrix.Dense, float64, error) {
	xs := abscissae(samples)
	xbar := stat.Mean(xs, w)
	rows := make([][]float64, len(xs))
	for i, x := range xs {
		rows[i] = []float64{x - xbar, 1}
	}
	X, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return X, xbar, nil
}

// uncentre maps a covariance of (a, b_c) to one of (a, b = b_c − a·x̄):
// T·C·Tᵀ with T = [[1, 0], [−x̄, 1]].
func uncentre(c matrix.Matrix, xbar float64) (matrix.Matrix, error) {
	T, err := matrix.NewFromRows([][]float64{{1, 0}, {-xbar, 1}})
	if err != nil {
		return nil, err
	}
	Tt, err := matrix.Transpose(T)
	if err != nil {
		return nil, err
	}
	TC, err := matrix.Mul(T, c)
	if err != nil {
		return nil, err
	}

	return matrix.Mul(TC, Tt)
}

// solveWLS returns the weighted least-squares (a, b) and their covariance
// (XᵀWX)⁻¹, solved on centred abscissae.
func solveWLS(samples []Sample, w []float64) (float64, float64, [2][2]float64, error) {
	X, xbar, err := centredDesign(samples, w)
	if err != nil {
		return 0, 0, [2][2]float64{}, err
	}
	beta, inv, err := matrix.SolveNormal(X, w, ordinates(samples))
	if err != nil {
		return 0, 0, [2][2]float64{}, err
	}
	full, err := uncentre(inv, xbar)
	if err != nil {
		return 0, 0, [2][2]float64{}, err
	}
	cov, err := toCovariance(full)
	if err != nil {
		return 0, 0, [2][2]float64{}, err
	}

	return beta[0], beta[1] - beta[0]*xbar, cov, nil
}

// sidedCovariance returns (XᵀWX)⁻¹ with W_ii = 1/σ_i² for the sides selected
// by the residual signs at (a, b).
func sidedCovariance(samples []Sample, a, b float64) ([2][2]float64, error) {
	w := sidedWeights(samples, a, b)
	X, xbar, err := centredDesign(samples, w)
	if err != nil {
		return [2][2]float64{}, fmt.Errorf("%s: %w", opCovariance, err)
	}
	G, err := matrix.WeightedGram(X, w)
	if err != nil {
		return [2][2]float64{}, fmt.Errorf("%s: %w", opCovariance, err)
	}
	inv, err := matrix.Inverse(G)
	if err != nil {
		return [2][2]float64{}, fmt.Errorf("%s: %w", opCovariance, err)
	}
	full, err := uncentre(inv, xbar)
	if err != nil {
		return [2][2]float64{}, fmt.Errorf("%s: %w", opCovariance, err)
	}
	cov, err := toCovariance(full)
	if err != nil {
		return [2][2]float64{}, fmt.Errorf("%s: %w", opCovariance, err)
	}

	return cov, nil
}

func toCovariance(m matrix.Matrix) ([2][2]float64, error) {
	var (
		cov  [2][2]float64
		i, j int
		err  error
	)
	for i = 0; i < 2; i++ {
		for j = 0; j < 2; j++ {
			if cov[i][j], err = m.At(i, j); err != nil {
				return [2][2]float64{}, err
			}
		}
	}
	// Symmetrise away roundoff from the triangular solves.
	cov[0][1] = 0.5 * (cov[0][1] + cov[1][0])
	cov[1][0] = cov[0][1]

	return cov, nil
}

// setCovariance stores cov and derives the standard errors from its diagonal.
func (r *LineFitResult) setCovariance(cov [2][2]float64) {
	r.Covariance = cov
	r.SlopeStdErr = math.Sqrt(math.Max(cov[0][0], 0))
	r.InterceptStdErr = math.Sqrt(math.Max(cov[1][1], 0))
}
