// SPDX-License-Identifier: MIT
package fit_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/nucrad/fit"
	"github.com/katalvlaran/nucrad/measurement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// symmetricSamples zips xs/ys with sigma on both sides.
func symmetricSamples(xs, ys []float64, sigma float64) []fit.Sample {
	out := make([]fit.Sample, len(xs))
	for i := range xs {
		out[i] = fit.Sample{X: xs[i], Y: measurement.Asymmetric{Value: ys[i], Minus: sigma, Plus: sigma}}
	}

	return out
}

// skewedSamples is a small asymmetric data set around y = 1.5x + 0.5.
func skewedSamples() []fit.Sample {
	return []fit.Sample{
		{X: 1, Y: measurement.Asymmetric{Value: 2.1, Minus: 0.05, Plus: 0.30}},
		{X: 2, Y: measurement.Asymmetric{Value: 3.4, Minus: 0.10, Plus: 0.25}},
		{X: 3, Y: measurement.Asymmetric{Value: 5.2, Minus: 0.40, Plus: 0.10}},
		{X: 4, Y: measurement.Asymmetric{Value: 6.4, Minus: 0.05, Plus: 0.20}},
		{X: 5, Y: measurement.Asymmetric{Value: 8.1, Minus: 0.30, Plus: 0.08}},
		{X: 6, Y: measurement.Asymmetric{Value: 9.3, Minus: 0.12, Plus: 0.12}},
	}
}

var (
	baselineX = []float64{1, 2, 3, 4, 5}
	baselineY = []float64{3.1, 5.0, 7.2, 8.9, 11.3}
)

func TestFitAsymmetricLine_Baseline(t *testing.T) {
	t.Parallel()
	res, err := fit.FitAsymmetricLine(symmetricSamples(baselineX, baselineY, 0.1))
	require.NoError(t, err)

	assert.InDelta(t, 2.03, res.Slope, 1e-9)
	assert.InDelta(t, 1.01, res.Intercept, 1e-9)
	assert.InDelta(t, 0.0316228, res.SlopeStdErr, 1e-7)
	assert.InDelta(t, 0.104881, res.InterceptStdErr, 1e-6)
	assert.InDelta(t, 0.001, res.Covariance[0][0], 1e-12)
	assert.InDelta(t, -0.003, res.Covariance[0][1], 1e-12)
	assert.InDelta(t, -0.003, res.Covariance[1][0], 1e-12)
	assert.InDelta(t, 0.011, res.Covariance[1][1], 1e-12)
	assert.Equal(t, fit.CoordinateSearch, res.Method)
	assert.Positive(t, res.Iterations)
}

func TestFitAsymmetricLine_RecoversSyntheticLine(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	const n, sigma = 25, 0.01
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i) * 0.4
		ys[i] = 2*xs[i] + 5 + rng.NormFloat64()*sigma
	}
	samples := symmetricSamples(xs, ys, sigma)

	res, err := fit.FitAsymmetricLine(samples)
	require.NoError(t, err)
	assert.InDelta(t, 2, res.Slope, 5*res.SlopeStdErr)
	assert.InDelta(t, 5, res.Intercept, 5*res.InterceptStdErr)

	// Symmetric errors: the maximum-likelihood line is the WLS line.
	wls, err := fit.WeightedLeastSquares(samples)
	require.NoError(t, err)
	assert.InDelta(t, wls.Slope, res.Slope, 1e-9)
	assert.InDelta(t, wls.Intercept, res.Intercept, 1e-9)
	assert.InDelta(t, wls.SlopeStdErr, res.SlopeStdErr, 1e-12)
}

func TestFitAsymmetricLine_OrderInvariant(t *testing.T) {
	t.Parallel()
	samples := skewedSamples()
	want, err := fit.FitAsymmetricLine(samples)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for k := 0; k < 5; k++ {
		shuffled := append([]fit.Sample(nil), samples...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got, err := fit.FitAsymmetricLine(shuffled)
		require.NoError(t, err)
		assert.InDelta(t, want.Slope, got.Slope, 1e-12)
		assert.InDelta(t, want.Intercept, got.Intercept, 1e-12)
		assert.InDelta(t, want.SlopeStdErr, got.SlopeStdErr, 1e-12)
	}
}

func TestFitAsymmetricLine_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	samples := []fit.Sample{
		{X: 3, Y: measurement.Asymmetric{Value: 1, Minus: 1, Plus: 1}},
		{X: 1, Y: measurement.Asymmetric{Value: 2, Minus: 1, Plus: 1}},
	}
	_, err := fit.FitAsymmetricLine(samples)
	require.NoError(t, err)
	assert.Equal(t, 3.0, samples[0].X)
}

func TestFitAsymmetricLine_TwoPointsExact(t *testing.T) {
	t.Parallel()
	symmetric := []fit.Sample{
		{X: -1, Y: measurement.Asymmetric{Value: -4, Minus: 0.3, Plus: 0.3}},
		{X: 3, Y: measurement.Asymmetric{Value: 8, Minus: 0.1, Plus: 0.1}},
	}
	res, err := fit.FitAsymmetricLine(symmetric)
	require.NoError(t, err)
	assert.InDelta(t, 3, res.Slope, 1e-9)
	assert.InDelta(t, -1, res.Intercept, 1e-9)

	// With unequal sides the objective rewards residuals on the narrower side,
	// so the optimum sits an infinitesimal distance from the interpolating line.
	skewed := []fit.Sample{
		{X: -1, Y: measurement.Asymmetric{Value: -4, Minus: 0.2, Plus: 0.5}},
		{X: 3, Y: measurement.Asymmetric{Value: 8, Minus: 0.1, Plus: 0.3}},
	}
	res, err = fit.FitAsymmetricLine(skewed)
	require.NoError(t, err)
	assert.InDelta(t, 3, res.Slope, 1e-4)
	assert.InDelta(t, -1, res.Intercept, 1e-4)
}

func TestFitAsymmetricLine_AsymmetricImprovesLikelihood(t *testing.T) {
	t.Parallel()
	samples := skewedSamples()
	wls, err := fit.WeightedLeastSquares(samples)
	require.NoError(t, err)

	for _, m := range []fit.Method{fit.CoordinateSearch, fit.NelderMead} {
		res, err := fit.FitAsymmetricLine(samples, fit.WithMethod(m))
		require.NoError(t, err, m.String())
		assert.LessOrEqual(t, res.NLL, wls.NLL, m.String())
		assert.InDelta(t, fit.NegLogLikelihood(samples, res.Slope, res.Intercept), res.NLL, 1e-12)
		assert.Equal(t, res.Covariance[0][1], res.Covariance[1][0])
		assert.Positive(t, res.SlopeStdErr)
		assert.Positive(t, res.InterceptStdErr)
		assert.InDelta(t, 1.5, res.Slope, 0.3, m.String())
	}
}

func TestFitAsymmetricLine_NelderMeadMatchesWLSOnSymmetricData(t *testing.T) {
	t.Parallel()
	res, err := fit.FitAsymmetricLine(symmetricSamples(baselineX, baselineY, 0.1),
		fit.WithMethod(fit.NelderMead), fit.WithTolerance(1e-8), fit.WithMaxIterations(2000))
	require.NoError(t, err)
	assert.InDelta(t, 2.03, res.Slope, 1e-3)
	assert.InDelta(t, 1.01, res.Intercept, 3e-3)
	assert.Equal(t, fit.NelderMead, res.Method)
}

func TestFitAsymmetricLine_FarOffAbscissae(t *testing.T) {
	t.Parallel()
	for _, x0 := range []float64{1e6, 1e8} {
		xs := []float64{x0, x0 + 1, x0 + 2}
		ys := make([]float64, len(xs))
		for i, x := range xs {
			ys[i] = 2*x + 5
		}
		xbar := x0 + 1
		for _, m := range []fit.Method{fit.CoordinateSearch, fit.None} {
			res, err := fit.FitAsymmetricLine(symmetricSamples(xs, ys, 1), fit.WithMethod(m))
			require.NoError(t, err, "x0=%g", x0)
			assert.InDelta(t, 2, res.Slope, 1e-9, "x0=%g %s", x0, m)
			assert.InDelta(t, 5, res.Intercept, 1e-6, "x0=%g %s", x0, m)
			assert.InDelta(t, 0.5, res.Covariance[0][0], 1e-9, "x0=%g %s", x0, m)
			assert.InEpsilon(t, -xbar/2, res.Covariance[0][1], 1e-9, "x0=%g %s", x0, m)
			assert.InEpsilon(t, xbar*xbar/2+1.0/3, res.Covariance[1][1], 1e-9, "x0=%g %s", x0, m)
		}
	}
}

func TestFitAsymmetricLine_MethodNone(t *testing.T) {
	t.Parallel()
	samples := skewedSamples()
	res, err := fit.FitAsymmetricLine(samples, fit.WithMethod(fit.None))
	require.NoError(t, err)
	wls, err := fit.WeightedLeastSquares(samples)
	require.NoError(t, err)
	assert.Equal(t, wls.Slope, res.Slope)
	assert.Equal(t, wls.Intercept, res.Intercept)
	assert.Zero(t, res.Iterations)
}

func TestFitAsymmetricLine_Errors(t *testing.T) {
	t.Parallel()
	ok := measurement.Asymmetric{Value: 1, Minus: 0.1, Plus: 0.1}
	tests := []struct {
		name    string
		samples []fit.Sample
		wantErr error
		wantMsg string
	}{
		{"empty", nil, fit.ErrTooFewSamples, ""},
		{"single", []fit.Sample{{X: 1, Y: ok}}, fit.ErrTooFewSamples, ""},
		{"identical x", []fit.Sample{{X: 2, Y: ok}, {X: 2, Y: ok}, {X: 2, Y: ok}}, fit.ErrDegenerateX, ""},
		{"nan x", []fit.Sample{{X: 1, Y: ok}, {X: math.NaN(), Y: ok}}, fit.ErrNaNInf, "sample 1"},
		{"inf y", []fit.Sample{{X: 1, Y: ok}, {X: 2, Y: measurement.Asymmetric{Value: math.Inf(1), Minus: 1, Plus: 1}}}, fit.ErrNaNInf, "sample 1"},
		{"zero sigma", []fit.Sample{{X: 1, Y: ok}, {X: 2, Y: ok}, {X: 3, Y: measurement.Asymmetric{Value: 1, Minus: 0, Plus: 1}}}, fit.ErrNonPositiveSigma, "sample 2"},
		{"negative sigma", []fit.Sample{{X: 1, Y: measurement.Asymmetric{Value: 1, Minus: 1, Plus: -1}}, {X: 2, Y: ok}}, fit.ErrNonPositiveSigma, "sample 0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fit.FitAsymmetricLine(tc.samples)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
			if tc.wantMsg != "" {
				assert.Contains(t, err.Error(), tc.wantMsg)
			}

			_, err = fit.WeightedLeastSquares(tc.samples)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNegLogLikelihood_PicksSideByResidualSign(t *testing.T) {
	t.Parallel()
	s := []fit.Sample{{X: 0, Y: measurement.Asymmetric{Value: 1, Minus: 2, Plus: 0.5}}}
	ln2pi := math.Log(2 * math.Pi)

	// Line below the point: residual +1 scored with Plus.
	want := 0.5 * (4 + ln2pi + 2*math.Log(0.5))
	assert.InDelta(t, want, fit.NegLogLikelihood(s, 0, 0), 1e-12)

	// Line above the point: residual −1 scored with Minus.
	want = 0.5 * (0.25 + ln2pi + 2*math.Log(2))
	assert.InDelta(t, want, fit.NegLogLikelihood(s, 0, 2), 1e-12)
}

func TestOptions(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { fit.WithTolerance(0)(&fit.Options{}) })
	assert.Panics(t, func() { fit.WithTolerance(math.NaN())(&fit.Options{}) })
	assert.Panics(t, func() { fit.WithMaxIterations(0)(&fit.Options{}) })
	assert.Panics(t, func() { fit.WithMethod(fit.Method(42))(&fit.Options{}) })

	o := fit.DefaultOptions()
	fit.WithTolerance(1e-3)(&o)
	fit.WithMaxIterations(5)(&o)
	fit.WithMethod(fit.NelderMead)(&o)
	assert.Equal(t, fit.Options{Method: fit.NelderMead, Tolerance: 1e-3, MaxIterations: 5}, o)
}

func TestMaxIterationsCapsSearch(t *testing.T) {
	t.Parallel()
	res, err := fit.FitAsymmetricLine(skewedSamples(), fit.WithMaxIterations(3))
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Iterations, 3)
}

func TestParseMethod(t *testing.T) {
	t.Parallel()
	for _, m := range []fit.Method{fit.CoordinateSearch, fit.NelderMead, fit.None} {
		got, err := fit.ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := fit.ParseMethod("gradient")
	assert.ErrorIs(t, err, fit.ErrUnknownMethod)
	assert.Equal(t, "Method(9)", fit.Method(9).String())
}

func TestPredict(t *testing.T) {
	t.Parallel()
	r := fit.LineFitResult{Slope: 2, Intercept: -1}
	assert.Equal(t, 5.0, r.Predict(3))
}
