// SPDX-License-Identifier: MIT

package radius_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nucrad/measurement"
	"github.com/katalvlaran/nucrad/radius"
)

const relTol = 1e-12

func TestEstimateRadius_KnownValue(t *testing.T) {
	// Mirror pair A=3 (Z=1) with E_c = 1.5 MeV sits near 1.73 fm.
	ec := measurement.Measurement{Value: 1.5, Uncertainty: 0.03}
	r, err := radius.EstimateRadius(ec, 1)
	require.NoError(t, err)

	e := radius.ElementaryCharge
	want := 3 * e * e * 3 / (20 * math.Pi * radius.VacuumPermittivity * 1.5 * radius.MeVToJoule)
	assert.InEpsilon(t, want, r.Value, relTol)

	fm := radius.Femtometres(r)
	assert.InDelta(t, 1.728, fm.Value, 1e-3)
	assert.InEpsilon(t, 0.02*fm.Value, fm.Uncertainty, relTol)
}

func TestEstimateRadius_RelativeUncertaintyPreserved(t *testing.T) {
	for z := 0; z <= 92; z += 7 {
		for _, e := range []float64{0.01, 0.7, 3.2, 18.5} {
			ec := measurement.Measurement{Value: e, Uncertainty: 0.013 * e}
			r, err := radius.EstimateRadius(ec, z)
			require.NoError(t, err)
			require.Greater(t, r.Value, 0.0, "Z=%d E=%g", z, e)

			relIn, _ := ec.RelativeUncertainty()
			relOut, err := r.RelativeUncertainty()
			require.NoError(t, err)
			assert.InDelta(t, relIn, relOut, relTol, "Z=%d E=%g", z, e)
		}
	}
}

func TestEstimateRadius_ScalesWithCharge(t *testing.T) {
	ec := measurement.Exact(2)
	r0, err := radius.EstimateRadius(ec, 0)
	require.NoError(t, err)
	r4, err := radius.EstimateRadius(ec, 4)
	require.NoError(t, err)

	assert.InEpsilon(t, 9.0, r4.Value/r0.Value, relTol)
	assert.Equal(t, 0.0, r0.Uncertainty)
}

func TestEstimateRadius_Errors(t *testing.T) {
	cases := []struct {
		name string
		ec   measurement.Measurement
		z    int
		want error
	}{
		{"zero energy", measurement.Measurement{Value: 0, Uncertainty: 0.1}, 3, radius.ErrZeroEnergy},
		{"negative energy", measurement.Measurement{Value: -1, Uncertainty: 0.1}, 3, radius.ErrNonPositiveEnergy},
		{"negative charge", measurement.Measurement{Value: 1, Uncertainty: 0.1}, -1, radius.ErrNegativeCharge},
		{"nan energy", measurement.Measurement{Value: math.NaN()}, 3, measurement.ErrNaNInf},
		{"negative sigma", measurement.Measurement{Value: 1, Uncertainty: -0.1}, 3, measurement.ErrNegativeUncertainty},
		{"subnormal energy", measurement.Measurement{Value: 1e-320}, 1, radius.ErrZeroEnergy},
		{"uncertainty overflow", measurement.Measurement{Value: 1e-300, Uncertainty: 0.1}, 1, radius.ErrZeroEnergy},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := radius.EstimateRadius(tc.ec, tc.z)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, measurement.Measurement{}, r)
		})
	}
}

func TestEstimateRadiusAsymmetric_SidesSwap(t *testing.T) {
	ec := measurement.Asymmetric{Value: 4, Minus: 0.2, Plus: 0.6}
	r, err := radius.EstimateRadiusAsymmetric(ec, 7)
	require.NoError(t, err)

	sym, err := radius.EstimateRadius(measurement.Exact(4), 7)
	require.NoError(t, err)

	assert.InEpsilon(t, sym.Value, r.Value, relTol)
	assert.InEpsilon(t, r.Value*0.6/4, r.Minus, relTol)
	assert.InEpsilon(t, r.Value*0.2/4, r.Plus, relTol)

	_, err = radius.EstimateRadiusAsymmetric(measurement.Asymmetric{Value: 0, Minus: 1, Plus: 1}, 7)
	assert.ErrorIs(t, err, radius.ErrZeroEnergy)
}

func TestChargeFactor(t *testing.T) {
	assert.Equal(t, 1.0, radius.ChargeFactor(0))
	assert.Equal(t, 27.0, radius.ChargeFactor(13))
	assert.Positive(t, radius.ChargeFactor(math.MaxInt/2+1))
}

func TestEstimateRadius_HugeChargeStaysPositive(t *testing.T) {
	ec := measurement.Measurement{Value: 1, Uncertainty: 0.1}
	small, err := radius.EstimateRadius(ec, 1)
	require.NoError(t, err)

	r, err := radius.EstimateRadius(ec, math.MaxInt/2+1)
	require.NoError(t, err)
	assert.Greater(t, r.Value, small.Value)
	assert.Positive(t, r.Uncertainty)
	assert.InEpsilon(t, 0.1, r.Uncertainty/r.Value, relTol)

	a, err := radius.EstimateRadiusAsymmetric(measurement.Asymmetric{Value: 1e-320, Minus: 0, Plus: 0}, 1)
	assert.ErrorIs(t, err, radius.ErrZeroEnergy)
	assert.Equal(t, measurement.Asymmetric{}, a)
}
