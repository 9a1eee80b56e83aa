// SPDX-License-Identifier: MIT

package radius

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/nucrad/measurement"
)

// Physical constants in SI units.
const (
	// ElementaryCharge is e in coulombs.
	ElementaryCharge = 1.602176634e-19
	// VacuumPermittivity is ε₀ in F/m.
	VacuumPermittivity = 8.854187817e-12
	// MeVToJoule converts mega-electronvolts to joules.
	MeVToJoule = 1.60218e-13
	// Femtometre is one fm in metres.
	Femtometre = 1e-15
)

var (
	// ErrZeroEnergy is returned for a zero Coulomb energy (R would be infinite).
	ErrZeroEnergy = errors.New("radius: zero Coulomb energy")

	// ErrNonPositiveEnergy is returned for a negative Coulomb energy.
	ErrNonPositiveEnergy = errors.New("radius: Coulomb energy must be positive")

	// ErrNegativeCharge is returned for an atomic number below zero.
	ErrNegativeCharge = errors.New("radius: atomic number must be non-negative")
)

const (
	opEstimate           = "EstimateRadius"
	opEstimateAsymmetric = "EstimateRadiusAsymmetric"
)

// coulombPrefactor is 3·e²/(20·π·ε₀) in J·m.
var coulombPrefactor = 3 * ElementaryCharge * ElementaryCharge / (20 * math.Pi * VacuumPermittivity)

// ChargeFactor returns 2Z+1, the charge term of the mirror-nuclei relation.
// The product is formed in float64 so large z cannot wrap around.
func ChargeFactor(z int) float64 { return 2*float64(z) + 1 }

// EstimateRadius converts a Coulomb energy ec (MeV) and atomic number z into a
// nuclear radius in metres. The returned uncertainty is R·(σ_E/E).
//
// Errors:
//   - measurement.ErrNaNInf / ErrNegativeUncertainty for an invalid ec.
//   - ErrZeroEnergy when ec.Value == 0, or when it is so small that R or its
//     uncertainty overflows.
//   - ErrNonPositiveEnergy when ec.Value < 0.
//   - ErrNegativeCharge when z < 0.
//
// Complexity: O(1). Pure.
func EstimateRadius(ec measurement.Measurement, z int) (measurement.Measurement, error) {
	if err := ec.Validate(); err != nil {
		return measurement.Measurement{}, fmt.Errorf("%s: %w", opEstimate, err)
	}
	r, err := nominalRadius(ec.Value, z)
	if err != nil {
		return measurement.Measurement{}, fmt.Errorf("%s: %w", opEstimate, err)
	}

	sigma, err := scaled(r, ec.Uncertainty, ec.Value)
	if err != nil {
		return measurement.Measurement{}, fmt.Errorf("%s: %w", opEstimate, err)
	}

	return measurement.Measurement{Value: r, Uncertainty: sigma}, nil
}

// EstimateRadiusAsymmetric is EstimateRadius for split-normal energies.
// An energy on the high side gives a radius on the low side, hence
// R.Minus = R·E.Plus/E and R.Plus = R·E.Minus/E.
func EstimateRadiusAsymmetric(ec measurement.Asymmetric, z int) (measurement.Asymmetric, error) {
	if err := ec.Validate(); err != nil {
		return measurement.Asymmetric{}, fmt.Errorf("%s: %w", opEstimateAsymmetric, err)
	}
	r, err := nominalRadius(ec.Value, z)
	if err != nil {
		return measurement.Asymmetric{}, fmt.Errorf("%s: %w", opEstimateAsymmetric, err)
	}

	minus, err := scaled(r, ec.Plus, ec.Value)
	if err != nil {
		return measurement.Asymmetric{}, fmt.Errorf("%s: %w", opEstimateAsymmetric, err)
	}
	plus, err := scaled(r, ec.Minus, ec.Value)
	if err != nil {
		return measurement.Asymmetric{}, fmt.Errorf("%s: %w", opEstimateAsymmetric, err)
	}

	return measurement.Asymmetric{Value: r, Minus: minus, Plus: plus}, nil
}

// Femtometres rescales a radius in metres to femtometres.
func Femtometres(r measurement.Measurement) measurement.Measurement {
	return r.Scale(1 / Femtometre)
}

// nominalRadius evaluates R for a validated energy in MeV.
func nominalRadius(energyMeV float64, z int) (float64, error) {
	switch {
	case z < 0:
		return 0, ErrNegativeCharge
	case energyMeV == 0:
		return 0, ErrZeroEnergy
	case energyMeV < 0:
		return 0, ErrNonPositiveEnergy
	}

	joules := energyMeV * MeVToJoule
	if joules == 0 {
		// Subnormal energies underflow on conversion.
		return 0, ErrZeroEnergy
	}
	r := coulombPrefactor * ChargeFactor(z) / joules
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, ErrZeroEnergy
	}
	if !(r > 0) {
		return 0, ErrNonPositiveEnergy
	}

	return r, nil
}

// scaled returns r·σ/E, the radius uncertainty matching an energy
// uncertainty σ, and ErrZeroEnergy when it overflows.
func scaled(r, sigma, energy float64) (float64, error) {
	v := r * sigma / energy
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrZeroEnergy
	}

	return v, nil
}
