// SPDX-License-Identifier: MIT

// Package kinematics turns neutron time-of-flight TDC channels into kinetic
// and excitation energies with first-order uncertainties.
//
// A (p,n) reaction at beam energy T_p leaves the residual nucleus excited to
//
//	Ex = T_p − T_n,
//
// and the neutron energy follows from its flight time over a known path:
//
//	TOF = (ch_γ − tdc)·w + L/c + T_RF     (common-stop TDC, gamma-peak calibrated)
//	β   = L / (c·TOF),  γ = 1/√(1−β²),  T_n = m_n(γ − 1).
//
// ch_γ is the TDC channel of the prompt-gamma peak, w the channel width in
// ns/ch and T_RF one cyclotron RF period added to unwrap the stop signal.
//
// Errors (sentinel):
//
//	– ErrInvalidSetup  non-positive flight path, channel width or RF period, or a
//	                   non-finite constant.
//	– ErrUnphysical    TOF ≤ 0 or β ≥ 1 for the given channel.
package kinematics

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/nucrad/measurement"
)

// Physical constants.
const (
	// SpeedOfLight is c in m/ns.
	SpeedOfLight = 0.299792458
	// ProtonMass is m_p in MeV/c².
	ProtonMass = 938.272013
	// NeutronMass is m_n in MeV/c².
	NeutronMass = 939.565346
)

var (
	// ErrInvalidSetup indicates a Setup that cannot describe a real spectrometer.
	ErrInvalidSetup = errors.New("kinematics: invalid setup")

	// ErrUnphysical indicates a channel whose flight time is non-positive or
	// implies a neutron at or above the speed of light.
	ErrUnphysical = errors.New("kinematics: unphysical time of flight")
)

const (
	opTOF        = "TimeOfFlight"
	opNeutron    = "NeutronEnergy"
	opExcitation = "ExcitationEnergy"
)

// Setup describes the spectrometer and beam.
type Setup struct {
	FlightPath   measurement.Measurement `yaml:"flight_path"`   // target to detector [m]
	ChannelWidth measurement.Measurement `yaml:"channel_width"` // TDC channel width [ns/ch]
	GammaChannel float64                 `yaml:"gamma_channel"` // prompt-gamma TDC channel
	RFPeriod     float64                 `yaml:"rf_period"`     // cyclotron RF period [ns]
	BeamEnergy   float64                 `yaml:"beam_energy"`   // incident proton kinetic energy [MeV]
}

// Default experiment constants.
const (
	DefaultFlightPath       = (7507.0 + 2.0 + 50.8/2.0) / 1000.0 // detector face + half depth [m]
	DefaultChannelsPerNs    = 22.2105
	DefaultChannelsPerNsErr = 0.01681
	DefaultGammaChannel     = 980.0
	DefaultRFFrequency      = 16.2344e6 // Hz
	DefaultBeamEnergy       = 48.81     // MeV
)

// DefaultSetup returns the reference spectrometer. The channel width is the
// reciprocal of the channels-per-ns calibration, keeping its relative error.
func DefaultSetup() Setup {
	perNs := measurement.Measurement{Value: DefaultChannelsPerNs, Uncertainty: DefaultChannelsPerNsErr}
	width, _ := perNs.Reciprocal() // non-zero constant

	return Setup{
		FlightPath:   measurement.Exact(DefaultFlightPath),
		ChannelWidth: width,
		GammaChannel: DefaultGammaChannel,
		RFPeriod:     1e9 / DefaultRFFrequency,
		BeamEnergy:   DefaultBeamEnergy,
	}
}

// Validate checks that every constant is finite and the lengths and periods positive.
func (s Setup) Validate() error {
	if err := s.FlightPath.Validate(); err != nil {
		return fmt.Errorf("%w: flight path: %w", ErrInvalidSetup, err)
	}
	if err := s.ChannelWidth.Validate(); err != nil {
		return fmt.Errorf("%w: channel width: %w", ErrInvalidSetup, err)
	}
	switch {
	case s.FlightPath.Value <= 0:
		return fmt.Errorf("%w: flight path must be positive", ErrInvalidSetup)
	case s.ChannelWidth.Value <= 0:
		return fmt.Errorf("%w: channel width must be positive", ErrInvalidSetup)
	case !isFinite(s.RFPeriod) || s.RFPeriod < 0:
		return fmt.Errorf("%w: RF period must be finite and non-negative", ErrInvalidSetup)
	case !isFinite(s.GammaChannel):
		return fmt.Errorf("%w: gamma channel must be finite", ErrInvalidSetup)
	case !isFinite(s.BeamEnergy) || s.BeamEnergy <= 0:
		return fmt.Errorf("%w: beam energy must be positive", ErrInvalidSetup)
	}

	return nil
}

// TimeOfFlight returns the neutron flight time in ns for a TDC channel.
// The channel-width uncertainty enters through |ch_γ − tdc|, the flight-path
// uncertainty through L/c.
func (s Setup) TimeOfFlight(tdc float64) (measurement.Measurement, error) {
	if err := s.Validate(); err != nil {
		return measurement.Measurement{}, fmt.Errorf("%s: %w", opTOF, err)
	}
	if !isFinite(tdc) {
		return measurement.Measurement{}, fmt.Errorf("%s: tdc %v: %w", opTOF, tdc, measurement.ErrNaNInf)
	}
	tof := s.ChannelWidth.Scale(s.GammaChannel - tdc).
		Add(s.FlightPath.Scale(1 / SpeedOfLight)).
		Offset(s.RFPeriod)
	if tof.Value <= 0 {
		return measurement.Measurement{}, fmt.Errorf("%s: tdc %g gives %g ns: %w", opTOF, tdc, tof.Value, ErrUnphysical)
	}

	return tof, nil
}

// Beta returns v/c of a neutron detected at channel tdc.
func (s Setup) Beta(tdc float64) (measurement.Measurement, error) {
	tof, err := s.TimeOfFlight(tdc)
	if err != nil {
		return measurement.Measurement{}, err
	}
	beta, err := s.FlightPath.Div(tof.Scale(SpeedOfLight))
	if err != nil {
		return measurement.Measurement{}, fmt.Errorf("%s: %w", opNeutron, err)
	}
	if beta.Value >= 1 {
		return measurement.Measurement{}, fmt.Errorf("%s: tdc %g gives β=%g: %w", opNeutron, tdc, beta.Value, ErrUnphysical)
	}

	return beta, nil
}

// NeutronEnergy returns the relativistic kinetic energy T_n = m_n(γ−1) in MeV.
func (s Setup) NeutronEnergy(tdc float64) (measurement.Measurement, error) {
	beta, err := s.Beta(tdc)
	if err != nil {
		return measurement.Measurement{}, err
	}
	gamma, err := beta.Apply(lorentz, lorentzDerivative)
	if err != nil {
		return measurement.Measurement{}, fmt.Errorf("%s: %w", opNeutron, err)
	}

	return gamma.Offset(-1).Scale(NeutronMass), nil
}

// ExcitationEnergy returns Ex = T_p − T_n in MeV. The beam energy is exact,
// so σ(Ex) = σ(T_n).
func (s Setup) ExcitationEnergy(tdc float64) (measurement.Measurement, error) {
	tn, err := s.NeutronEnergy(tdc)
	if err != nil {
		return measurement.Measurement{}, fmt.Errorf("%s: %w", opExcitation, err)
	}

	return tn.Scale(-1).Offset(s.BeamEnergy), nil
}

// lorentz is γ(β) = 1/√(1−β²).
func lorentz(b float64) float64 { return 1 / math.Sqrt(1-b*b) }

// lorentzDerivative is dγ/dβ = β/(1−β²)^{3/2}.
func lorentzDerivative(b float64) float64 { return b / math.Pow(1-b*b, 1.5) }

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
