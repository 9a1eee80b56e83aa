// SPDX-License-Identifier: MIT

package kinematics

// Particle is the outcome of pulse-shape discrimination.
type Particle int

const (
	// Rejected marks events below threshold or on the spurious TDC/QDC band.
	Rejected Particle = iota
	// Neutron marks events above the discrimination line.
	Neutron
	// Gamma marks events below the discrimination line.
	Gamma
)

func (p Particle) String() string {
	switch p {
	case Neutron:
		return "neutron"
	case Gamma:
		return "gamma"
	default:
		return "rejected"
	}
}

// Discriminator separates neutrons from gammas using the total charge (QDC)
// and the tail charge (QDCt) of a liquid-scintillator pulse.
//
// An event is accepted when qdc > Threshold and it lies above the line
// qdc = BandSlope·tdc + BandOffset, which removes a spurious band in the
// TDC/QDC plane. Accepted events are neutrons when
// qdct > LineSlope·qdc + LineOffset and gammas otherwise.
type Discriminator struct {
	Threshold  float64 `yaml:"threshold" mapstructure:"threshold"`
	LineSlope  float64 `yaml:"line_slope" mapstructure:"line_slope"`
	LineOffset float64 `yaml:"line_offset" mapstructure:"line_offset"`
	BandSlope  float64 `yaml:"band_slope" mapstructure:"band_slope"`
	BandOffset float64 `yaml:"band_offset" mapstructure:"band_offset"`
}

// DefaultDiscriminator returns the reference cuts.
func DefaultDiscriminator() Discriminator {
	return Discriminator{
		Threshold:  900,
		LineSlope:  5.0 / 16.0,
		LineOffset: 12.5,
		BandSlope:  3.0,
		BandOffset: -1500,
	}
}

// Classify labels one event given its TDC, QDC and tail-QDC channels.
func (d Discriminator) Classify(tdc, qdc, qdct float64) Particle {
	if qdc <= d.Threshold {
		return Rejected
	}
	if qdc-(d.BandSlope*tdc+d.BandOffset) <= 0 {
		return Rejected
	}
	// Exactly on the line counts as neither.
	switch tail := qdct - (d.LineSlope*qdc + d.LineOffset); {
	case tail > 0:
		return Neutron
	case tail < 0:
		return Gamma
	default:
		return Rejected
	}
}
