// SPDX-License-Identifier: MIT

package kinematics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/nucrad/measurement"
)

// Default excitation-energy binning: 400 bins of 0.1 MeV over [−10, 30) MeV.
const (
	DefaultSpectrumBins = 400
	DefaultSpectrumMin  = -10.0
	DefaultSpectrumMax  = 30.0
)

// SmearSigmas is how far, in units of the event's σ, its Gaussian is spread.
const SmearSigmas = 6

// ErrInvalidBinning indicates a non-positive bin count or an empty range.
var ErrInvalidBinning = errors.New("kinematics: invalid spectrum binning")

// Spectrum is an excitation-energy histogram kept twice: Counts holds one
// entry per event, Smeared spreads each event over the bins as a normalised
// Gaussian of width σ(Ex), so its total weight is the event count minus the
// tails beyond the range.
type Spectrum struct {
	Dividers []float64 `yaml:"dividers"` // bin edges, len = bins+1
	Counts   []float64 `yaml:"counts"`
	Smeared  []float64 `yaml:"smeared"`
	Outside  int       `yaml:"outside"` // events outside [Dividers[0], Dividers[bins])
}

// NewSpectrum returns an empty spectrum of bins equal bins over [lo, hi).
func NewSpectrum(bins int, lo, hi float64) (*Spectrum, error) {
	if bins <= 0 || !(hi > lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("%w: %d bins over [%g, %g)", ErrInvalidBinning, bins, lo, hi)
	}

	return &Spectrum{
		Dividers: floats.Span(make([]float64, bins+1), lo, hi),
		Counts:   make([]float64, bins),
		Smeared:  make([]float64, bins),
	}, nil
}

// Bins returns the number of bins.
func (s *Spectrum) Bins() int { return len(s.Counts) }

// BinWidth returns the common bin width.
func (s *Spectrum) BinWidth() float64 {
	return (s.Dividers[s.Bins()] - s.Dividers[0]) / float64(s.Bins())
}

// Centre returns the centre of bin i.
func (s *Spectrum) Centre(i int) float64 { return 0.5 * (s.Dividers[i] + s.Dividers[i+1]) }

// Fill adds events to both histograms. Non-finite values are ignored.
func (s *Spectrum) Fill(events []measurement.Measurement) {
	lo, hi := s.Dividers[0], s.Dividers[s.Bins()]

	inside := make([]float64, 0, len(events))
	for _, e := range events {
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			continue
		}
		if e.Value < lo || e.Value >= hi {
			s.Outside++
		} else {
			inside = append(inside, e.Value)
		}
		s.smear(e)
	}
	if len(inside) == 0 {
		return
	}
	sort.Float64s(inside)
	floats.Add(s.Counts, stat.Histogram(nil, s.Dividers, inside, nil))
}

// smear spreads e over the bins within SmearSigmas·σ, weighting each bin by
// pdf(centre)·width. An exact value lands in its own bin with weight one.
func (s *Spectrum) smear(e measurement.Measurement) {
	lo, bw, n := s.Dividers[0], s.BinWidth(), s.Bins()
	if e.Uncertainty == 0 {
		if i := int(math.Floor((e.Value - lo) / bw)); i >= 0 && i < n {
			s.Smeared[i]++
		}
		return
	}

	g := distuv.Normal{Mu: e.Value, Sigma: e.Uncertainty}
	first := int(math.Floor((e.Value - SmearSigmas*e.Uncertainty - lo) / bw))
	last := int(math.Floor((e.Value + SmearSigmas*e.Uncertainty - lo) / bw))
	for i := max(first, 0); i <= min(last, n-1); i++ {
		s.Smeared[i] += g.Prob(s.Centre(i)) * bw
	}
}
