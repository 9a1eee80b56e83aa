// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/nucrad/kinematics"
	"github.com/katalvlaran/nucrad/measurement"
)

func newExcitationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "excitation TDC [TDC...]",
		Short: "Convert TDC channels to neutron energy and excitation energy",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runExcitation,
	}

	f := cmd.Flags()
	f.Float64("flight-path", kinematics.DefaultFlightPath, "flight path in m")
	f.Float64("channels-per-ns", kinematics.DefaultChannelsPerNs, "TDC calibration in channels/ns")
	f.Float64("channels-per-ns-err", kinematics.DefaultChannelsPerNsErr, "uncertainty of the TDC calibration")
	f.Float64("gamma-channel", kinematics.DefaultGammaChannel, "TDC channel of the prompt gamma peak")
	f.Float64("beam-energy", kinematics.DefaultBeamEnergy, "proton beam energy in MeV")
	f.Bool("histogram", false, "also print the raw and Gaussian-smeared Ex spectrum")
	f.Int("bins", kinematics.DefaultSpectrumBins, "number of Ex spectrum bins")
	f.Float64("ex-min", kinematics.DefaultSpectrumMin, "lower edge of the Ex spectrum in MeV")
	f.Float64("ex-max", kinematics.DefaultSpectrumMax, "upper edge of the Ex spectrum in MeV")

	return cmd
}

func runExcitation(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	channels, err := parseChannels(args)
	if err != nil {
		return err
	}
	spectrometer, err := cfg.Setup()
	if err != nil {
		return err
	}

	var spectrum *kinematics.Spectrum
	if histogram, _ := cmd.Flags().GetBool("histogram"); histogram {
		if spectrum, err = newSpectrum(cmd); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "tdc\tTOF (ns)\tTn (MeV)\tEx (MeV)\tσ (MeV)")
	excitations := make([]measurement.Measurement, 0, len(channels))
	for _, tdc := range channels {
		tof, err := spectrometer.TimeOfFlight(tdc)
		if err != nil {
			return err
		}
		tn, err := spectrometer.NeutronEnergy(tdc)
		if err != nil {
			return err
		}
		ex, err := spectrometer.ExcitationEnergy(tdc)
		if err != nil {
			return err
		}
		log.Debug("channel converted",
			zap.Float64("tdc", tdc), zap.Stringer("tof_ns", tof), zap.Stringer("ex_mev", ex))
		fmt.Fprintf(w, "%g\t%.3f\t%.4f\t%.4f\t%.4f\n", tdc, tof.Value, tn.Value, ex.Value, ex.Uncertainty)
		excitations = append(excitations, ex)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if spectrum == nil {
		return nil
	}

	spectrum.Fill(excitations)
	log.Debug("spectrum filled", zap.Int("events", len(excitations)), zap.Int("outside", spectrum.Outside))

	return printSpectrum(cmd, spectrum)
}

func newSpectrum(cmd *cobra.Command) (*kinematics.Spectrum, error) {
	f := cmd.Flags()
	bins, _ := f.GetInt("bins")
	lo, _ := f.GetFloat64("ex-min")
	hi, _ := f.GetFloat64("ex-max")

	return kinematics.NewSpectrum(bins, lo, hi)
}

// printSpectrum lists the non-empty bins of both histograms.
func printSpectrum(cmd *cobra.Command, s *kinematics.Spectrum) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nEx low\tEx high\tcounts\tsmeared")
	for i := range s.Bins() {
		if s.Counts[i] == 0 && s.Smeared[i] < 1e-6 {
			continue
		}
		fmt.Fprintf(w, "%.2f\t%.2f\t%g\t%.4f\n", s.Dividers[i], s.Dividers[i+1], s.Counts[i], s.Smeared[i])
	}
	fmt.Fprintf(w, "outside\t\t%d\t\n", s.Outside)

	return w.Flush()
}

func newPSDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "psd TDC QDC QDCT",
		Short: "Classify one detector event as neutron, gamma or rejected",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			v, err := parseChannels(args)
			if err != nil {
				return err
			}
			p := cfg.PSD.Classify(v[0], v[1], v[2])
			log.Debug("event classified",
				zap.Float64("tdc", v[0]), zap.Float64("qdc", v[1]), zap.Float64("qdct", v[2]), zap.Stringer("particle", p))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), p)

			return err
		},
	}
}

func parseChannels(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("channel %q: %w", a, err)
		}
		out[i] = v
	}

	return out, nil
}
