// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/nucrad/measurement"
	"github.com/katalvlaran/nucrad/radius"
)

func newRadiusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "radius",
		Short: "Estimate one nuclear radius from its Coulomb displacement energy",
		Args:  cobra.NoArgs,
		RunE:  runRadius,
	}

	f := cmd.Flags()
	f.Float64("energy", 0, "Coulomb energy E_c in MeV")
	f.Float64("energy-err", 0, "symmetric uncertainty of E_c in MeV")
	f.Float64("energy-err-minus", 0, "lower uncertainty of E_c in MeV (with --energy-err-plus)")
	f.Float64("energy-err-plus", 0, "upper uncertainty of E_c in MeV (with --energy-err-minus)")
	f.Int("z", 0, "atomic number Z of the lighter mirror partner")
	_ = cmd.MarkFlagRequired("energy")
	_ = cmd.MarkFlagRequired("z")
	cmd.MarkFlagsRequiredTogether("energy-err-minus", "energy-err-plus")
	cmd.MarkFlagsMutuallyExclusive("energy-err", "energy-err-minus")

	return cmd
}

func runRadius(cmd *cobra.Command, _ []string) error {
	_, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	f := cmd.Flags()
	value, _ := f.GetFloat64("energy")
	sigma, _ := f.GetFloat64("energy-err")
	minus, _ := f.GetFloat64("energy-err-minus")
	plus, _ := f.GetFloat64("energy-err-plus")
	z, _ := f.GetInt("z")

	ec, err := measurement.NewAsymmetric(value, sigma, sigma)
	if f.Changed("energy-err-minus") {
		ec, err = measurement.NewAsymmetric(value, minus, plus)
	}
	if err != nil {
		return err
	}

	r, err := radius.EstimateRadiusAsymmetric(ec, z)
	if err != nil {
		return err
	}
	fm := r.Scale(1 / radius.Femtometre)
	log.Debug("radius estimated",
		zap.Int("z", z), zap.Stringer("energy_mev", ec), zap.Stringer("radius_fm", fm))

	out := cmd.OutOrStdout()
	if fm.IsSymmetric() {
		_, err = fmt.Fprintf(out, "R = %.4f ± %.4f fm\n", fm.Value, fm.Plus)
	} else {
		_, err = fmt.Fprintf(out, "R = %.4f -%.4f +%.4f fm\n", fm.Value, fm.Minus, fm.Plus)
	}

	return err
}
