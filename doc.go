// SPDX-License-Identifier: MIT

// Package nucrad estimates nuclear charge radii from Coulomb displacement
// energies and fits them against the cube root of the mass number.
//
// What is inside?
//
//	measurement/   Gaussian and split-normal values with first-order propagation
//	radius/        R = 3e²(2Z+1) / (20πε₀·E_c) for symmetric and asymmetric energies
//	matrix/        small dense linear algebra: LU, inverse, weighted normal equations
//	fit/           line fit under split-normal errors, weighted correlation
//	kinematics/    neutron time of flight, kinetic and excitation energy, PSD cuts
//	dataset/       CSV table of nuclei and Coulomb energies
//	render/        diagnostic plot of R vs A^(1/3) with the fitted line
//	analysis/      the end-to-end driver producing a plot and a YAML report
//	config/        layered settings: defaults, YAML file, NUCRAD_* env, flags
//	logger/        zap logger construction
//
// The command-line entry point is cmd/nucrad:
//
//	nucrad analyze --dataset coulomb.csv --plot radius.png --report fit.yaml
//	nucrad radius --energy 7.103 --energy-err 0.067 --z 15
//	nucrad excitation 1000 1100
//
// Every library package returns sentinel errors wrapped with context, so
// callers can match them with errors.Is. Only the driver and the CLI log.
package nucrad
