// SPDX-License-Identifier: MIT

// Package cli wires the nucrad commands: analyze, radius, excitation and psd.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/nucrad/config"
	"github.com/katalvlaran/nucrad/logger"
)

// Version is set at build time
var Version = "0.1.0"

// NewRootCommand builds the command tree. Each call returns fresh flag state.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "nucrad",
		Short: "Nuclear radii from Coulomb displacement energies",
		Long: `nucrad estimates nuclear charge radii from Coulomb displacement energies,
fits R against A^(1/3) with split-normal uncertainties and converts
time-of-flight channels to excitation energies.

Example:
  nucrad analyze --dataset coulomb.csv --plot radius.png --report fit.yaml
  nucrad radius --energy 7.103 --energy-err 0.067 --z 15
  nucrad excitation 1000 1100 1200`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "YAML config file")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")

	root.AddCommand(
		newAnalyzeCommand(),
		newRadiusCommand(),
		newExcitationCommand(),
		newPSDCommand(),
	)

	return root
}

// Execute runs the CLI
func Execute() error {
	return NewRootCommand().Execute()
}

// setup loads the layered configuration for cmd and builds its logger.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	file, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(file, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	log := logger.NewWithWriter(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, cmd.ErrOrStderr())

	return cfg, log, nil
}
