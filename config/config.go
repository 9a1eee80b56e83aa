// SPDX-License-Identifier: MIT

// Package config loads nucrad settings from defaults, an optional YAML file,
// NUCRAD_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/nucrad/fit"
	"github.com/katalvlaran/nucrad/kinematics"
	"github.com/katalvlaran/nucrad/measurement"
	"github.com/katalvlaran/nucrad/render"
)

// EnvPrefix is prepended to every environment variable, e.g. NUCRAD_LOG_LEVEL.
const EnvPrefix = "NUCRAD"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the typed view of all settings.
type Config struct {
	Dataset    string
	Plot       string
	Report     string
	Fit        FitConfig
	Render     render.Options
	Log        LogConfig
	Kinematics KinematicsConfig
	PSD        kinematics.Discriminator
}

// sections holds the nested settings decoded with Unmarshal rather than
// read key by key.
type sections struct {
	PSD kinematics.Discriminator `mapstructure:"psd"`
}

// FitConfig selects the minimiser and its stopping rule.
type FitConfig struct {
	Method        string
	Tolerance     float64
	MaxIterations int
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string
}

// KinematicsConfig describes the time-of-flight spectrometer.
type KinematicsConfig struct {
	FlightPath       float64 // m
	FlightPathErr    float64 // m
	ChannelsPerNs    float64 // TDC calibration, ch/ns
	ChannelsPerNsErr float64
	GammaChannel     float64
	RFFrequency      float64 // Hz
	BeamEnergy       float64 // MeV
}

// flagKeys maps flag names to config keys for BindPFlag.
var flagKeys = map[string]string{
	"dataset":             "dataset",
	"plot":                "plot",
	"report":              "report",
	"method":              "fit_method",
	"tolerance":           "fit_tolerance",
	"max-iterations":      "fit_max_iterations",
	"log-level":           "log_level",
	"log-format":          "log_format",
	"flight-path":         "flight_path",
	"channels-per-ns":     "channels_per_ns",
	"channels-per-ns-err": "channels_per_ns_err",
	"gamma-channel":       "gamma_channel",
	"beam-energy":         "beam_energy",
}

// Load builds a Config. file may be empty; when set it must exist and parse.
// flags may be nil; only flags that exist in the set and were changed on the
// command line override lower layers.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config

	cfg.Dataset = v.GetString("dataset")
	cfg.Plot = v.GetString("plot")
	cfg.Report = v.GetString("report")

	// Fit
	cfg.Fit.Method = v.GetString("fit_method")
	cfg.Fit.Tolerance = v.GetFloat64("fit_tolerance")
	cfg.Fit.MaxIterations = v.GetInt("fit_max_iterations")

	// Plot
	cfg.Render.Title = v.GetString("plot_title")
	cfg.Render.XLabel = v.GetString("plot_x_label")
	cfg.Render.YLabel = v.GetString("plot_y_label")
	cfg.Render.Width = v.GetFloat64("plot_width")
	cfg.Render.Height = v.GetFloat64("plot_height")

	// Logging
	cfg.Log.Level = v.GetString("log_level")
	cfg.Log.Format = v.GetString("log_format")

	// Kinematics
	cfg.Kinematics.FlightPath = v.GetFloat64("flight_path")
	cfg.Kinematics.FlightPathErr = v.GetFloat64("flight_path_err")
	cfg.Kinematics.ChannelsPerNs = v.GetFloat64("channels_per_ns")
	cfg.Kinematics.ChannelsPerNsErr = v.GetFloat64("channels_per_ns_err")
	cfg.Kinematics.GammaChannel = v.GetFloat64("gamma_channel")
	cfg.Kinematics.RFFrequency = v.GetFloat64("rf_frequency")
	cfg.Kinematics.BeamEnergy = v.GetFloat64("beam_energy")

	// Pulse-shape discrimination
	var sec sections
	if err := v.Unmarshal(&sec); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.PSD = sec.PSD

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dataset", "")
	v.SetDefault("plot", "")
	v.SetDefault("report", "")

	// Fit defaults
	d := fit.DefaultOptions()
	v.SetDefault("fit_method", d.Method.String())
	v.SetDefault("fit_tolerance", d.Tolerance)
	v.SetDefault("fit_max_iterations", d.MaxIterations)

	// Plot defaults
	r := render.DefaultOptions()
	v.SetDefault("plot_title", r.Title)
	v.SetDefault("plot_x_label", r.XLabel)
	v.SetDefault("plot_y_label", r.YLabel)
	v.SetDefault("plot_width", r.Width)
	v.SetDefault("plot_height", r.Height)

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	// Kinematics defaults
	v.SetDefault("flight_path", kinematics.DefaultFlightPath)
	v.SetDefault("flight_path_err", 0.0)
	v.SetDefault("channels_per_ns", kinematics.DefaultChannelsPerNs)
	v.SetDefault("channels_per_ns_err", kinematics.DefaultChannelsPerNsErr)
	v.SetDefault("gamma_channel", kinematics.DefaultGammaChannel)
	v.SetDefault("rf_frequency", kinematics.DefaultRFFrequency)
	v.SetDefault("beam_energy", kinematics.DefaultBeamEnergy)

	// Pulse-shape discrimination defaults
	psd := kinematics.DefaultDiscriminator()
	v.SetDefault("psd.threshold", psd.Threshold)
	v.SetDefault("psd.line_slope", psd.LineSlope)
	v.SetDefault("psd.line_offset", psd.LineOffset)
	v.SetDefault("psd.band_slope", psd.BandSlope)
	v.SetDefault("psd.band_offset", psd.BandOffset)
}

// Validate checks every field that has a constrained range.
func (c *Config) Validate() error {
	if _, err := fit.ParseMethod(c.Fit.Method); err != nil {
		return fmt.Errorf("%w: fit_method: %w", ErrInvalid, err)
	}
	if !(c.Fit.Tolerance > 0) {
		return fmt.Errorf("%w: fit_tolerance must be positive", ErrInvalid)
	}
	if c.Fit.MaxIterations <= 0 {
		return fmt.Errorf("%w: fit_max_iterations must be positive", ErrInvalid)
	}
	if !(c.Render.Width > 0) || !(c.Render.Height > 0) {
		return fmt.Errorf("%w: plot_width and plot_height must be positive", ErrInvalid)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log_format %q (want json or console)", ErrInvalid, c.Log.Format)
	}
	if !(c.Kinematics.RFFrequency > 0) {
		return fmt.Errorf("%w: rf_frequency must be positive", ErrInvalid)
	}
	if _, err := c.Setup(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for name, v := range map[string]float64{
		"psd.threshold":   c.PSD.Threshold,
		"psd.line_slope":  c.PSD.LineSlope,
		"psd.line_offset": c.PSD.LineOffset,
		"psd.band_slope":  c.PSD.BandSlope,
		"psd.band_offset": c.PSD.BandOffset,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalid, name)
		}
	}

	return nil
}

// FitOptions translates FitConfig into fit options.
func (c *Config) FitOptions() ([]fit.Option, error) {
	m, err := fit.ParseMethod(c.Fit.Method)
	if err != nil {
		return nil, err
	}

	return []fit.Option{
		fit.WithMethod(m),
		fit.WithTolerance(c.Fit.Tolerance),
		fit.WithMaxIterations(c.Fit.MaxIterations),
	}, nil
}

// Setup builds and validates the spectrometer description.
func (c *Config) Setup() (kinematics.Setup, error) {
	k := c.Kinematics
	path, err := measurement.New(k.FlightPath, k.FlightPathErr)
	if err != nil {
		return kinematics.Setup{}, fmt.Errorf("flight_path: %w", err)
	}
	perNs, err := measurement.New(k.ChannelsPerNs, k.ChannelsPerNsErr)
	if err != nil {
		return kinematics.Setup{}, fmt.Errorf("channels_per_ns: %w", err)
	}
	width, err := perNs.Reciprocal()
	if err != nil {
		return kinematics.Setup{}, fmt.Errorf("channels_per_ns: %w", err)
	}

	s := kinematics.Setup{
		FlightPath:   path,
		ChannelWidth: width,
		GammaChannel: k.GammaChannel,
		RFPeriod:     1e9 / k.RFFrequency,
		BeamEnergy:   k.BeamEnergy,
	}
	if err = s.Validate(); err != nil {
		return kinematics.Setup{}, err
	}

	return s, nil
}
