// SPDX-License-Identifier: MIT

package analysis

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/nucrad/fit"
	"github.com/katalvlaran/nucrad/measurement"
	"github.com/katalvlaran/nucrad/render"
)

// Report is the YAML document written to Config.ReportPath.
type Report struct {
	Dataset     string            `yaml:"dataset"`
	Nuclei      []ReportNucleus   `yaml:"nuclei"`
	Fit         fit.LineFitResult `yaml:"fit"`
	Correlation float64           `yaml:"correlation"`
}

// ReportNucleus is one row of the report.
type ReportNucleus struct {
	Element       string                 `yaml:"element"`
	MassNumber    float64                `yaml:"mass_number"`
	AtomicNumber  int                    `yaml:"atomic_number"`
	CubeRootA     float64                `yaml:"cbrt_a"`
	CoulombEnergy measurement.Asymmetric `yaml:"coulomb_energy_mev"`
	Radius        measurement.Asymmetric `yaml:"radius_fm"`
}

// NewReport flattens a Result for serialisation.
func NewReport(datasetPath string, res *Result) Report {
	rep := Report{
		Dataset:     datasetPath,
		Nuclei:      make([]ReportNucleus, len(res.Points)),
		Fit:         res.Fit,
		Correlation: res.Correlation,
	}
	for i, p := range res.Points {
		rep.Nuclei[i] = ReportNucleus{
			Element:       p.Element,
			MassNumber:    p.MassNumber,
			AtomicNumber:  p.AtomicNumber,
			CubeRootA:     p.CubeRootA,
			CoulombEnergy: p.Energy(),
			Radius:        p.Radius,
		}
	}

	return rep
}

// WriteReport encodes rep as YAML.
func WriteReport(w io.Writer, rep Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("analysis: encode report: %w", err)
	}

	return enc.Close()
}

// ReadReport decodes a report written by WriteReport.
func ReadReport(r io.Reader) (Report, error) {
	var rep Report
	if err := yaml.NewDecoder(r).Decode(&rep); err != nil {
		return Report{}, fmt.Errorf("analysis: decode report: %w", err)
	}

	return rep, nil
}

// writeOutputs renders the plot and the report into temporary files next to
// their targets and renames them only when both succeeded. A failed rename
// removes the outputs already moved into place.
func writeOutputs(cfg Config, res *Result, log *zap.Logger) error {
	var staged [][2]string // {tmp, final}
	cleanup := func() {
		for _, s := range staged {
			_ = os.Remove(s[0])
		}
	}

	if cfg.PlotPath != "" {
		tmp := tempSibling(cfg.PlotPath)
		series := render.Series{Label: "R from Coulomb energy", X: make([]float64, len(res.Points)), Y: make([]measurement.Asymmetric, len(res.Points))}
		for i, p := range res.Points {
			series.X[i], series.Y[i] = p.CubeRootA, p.Radius
		}
		line := render.Line{
			Label:     fmt.Sprintf("fitted line (r=%.2f)", res.Correlation),
			Slope:     res.Fit.Slope,
			Intercept: res.Fit.Intercept,
		}
		staged = append(staged, [2]string{tmp, cfg.PlotPath})
		if err := render.Render(tmp, series, line, cfg.Plot); err != nil {
			cleanup()
			return fmt.Errorf("analysis: %w", err)
		}
	}

	if cfg.ReportPath != "" {
		tmp := tempSibling(cfg.ReportPath)
		staged = append(staged, [2]string{tmp, cfg.ReportPath})
		if err := writeReportFile(tmp, NewReport(cfg.DatasetPath, res)); err != nil {
			cleanup()
			return err
		}
	}

	var committed []string
	for _, s := range staged {
		if err := os.Rename(s[0], s[1]); err != nil {
			cleanup()
			for _, path := range committed {
				_ = os.Remove(path)
			}
			return fmt.Errorf("analysis: %w", err)
		}
		committed = append(committed, s[1])
	}
	for _, path := range committed {
		log.Info("output written", zap.String("path", path))
	}

	return nil
}

func writeReportFile(path string, rep Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return WriteReport(f, rep)
}

// tempSibling returns "<dir>/.<base>.tmp<ext>", keeping the extension so the
// plot format is still inferred from it.
func tempSibling(path string) string {
	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)

	return filepath.Join(dir, "."+strings.TrimSuffix(base, ext)+".tmp"+ext)
}
