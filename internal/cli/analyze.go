// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/nucrad/analysis"
	"github.com/katalvlaran/nucrad/fit"
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Estimate radii for a Coulomb-energy table and fit R against A^(1/3)",
		Args:  cobra.NoArgs,
		RunE:  runAnalyze,
	}

	d := fit.DefaultOptions()
	f := cmd.Flags()
	f.String("dataset", "", "CSV table: element,A,Z,E_c,E_c_err[,E_c_err_minus,E_c_err_plus]")
	f.String("plot", "", "write the diagnostic plot here (.png, .svg, .pdf, ...)")
	f.String("report", "", "write the YAML report here")
	f.String("method", d.Method.String(), "refinement: coordinate, nelder-mead or none")
	f.Float64("tolerance", d.Tolerance, "stopping step relative to the WLS standard errors")
	f.Int("max-iterations", d.MaxIterations, "cap on minimiser iterations")

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	opts, err := cfg.FitOptions()
	if err != nil {
		return err
	}
	res, err := analysis.Run(analysis.Config{
		DatasetPath: cfg.Dataset,
		PlotPath:    cfg.Plot,
		ReportPath:  cfg.Report,
		FitOptions:  opts,
		Plot:        cfg.Render,
	}, log)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "element\tA^(1/3)\tR (fm)\t-σ\t+σ")
	for _, p := range res.Points {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\n",
			p.Element, p.CubeRootA, p.Radius.Value, p.Radius.Minus, p.Radius.Plus)
	}
	if err = w.Flush(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nR = (%.4f ± %.4f)·A^(1/3) + (%.4f ± %.4f) fm\n",
		res.Fit.Slope, res.Fit.SlopeStdErr, res.Fit.Intercept, res.Fit.InterceptStdErr)
	fmt.Fprintf(out, "r = %.4f, method = %s, iterations = %d\n",
		res.Correlation, res.Fit.Method, res.Fit.Iterations)

	return nil
}
