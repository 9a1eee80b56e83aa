// SPDX-License-Identifier: MIT

package cli_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nucrad/internal/cli"
	"github.com/katalvlaran/nucrad/kinematics"
)

const coulombCSV = "../../analysis/testdata/coulomb.csv"

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := cli.NewRootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), err
}

func TestRadius(t *testing.T) {
	out, err := execute(t, "radius", "--energy", "7.103", "--energy-err", "0.067", "--z", "15")
	require.NoError(t, err)
	assert.Equal(t, "R = 3.7707 ± 0.0356 fm\n", out)
}

func TestRadius_Asymmetric(t *testing.T) {
	out, err := execute(t, "radius", "--energy", "5.126", "--z", "9",
		"--energy-err-minus", "0.07", "--energy-err-plus", "0.04")
	require.NoError(t, err)
	assert.Regexp(t, `^R = 3\.202\d -0\.02\d\d \+0\.0\d\d\d fm\n$`, out)
}

func TestRadius_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"missing z", []string{"radius", "--energy", "1"}},
		{"zero energy", []string{"radius", "--energy", "0", "--z", "3"}},
		{"negative z", []string{"radius", "--energy", "1", "--z", "-1"}},
		{"half asymmetric", []string{"radius", "--energy", "1", "--z", "1", "--energy-err-minus", "0.1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			require.Error(t, err)
		})
	}
}

func TestExcitation(t *testing.T) {
	out, err := execute(t, "excitation", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "85.829")
	assert.Contains(t, out, "43.0697")
	assert.Contains(t, out, "5.7403")
}

func TestExcitation_Unphysical(t *testing.T) {
	_, err := execute(t, "excitation", "1000", "3000")
	require.ErrorIs(t, err, kinematics.ErrUnphysical)
}

func TestExcitation_BadArgument(t *testing.T) {
	_, err := execute(t, "excitation", "ten")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `channel "ten"`)
}

func TestExcitation_Histogram(t *testing.T) {
	out, err := execute(t, "excitation", "--histogram", "1000", "1000", "900")
	require.NoError(t, err)
	assert.Contains(t, out, "smeared")
	assert.Regexp(t, `5\.70\s+5\.80\s+2\s`, out)
	assert.Regexp(t, `outside\s+0`, out)

	_, err = execute(t, "excitation", "--histogram", "--bins", "0", "1000")
	require.ErrorIs(t, err, kinematics.ErrInvalidBinning)
}

func TestExcitation_BeamEnergyFromEnv(t *testing.T) {
	t.Setenv("NUCRAD_BEAM_ENERGY", "50.81")
	out, err := execute(t, "excitation", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "7.7403")
}

func TestPSD(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"psd", "600", "2000", "700"}, "neutron\n"},
		{[]string{"psd", "600", "2000", "500"}, "gamma\n"},
		{[]string{"psd", "600", "800", "700"}, "rejected\n"},
	}
	for _, tc := range cases {
		out, err := execute(t, tc.args...)
		require.NoError(t, err)
		assert.Equal(t, tc.want, out, tc.args)
	}
}

func TestPSD_ThresholdFromEnv(t *testing.T) {
	t.Setenv("NUCRAD_PSD_THRESHOLD", "3000")
	out, err := execute(t, "psd", "600", "2000", "700")
	require.NoError(t, err)
	assert.Equal(t, "rejected\n", out)
}

func TestAnalyze(t *testing.T) {
	dir := t.TempDir()
	plot := filepath.Join(dir, "radius.svg")
	report := filepath.Join(dir, "report.yaml")

	out, err := execute(t, "analyze", "--dataset", coulombCSV, "--plot", plot, "--report", report,
		"--method", "nelder-mead", "--log-level", "debug")
	require.NoError(t, err)

	assert.Contains(t, out, "P-31")
	assert.Contains(t, out, "method = nelder-mead")
	assert.FileExists(t, plot)
	assert.FileExists(t, report)
}

func TestAnalyze_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "nucrad.yaml")
	yaml := "dataset: " + coulombCSV + "\nfit_method: none\nlog_format: json\n"
	require.NoError(t, os.WriteFile(file, []byte(yaml), 0o600))

	out, err := execute(t, "analyze", "--config", file)
	require.NoError(t, err)
	assert.Contains(t, out, "method = none")
}

func TestAnalyze_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"no dataset", []string{"analyze"}},
		{"unknown method", []string{"analyze", "--dataset", coulombCSV, "--method", "simplex"}},
		{"bad tolerance", []string{"analyze", "--dataset", coulombCSV, "--tolerance", "0"}},
		{"missing config", []string{"analyze", "--config", "absent.yaml"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			require.Error(t, err)
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, cli.Version)
}
