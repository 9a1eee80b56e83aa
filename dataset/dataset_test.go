// SPDX-License-Identifier: MIT
package dataset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/nucrad/dataset"
	"github.com/katalvlaran/nucrad/measurement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const table = `element,A,Z,E_c,E_c_err,E_c_err_minus,E_c_err_plus
# mirror pairs
H-3,3,1,1.498,0.021,,
C-13, 13, 6, 3.981, 0.030, 0.025, 0.041
O-17,17,8,4.760,0.028
`

func TestParse(t *testing.T) {
	t.Parallel()
	rows, err := dataset.Parse(strings.NewReader(table))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	h := rows[0]
	assert.Equal(t, "H-3", h.Element)
	assert.Equal(t, 3.0, h.MassNumber)
	assert.Equal(t, 1, h.AtomicNumber)
	assert.Equal(t, measurement.Measurement{Value: 1.498, Uncertainty: 0.021}, h.CoulombEnergy)
	assert.Nil(t, h.Asymmetric)
	assert.Equal(t, 3, h.Line)
	assert.Equal(t, measurement.Asymmetric{Value: 1.498, Minus: 0.021, Plus: 0.021}, h.Energy())

	c := rows[1]
	assert.Equal(t, "C-13", c.Element)
	require.NotNil(t, c.Asymmetric)
	assert.Equal(t, measurement.Asymmetric{Value: 3.981, Minus: 0.025, Plus: 0.041}, c.Energy())
	assert.Equal(t, 4, c.Line)

	assert.Equal(t, 5, rows[2].Line)
	assert.Nil(t, rows[2].Asymmetric)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()
	const header = "element,A,Z,E_c,E_c_err,E_c_err_minus,E_c_err_plus\n"
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{"empty", "", dataset.ErrMissingHeader, ""},
		{"short header", "a,b\n", dataset.ErrMissingHeader, ""},
		{"no rows", header, dataset.ErrNoRows, ""},
		{"six fields", header + "Li-7,7,3,2.6,0.1,0.1\n", dataset.ErrFieldCount, "line 2"},
		{"bad A", header + "Li-7,x,3,2.6,0.1\n", dataset.ErrBadField, "line 2"},
		{"zero A", header + "Li-7,0,3,2.6,0.1\n", dataset.ErrBadField, "A="},
		{"bad Z", header + "Li-7,7,3.5,2.6,0.1\n", dataset.ErrBadField, "Z="},
		{"negative sigma", header + "H-3,3,1,1.5,0.1\nLi-7,7,3,2.6,-0.1\n", measurement.ErrNegativeUncertainty, "line 3"},
		{"half asymmetric", header + "Li-7,7,3,2.6,0.1,0.1,\n", dataset.ErrBadField, "E_c_err_plus"},
		{"blank minus side", header + "Li-7,7,3,2.6,0.1,,0.1\n", dataset.ErrBadField, "E_c_err_minus"},
		{"empty element", header + ",7,3,2.6,0.1\n", dataset.ErrBadField, "element"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dataset.Parse(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			if tc.wantMsg != "" {
				assert.Contains(t, err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "coulomb.csv")
	require.NoError(t, os.WriteFile(path, []byte(table), 0o600))

	rows, err := dataset.Load(path)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = dataset.Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
