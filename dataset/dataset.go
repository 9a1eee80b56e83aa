// SPDX-License-Identifier: MIT

// Package dataset reads the Coulomb-energy table: one row per nucleus with
// its mass number, atomic number and measured Coulomb energy.
//
// Format (comma separated, one header line, '#' starts a comment line):
//
//	element,A,Z,E_c,E_c_err[,E_c_err_minus,E_c_err_plus]
//
// Energies are in MeV. The last two columns are optional; when both are
// present and non-blank they give the lower and upper uncertainty of E_c and
// override the symmetric E_c_err for fitting purposes. When both are blank
// the row is symmetric. Exactly one blank side is rejected with ErrBadField
// naming the blank column.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/nucrad/measurement"
)

var (
	// ErrMissingHeader indicates an empty input or a header with too few columns.
	ErrMissingHeader = errors.New("dataset: missing or short header")

	// ErrFieldCount indicates a row with a column count other than 5 or 7.
	ErrFieldCount = errors.New("dataset: wrong number of fields")

	// ErrBadField indicates a field that does not parse or violates its range.
	ErrBadField = errors.New("dataset: bad field")

	// ErrNoRows indicates a table without data rows.
	ErrNoRows = errors.New("dataset: no data rows")
)

const (
	minFields = 5
	maxFields = 7
)

// Row is one nucleus of the table.
type Row struct {
	Element       string                  `yaml:"element"`
	MassNumber    float64                 `yaml:"mass_number"`
	AtomicNumber  int                     `yaml:"atomic_number"`
	CoulombEnergy measurement.Measurement `yaml:"coulomb_energy"`       // MeV
	Asymmetric    *measurement.Asymmetric `yaml:"asymmetric,omitempty"` // MeV; nil when only E_c_err is given
	Line          int                     `yaml:"line"`                 // 1-based line in the source
}

// Energy returns the Coulomb energy as a split-normal value: the asymmetric
// columns when present, otherwise E_c ± E_c_err on both sides.
func (r Row) Energy() measurement.Asymmetric {
	if r.Asymmetric != nil {
		return *r.Asymmetric
	}

	return measurement.FromSymmetric(r.CoulombEnergy)
}

// Load opens path and parses it with Parse.
func Load(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	rows, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rows, nil
}

// Parse reads the whole table from r. The first error aborts parsing; its
// message carries the 1-based line number.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	if len(header) < minFields {
		return nil, fmt.Errorf("header has %d columns: %w", len(header), ErrMissingHeader)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		line, _ := reader.FieldPos(0)
		row, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row.Line = line
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	return rows, nil
}

func parseRecord(rec []string) (Row, error) {
	if len(rec) != minFields && len(rec) != maxFields {
		return Row{}, fmt.Errorf("got %d, want %d or %d: %w", len(rec), minFields, maxFields, ErrFieldCount)
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}

	var (
		row Row
		err error
	)
	if row.Element = rec[0]; row.Element == "" {
		return Row{}, fieldError("element", rec[0], errors.New("empty"))
	}
	if row.MassNumber, err = strconv.ParseFloat(rec[1], 64); err != nil {
		return Row{}, fieldError("A", rec[1], err)
	}
	if row.MassNumber <= 0 {
		return Row{}, fieldError("A", rec[1], errors.New("must be positive"))
	}
	if row.AtomicNumber, err = strconv.Atoi(rec[2]); err != nil {
		return Row{}, fieldError("Z", rec[2], err)
	}
	value, err := strconv.ParseFloat(rec[3], 64)
	if err != nil {
		return Row{}, fieldError("E_c", rec[3], err)
	}
	sigma, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return Row{}, fieldError("E_c_err", rec[4], err)
	}
	if row.CoulombEnergy, err = measurement.New(value, sigma); err != nil {
		return Row{}, fieldError("E_c", rec[3], err)
	}

	if len(rec) == maxFields && (rec[5] != "" || rec[6] != "") {
		minus, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return Row{}, fieldError("E_c_err_minus", rec[5], err)
		}
		plus, err := strconv.ParseFloat(rec[6], 64)
		if err != nil {
			return Row{}, fieldError("E_c_err_plus", rec[6], err)
		}
		asym, err := measurement.NewAsymmetric(value, minus, plus)
		if err != nil {
			return Row{}, fieldError("E_c_err_minus/plus", rec[5]+"/"+rec[6], err)
		}
		row.Asymmetric = &asym
	}

	return row, nil
}

func fieldError(name, raw string, err error) error {
	return fmt.Errorf("%w %s=%q: %w", ErrBadField, name, raw, err)
}
