// SPDX-License-Identifier: MIT

package measurement

import "errors"

// Sentinel errors. Call sites wrap them with fmt.Errorf("Op: %w", ErrX) so that
// errors.Is keeps matching.
var (
	// ErrNaNInf signals a NaN or ±Inf nominal value or uncertainty.
	ErrNaNInf = errors.New("measurement: NaN or Inf encountered")

	// ErrNegativeUncertainty signals a negative standard deviation or split side.
	ErrNegativeUncertainty = errors.New("measurement: uncertainty must be non-negative")

	// ErrZeroValue signals a reciprocal or division with a zero nominal value.
	ErrZeroValue = errors.New("measurement: zero nominal value")
)
