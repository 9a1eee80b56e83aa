// SPDX-License-Identifier: MIT
// Package matrix - public constructors.
//
// Purpose:
//   - Thin, intention-revealing entry points that delegate to the canonical constructors.

package matrix

// NewIdentity returns I_n (ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}
