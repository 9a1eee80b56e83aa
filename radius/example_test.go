// SPDX-License-Identifier: MIT

package radius_test

import (
	"fmt"

	"github.com/katalvlaran/nucrad/measurement"
	"github.com/katalvlaran/nucrad/radius"
)

// ExampleEstimateRadius estimates the radius of the A=13 mirror pair
// (¹³C/¹³N, Z=6) from a 3.0 ± 0.1 MeV Coulomb energy.
func ExampleEstimateRadius() {
	ec, _ := measurement.New(3.0, 0.1)
	r, err := radius.EstimateRadius(ec, 6)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fm := radius.Femtometres(r)
	fmt.Printf("R = %.2f ± %.2f fm\n", fm.Value, fm.Uncertainty)
	// Output:
	// R = 3.74 ± 0.12 fm
}
