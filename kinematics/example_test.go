// SPDX-License-Identifier: MIT
package kinematics_test

import (
	"fmt"

	"github.com/katalvlaran/nucrad/kinematics"
)

func ExampleSetup_ExcitationEnergy() {
	s := kinematics.DefaultSetup()
	ex, err := s.ExcitationEnergy(1000)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Ex = %.2f MeV\n", ex.Value)
	// Output:
	// Ex = 5.74 MeV
}
