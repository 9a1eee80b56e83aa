// SPDX-License-Identifier: MIT

// Command nucrad estimates nuclear radii and fits R against A^(1/3).
package main

import (
	"os"

	"github.com/katalvlaran/nucrad/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
