// SPDX-License-Identifier: MIT

package fit

import (
	"math"

	"gonum.org/v1/gonum/optimize"
)

// point is a (slope, intercept) pair in parameter space.
type point struct{ a, b float64 }

// initialStepFactor multiplies the WLS standard error to get the first step.
const initialStepFactor = 4.0

// stepScale returns the natural length scale of a parameter: its WLS standard
// error, or a magnitude-based fallback when the variance is degenerate.
func stepScale(variance, value float64) float64 {
	if variance > 0 && isFinite(variance) {
		return math.Sqrt(variance)
	}

	return 1e-3 * math.Max(1, math.Abs(value))
}

// coordinateSearch minimises f by compass search from start.
//
// Implementation:
//   - Steps start at initialStepFactor × scale per axis.
//   - Each poll tries +/− along a, then +/− along b, and accepts the first
//     strict improvement.
//   - An unsuccessful poll halves both steps.
//   - Stops when both steps fall below tol × scale or after maxIter polls.
//
// Returns the best point found and the number of polls spent.
func coordinateSearch(f func(point) float64, start, scale point, tol float64, maxIter int) (point, int) {
	var (
		best  = start
		fBest = f(start)
		ha    = initialStepFactor * scale.a
		hb    = initialStepFactor * scale.b
		iter  int
	)
	for iter < maxIter {
		if ha < tol*scale.a && hb < tol*scale.b {
			break
		}
		iter++

		improved := false
		for _, trial := range []point{
			{best.a + ha, best.b},
			{best.a - ha, best.b},
			{best.a, best.b + hb},
			{best.a, best.b - hb},
		} {
			if v := f(trial); v < fBest {
				best, fBest, improved = trial, v, true
				break
			}
		}
		if !improved {
			ha *= 0.5
			hb *= 0.5
		}
	}

	return best, iter
}

// nelderMead minimises f with gonum's Nelder–Mead simplex, seeded with the
// start point plus one vertex offset along each axis by initialStepFactor × scale.
func nelderMead(f func(point) float64, start, scale point, tol float64, maxIter int) (point, int, error) {
	obj := func(x []float64) float64 { return f(point{x[0], x[1]}) }

	x0 := []float64{start.a, start.b}
	vertices := [][]float64{
		x0,
		{start.a + initialStepFactor*scale.a, start.b},
		{start.a, start.b + initialStepFactor*scale.b},
	}
	values := make([]float64, len(vertices))
	for i, v := range vertices {
		values[i] = obj(v)
	}

	problem := optimize.Problem{Func: obj}
	method := &optimize.NelderMead{
		InitialVertices: vertices,
		InitialValues:   values,
	}
	settings := &optimize.Settings{
		MajorIterations: maxIter,
		Converger: &optimize.FunctionConverge{
			Absolute:   tol * tol,
			Iterations: 50,
		},
	}

	res, err := optimize.Minimize(problem, x0, settings, method)
	if res == nil {
		return start, 0, err
	}
	// Hitting an iteration limit still yields a usable location; the caller
	// compares it against the start.
	return point{res.X[0], res.X[1]}, res.MajorIterations, nil
}
