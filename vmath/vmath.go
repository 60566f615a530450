package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon below which a distance is treated as degenerate (coincident points)
const Epsilon = 1e-9

// Lerp returns a + (b-a)*t component-wise. t outside [0,1] extrapolates
func Lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// EaseInOutCubic maps linear progress t in [0,1] to a cubic S-curve
// Slow start, slow finish. Input is clamped
func EaseInOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// Centroid returns the component-wise mean of pts
// Zero vector for an empty slice
func Centroid(pts []r3.Vec) r3.Vec {
	if len(pts) == 0 {
		return r3.Vec{}
	}
	var sum r3.Vec
	for _, p := range pts {
		sum = r3.Add(sum, p)
	}
	return r3.Scale(1/float64(len(pts)), sum)
}

// MaxDistFrom returns the largest Euclidean distance from origin to any point
func MaxDistFrom(origin r3.Vec, pts []r3.Vec) float64 {
	max := 0.0
	for _, p := range pts {
		if d := r3.Norm(r3.Sub(p, origin)); d > max {
			max = d
		}
	}
	return max
}

// Dist returns the Euclidean distance between a and b
func Dist(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// Valid reports whether every component of v is a finite number
func Valid(v r3.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}
