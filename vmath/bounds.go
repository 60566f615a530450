package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Bounds is an axis-aligned bounding box
type Bounds struct {
	Min, Max r3.Vec
}

// BoundsOf returns the AABB enclosing pts and whether any point was seen
func BoundsOf(pts []r3.Vec) (Bounds, bool) {
	if len(pts) == 0 {
		return Bounds{}, false
	}
	b := Bounds{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Min.Z = math.Min(b.Min.Z, p.Z)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
		b.Max.Z = math.Max(b.Max.Z, p.Z)
	}
	return b, true
}

// Center returns the box midpoint
func (b Bounds) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Radius returns the distance from center to a corner
// The tightest sphere guaranteed to enclose the box
func (b Bounds) Radius() float64 {
	return 0.5 * r3.Norm(r3.Sub(b.Max, b.Min))
}
