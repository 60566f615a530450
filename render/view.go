package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// View is the camera description a frame is drawn from
// Forward, Right, Up form an orthonormal basis
type View struct {
	Pos     r3.Vec
	Forward r3.Vec
	Right   r3.Vec
	Up      r3.Vec
	FOV     float64 // vertical, radians
}

// nearClip rejects points at or behind the eye plane
const nearClip = 0.05

// Projected is a staged object mapped to screen space
type Projected struct {
	CX, CY float64 // screen cell center
	Radius float64 // projected radius in cells (vertical units)
	Depth  float64 // camera-space forward distance
}

// Project maps a world position into screen cells
// Terminal cells are roughly twice as tall as wide, so X is stretched 2x
// Returns false when the point is behind the near plane
func (v View) Project(p r3.Vec, radius float64, w, h int) (Projected, bool) {
	d := r3.Sub(p, v.Pos)
	z := r3.Dot(d, v.Forward)
	if z < nearClip {
		return Projected{}, false
	}
	x := r3.Dot(d, v.Right)
	y := r3.Dot(d, v.Up)

	focal := float64(h) / 2 / math.Tan(v.FOV/2)
	invZ := focal / z

	return Projected{
		CX:     float64(w)/2 + x*invZ*2.0, // 2x for terminal cell aspect 1:2
		CY:     float64(h)/2 - y*invZ,
		Radius: radius * invZ,
		Depth:  z,
	}, true
}
