package render

import "gonum.org/v1/gonum/spatial/r3"

// Handle identifies one staged object. Zero is never a valid handle
type Handle uint64

// Kind classifies a staged object
type Kind int

const (
	KindBody Kind = iota
	KindLabel
	KindGlow
)

// Shape selects the body silhouette
type Shape int

const (
	ShapeSphere Shape = iota
	ShapeOctahedron
)

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Object is the staged description of one drawable
// Glow objects carry the word of the body they wrap so the defensive sweep
// can tell an owned shell from an orphan
type Object struct {
	Kind    Kind
	Shape   Shape
	Word    string
	Text    string // label text, empty otherwise
	Pos     r3.Vec
	Radius  float64
	Color   RGB
	Opacity float64
}
