package core

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/word-orbit/vmath"
)

// MixMarkerKey is the reserved object key for the current-mix marker
// It is not a vocabulary word and never collides with one
const MixMarkerKey = "\x00current-mix"

// Role flags carried by a point record, set by the coordinate producer
type Role struct {
	IsAnchor    bool
	IsMixMarker bool
	IsNeighbor  bool
}

// Point is one record of a coordinate batch
// Immutable once received
type Point struct {
	Word string
	Pos  r3.Vec
	Role Role
}

// Key returns the object-table key for the point
// Mix markers collapse onto the reserved singleton key
func (p Point) Key() string {
	if p.Role.IsMixMarker {
		return MixMarkerKey
	}
	return p.Word
}

// Validate rejects malformed records before they can corrupt scene state
func (p Point) Validate() error {
	if p.Word == "" && !p.Role.IsMixMarker {
		return fmt.Errorf("point has empty word")
	}
	if !vmath.Valid(p.Pos) {
		return fmt.Errorf("point %q has non-finite coordinates", p.Word)
	}
	return nil
}
