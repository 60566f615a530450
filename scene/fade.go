package scene

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/word-orbit/parameter"
	"github.com/lixenwraith/word-orbit/render"
	"github.com/lixenwraith/word-orbit/vmath"
)

// LabelOpacityAt returns the distance-faded label opacity for a label at
// dist from the camera: full inside the near threshold, floor beyond far,
// linear in between
func LabelOpacityAt(dist float64) float64 {
	switch {
	case dist <= parameter.LabelNearDistance:
		return 1
	case dist >= parameter.LabelFarDistance:
		return parameter.LabelMinOpacity
	default:
		t := (dist - parameter.LabelNearDistance) /
			(parameter.LabelFarDistance - parameter.LabelNearDistance)
		return 1 - t*(1-parameter.LabelMinOpacity)
	}
}

// UpdateLabelFade rescales every label's opacity against camera distance
// Called once per frame so dense far clusters don't clutter the view
func (m *Manager) UpdateLabelFade(camPos r3.Vec) {
	for _, v := range m.objects {
		opacity := LabelOpacityAt(vmath.Dist(v.Pos, camPos))
		m.stage.Mutate(v.Label, func(o *render.Object) {
			o.Opacity = opacity
		})
	}
}
