package scene

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/word-orbit/core"
	"github.com/lixenwraith/word-orbit/parameter"
	"github.com/lixenwraith/word-orbit/render"
)

// MarkerText labels the current-mix marker
const MarkerText = "CURRENT MIX"

// Visual is one word's on-screen representation: body plus label, and for
// neighbor-role words a two-layer glow shell. Handles are stage-owned
type Visual struct {
	Word      string
	Body      render.Handle
	Label     render.Handle
	GlowInner render.Handle // 0 when the word has no glow
	GlowOuter render.Handle
	Pos       r3.Vec
	Role      core.Role
}

// Manager owns the word→visual table and the current anchor word
// All other components read visual state through its methods; nothing else
// mutates the table, which keeps the single-anchor and no-orphan-glow
// invariants enforceable in one place
type Manager struct {
	stage   *render.Stage
	objects map[string]*Visual
	anchor  string
}

func NewManager(stage *render.Stage) *Manager {
	return &Manager{
		stage:   stage,
		objects: make(map[string]*Visual),
	}
}

// Anchor returns the current anchor word, empty when none is styled
func (m *Manager) Anchor() string {
	return m.anchor
}

// Has reports whether key has a visual object
func (m *Manager) Has(key string) bool {
	_, ok := m.objects[key]
	return ok
}

// Position returns the placed position of key
func (m *Manager) Position(key string) (r3.Vec, bool) {
	v, ok := m.objects[key]
	if !ok {
		return r3.Vec{}, false
	}
	return v.Pos, true
}

// Get returns the visual for key
func (m *Manager) Get(key string) (Visual, bool) {
	v, ok := m.objects[key]
	if !ok {
		return Visual{}, false
	}
	return *v, true
}

// Count returns the number of visual objects, the mix marker included
func (m *Manager) Count() int {
	return len(m.objects)
}

// Positions returns the placed position of every visual object
func (m *Manager) Positions() []r3.Vec {
	out := make([]r3.Vec, 0, len(m.objects))
	for _, v := range m.objects {
		out = append(out, v.Pos)
	}
	return out
}

// CreateOrUpdate instantiates the visual for a point not yet present
// Re-ingesting an existing key is an idempotent no-op. Anchor-role points
// demote any previous anchor atomically; neighbor-role points get the
// two-layer glow; the mix marker gets its reserved shape and offset label
func (m *Manager) CreateOrUpdate(p core.Point) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("reject point: %w", err)
	}
	key := p.Key()
	if _, ok := m.objects[key]; ok {
		return nil
	}

	switch {
	case p.Role.IsMixMarker:
		m.createMarker(p)
	case p.Role.IsAnchor:
		m.demoteAnchor()
		m.createAnchor(p)
	default:
		m.createPoint(p)
	}
	return nil
}

func (m *Manager) createMarker(p core.Point) {
	v := &Visual{Word: core.MixMarkerKey, Pos: p.Pos, Role: p.Role}
	v.Body = m.stage.Add(render.Object{
		Kind:    render.KindBody,
		Shape:   render.ShapeOctahedron,
		Word:    core.MixMarkerKey,
		Pos:     p.Pos,
		Radius:  parameter.MarkerRadius,
		Color:   render.ColorMarker,
		Opacity: 1,
	})
	labelPos := r3.Add(p.Pos, r3.Vec{Y: parameter.MarkerLabelOffset})
	v.Label = m.stage.Add(render.Object{
		Kind:    render.KindLabel,
		Word:    core.MixMarkerKey,
		Text:    MarkerText,
		Pos:     labelPos,
		Color:   render.ColorMarker,
		Opacity: 1,
	})
	v.GlowInner, v.GlowOuter = m.addGlow(core.MixMarkerKey, p.Pos, parameter.MarkerRadius, render.ColorMarker)
	m.objects[core.MixMarkerKey] = v
}

func (m *Manager) createAnchor(p core.Point) {
	v := &Visual{Word: p.Word, Pos: p.Pos, Role: p.Role}
	v.Body = m.stage.Add(render.Object{
		Kind:    render.KindBody,
		Shape:   render.ShapeSphere,
		Word:    p.Word,
		Pos:     p.Pos,
		Radius:  parameter.AnchorRadius,
		Color:   render.ColorAnchor,
		Opacity: 1,
	})
	v.Label = m.stage.Add(render.Object{
		Kind:    render.KindLabel,
		Word:    p.Word,
		Text:    p.Word,
		Pos:     p.Pos,
		Color:   render.ColorAnchor,
		Opacity: 1,
	})
	m.objects[p.Word] = v
	m.anchor = p.Word
}

func (m *Manager) createPoint(p core.Point) {
	color := render.ColorPoint
	if p.Role.IsNeighbor {
		color = render.ColorNeighbor
	}
	v := &Visual{Word: p.Word, Pos: p.Pos, Role: p.Role}
	v.Body = m.stage.Add(render.Object{
		Kind:    render.KindBody,
		Shape:   render.ShapeSphere,
		Word:    p.Word,
		Pos:     p.Pos,
		Radius:  parameter.PointRadius,
		Color:   color,
		Opacity: 1,
	})
	v.Label = m.stage.Add(render.Object{
		Kind:    render.KindLabel,
		Word:    p.Word,
		Text:    p.Word,
		Pos:     p.Pos,
		Color:   render.ColorLabel,
		Opacity: 1,
	})
	if p.Role.IsNeighbor {
		v.GlowInner, v.GlowOuter = m.addGlow(p.Word, p.Pos, parameter.PointRadius, render.ColorNeighbor)
	}
	m.objects[p.Word] = v
}

// addGlow stages the inner-bright outer-faint shell pair around a body
func (m *Manager) addGlow(word string, pos r3.Vec, bodyRadius float64, color render.RGB) (inner, outer render.Handle) {
	inner = m.stage.Add(render.Object{
		Kind:    render.KindGlow,
		Shape:   render.ShapeSphere,
		Word:    word,
		Pos:     pos,
		Radius:  bodyRadius * parameter.GlowInnerScale,
		Color:   color,
		Opacity: parameter.GlowInnerOpacity,
	})
	outer = m.stage.Add(render.Object{
		Kind:    render.KindGlow,
		Shape:   render.ShapeSphere,
		Word:    word,
		Pos:     pos,
		Radius:  bodyRadius * parameter.GlowOuterScale,
		Color:   color,
		Opacity: parameter.GlowOuterOpacity,
	})
	return inner, outer
}

// demoteAnchor strips anchor styling off the current anchor, if any
// The object stays in place as a plain vocabulary point
func (m *Manager) demoteAnchor() {
	if m.anchor == "" {
		return
	}
	v, ok := m.objects[m.anchor]
	m.anchor = ""
	if !ok {
		return
	}
	m.stripGlow(v)
	m.stage.Mutate(v.Body, func(o *render.Object) {
		o.Radius = parameter.PointRadius
		o.Color = render.ColorPoint
	})
	m.stage.Mutate(v.Label, func(o *render.Object) {
		o.Color = render.ColorLabel
	})
	v.Role.IsAnchor = false
}

func (m *Manager) stripGlow(v *Visual) {
	if v.GlowInner != 0 {
		m.stage.Remove(v.GlowInner)
		v.GlowInner = 0
	}
	if v.GlowOuter != 0 {
		m.stage.Remove(v.GlowOuter)
		v.GlowOuter = 0
	}
}

func (m *Manager) removeVisual(v *Visual) {
	m.stage.Remove(v.Body)
	m.stage.Remove(v.Label)
	m.stripGlow(v)
	delete(m.objects, v.Word)
}

// ClearAll removes every visual object, then sweeps the stage for stray
// highlight effects that escaped the table
func (m *Manager) ClearAll() {
	for _, v := range m.objects {
		m.removeVisual(v)
	}
	m.anchor = ""
	m.SweepOrphanGlows()
}

// ClearAllExcept removes everything but word and the mix marker
// When word is present its glow is stripped and it is restyled as the new
// anchor in place; its label is regenerated in anchor color. When word is
// absent no anchor exists afterwards
func (m *Manager) ClearAllExcept(word string) {
	for key, v := range m.objects {
		if key == word || key == core.MixMarkerKey {
			continue
		}
		m.removeVisual(v)
	}

	kept, ok := m.objects[word]
	if !ok {
		m.anchor = ""
		m.SweepOrphanGlows()
		return
	}

	m.stripGlow(kept)
	m.stage.Mutate(kept.Body, func(o *render.Object) {
		o.Radius = parameter.AnchorRadius
		o.Color = render.ColorAnchor
	})
	m.stage.Remove(kept.Label)
	kept.Label = m.stage.Add(render.Object{
		Kind:    render.KindLabel,
		Word:    word,
		Text:    word,
		Pos:     kept.Pos,
		Color:   render.ColorAnchor,
		Opacity: 1,
	})
	kept.Role.IsAnchor = true
	kept.Role.IsNeighbor = false
	m.anchor = word
	m.SweepOrphanGlows()
}

// SweepOrphanGlows is the defensive backstop: scan the whole stage for
// highlight-signature objects whose owner is gone or no longer glows, and
// remove them. The primary removal path must already be correct; this
// exists so a bookkeeping desync can never leave halos floating in space
// Returns the number of strays removed
func (m *Manager) SweepOrphanGlows() int {
	var strays []render.Handle
	m.stage.Scan(func(h render.Handle, o render.Object) bool {
		if o.Kind != render.KindGlow {
			return true
		}
		owner, ok := m.objects[o.Word]
		if ok && (owner.GlowInner == h || owner.GlowOuter == h) {
			return true
		}
		strays = append(strays, h)
		return true
	})
	for _, h := range strays {
		m.stage.Remove(h)
	}
	return len(strays)
}
