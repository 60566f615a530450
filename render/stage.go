package render

import (
	"math"
	"sort"

	"github.com/lixenwraith/word-orbit/parameter"
)

// Backend is the drawing surface a Stage flushes each frame to
// Implementations draw in already-projected screen cells; depth ordering
// and styling decisions stay on the Stage
type Backend interface {
	Size() (w, h int)
	Clear()
	DrawDisc(cx, cy, radius float64, color RGB, opacity float64, shape Shape)
	DrawText(cx, cy int, text string, color RGB, opacity float64)
	Flush()
}

// Stage owns every staged object and draws them back-to-front
// Single-threaded: all mutation happens on the frame loop
type Stage struct {
	seq     Handle
	objects map[Handle]*Object
	backend Backend
}

func NewStage(backend Backend) *Stage {
	return &Stage{
		objects: make(map[Handle]*Object),
		backend: backend,
	}
}

// Add stages obj and returns its handle
func (s *Stage) Add(obj Object) Handle {
	s.seq++
	h := s.seq
	copied := obj
	s.objects[h] = &copied
	return h
}

// Remove drops the object; unknown handles are ignored
func (s *Stage) Remove(h Handle) {
	delete(s.objects, h)
}

// Get returns a copy of the staged object
func (s *Stage) Get(h Handle) (Object, bool) {
	if o, ok := s.objects[h]; ok {
		return *o, true
	}
	return Object{}, false
}

// Mutate applies fn to the staged object in place
func (s *Stage) Mutate(h Handle, fn func(*Object)) bool {
	o, ok := s.objects[h]
	if !ok {
		return false
	}
	fn(o)
	return true
}

// Scan visits every staged object. Return false from fn to stop early
// The visit order is unspecified
func (s *Stage) Scan(fn func(Handle, Object) bool) {
	for h, o := range s.objects {
		if !fn(h, *o) {
			return
		}
	}
}

// Count returns the number of staged objects
func (s *Stage) Count() int {
	return len(s.objects)
}

// Pick resolves a pointer position to the word of the front-most body
// within the pick radius. Misses return ok=false
func (s *Stage) Pick(px, py int, view View) (string, bool) {
	w, h := s.backend.Size()
	if w <= 0 || h <= 0 {
		return "", false
	}

	bestWord := ""
	bestDepth := math.Inf(1)
	found := false

	for _, o := range s.objects {
		if o.Kind != KindBody {
			continue
		}
		proj, ok := view.Project(o.Pos, o.Radius, w, h)
		if !ok {
			continue
		}
		hitR := math.Max(proj.Radius*2, parameter.PickRadius)
		dx := (float64(px) - proj.CX) / 2 // undo cell aspect stretch
		dy := float64(py) - proj.CY
		if dx*dx+dy*dy > hitR*hitR {
			continue
		}
		if proj.Depth < bestDepth {
			bestDepth = proj.Depth
			bestWord = o.Word
			found = true
		}
	}
	return bestWord, found
}

type drawItem struct {
	obj  *Object
	proj Projected
}

// Frame draws all staged objects through the backend, back to front
// Labels are drawn in screen space, which keeps them camera-facing by
// construction; their opacity has already been set by the lifecycle manager
func (s *Stage) Frame(view View) {
	w, h := s.backend.Size()
	if w <= 0 || h <= 0 {
		return
	}
	s.backend.Clear()

	items := make([]drawItem, 0, len(s.objects))
	for _, o := range s.objects {
		radius := o.Radius
		if o.Kind == KindLabel {
			radius = 0
		}
		proj, ok := view.Project(o.Pos, radius, w, h)
		if !ok {
			continue
		}
		items = append(items, drawItem{obj: o, proj: proj})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].proj.Depth > items[j].proj.Depth
	})

	for _, it := range items {
		o := it.obj
		switch o.Kind {
		case KindBody, KindGlow:
			s.backend.DrawDisc(it.proj.CX, it.proj.CY, it.proj.Radius, o.Color, o.Opacity, o.Shape)
		case KindLabel:
			s.backend.DrawText(int(it.proj.CX), int(it.proj.CY), o.Text, o.Color, o.Opacity)
		}
	}
	s.backend.Flush()
}
