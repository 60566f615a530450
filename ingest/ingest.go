package ingest

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/word-orbit/camera"
	"github.com/lixenwraith/word-orbit/core"
	"github.com/lixenwraith/word-orbit/parameter"
	"github.com/lixenwraith/word-orbit/scene"
	"github.com/lixenwraith/word-orbit/vmath"
)

// modeKind discriminates the ingestion variants
type modeKind int

const (
	kindFull modeKind = iota
	kindProgressive
	kindProgressiveAligned
)

// Mode selects how a batch merges into the scene
type Mode struct {
	kind   modeKind
	anchor string
}

// Full replaces the entire visible set and re-frames the camera
func Full() Mode {
	return Mode{kind: kindFull}
}

// ProgressiveAppend adds only unseen words at their reported coordinates,
// leaving existing objects and the camera alone
func ProgressiveAppend() Mode {
	return Mode{kind: kindProgressive}
}

// ProgressiveAppendAligned rescales and recenters incoming points onto the
// already-placed anchor, compensating for the coordinate producer's
// inconsistent output scale across layout runs
func ProgressiveAppendAligned(anchorWord string) Mode {
	return Mode{kind: kindProgressiveAligned, anchor: anchorWord}
}

// Next returns the mode subsequent batches of the same sequence merge with
// A full replace only clears and re-frames on its first batch; the rest of
// the stream appends
func (m Mode) Next() Mode {
	if m.kind == kindFull {
		return ProgressiveAppend()
	}
	return m
}

// Engine merges coordinate batches into the scene without visual jumps
// It never owns state of its own; the scene manager holds the object table
// and the camera is only touched on a full replace
type Engine struct {
	scene *scene.Manager
	cam   *camera.Camera
}

func NewEngine(sc *scene.Manager, cam *camera.Camera) *Engine {
	return &Engine{scene: sc, cam: cam}
}

// IngestBatch merges points per mode. An empty batch is a no-op
// Malformed records reject the whole batch before any scene mutation
func (e *Engine) IngestBatch(points []core.Point, mode Mode) error {
	if len(points) == 0 {
		return nil
	}
	for _, p := range points {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("ingest: %w", err)
		}
	}

	switch mode.kind {
	case kindFull:
		return e.ingestFull(points)
	case kindProgressive:
		return e.ingestProgressive(points)
	case kindProgressiveAligned:
		return e.ingestAligned(points, mode.anchor)
	}
	return fmt.Errorf("ingest: unknown mode %d", mode.kind)
}

func (e *Engine) ingestFull(points []core.Point) error {
	e.scene.ClearAll()
	for _, p := range points {
		if err := e.scene.CreateOrUpdate(p); err != nil {
			return err
		}
	}
	if b, ok := vmath.BoundsOf(e.scene.Positions()); ok {
		e.cam.FrameToFit(b)
	}
	return nil
}

func (e *Engine) ingestProgressive(points []core.Point) error {
	for _, p := range points {
		if e.scene.Has(p.Key()) {
			continue
		}
		if err := e.scene.CreateOrUpdate(p); err != nil {
			return err
		}
	}
	return nil
}

// ingestAligned maps the batch's own coordinate frame onto the scene:
// centroid of the non-anchor non-marker points goes to the existing anchor
// position, scaled so the farthest such point lands at AlignTargetRadius
// Falls back to a plain append when the anchor has no visual object yet
func (e *Engine) ingestAligned(points []core.Point, anchorWord string) error {
	anchorPos, ok := e.scene.Position(anchorWord)
	if !ok {
		return e.ingestProgressive(points)
	}

	cloud := make([]r3.Vec, 0, len(points))
	for _, p := range points {
		if p.Role.IsAnchor || p.Role.IsMixMarker {
			continue
		}
		cloud = append(cloud, p.Pos)
	}

	centroid := vmath.Centroid(cloud)
	maxDist := vmath.MaxDistFrom(centroid, cloud)
	scale := 1.0
	if maxDist > vmath.Epsilon {
		scale = parameter.AlignTargetRadius / maxDist
	}

	for _, p := range points {
		if e.scene.Has(p.Key()) {
			continue
		}
		p.Pos = r3.Add(r3.Scale(scale, r3.Sub(p.Pos, centroid)), anchorPos)
		if err := e.scene.CreateOrUpdate(p); err != nil {
			return err
		}
	}
	return nil
}
