package viewer

import (
	"sync/atomic"

	"github.com/lixenwraith/word-orbit/camera"
	"github.com/lixenwraith/word-orbit/core"
	"github.com/lixenwraith/word-orbit/events"
	"github.com/lixenwraith/word-orbit/ingest"
	"github.com/lixenwraith/word-orbit/input"
	"github.com/lixenwraith/word-orbit/render"
	"github.com/lixenwraith/word-orbit/scene"
)

// Viewer ties the ingestion engine, lifecycle manager and camera machine to
// one frame loop. All scene and camera mutation happens on the goroutine
// that calls HandleEvent and Frame; fetch goroutines only touch the queue
type Viewer struct {
	stage  *render.Stage
	scene  *scene.Manager
	cam    *camera.Camera
	engine *ingest.Engine
	parser *input.Machine
	queue  *events.Queue

	// generation fences off batches from superseded fetch sequences
	generation atomic.Uint64
	seqMode    ingest.Mode

	onClick       func(word string)
	onHover       func(word string)
	onDoubleClick func(word string)

	width, height int
	quit          bool
	disposed      bool
}

// New initializes a viewer drawing through backend
// Equivalent to attaching the visualization to its container
func New(backend render.Backend, tp core.TimeProvider) *Viewer {
	stage := render.NewStage(backend)
	sc := scene.NewManager(stage)
	cam := camera.New(tp)
	w, h := backend.Size()

	return &Viewer{
		stage:  stage,
		scene:  sc,
		cam:    cam,
		engine: ingest.NewEngine(sc, cam),
		parser: input.NewMachine(tp),
		queue:  events.NewQueue(),
		width:  w,
		height: h,
	}
}

// Camera exposes the navigation machine for tuning and inspection
func (v *Viewer) Camera() *camera.Camera { return v.cam }

// Scene exposes the lifecycle manager read surface
func (v *Viewer) Scene() *scene.Manager { return v.scene }

// Queue is the sink fetch goroutines deliver batches into
func (v *Viewer) Queue() *events.Queue { return v.queue }

// UpdateVisualization replaces the entire visible set and re-frames the
// camera to fit it
func (v *Viewer) UpdateVisualization(points []core.Point) error {
	return v.engine.IngestBatch(points, ingest.Full())
}

// AddWordsProgressively appends unseen words at their reported coordinates
func (v *Viewer) AddWordsProgressively(points []core.Point) error {
	return v.engine.IngestBatch(points, ingest.ProgressiveAppend())
}

// AddWordsProgressivelyAligned appends unseen words rescaled onto the
// already-placed anchor word
func (v *Viewer) AddWordsProgressivelyAligned(points []core.Point, anchorWord string) error {
	return v.engine.IngestBatch(points, ingest.ProgressiveAppendAligned(anchorWord))
}

// ClearWordObjects removes every visual object
func (v *Viewer) ClearWordObjects() {
	v.scene.ClearAll()
}

// ClearWordObjectsExcept removes everything but word and the mix marker,
// promoting word to anchor when present
func (v *Viewer) ClearWordObjectsExcept(word string) {
	v.scene.ClearAllExcept(word)
}

func (v *Viewer) SetClickHandler(fn func(word string))       { v.onClick = fn }
func (v *Viewer) SetHoverHandler(fn func(word string))       { v.onHover = fn }
func (v *Viewer) SetDoubleClickHandler(fn func(word string)) { v.onDoubleClick = fn }

// PointCameraAtWord re-centers the orbit target on word's position
// Unknown words are a no-op
func (v *Viewer) PointCameraAtWord(word string) bool {
	pos, ok := v.scene.Position(word)
	if !ok {
		return false
	}
	v.cam.FocusOn(pos)
	return true
}

// OnViewportResize records the new viewport size
// Zero-area sizes are skipped so the projection aspect never divides by zero;
// rendering resumes on the next positive-size resize
func (v *Viewer) OnViewportResize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	v.width, v.height = w, h
}

// Dispose tears the viewer down; further frames are no-ops
func (v *Viewer) Dispose() {
	if v.disposed {
		return
	}
	v.scene.ClearAll()
	v.disposed = true
}

// ShouldQuit reports whether a quit intent has been seen
func (v *Viewer) ShouldQuit() bool { return v.quit }

// BeginSequence supersedes any in-flight fetch sequence and registers the
// ingestion mode its batches will merge with. Returns the generation tag the
// fetch goroutine must stamp onto its events; batches from earlier
// generations are dropped unseen
func (v *Viewer) BeginSequence(mode ingest.Mode) uint64 {
	gen := v.generation.Add(1)
	v.seqMode = mode
	return gen
}

// Generation returns the live sequence generation
func (v *Viewer) Generation() uint64 {
	return v.generation.Load()
}
