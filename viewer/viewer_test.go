package viewer

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/word-orbit/camera"
	"github.com/lixenwraith/word-orbit/core"
	"github.com/lixenwraith/word-orbit/events"
	"github.com/lixenwraith/word-orbit/ingest"
	"github.com/lixenwraith/word-orbit/parameter"
	"github.com/lixenwraith/word-orbit/render"
	"github.com/lixenwraith/word-orbit/vmath"
)

func newTestViewer() (*Viewer, *core.MockTimeProvider) {
	tp := core.NewMockTimeProvider(time.Unix(0, 0))
	return New(render.NewNullBackend(80, 40), tp), tp
}

func anchorPoint(word string, pos r3.Vec) core.Point {
	return core.Point{Word: word, Pos: pos, Role: core.Role{IsAnchor: true}}
}

func neighborPoint(word string, pos r3.Vec) core.Point {
	return core.Point{Word: word, Pos: pos, Role: core.Role{IsNeighbor: true}}
}

func TestFullIngestScenario(t *testing.T) {
	v, _ := newTestViewer()

	batch := []core.Point{
		anchorPoint("king", r3.Vec{X: -2}),
		neighborPoint("queen", r3.Vec{X: 2}),
		neighborPoint("prince", r3.Vec{Y: 2}),
	}
	if err := v.UpdateVisualization(batch); err != nil {
		t.Fatal(err)
	}

	if v.Scene().Count() != 3 {
		t.Errorf("Count = %d, want 3", v.Scene().Count())
	}
	b, _ := vmath.BoundsOf([]r3.Vec{{X: -2}, {X: 2}, {Y: 2}})
	if vmath.Dist(v.Camera().Target(), b.Center()) > 1e-9 {
		t.Errorf("camera target = %v, want box center %v", v.Camera().Target(), b.Center())
	}
	if v.Scene().Anchor() != "king" {
		t.Errorf("anchor = %q, want king", v.Scene().Anchor())
	}
}

func TestClearExceptUnknownWordFallsBack(t *testing.T) {
	v, _ := newTestViewer()

	v.UpdateVisualization([]core.Point{
		anchorPoint("king", r3.Vec{X: -2}),
		neighborPoint("rook", r3.Vec{X: 2}),
	})

	// "queen" has no visual object yet: everything goes, no anchor remains
	v.ClearWordObjectsExcept("queen")
	if v.Scene().Count() != 0 {
		t.Fatalf("Count = %d after clear-except-unknown, want 0", v.Scene().Count())
	}
	if v.Scene().Anchor() != "" {
		t.Errorf("anchor = %q, want none", v.Scene().Anchor())
	}

	// The aligned re-append cannot find the anchor either and falls back to
	// plain append at reported coordinates
	batch := []core.Point{neighborPoint("queen", r3.Vec{X: 7})}
	if err := v.AddWordsProgressivelyAligned(batch, "queen"); err != nil {
		t.Fatal(err)
	}
	pos, ok := v.Scene().Position("queen")
	if !ok || pos.X != 7 {
		t.Errorf("fallback position = %v ok=%v, want reported coordinates", pos, ok)
	}
	if v.Scene().Anchor() != "" {
		t.Error("anchor appeared without explicit anchor styling")
	}
}

// doubleClickAt synthesizes two quick press-release pairs at a cell
func doubleClickAt(v *Viewer, tp *core.MockTimeProvider, x, y int) {
	for i := 0; i < 2; i++ {
		v.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
		v.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
		tp.Advance(parameter.ClickDoubleWindow / 4)
	}
}

func TestDoubleSelectInTranslateMode(t *testing.T) {
	v, tp := newTestViewer()

	// Queen sits at +X of the origin-framed view
	v.AddWordsProgressively([]core.Point{neighborPoint("queen", r3.Vec{X: 2})})

	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone))
	if v.Camera().Mode() != camera.ModeTranslate {
		t.Fatal("free-nav key did not enter translate mode")
	}

	var selected string
	v.SetDoubleClickHandler(func(word string) { selected = word })

	// Project queen through the current view to find her screen cell
	forward, right, up := v.Camera().Basis()
	view := render.View{Pos: v.Camera().Pos(), Forward: forward, Right: right, Up: up, FOV: v.Camera().FOV()}
	proj, ok := view.Project(r3.Vec{X: 2}, 0.12, 80, 40)
	if !ok {
		t.Fatal("queen not projectable in test view")
	}

	posBefore := v.Camera().Pos()
	doubleClickAt(v, tp, int(proj.CX), int(proj.CY))

	if selected != "queen" {
		t.Fatalf("double-click handler got %q, want queen", selected)
	}
	if v.Camera().Mode() != camera.ModeOrbit {
		t.Error("double select did not force orbit mode")
	}

	// Target animates to the word, camera position stays fixed throughout
	for i := 0; i < 30; i++ {
		tp.Advance(parameter.CameraTargetAnimDuration / 20)
		v.Frame()
		if vmath.Dist(v.Camera().Pos(), posBefore) > 1e-12 {
			t.Fatal("camera moved during target-only animation")
		}
	}
	if vmath.Dist(v.Camera().Target(), r3.Vec{X: 2}) > 1e-9 {
		t.Errorf("target = %v after animation, want queen position", v.Camera().Target())
	}
}

func TestSingleSelectMissIsNoop(t *testing.T) {
	v, tp := newTestViewer()
	v.AddWordsProgressively([]core.Point{neighborPoint("queen", r3.Vec{X: 2})})

	fired := false
	v.SetClickHandler(func(string) { fired = true })

	// Click a corner far from any body, then let the window lapse
	v.HandleEvent(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))
	tp.Advance(parameter.ClickDoubleWindow * 2)
	v.Frame()

	if fired {
		t.Error("click handler fired on a ray-cast miss")
	}
}

func TestStaleGenerationDropped(t *testing.T) {
	v, _ := newTestViewer()

	oldGen := v.BeginSequence(ingest.ProgressiveAppend())
	newGen := v.BeginSequence(ingest.ProgressiveAppend())
	if newGen <= oldGen {
		t.Fatal("generations not monotonic")
	}

	v.Queue().Push(events.Event{Type: events.EventBatchArrived, Payload: &events.BatchArrivedPayload{
		Generation: oldGen,
		Anchor:     "king",
		Points:     []core.Point{neighborPoint("stale", r3.Vec{})},
	}})
	v.Frame()
	if v.Scene().Has("stale") {
		t.Error("batch from superseded generation was merged")
	}

	v.Queue().Push(events.Event{Type: events.EventBatchArrived, Payload: &events.BatchArrivedPayload{
		Generation: newGen,
		Anchor:     "king",
		Points:     []core.Point{neighborPoint("fresh", r3.Vec{})},
	}})
	v.Frame()
	if !v.Scene().Has("fresh") {
		t.Error("batch from live generation was dropped")
	}
}

func TestFullSequenceClearsOnceThenStreams(t *testing.T) {
	v, _ := newTestViewer()
	v.AddWordsProgressively([]core.Point{neighborPoint("leftover", r3.Vec{X: 9})})

	gen := v.BeginSequence(ingest.Full())
	v.Queue().Push(events.Event{Type: events.EventBatchArrived, Payload: &events.BatchArrivedPayload{
		Generation: gen,
		BatchNum:   0,
		Points:     []core.Point{anchorPoint("king", r3.Vec{}), neighborPoint("queen", r3.Vec{X: 1})},
	}})
	v.Queue().Push(events.Event{Type: events.EventBatchArrived, Payload: &events.BatchArrivedPayload{
		Generation: gen,
		BatchNum:   1,
		Points:     []core.Point{neighborPoint("prince", r3.Vec{X: -1})},
		IsComplete: true,
	}})
	v.Frame()

	if v.Scene().Has("leftover") {
		t.Error("full sequence did not clear the previous set")
	}
	for _, w := range []string{"king", "queen", "prince"} {
		if !v.Scene().Has(w) {
			t.Errorf("word %q missing after streamed full sequence", w)
		}
	}
}

func TestRefocusOnAnchor(t *testing.T) {
	v, _ := newTestViewer()
	v.UpdateVisualization([]core.Point{
		anchorPoint("king", r3.Vec{X: 3}),
		neighborPoint("queen", r3.Vec{X: -3}),
	})
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone))

	v.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if v.Camera().Mode() != camera.ModeOrbit {
		t.Error("refocus did not return to orbit mode")
	}
	if !v.Camera().Animating() {
		t.Error("refocus did not start a target animation")
	}
}

func TestZeroAreaResizeSkipped(t *testing.T) {
	v, _ := newTestViewer()
	v.OnViewportResize(0, 0)
	if v.width == 0 || v.height == 0 {
		t.Error("zero-area resize was applied")
	}
	v.OnViewportResize(100, 50)
	if v.width != 100 || v.height != 50 {
		t.Error("positive resize was skipped")
	}
}

func TestDispose(t *testing.T) {
	v, _ := newTestViewer()
	v.AddWordsProgressively([]core.Point{neighborPoint("queen", r3.Vec{})})

	v.Dispose()
	if v.Scene().Count() != 0 {
		t.Error("Dispose left objects staged")
	}
	// Further frames are harmless no-ops
	v.Frame()
}

func TestQuitIntent(t *testing.T) {
	v, _ := newTestViewer()
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	if !v.ShouldQuit() {
		t.Error("quit key ignored")
	}
}
