package viewer

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/word-orbit/events"
	"github.com/lixenwraith/word-orbit/input"
	"github.com/lixenwraith/word-orbit/parameter"
	"github.com/lixenwraith/word-orbit/render"
)

// HandleEvent parses one terminal event and applies the resulting intents
// Must be called from the frame-loop goroutine
func (v *Viewer) HandleEvent(ev tcell.Event) {
	for _, in := range v.parser.Process(ev) {
		v.applyIntent(in)
	}
}

// Frame advances one frame: drain queued batches, resolve pending clicks,
// step the camera animation, refresh label fading and draw
func (v *Viewer) Frame() {
	if v.disposed || v.width <= 0 || v.height <= 0 {
		return
	}

	for _, ev := range v.queue.Consume() {
		v.applyQueued(ev)
	}
	for _, in := range v.parser.Expire() {
		v.applyIntent(in)
	}

	v.cam.Step()
	v.scene.UpdateLabelFade(v.cam.Pos())

	// Labels draw in screen space, so they face the camera every frame by
	// construction
	v.stage.Frame(v.view())
}

func (v *Viewer) view() render.View {
	forward, right, up := v.cam.Basis()
	return render.View{
		Pos:     v.cam.Pos(),
		Forward: forward,
		Right:   right,
		Up:      up,
		FOV:     v.cam.FOV(),
	}
}

// applyQueued merges one fetched batch, dropping superseded generations
func (v *Viewer) applyQueued(ev events.Event) {
	switch payload := ev.Payload.(type) {
	case *events.BatchArrivedPayload:
		if payload.Generation != v.generation.Load() {
			return // stale sequence, abandoned
		}
		if err := v.engine.IngestBatch(payload.Points, v.seqMode); err != nil {
			log.Printf("viewer: batch %d for %q rejected: %v", payload.BatchNum, payload.Anchor, err)
			return
		}
		v.seqMode = v.seqMode.Next()
	case *events.SequenceFailedPayload:
		if payload.Generation != v.generation.Load() {
			return
		}
		log.Printf("viewer: sequence for %q failed: %v", payload.Anchor, payload.Err)
	}
}

func (v *Viewer) applyIntent(in input.Intent) {
	switch in.Type {
	case input.IntentQuit:
		v.quit = true
	case input.IntentResize:
		v.OnViewportResize(in.X, in.Y)
	case input.IntentRotate:
		v.cam.Rotate(in.Dx, in.Dy)
	case input.IntentPan:
		v.cam.Pan(in.Dx, in.Dy)
	case input.IntentDolly:
		v.cam.Dolly(in.Ticks)
	case input.IntentFreeNav:
		v.cam.EnterTranslate()
	case input.IntentRefocus:
		if anchor := v.scene.Anchor(); anchor != "" {
			v.PointCameraAtWord(anchor)
		}
	case input.IntentHover:
		if word, ok := v.pick(in.X, in.Y); ok && v.onHover != nil {
			v.onHover(word)
		}
	case input.IntentSelect:
		word, ok := v.pick(in.X, in.Y)
		if !ok {
			return // ray-cast miss, handlers stay silent
		}
		v.PointCameraAtWord(word)
		if v.onClick != nil {
			v.onClick(word)
		}
	case input.IntentDoubleSelect:
		word, ok := v.pick(in.X, in.Y)
		if !ok {
			return
		}
		v.PointCameraAtWord(word)
		if v.onDoubleClick != nil {
			v.onDoubleClick(word)
		}
	}
}

func (v *Viewer) pick(x, y int) (string, bool) {
	return v.stage.Pick(x, y, v.view())
}

// Run owns the interactive session: one goroutine polls terminal events,
// the loop below applies them and renders at the target rate
func (v *Viewer) Run(screen tcell.Screen) {
	evCh := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(evCh)
				return
			}
			evCh <- ev
		}
	}()

	ticker := time.NewTicker(parameter.FramePeriod)
	defer ticker.Stop()

	for !v.quit && !v.disposed {
		select {
		case ev, ok := <-evCh:
			if !ok {
				return
			}
			v.HandleEvent(ev)
		case <-ticker.C:
			v.Frame()
		}
	}
}
