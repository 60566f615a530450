package camera

import (
	"log"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/word-orbit/core"
	"github.com/lixenwraith/word-orbit/parameter"
	"github.com/lixenwraith/word-orbit/vmath"
)

// Mode is the navigation mode
type Mode int

const (
	// ModeOrbit constrains navigation around the orbit target with a
	// minimum-approach floor on wheel movement
	ModeOrbit Mode = iota

	// ModeTranslate is unconstrained free navigation, no distance floor
	ModeTranslate
)

func (m Mode) String() string {
	if m == ModeTranslate {
		return "translate"
	}
	return "orbit"
}

// Tuning collects the externally overridable camera constants
type Tuning struct {
	DollyStep        float64
	MinOrbitDistance float64
	FOV              float64
	FitShrink        float64
	TargetAnimDur    time.Duration
}

// DefaultTuning returns the parameter-package defaults
func DefaultTuning() Tuning {
	return Tuning{
		DollyStep:        parameter.CameraDollyStep,
		MinOrbitDistance: parameter.CameraMinOrbitDistance,
		FOV:              parameter.CameraFOV,
		FitShrink:        parameter.CameraFitShrink,
		TargetAnimDur:    parameter.CameraTargetAnimDuration,
	}
}

// targetAnim interpolates only the orbit target; camera position is never
// touched so the user's framing survives selections
type targetAnim struct {
	from, to r3.Vec
	start    time.Time
}

// Camera is the navigation state machine
// Mode transitions are explicit and centrally dispatched here; they are
// never inferred from distance. Transition boundaries are the only place
// that logs
type Camera struct {
	time   core.TimeProvider
	tuning Tuning

	pos    r3.Vec
	target r3.Vec
	mode   Mode

	anim *targetAnim
}

// worldUp is the fixed vertical reference for the orbit basis
var worldUp = r3.Vec{Y: 1}

// fitDirection is the fixed diagonal a frame-to-fit places the camera along
var fitDirection = r3.Scale(1/math.Sqrt(3), r3.Vec{X: 1, Y: 1, Z: 1})

func New(tp core.TimeProvider) *Camera {
	return &Camera{
		time:   tp,
		tuning: DefaultTuning(),
		pos:    r3.Vec{Z: -parameter.CameraFitFallbackDistance},
		mode:   ModeOrbit,
	}
}

// SetTuning replaces the tuning constants, for config overrides
func (c *Camera) SetTuning(t Tuning) {
	c.tuning = t
}

func (c *Camera) Mode() Mode     { return c.mode }
func (c *Camera) Pos() r3.Vec    { return c.pos }
func (c *Camera) Target() r3.Vec { return c.target }
func (c *Camera) FOV() float64   { return c.tuning.FOV }

// Distance returns the current camera-to-target distance
func (c *Camera) Distance() float64 {
	return vmath.Dist(c.pos, c.target)
}

// Basis returns the orthonormal view basis
// Degenerates gracefully when looking straight up or down
func (c *Camera) Basis() (forward, right, up r3.Vec) {
	forward = r3.Sub(c.target, c.pos)
	if n := r3.Norm(forward); n > vmath.Epsilon {
		forward = r3.Scale(1/n, forward)
	} else {
		forward = r3.Vec{Z: 1}
	}
	right = r3.Cross(worldUp, forward)
	if n := r3.Norm(right); n > vmath.Epsilon {
		right = r3.Scale(1/n, right)
	} else {
		right = r3.Vec{X: 1}
	}
	up = r3.Cross(forward, right)
	return forward, right, up
}

// EnterTranslate switches to free navigation
// Triggered by the modifier-key / free-navigation input only
func (c *Camera) EnterTranslate() {
	if c.mode == ModeTranslate {
		return
	}
	log.Printf("camera: %s -> %s", c.mode, ModeTranslate)
	c.mode = ModeTranslate
}

// FocusOn forces orbit mode and re-centers the orbit target on pos
// Camera position is untouched; only the look-at target animates, restarting
// from the live target value so an interrupted animation never snaps back
func (c *Camera) FocusOn(pos r3.Vec) {
	if c.mode != ModeOrbit {
		log.Printf("camera: %s -> %s", c.mode, ModeOrbit)
		c.mode = ModeOrbit
	}
	c.anim = &targetAnim{
		from:  c.target,
		to:    pos,
		start: c.time.Now(),
	}
}

// Step advances the target animation one cooperative frame
func (c *Camera) Step() {
	if c.anim == nil {
		return
	}
	elapsed := c.time.Now().Sub(c.anim.start)
	t := float64(elapsed) / float64(c.tuning.TargetAnimDur)
	if t >= 1 {
		c.target = c.anim.to
		c.anim = nil
		return
	}
	c.target = vmath.Lerp(c.anim.from, c.anim.to, vmath.EaseInOutCubic(t))
}

// Animating reports whether a target animation is in flight
func (c *Camera) Animating() bool {
	return c.anim != nil
}

// Dolly moves the camera along its forward vector, one wheel tick at a time
// Positive ticks move in (toward the view direction), negative move out
// Orbit mode: moving away is always allowed; moving closer only while the
// prospective distance stays at or above the floor, otherwise the tick is a
// hard no-op. Translate mode: unconditional
func (c *Camera) Dolly(ticks int) {
	if ticks == 0 {
		return
	}
	forward, _, _ := c.Basis()
	sign := 1.0
	n := ticks
	if n < 0 {
		sign = -1
		n = -n
	}
	move := r3.Scale(sign*c.tuning.DollyStep, forward)

	for i := 0; i < n; i++ {
		next := r3.Add(c.pos, move)
		if c.mode == ModeOrbit {
			curDist := vmath.Dist(c.pos, c.target)
			newDist := vmath.Dist(next, c.target)
			if newDist <= curDist && newDist < c.tuning.MinOrbitDistance {
				return // hard stop, no oscillation
			}
		}
		c.pos = next
	}
}

// Rotate orbits the camera around the target by pointer-drag deltas
func (c *Camera) Rotate(dx, dy float64) {
	offset := r3.Sub(c.pos, c.target)
	radius := r3.Norm(offset)
	if radius < vmath.Epsilon {
		return
	}

	theta := math.Atan2(offset.X, offset.Z)
	phi := math.Asin(offset.Y / radius)

	theta += dx * parameter.CameraRotateSpeed
	phi += dy * parameter.CameraRotateSpeed

	const maxPhi = math.Pi/2 - 0.01
	phi = math.Max(-maxPhi, math.Min(maxPhi, phi))

	c.pos = r3.Add(c.target, r3.Vec{
		X: radius * math.Sin(theta) * math.Cos(phi),
		Y: radius * math.Sin(phi),
		Z: radius * math.Cos(theta) * math.Cos(phi),
	})
}

// Pan shifts camera and target together, preserving their offset
func (c *Camera) Pan(dx, dy float64) {
	_, right, up := c.Basis()
	shift := r3.Add(
		r3.Scale(-dx*parameter.CameraPanSpeed, right),
		r3.Scale(dy*parameter.CameraPanSpeed, up),
	)
	c.pos = r3.Add(c.pos, shift)
	c.target = r3.Add(c.target, shift)
}

// FrameToFit repositions the camera to frame the bounding box of a freshly
// ingested full set: camera on the fixed diagonal at a distance derived from
// the bounding radius and FOV, target at the box center
func (c *Camera) FrameToFit(b vmath.Bounds) {
	center := b.Center()
	radius := b.Radius()

	dist := parameter.CameraFitFallbackDistance
	if radius > vmath.Epsilon {
		dist = radius / math.Sin(c.tuning.FOV/2) * c.tuning.FitShrink
	}

	c.anim = nil
	c.target = center
	c.pos = r3.Add(center, r3.Scale(dist, fitDirection))
}
