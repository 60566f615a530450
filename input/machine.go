package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/word-orbit/core"
	"github.com/lixenwraith/word-orbit/parameter"
)

// clickState is the two-phase click detector state
type clickState uint8

const (
	clickIdle    clickState = iota
	clickPending            // first click seen, waiting for a second or the timeout
)

// Machine parses tcell events into semantic Intents
// The single/double click distinction runs on an injected clock so the
// timing contract is testable without wall-clock waits: a first click goes
// Pending, a second click inside the window fires IntentDoubleSelect, and
// Expire resolves a lapsed Pending into IntentSelect
type Machine struct {
	time core.TimeProvider

	// drag tracking
	prevButtons  tcell.ButtonMask
	lastX, lastY int
	dragged      bool

	// click detector
	click          clickState
	clickX, clickY int
	clickDeadline  time.Time
}

func NewMachine(tp core.TimeProvider) *Machine {
	return &Machine{time: tp}
}

// Process parses one terminal event into zero or more intents
func (m *Machine) Process(ev tcell.Event) []Intent {
	switch e := ev.(type) {
	case *tcell.EventResize:
		w, h := e.Size()
		return []Intent{{Type: IntentResize, X: w, Y: h}}
	case *tcell.EventKey:
		return m.processKey(e)
	case *tcell.EventMouse:
		return m.processMouse(e)
	}
	return nil
}

func (m *Machine) processKey(e *tcell.EventKey) []Intent {
	switch e.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return []Intent{{Type: IntentQuit}}
	case tcell.KeyEnter:
		return []Intent{{Type: IntentRefocus}}
	case tcell.KeyRune:
		switch e.Rune() {
		case 'q':
			return []Intent{{Type: IntentQuit}}
		case 'f':
			return []Intent{{Type: IntentFreeNav}}
		}
	}
	return nil
}

func (m *Machine) processMouse(e *tcell.EventMouse) []Intent {
	x, y := e.Position()
	buttons := e.Buttons()
	var out []Intent

	// Wheel ticks arrive as transient button flags
	if buttons&tcell.WheelUp != 0 {
		out = append(out, Intent{Type: IntentDolly, Ticks: 1})
	}
	if buttons&tcell.WheelDown != 0 {
		out = append(out, Intent{Type: IntentDolly, Ticks: -1})
	}
	held := buttons &^ (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)

	switch {
	case held&tcell.Button1 != 0:
		if m.prevButtons&tcell.Button1 != 0 {
			dx, dy := float64(x-m.lastX), float64(y-m.lastY)
			if dx != 0 || dy != 0 {
				m.dragged = true
				out = append(out, Intent{Type: IntentRotate, Dx: dx, Dy: dy})
			}
		} else {
			m.dragged = false
		}
	case held&(tcell.Button2|tcell.Button3) != 0:
		if m.prevButtons&(tcell.Button2|tcell.Button3) != 0 {
			dx, dy := float64(x-m.lastX), float64(y-m.lastY)
			if dx != 0 || dy != 0 {
				m.dragged = true
				out = append(out, Intent{Type: IntentPan, Dx: dx, Dy: dy})
			}
		} else {
			m.dragged = false
		}
	case held == tcell.ButtonNone:
		if m.prevButtons&tcell.Button1 != 0 && !m.dragged {
			out = append(out, m.registerClick(x, y)...)
		} else if m.prevButtons == tcell.ButtonNone {
			out = append(out, Intent{Type: IntentHover, X: x, Y: y})
		}
	}

	m.prevButtons = held
	m.lastX, m.lastY = x, y
	return out
}

// registerClick advances the click detector on a completed press-release
func (m *Machine) registerClick(x, y int) []Intent {
	now := m.time.Now()

	if m.click == clickPending && now.Before(m.clickDeadline) {
		dx, dy := x-m.clickX, y-m.clickY
		if dx*dx+dy*dy <= parameter.ClickSlop {
			m.click = clickIdle
			return []Intent{{Type: IntentDoubleSelect, X: x, Y: y}}
		}
		// Second click landed elsewhere: the pending one resolves single,
		// this one opens a new window
		first := Intent{Type: IntentSelect, X: m.clickX, Y: m.clickY}
		m.clickX, m.clickY = x, y
		m.clickDeadline = now.Add(parameter.ClickDoubleWindow)
		return []Intent{first}
	}

	m.click = clickPending
	m.clickX, m.clickY = x, y
	m.clickDeadline = now.Add(parameter.ClickDoubleWindow)
	return nil
}

// Expire resolves a lapsed pending click into a single select
// Called once per frame by the viewer loop
func (m *Machine) Expire() []Intent {
	if m.click != clickPending {
		return nil
	}
	if m.time.Now().Before(m.clickDeadline) {
		return nil
	}
	m.click = clickIdle
	return []Intent{{Type: IntentSelect, X: m.clickX, Y: m.clickY}}
}
