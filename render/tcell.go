package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// TcellBackend draws the stage onto a terminal screen
// Terminals have no alpha channel, so opacity is simulated by scaling the
// color toward the background. Discs are filled cell regions; an octahedron
// shape renders as a diamond silhouette
type TcellBackend struct {
	screen tcell.Screen
}

func NewTcellBackend(screen tcell.Screen) *TcellBackend {
	return &TcellBackend{screen: screen}
}

func (b *TcellBackend) Size() (int, int) {
	return b.screen.Size()
}

func (b *TcellBackend) Clear() {
	b.screen.Fill(' ', tcell.StyleDefault.Background(tcell.ColorBlack))
}

func (b *TcellBackend) DrawDisc(cx, cy, radius float64, color RGB, opacity float64, shape Shape) {
	if radius < 0.3 {
		// Sub-cell: single dot so distant points stay visible
		b.setCell(int(cx), int(cy), '·', color, opacity)
		return
	}

	w, h := b.screen.Size()
	rx := radius * 2.0 // cell aspect 1:2
	ry := radius

	minX := maxInt(0, int(cx-rx-1))
	maxX := minInt(w-1, int(cx+rx+1))
	minY := maxInt(0, int(cy-ry-1))
	maxY := minInt(h-1, int(cy+ry+1))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := (float64(x) - cx) / rx
			dy := (float64(y) - cy) / ry
			var inside bool
			var edge float64
			if shape == ShapeOctahedron {
				m := math.Abs(dx) + math.Abs(dy)
				inside = m <= 1
				edge = m
			} else {
				m := dx*dx + dy*dy
				inside = m <= 1
				edge = math.Sqrt(m)
			}
			if !inside {
				continue
			}
			// Soft falloff toward the rim
			shade := 1.0 - 0.45*edge
			b.setCell(x, y, '█', color.Scale(shade), opacity)
		}
	}
}

func (b *TcellBackend) DrawText(cx, cy int, text string, color RGB, opacity float64) {
	w, h := b.screen.Size()
	if cy < 0 || cy >= h {
		return
	}
	start := cx - len(text)/2
	faded := color.Scale(opacity)
	style := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(faded.R), int32(faded.G), int32(faded.B))).
		Background(tcell.ColorBlack)
	for i, r := range text {
		x := start + i
		if x < 0 || x >= w {
			continue
		}
		b.screen.SetContent(x, cy, r, nil, style)
	}
}

func (b *TcellBackend) Flush() {
	b.screen.Show()
}

func (b *TcellBackend) setCell(x, y int, r rune, color RGB, opacity float64) {
	w, h := b.screen.Size()
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	faded := color.Scale(opacity)
	style := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(faded.R), int32(faded.G), int32(faded.B))).
		Background(tcell.ColorBlack)
	b.screen.SetContent(x, y, r, nil, style)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
