package render

// NullBackend discards all drawing. Used by tests and the probe command,
// where the scene graph matters but no terminal is attached
type NullBackend struct {
	W, H int
}

func NewNullBackend(w, h int) *NullBackend {
	return &NullBackend{W: w, H: h}
}

func (b *NullBackend) Size() (int, int) { return b.W, b.H }

func (b *NullBackend) Clear() {}

func (b *NullBackend) DrawDisc(cx, cy, radius float64, color RGB, opacity float64, shape Shape) {}

func (b *NullBackend) DrawText(cx, cy int, text string, color RGB, opacity float64) {}

func (b *NullBackend) Flush() {}
