package render

// Palette for the word cloud
var (
	ColorAnchor   = RGB{R: 255, G: 200, B: 60}  // warm gold, focal point
	ColorNeighbor = RGB{R: 80, G: 220, B: 130}  // green, query results
	ColorPoint    = RGB{R: 110, G: 150, B: 235} // cool blue, plain vocabulary
	ColorMarker   = RGB{R: 240, G: 85, B: 200}  // magenta, current mix
	ColorLabel    = RGB{R: 210, G: 210, B: 210}
)

// Scale multiplies each channel by f, clamped to the channel range
func (c RGB) Scale(f float64) RGB {
	clamp := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 255 {
			return 255
		}
		return uint8(v)
	}
	return RGB{
		R: clamp(float64(c.R) * f),
		G: clamp(float64(c.G) * f),
		B: clamp(float64(c.B) * f),
	}
}
