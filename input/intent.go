package input

// IntentType discriminates semantic actions parsed from terminal events
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System
	IntentQuit   // Ctrl+C, q, ESC
	IntentResize // terminal resize event

	// Camera navigation
	IntentRotate  // primary-button drag
	IntentPan     // secondary/middle-button drag
	IntentDolly   // wheel ticks along the forward vector
	IntentFreeNav // explicit switch into translate navigation
	IntentRefocus // re-center on the current anchor word

	// Pointer selection
	IntentHover        // movement with no button held
	IntentSelect       // resolved single click
	IntentDoubleSelect // resolved double click
)

// Intent is one parsed input action
type Intent struct {
	Type   IntentType
	Dx, Dy float64 // drag deltas, rotate/pan
	Ticks  int     // wheel ticks, dolly; positive = toward view direction
	X, Y   int     // pointer cell, hover/select
}
