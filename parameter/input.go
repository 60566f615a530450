package parameter

import "time"

// Input handling tuning
const (
	// ClickDoubleWindow is how long a first click stays pending before it
	// resolves as a single click
	ClickDoubleWindow = 350 * time.Millisecond

	// ClickSlop is the squared cell distance within which two clicks count
	// as the same spot for double-click purposes
	ClickSlop = 4

	// PickRadius is the screen-cell radius of the pointer ray-cast cone
	PickRadius = 2.0
)

// Event queue sizing
const (
	// EventQueueSize must be a power of two (ring index masking)
	EventQueueSize = 1024
	EventQueueMask = EventQueueSize - 1
)
