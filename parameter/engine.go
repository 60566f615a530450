package parameter

import "time"

// Frame loop timing
const (
	// TargetFPS is the render loop rate; terminal output gains nothing
	// above this
	TargetFPS = 30

	FramePeriod = time.Second / TargetFPS
)
