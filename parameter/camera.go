package parameter

import "time"

// Camera navigation tuning
const (
	// CameraMinOrbitDistance is the hard floor on wheel approach in orbit mode
	// A dolly-in tick that would land closer than this is discarded
	CameraMinOrbitDistance = 0.2

	// CameraDollyStep is the distance moved along the forward vector per wheel tick
	CameraDollyStep = 0.6

	// CameraFOV is the vertical field of view in radians
	CameraFOV = 1.0472 // 60 degrees

	// CameraFitShrink pulls the frame-to-fit distance in slightly so the
	// cloud fills the viewport instead of floating in margin
	CameraFitShrink = 0.85

	// CameraFitFallbackDistance is used when a batch has zero spatial extent
	CameraFitFallbackDistance = 10.0

	// CameraTargetAnimDuration is the orbit-target re-focus animation length
	CameraTargetAnimDuration = 600 * time.Millisecond

	// CameraRotateSpeed converts pointer-drag cells to radians
	CameraRotateSpeed = 0.02

	// CameraPanSpeed converts pointer-drag cells to world units
	CameraPanSpeed = 0.05
)
