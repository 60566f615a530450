package parameter

// Visual object styling
const (
	// PointRadius is the body radius of an ordinary word sphere
	PointRadius = 0.12

	// AnchorRadius is the body radius of the anchor word
	AnchorRadius = 0.22

	// MarkerRadius is the body radius of the mix-marker octahedron
	MarkerRadius = 0.18

	// GlowInnerScale and GlowOuterScale size the two highlight shells
	// relative to the body they wrap
	GlowInnerScale = 1.6
	GlowOuterScale = 2.6

	// GlowInnerOpacity and GlowOuterOpacity are the shell opacities
	// Anything at or below GlowOuterOpacity reads as a highlight-signature
	// object to the defensive sweep
	GlowInnerOpacity = 0.35
	GlowOuterOpacity = 0.12

	// LabelNearDistance and LabelFarDistance bound the label distance fade
	// Full opacity inside near, LabelMinOpacity beyond far
	LabelNearDistance = 3.0
	LabelFarDistance  = 14.0
	LabelMinOpacity   = 0.15

	// MarkerLabelOffset lifts the mix-marker label off its body
	MarkerLabelOffset = 0.3
)

// Ingestion alignment tuning
const (
	// AlignTargetRadius is the radius a re-anchored neighborhood is scaled to
	AlignTargetRadius = 4.0
)
