package client

// ProgressLevel classifies how a day's consumption compares to its goal.
type ProgressLevel string

const (
	ProgressUnder    ProgressLevel = "under"
	ProgressOnTarget ProgressLevel = "on-target"
	ProgressOver     ProgressLevel = "over"
)

// ProgressPercent is consumed over goal as a percentage. A missing or zero
// goal reads as no progress rather than dividing by zero.
func ProgressPercent(consumed float64, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return consumed / goal * 100
}

// ClassifyProgress treats 90-110% inclusive as on target.
func ClassifyProgress(percent float64) ProgressLevel {
	switch {
	case percent > 110:
		return ProgressOver
	case percent >= 90:
		return ProgressOnTarget
	default:
		return ProgressUnder
	}
}

// ProgressBarWidth caps the rendered bar at 100 even when consumption
// overshoots the goal.
func ProgressBarWidth(percent float64) float64 {
	if percent > 100 {
		return 100
	}
	if percent < 0 {
		return 0
	}
	return percent
}
