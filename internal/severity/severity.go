package severity

import "math"

// Level is a discrete severity bucket derived from a numeric score.
type Level string

const (
	Critical Level = "critical"
	High     Level = "high"
	Medium   Level = "medium"
	Low      Level = "low"
	Info     Level = "info"
)

// Breakpoints for Classify. Each level covers [breakpoint, next) within [0,100].
const (
	criticalMin = 85
	highMin     = 65
	mediumMin   = 40
	lowMin      = 15
)

// Clamp forces a score into [0,100]. Non-finite input becomes 0.
func Clamp(score float64) float64 {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Classify maps a score to its severity level. The input is clamped first,
// so every finite score maps to exactly one level.
func Classify(score float64) Level {
	s := Clamp(score)
	switch {
	case s >= criticalMin:
		return Critical
	case s >= highMin:
		return High
	case s >= mediumMin:
		return Medium
	case s >= lowMin:
		return Low
	default:
		return Info
	}
}

// Rank orders levels for sorting, highest severity first.
func Rank(l Level) int {
	switch l {
	case Critical:
		return 4
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	default:
		return 0
	}
}

// Levels lists all levels in descending severity order.
func Levels() []Level {
	return []Level{Critical, High, Medium, Low, Info}
}

// Parse returns the level matching s, or Info and false when unknown.
func Parse(s string) (Level, bool) {
	switch Level(s) {
	case Critical, High, Medium, Low, Info:
		return Level(s), true
	}
	return Info, false
}
