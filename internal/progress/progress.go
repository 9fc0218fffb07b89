// Package progress converts completed/possible habit counts into a
// percentage for progress bars and heat-map cells.
package progress

import "math"

// Percentage returns round(completed/total*100). total must be positive.
// completed is not clamped, so a completed count above total yields more
// than 100.
func Percentage(completed, total int) int {
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// Guarded is Percentage with the caller-side zero guard: a non-positive
// total reports 0 instead of dividing.
func Guarded(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return Percentage(completed, total)
}
