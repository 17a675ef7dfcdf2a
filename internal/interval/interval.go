// Package interval models half-open booking windows [Start, End).
package interval

import "time"

type Window struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the window has positive length.
func (w Window) Valid() bool {
	return w.End.After(w.Start)
}

// Overlaps reports whether a and b intersect. Ends are exclusive, so
// back-to-back windows (a.End == b.Start) do not overlap.
func Overlaps(a, b Window) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}
