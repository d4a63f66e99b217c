package domain

import "time"

// Interval is a half-open time window [Start, End) of an existing or
// requested reservation.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports a true overlap between the two intervals. Strict
// inequalities: windows that merely touch do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// BackToBack reports whether the two intervals touch exactly: one ends
// precisely where the other starts.
func (i Interval) BackToBack(other Interval) bool {
	return i.End.Equal(other.Start) || other.End.Equal(i.Start)
}

// Duration returns the length of the interval.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
