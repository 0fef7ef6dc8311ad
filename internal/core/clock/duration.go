package clock

import "time"

// DurationMinutes returns the signed number of minutes from a to b
func DurationMinutes(a, b time.Time) int {
	return int(b.Sub(a) / time.Minute)
}

// DurationMinutesTOD returns the signed minutes between two times-of-day on the
// same logical shift. When isOvernight and tTo is earlier in the clock than
// tFrom, tTo is treated as falling on the next day (its minutes are offset by
// 1440) so the result stays positive across the midnight wrap
func DurationMinutesTOD(tFrom, tTo TimeOfDay, isOvernight bool) int {
	from, to := tFrom.Minutes(), tTo.Minutes()
	if isOvernight && to < from {
		to += 1440
	}
	return to - from
}

// InTimeRange reports whether t falls within the closed interval [start, end].
// When isOvernight, the range wraps midnight and is the union [start, 24:00) ∪ [00:00, end]
func InTimeRange(t, start, end TimeOfDay, isOvernight bool) bool {
	tm, sm, em := t.Minutes(), start.Minutes(), end.Minutes()
	if !isOvernight {
		return sm <= tm && tm <= em
	}
	return tm >= sm || tm <= em
}
