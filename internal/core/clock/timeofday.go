package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	perr "attendance/internal/platform/errors"
)

// TimeOfDay is a civil wall-clock time with second precision, unattached to any date
type TimeOfDay struct {
	Hour, Min, Sec int
}

// TimeOfDayOf extracts the civil time-of-day components from t
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay{Hour: h, Min: m, Sec: s}
}

// Minutes returns the time-of-day expressed as minutes since midnight (seconds truncated)
func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Min }

// Seconds returns the time-of-day expressed as seconds since midnight
func (t TimeOfDay) Seconds() int { return t.Hour*3600 + t.Min*60 + t.Sec }

// String renders as HH:MM:SS
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Min, t.Sec)
}

// AddMinutes returns a new TimeOfDay offset by m minutes; the result wraps around
// midnight in either direction, so it always lies within [00:00:00, 24:00:00)
func (t TimeOfDay) AddMinutes(m int) TimeOfDay {
	total := t.Seconds() + m*60
	total %= 24 * 3600
	if total < 0 {
		total += 24 * 3600
	}
	return TimeOfDay{Hour: total / 3600, Min: (total % 3600) / 60, Sec: total % 60}
}

// ParseTimeOfDay parses "HH:MM:SS" or "HH:MM"; malformed input is BadInput
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeOfDay{}, perr.InvalidArgf("malformed time of day %q", s)
	}
	vals := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return TimeOfDay{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "malformed time of day %q", s)
		}
		vals[i] = n
	}
	h, m, sec := vals[0], vals[1], vals[2]
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return TimeOfDay{}, perr.InvalidArgf("time of day %q out of range", s)
	}
	return TimeOfDay{Hour: h, Min: m, Sec: sec}, nil
}
