package clock

import (
	"time"

	perr "attendance/internal/platform/errors"
)

// Zone wraps an IANA timezone and provides pure conversions between UTC instants
// and the zone's civil calendar. Go's stdlib tzdata is the only timezone
// implementation anywhere in scope here, so this deliberately does not wrap a
// third-party zone library
type Zone struct {
	loc *time.Location
}

// NewZone loads an IANA zone by name (e.g. "Asia/Dhaka"); invalid names are BadInput
func NewZone(name string) (Zone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "unknown IANA zone %q", name)
	}
	return Zone{loc: loc}, nil
}

// MustZone loads a zone and panics on failure; intended for config bootstrap only
func MustZone(name string) Zone {
	z, err := NewZone(name)
	if err != nil {
		panic(err)
	}
	return z
}

// Location exposes the underlying *time.Location
func (z Zone) Location() *time.Location {
	if z.loc == nil {
		return time.UTC
	}
	return z.loc
}

// BusinessDate converts a UTC instant to the zone's civil calendar date
func (z Zone) BusinessDate(utc time.Time) Date {
	return DateOf(utc.In(z.Location()))
}

// BusinessTime converts a UTC instant to the zone's civil time-of-day
func (z Zone) BusinessTime(utc time.Time) TimeOfDay {
	return TimeOfDayOf(utc.In(z.Location()))
}

// BusinessDayStart returns the UTC instant corresponding to 00:00:00 of the
// given business date in this zone
func (z Zone) BusinessDayStart(d Date) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, z.Location()).UTC()
}
