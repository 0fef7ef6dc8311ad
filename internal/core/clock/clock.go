// Package clock provides the business clock and zone: a deterministic source of
// UTC instants and pure conversions to/from a configured IANA business timezone
package clock

import "time"

// Clock is injectable so tests can control "now"
type Clock interface {
	NowUTC() time.Time
}

// System is the production Clock backed by the OS wall clock
type System struct{}

// NowUTC returns the current instant in UTC
func (System) NowUTC() time.Time { return time.Now().UTC() }

// Fixed is a Clock that always returns the same instant, for deterministic tests
type Fixed time.Time

// NowUTC returns the fixed instant in UTC
func (f Fixed) NowUTC() time.Time { return time.Time(f).UTC() }
