package clock

import (
	"testing"
	"time"
)

func TestZone_BusinessDateAndTime_RoundTrip(t *testing.T) {
	t.Parallel()
	z := MustZone("Asia/Dhaka")
	d := Date{Year: 2024, Month: 1, Day: 15}
	start := z.BusinessDayStart(d)

	if got := z.BusinessDate(start); got != d {
		t.Fatalf("BusinessDate(BusinessDayStart(d)) = %v, want %v", got, d)
	}
	if got := z.BusinessTime(start); got != (TimeOfDay{0, 0, 0}) {
		t.Fatalf("BusinessTime(BusinessDayStart(d)) = %v, want 00:00:00", got)
	}
}

func TestZone_BusinessTime_OffsetApplied(t *testing.T) {
	t.Parallel()
	z := MustZone("Asia/Dhaka") // UTC+06:00
	utc := time.Date(2024, 1, 15, 3, 5, 0, 0, time.UTC)
	got := z.BusinessTime(utc)
	want := TimeOfDay{Hour: 9, Min: 5, Sec: 0}
	if got != want {
		t.Fatalf("BusinessTime = %v, want %v", got, want)
	}
}

func TestDurationMinutes_Signed(t *testing.T) {
	t.Parallel()
	a := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 1, 9, 20, 0, 0, time.UTC)
	if got := DurationMinutes(a, b); got != 20 {
		t.Fatalf("DurationMinutes(a,b) = %d, want 20", got)
	}
	if got := DurationMinutes(b, a); got != -20 {
		t.Fatalf("DurationMinutes(b,a) = %d, want -20", got)
	}
}

func TestDurationMinutesTOD_Overnight(t *testing.T) {
	t.Parallel()
	from := TimeOfDay{Hour: 22, Min: 0, Sec: 0}
	to := TimeOfDay{Hour: 6, Min: 30, Sec: 0}
	if got := DurationMinutesTOD(from, to, true); got != 510 {
		t.Fatalf("DurationMinutesTOD overnight = %d, want 510", got)
	}
	if got := DurationMinutesTOD(from, to, false); got != -930 {
		t.Fatalf("DurationMinutesTOD non-overnight = %d, want -930", got)
	}
}

func TestInTimeRange_Overnight(t *testing.T) {
	t.Parallel()
	start := TimeOfDay{Hour: 22, Min: 0, Sec: 0}
	end := TimeOfDay{Hour: 6, Min: 0, Sec: 0}

	cases := []struct {
		t    TimeOfDay
		want bool
	}{
		{TimeOfDay{23, 0, 0}, true},
		{TimeOfDay{1, 0, 0}, true},
		{TimeOfDay{6, 0, 0}, true}, // inclusive
		{TimeOfDay{12, 0, 0}, false},
	}
	for _, c := range cases {
		if got := InTimeRange(c.t, start, end, true); got != c.want {
			t.Fatalf("InTimeRange(%v) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestInTimeRange_ClosedInterval(t *testing.T) {
	t.Parallel()
	start := TimeOfDay{Hour: 8, Min: 30, Sec: 0}
	end := TimeOfDay{Hour: 11, Min: 0, Sec: 0}
	if !InTimeRange(start, start, end, false) {
		t.Fatalf("lower bound should be inclusive")
	}
	if !InTimeRange(end, start, end, false) {
		t.Fatalf("upper bound should be inclusive")
	}
}

func TestParseTimeOfDay_Malformed(t *testing.T) {
	t.Parallel()
	if _, err := ParseTimeOfDay("not-a-time"); err == nil {
		t.Fatalf("expected error for malformed input")
	}
	if _, err := ParseTimeOfDay("25:00:00"); err == nil {
		t.Fatalf("expected error for out-of-range hour")
	}
	got, err := ParseTimeOfDay("09:05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (TimeOfDay{9, 5, 0}) {
		t.Fatalf("ParseTimeOfDay(09:05) = %v, want 09:05:00", got)
	}
}

func TestDate_IsWeekend(t *testing.T) {
	t.Parallel()
	sat := Date{Year: 2024, Month: 1, Day: 13}
	mon := Date{Year: 2024, Month: 1, Day: 15}
	if !sat.IsWeekend() {
		t.Fatalf("expected Saturday to be a weekend")
	}
	if mon.IsWeekend() {
		t.Fatalf("expected Monday not to be a weekend")
	}
}
