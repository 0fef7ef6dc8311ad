package fingerprint

import (
	"testing"
	"time"
)

func TestCompute_Deterministic(t *testing.T) {
	t.Parallel()
	ts := time.Date(2024, 1, 15, 3, 5, 0, 0, time.UTC)
	a := Compute([]byte("loc"), "E001", "dev-1", ts, DefaultWindowSeconds)
	b := Compute([]byte("loc"), "E001", "dev-1", ts, DefaultWindowSeconds)
	if a != b {
		t.Fatalf("Compute is not deterministic: %s != %s", a.Hex(), b.Hex())
	}
}

func TestCompute_SensitiveToEachComponent(t *testing.T) {
	t.Parallel()
	ts := time.Date(2024, 1, 15, 3, 5, 0, 0, time.UTC)
	base := Compute([]byte("loc"), "E001", "dev-1", ts, DefaultWindowSeconds)

	if got := Compute([]byte("other"), "E001", "dev-1", ts, DefaultWindowSeconds); got == base {
		t.Fatalf("changing locator should change the hash")
	}
	if got := Compute([]byte("loc"), "E002", "dev-1", ts, DefaultWindowSeconds); got == base {
		t.Fatalf("changing employee code should change the hash")
	}
	if got := Compute([]byte("loc"), "E001", "dev-2", ts, DefaultWindowSeconds); got == base {
		t.Fatalf("changing device id should change the hash")
	}
}

func TestCompute_WindowBucketing(t *testing.T) {
	t.Parallel()
	t1 := time.Date(2024, 1, 15, 3, 0, 10, 0, time.UTC)
	t2 := time.Date(2024, 1, 15, 3, 4, 50, 0, time.UTC) // same 300s bucket as t1
	t3 := time.Date(2024, 1, 15, 3, 5, 10, 0, time.UTC) // next bucket

	h1 := Compute([]byte("loc"), "E001", "dev-1", t1, DefaultWindowSeconds)
	h2 := Compute([]byte("loc"), "E001", "dev-1", t2, DefaultWindowSeconds)
	h3 := Compute([]byte("loc"), "E001", "dev-1", t3, DefaultWindowSeconds)

	if h1 != h2 {
		t.Fatalf("events in the same bucket should hash identically")
	}
	if h1 == h3 {
		t.Fatalf("events in different buckets should hash differently")
	}
}

func TestCompute_EmptyLocatorWellDefined(t *testing.T) {
	t.Parallel()
	ts := time.Date(2024, 1, 15, 3, 5, 0, 0, time.UTC)
	got := Compute(nil, UnknownEmployeeCode, "dev-1", ts, DefaultWindowSeconds)
	if got.IsZero() {
		t.Fatalf("empty locator should still produce a well-defined hash")
	}
}

func TestHash_HexRoundTrip(t *testing.T) {
	t.Parallel()
	ts := time.Date(2024, 1, 15, 3, 5, 0, 0, time.UTC)
	h := Compute([]byte("loc"), "E001", "dev-1", ts, DefaultWindowSeconds)
	parsed, err := FromHex(h.Hex())
	if err != nil {
		t.Fatalf("FromHex returned error: %v", err)
	}
	if parsed != h {
		t.Fatalf("round-trip mismatch")
	}
	if len(h.Hex()) != 64 {
		t.Fatalf("Hex length = %d, want 64", len(h.Hex()))
	}
}

func TestWithinDedupWindow(t *testing.T) {
	t.Parallel()
	a := time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)
	b := a.Add(4 * time.Minute)
	c := a.Add(6 * time.Minute)
	if !WithinDedupWindow(a, b, DefaultWindowSeconds) {
		t.Fatalf("4 minutes should be within a 300s window")
	}
	if WithinDedupWindow(a, c, DefaultWindowSeconds) {
		t.Fatalf("6 minutes should be outside a 300s window")
	}
}
