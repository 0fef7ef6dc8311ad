// Package domain defines retention core ports and types
package domain

import (
	"context"
	"time"
)

// RunnerPort is the public entrypoint exposed by the module.
// Operators can run the purge job ad hoc via RunRange/RunResume, or it can be
// driven by a scheduler calling ApplyWindow on a fixed cadence
type RunnerPort interface {
	// ApplyWindow runs one purge pass for the bucket ending at windowEnd (idempotent per bucket)
	ApplyWindow(ctx context.Context, windowEnd time.Time) error

	// RunRange iterates [start,end] inclusive, applying the purge per bucket
	RunRange(ctx context.Context, start, end time.Time) error

	// RunResume drains any buckets still pending a purge pass
	RunResume(ctx context.Context) error
}

// StorageRepo encapsulates all storage actions the retention job performs
type StorageRepo interface {
	// Start marks retention processing for a bucket, returning ErrLeaseHeld when
	// another worker already owns (or finished) it
	Start(ctx context.Context, windowEnd time.Time) error

	// PurgeOlderThan deletes recognition_events (and their orphaned attendance_records
	// cascade) with captured_at older than cutoff. Returns the number of events removed
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	// Finish marks the bucket as done or error, recording the purge outcome
	Finish(ctx context.Context, windowEnd time.Time, fin FinishInfo) error

	// NextBucketNeedingWork returns the next bucket that should have retention applied
	NextBucketNeedingWork(ctx context.Context) (time.Time, bool, error)
}

// FinishInfo captures metrics/outcomes for one retention pass
type FinishInfo struct {
	Status    string // "done" or "error"
	Deleted   int
	PruneMS   int
	ErrText   string
}
