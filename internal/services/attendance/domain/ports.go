package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"attendance/internal/core/clock"
)

// EmployeeRepo resolves employees by id or code. A missing row is not an error:
// implementations return (nil, nil)
type EmployeeRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByCode(ctx context.Context, code string) (*Employee, error)
}

// DeviceRepo resolves devices by id. A missing row returns (nil, nil)
type DeviceRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Device, error)
}

// PolicyRepo resolves the applicable attendance policy. A missing row returns
// (nil, nil); only storage failures are returned as errors
type PolicyRepo interface {
	FindActiveForShift(ctx context.Context, shiftID uuid.UUID) (*AttendancePolicy, error)
	FindActiveDefault(ctx context.Context) (*AttendancePolicy, error)
}

// EventRepo persists and queries RecognitionEvents
type EventRepo interface {
	ExistsByFingerprint(ctx context.Context, hash string) (bool, error)

	// Insert persists event; a unique-constraint violation on dedup_hash is
	// surfaced as a *perr.Error with code ErrorCodeDuplicateKey
	Insert(ctx context.Context, event *RecognitionEvent) error

	// RecentFor is used only by reporting; ingestion never calls it
	RecentFor(ctx context.Context, employeeID, deviceID uuid.UUID, since time.Time) ([]RecognitionEvent, error)

	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// RecordRepo persists and queries the attendance ledger. Last* lookups return
// (nil, nil) when no such record exists
type RecordRepo interface {
	LastFor(ctx context.Context, employeeID uuid.UUID) (*AttendanceRecord, error)
	LastInFor(ctx context.Context, employeeID uuid.UUID, date clock.Date) (*AttendanceRecord, error)

	// Append must be idempotent with respect to RecognitionEventID: no two
	// records may reference the same recognition event
	Append(ctx context.Context, record *AttendanceRecord) error
}

// SnapshotReader reads the bytes behind a snapshot locator when it denotes a
// readable local file. ok=false (with a nil error) means the locator was not a
// local file and the caller should fall back to hashing the locator string itself
type SnapshotReader interface {
	ReadIfLocal(ctx context.Context, locator string) (data []byte, ok bool, err error)
}

// HolidayHook decides whether a business date is a holiday; an Evaluator
// with a nil HolidayHook treats no date as a holiday
type HolidayHook interface {
	IsHoliday(ctx context.Context, date clock.Date) (bool, error)
}

// IngestPort is the module's public surface: run one ingress through the
// pipeline, or pre-flight whether an employee is expected to be working a date
type IngestPort interface {
	Ingest(ctx context.Context, ingress Ingress) (*Outcome, error)
	AttendanceAllowed(ctx context.Context, employee *Employee, date clock.Date) (bool, error)
}
