// Package domain defines the attendance core entities, ports, and outcomes
package domain

import (
	"time"

	"github.com/google/uuid"

	"attendance/internal/core/clock"
)

// EmployeeStatus is the lifecycle state of an Employee
type EmployeeStatus string

// Employee statuses
const (
	EmployeeActive    EmployeeStatus = "ACTIVE"
	EmployeeInactive  EmployeeStatus = "INACTIVE"
	EmployeeSuspended EmployeeStatus = "SUSPENDED"
)

// Employee is a person tracked by the attendance system
type Employee struct {
	ID           uuid.UUID
	EmployeeCode string
	Name         string
	Status       EmployeeStatus
	ShiftID      *uuid.UUID
}

// DeviceStatus is the lifecycle state of a Device
type DeviceStatus string

// Device statuses
const (
	DeviceActive   DeviceStatus = "ACTIVE"
	DeviceInactive DeviceStatus = "INACTIVE"
)

// Device is an edge camera/terminal that submits recognition ingresses
type Device struct {
	ID         uuid.UUID
	DeviceCode string
	Status     DeviceStatus
	LastSeen   time.Time
}

// Shift defines the expected working window for employees assigned to it
type Shift struct {
	ID                 uuid.UUID
	Name               string
	StartTime          clock.TimeOfDay
	EndTime            clock.TimeOfDay
	IsOvernight         bool
	Timezone           string
	GracePeriodMinutes int
}

// AttendancePolicy governs admission, grace, and cool-down rules for one shift
// (or the singleton default policy, marked by IsDefault)
type AttendancePolicy struct {
	ID      uuid.UUID
	ShiftID uuid.UUID
	Shift   Shift

	EntryStartMin int
	EntryEndMin   int
	ExitStartMin  int
	ExitEndMin    int

	EarlyArrivalGraceMin   int
	LateArrivalGraceMin    int
	EarlyDepartureGraceMin int
	OvertimeThresholdMin   int

	InToOutMin int
	OutToInMin int

	AllowWeekend bool
	AllowHoliday bool
	AutoClockOut *bool

	BreakStart *clock.TimeOfDay
	BreakEnd   *clock.TimeOfDay

	IsActive  bool
	IsDefault bool
}

// EventStatus is the lifecycle state of a RecognitionEvent
type EventStatus string

// Event statuses
const (
	EventPending   EventStatus = "PENDING"
	EventProcessed EventStatus = "PROCESSED"
	EventFailed    EventStatus = "FAILED"
	EventDuplicate EventStatus = "DUPLICATE"
)

// FaceBox is the bounding box of the detected face within the source frame
type FaceBox struct {
	X, Y, W, H float64
}

// RecognitionEvent is the immutable record of one edge ingress
type RecognitionEvent struct {
	ID                   uuid.UUID
	DeviceID             *uuid.UUID
	EmployeeID           *uuid.UUID
	CapturedAt           time.Time
	Embedding            []float32
	SimilarityScore      *float64
	LivenessScore        *float64
	LivenessPassed       *bool
	FaceBox              *FaceBox
	SnapshotURL          *string
	ProcessingDurationMS *int
	DedupHash            *string
	Status               EventStatus
}

// EventType distinguishes an entry from an exit
type EventType string

// Event types
const (
	EventTypeIn  EventType = "IN"
	EventTypeOut EventType = "OUT"
)

// RecordStatus is the lifecycle state of an AttendanceRecord
type RecordStatus string

// Record statuses
const (
	RecordValid    RecordStatus = "VALID"
	RecordInvalid  RecordStatus = "INVALID"
	RecordAdjusted RecordStatus = "ADJUSTED"
	RecordDisputed RecordStatus = "DISPUTED"
)

// AttendanceRecord is one entry in an employee's attendance ledger
type AttendanceRecord struct {
	ID                 uuid.UUID
	EmployeeID         uuid.UUID
	DeviceID           *uuid.UUID
	RecognitionEventID *uuid.UUID
	AttendanceDate     clock.Date
	EventTime          time.Time
	EventType          EventType
	ShiftID            *uuid.UUID
	IsLate             bool
	IsEarlyLeave       bool
	IsOvertime         bool
	DurationMinutes    *int
	Notes              string
	Status             RecordStatus
}

// EvaluationStatus is the fine-grained classification produced by the evaluator
type EvaluationStatus string

// Evaluation statuses
const (
	StatusOnTimeIn  EvaluationStatus = "ON_TIME_IN"
	StatusLateIn    EvaluationStatus = "LATE_IN"
	StatusEarlyIn   EvaluationStatus = "EARLY_IN"
	StatusOnTimeOut EvaluationStatus = "ON_TIME_OUT"
	StatusEarlyOut  EvaluationStatus = "EARLY_OUT"
	StatusOvertimeOut EvaluationStatus = "OVERTIME_OUT"
)

// Compliance holds the metrics the evaluator computes alongside a classification
type Compliance struct {
	IsLate                bool
	IsEarlyLeave          bool
	IsOvertime            bool
	LateMinutes           int
	OvertimeMinutes       int
	EarlyDepartureMinutes int
	WithinBreak           bool
}

// Evaluation is the result of running the policy evaluator for one ingress.
// On rejection, every field beyond Approved and RejectionReason is the zero value
type Evaluation struct {
	Approved        bool
	RejectionReason string
	EventType       EventType
	Status          EvaluationStatus
	Compliance      Compliance
}

// OutcomeKind tags the result of an ingestion
type OutcomeKind string

// Outcome kinds
const (
	OutcomeDuplicate       OutcomeKind = "DUPLICATE"
	OutcomeStored          OutcomeKind = "STORED"
	OutcomeRecorded        OutcomeKind = "RECORDED"
	OutcomeRejected        OutcomeKind = "REJECTED"
	OutcomeEvaluationError OutcomeKind = "EVALUATION_ERROR"
	OutcomeTimeout         OutcomeKind = "TIMEOUT"
)

// Outcome is the tagged union returned by Ingest
type Outcome struct {
	Kind   OutcomeKind
	Event  *RecognitionEvent
	Record *AttendanceRecord
	Reason string
	Err    error
}

// Ingress is the inbound recognition event from an edge device
type Ingress struct {
	DeviceID               uuid.UUID
	CapturedAt             time.Time
	Embedding              [512]float32
	TopCandidateEmployeeID *uuid.UUID
	SimilarityScore        *float64
	LivenessScore          *float64
	LivenessPassed         *bool
	FaceBox                *FaceBox
	SnapshotURL            *string
	ProcessingDurationMS   *int
}
