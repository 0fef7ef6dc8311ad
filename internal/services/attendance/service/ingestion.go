// Package service implements the ingestion pipeline: fingerprint, dedup,
// persist, evaluate, and ledger append, all within one transactional scope
package service

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	perr "attendance/internal/platform/errors"

	"attendance/internal/core/clock"
	"attendance/internal/core/fingerprint"
	"attendance/internal/modkit/repokit"
	"attendance/internal/services/attendance/domain"
	"attendance/internal/services/attendance/policy"
)

// repoBinders bundle the per-Queryer repo factories Ingestion needs so each
// transactional step binds its repos to the same tx-scoped Queryer
type repoBinders struct {
	Employees repokit.Binder[domain.EmployeeRepo]
	Devices   repokit.Binder[domain.DeviceRepo]
	Events    repokit.Binder[domain.EventRepo]
	Records   repokit.Binder[domain.RecordRepo]
}

// Ingestion implements the recognition-to-attendance pipeline
type Ingestion struct {
	DB        repokit.TxRunner
	Binders   repoBinders
	Snapshot  domain.SnapshotReader
	Evaluator *policy.Evaluator
	Zone      clock.Zone
	Cfg       Config
}

// NewIngestion wires the pipeline from its repo binders and collaborators
func NewIngestion(
	db repokit.TxRunner,
	employees repokit.Binder[domain.EmployeeRepo],
	devices repokit.Binder[domain.DeviceRepo],
	events repokit.Binder[domain.EventRepo],
	records repokit.Binder[domain.RecordRepo],
	snapshot domain.SnapshotReader,
	evaluator *policy.Evaluator,
	zone clock.Zone,
	cfg Config,
) *Ingestion {
	return &Ingestion{
		DB:        db,
		Binders:   repoBinders{Employees: employees, Devices: devices, Events: events, Records: records},
		Snapshot:  snapshot,
		Evaluator: evaluator,
		Zone:      zone,
		Cfg:       cfg,
	}
}

// maxTransientAttempts bounds the retry loop for transient storage errors
const maxTransientAttempts = 3

// Ingest runs one recognition ingress through the pipeline and returns its
// Outcome. Rejections, duplicates, evaluation errors, and timeouts are data
// outcomes, not errors; only unrecoverable storage/clock failures return err
func (ing *Ingestion) Ingest(ctx context.Context, ingress domain.Ingress) (*domain.Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, ing.Cfg.IngestDeadline)
	defer cancel()

	employee, err := ing.resolveParties(ctx, ingress)
	if err != nil {
		return nil, err
	}

	seed, err := ing.seedFor(ctx, ingress)
	if err != nil {
		return nil, err
	}
	employeeCode := fingerprint.UnknownEmployeeCode
	if employee != nil {
		employeeCode = employee.EmployeeCode
	}
	hash := fingerprint.Compute(seed, employeeCode, ingress.DeviceID.String(), ingress.CapturedAt, ing.Cfg.DedupWindowSeconds)

	var outcome *domain.Outcome
	var txErr error
	for attempt := 1; attempt <= maxTransientAttempts; attempt++ {
		outcome, txErr = nil, nil
		txErr = repokit.WithTx(ctx, ing.DB, func(q repokit.Queryer) error {
			var runErr error
			outcome, runErr = ing.runTransaction(ctx, q, ingress, employee, hash)
			return runErr
		})
		if txErr == nil {
			break
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &domain.Outcome{Kind: domain.OutcomeTimeout}, nil
		}
		if !perr.IsRetryable(txErr) || attempt == maxTransientAttempts {
			break
		}
		sleepJittered(attempt)
	}
	if txErr != nil {
		// a transient error that outlasts every attempt is reported as Timeout
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || perr.IsRetryable(txErr) {
			return &domain.Outcome{Kind: domain.OutcomeTimeout}, nil
		}
		return nil, txErr
	}
	return outcome, nil
}

// runTransaction executes steps 3-7 of the pipeline within one tx-scoped Queryer
func (ing *Ingestion) runTransaction(
	ctx context.Context,
	q repokit.Queryer,
	ingress domain.Ingress,
	employee *domain.Employee,
	hash fingerprint.Hash,
) (*domain.Outcome, error) {
	events := ing.Binders.Events.Bind(q)
	records := ing.Binders.Records.Bind(q)

	exists, err := events.ExistsByFingerprint(ctx, hash.Hex())
	if err != nil {
		return nil, err
	}

	event := buildEvent(ingress, employee)
	if exists {
		event.Status = domain.EventDuplicate
		if err := events.Insert(ctx, event); err != nil && !perr.IsDuplicateKey(err) {
			return nil, err
		}
		return &domain.Outcome{Kind: domain.OutcomeDuplicate, Event: event}, nil
	}

	hex := hash.Hex()
	event.DedupHash = &hex
	event.Status = domain.EventProcessed
	if err := events.Insert(ctx, event); err != nil {
		if perr.IsDuplicateKey(err) {
			// Lost the race on dedup_hash uniqueness; treated identically to a
			// dedup hit found via ExistsByFingerprint
			event.DedupHash = nil
			event.Status = domain.EventDuplicate
			return &domain.Outcome{Kind: domain.OutcomeDuplicate, Event: event}, nil
		}
		return nil, err
	}

	if !isValidMatch(ingress, employee, ing.Cfg.MinSimilarity) {
		return &domain.Outcome{Kind: domain.OutcomeStored, Event: event}, nil
	}

	if ing.Cfg.CooldownSerialization == PerEmployeeLock {
		if err := lockEmployee(ctx, q, employee.ID); err != nil {
			return nil, err
		}
	}

	lastRecord, err := records.LastFor(ctx, employee.ID)
	if err != nil {
		return nil, err
	}

	eval, err := ing.Evaluator.Evaluate(ctx, employee, ingress.CapturedAt, lastRecord)
	if err != nil {
		return &domain.Outcome{Kind: domain.OutcomeEvaluationError, Event: event, Err: err}, nil
	}

	if eval.Approved && ing.Cfg.CooldownSerialization == InTransactionRecheck {
		fresh, err := records.LastFor(ctx, employee.ID)
		if err != nil {
			return nil, err
		}
		eval, err = ing.Evaluator.Evaluate(ctx, employee, ingress.CapturedAt, fresh)
		if err != nil {
			return &domain.Outcome{Kind: domain.OutcomeEvaluationError, Event: event, Err: err}, nil
		}
	}

	if !eval.Approved {
		return &domain.Outcome{Kind: domain.OutcomeRejected, Event: event, Reason: eval.RejectionReason}, nil
	}

	record := &domain.AttendanceRecord{
		ID:                 uuid.New(),
		EmployeeID:         employee.ID,
		DeviceID:           event.DeviceID,
		RecognitionEventID: &event.ID,
		AttendanceDate:     ing.Zone.BusinessDate(ingress.CapturedAt),
		EventTime:          ingress.CapturedAt,
		EventType:          eval.EventType,
		ShiftID:            employee.ShiftID,
		IsLate:             eval.Compliance.IsLate,
		IsEarlyLeave:       eval.Compliance.IsEarlyLeave,
		IsOvertime:         eval.Compliance.IsOvertime,
		Status:             domain.RecordValid,
	}
	if eval.EventType == domain.EventTypeOut {
		lastIn, err := records.LastInFor(ctx, employee.ID, record.AttendanceDate)
		if err != nil {
			return nil, err
		}
		if lastIn != nil {
			d := clock.DurationMinutes(lastIn.EventTime, ingress.CapturedAt)
			record.DurationMinutes = &d
		}
	}
	if err := records.Append(ctx, record); err != nil {
		return nil, err
	}
	return &domain.Outcome{Kind: domain.OutcomeRecorded, Event: event, Record: record}, nil
}

// resolveParties runs the side-effect-free lookups of steps 1-2. These may
// run outside the persistence transaction
func (ing *Ingestion) resolveParties(ctx context.Context, ingress domain.Ingress) (*domain.Employee, error) {
	devices := ing.Binders.Devices.Bind(ing.DB)
	// A missing device is tolerated: the event is still recorded against the
	// raw device_id from the ingress, so the resolved row itself isn't needed
	// beyond confirming the lookup didn't fail for a real (non-NotFound) reason
	if _, err := devices.FindByID(ctx, ingress.DeviceID); err != nil {
		return nil, err
	}

	var employee *domain.Employee
	if ingress.TopCandidateEmployeeID != nil {
		employees := ing.Binders.Employees.Bind(ing.DB)
		var err error
		employee, err = employees.FindByID(ctx, *ingress.TopCandidateEmployeeID)
		if err != nil {
			return nil, err
		}
	}
	return employee, nil
}

// seedFor implements the fingerprint content seed: snapshot bytes when the
// locator is readable locally, otherwise the locator string itself, otherwise
// nothing (an empty locator is a well-defined, non-error input)
func (ing *Ingestion) seedFor(ctx context.Context, ingress domain.Ingress) ([]byte, error) {
	if ingress.SnapshotURL == nil || *ingress.SnapshotURL == "" {
		return nil, nil
	}
	locator := *ingress.SnapshotURL
	if ing.Snapshot != nil {
		data, ok, err := ing.Snapshot.ReadIfLocal(ctx, locator)
		if err != nil {
			return nil, err
		}
		if ok {
			return data, nil
		}
	}
	return []byte(locator), nil
}

func isValidMatch(ingress domain.Ingress, employee *domain.Employee, minSimilarity float64) bool {
	if employee == nil {
		return false
	}
	if ingress.SimilarityScore == nil || *ingress.SimilarityScore < minSimilarity {
		return false
	}
	if ingress.LivenessPassed != nil && !*ingress.LivenessPassed {
		return false
	}
	return true
}

func buildEvent(ingress domain.Ingress, employee *domain.Employee) *domain.RecognitionEvent {
	deviceID := ingress.DeviceID
	event := &domain.RecognitionEvent{
		ID:                   uuid.New(),
		DeviceID:             &deviceID,
		CapturedAt:           ingress.CapturedAt,
		Embedding:            append([]float32(nil), ingress.Embedding[:]...),
		SimilarityScore:      ingress.SimilarityScore,
		LivenessScore:        ingress.LivenessScore,
		LivenessPassed:       ingress.LivenessPassed,
		FaceBox:              ingress.FaceBox,
		SnapshotURL:          ingress.SnapshotURL,
		ProcessingDurationMS: ingress.ProcessingDurationMS,
	}
	if employee != nil {
		id := employee.ID
		event.EmployeeID = &id
	}
	return event
}

// sleepJittered blocks for a backoff window that grows with attempt and
// carries random jitter, mirroring the retry style used elsewhere in this codebase
func sleepJittered(attempt int) {
	base := time.Duration(attempt) * 50 * time.Millisecond
	jitter := time.Duration(rand.Intn(50)) * time.Millisecond
	time.Sleep(base + jitter)
}
