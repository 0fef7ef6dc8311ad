// Package policy implements the attendance policy evaluator: admission windows,
// grace-period classification, cool-down enforcement, and the weekend/holiday
// attendance-allowed gate
package policy

import (
	"context"
	"fmt"
	"time"

	"attendance/internal/core/clock"
	"attendance/internal/services/attendance/domain"
)

// Evaluator resolves and applies the attendance policy for one ingress
type Evaluator struct {
	Policies domain.PolicyRepo
	Zone     clock.Zone

	// Holidays is consulted by AttendanceAllowed; nil means no holidays are ever observed
	Holidays domain.HolidayHook
}

// NewEvaluator constructs an Evaluator
func NewEvaluator(policies domain.PolicyRepo, zone clock.Zone, holidays domain.HolidayHook) *Evaluator {
	return &Evaluator{Policies: policies, Zone: zone, Holidays: holidays}
}

// resolvePolicy implements step 1 of §4.3: the employee's shift policy wins,
// falling back to the singleton default. Returns (nil, nil) when neither exists
func (e *Evaluator) resolvePolicy(ctx context.Context, employee *domain.Employee) (*domain.AttendancePolicy, error) {
	if employee != nil && employee.ShiftID != nil {
		p, err := e.Policies.FindActiveForShift(ctx, *employee.ShiftID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
	return e.Policies.FindActiveDefault(ctx)
}

const noPolicyReason = "No attendance policy configured"

// Evaluate runs the full admission/classification algorithm of §4.3.
// Rejections are returned as a non-approved Evaluation with no error;
// only storage failures propagate as errors
func (e *Evaluator) Evaluate(
	ctx context.Context,
	employee *domain.Employee,
	capturedAt time.Time,
	lastRecord *domain.AttendanceRecord,
) (*domain.Evaluation, error) {
	policy, err := e.resolvePolicy(ctx, employee)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return &domain.Evaluation{Approved: false, RejectionReason: noPolicyReason}, nil
	}

	shift := policy.Shift
	t := e.Zone.BusinessTime(capturedAt)

	expected := domain.EventTypeIn
	if lastRecord != nil && lastRecord.EventType == domain.EventTypeIn {
		expected = domain.EventTypeOut
	}

	// Admission window
	var winStart, winEnd clock.TimeOfDay
	if expected == domain.EventTypeIn {
		winStart = shift.StartTime.AddMinutes(-policy.EntryStartMin)
		winEnd = shift.StartTime.AddMinutes(policy.EntryEndMin)
	} else {
		winStart = shift.EndTime.AddMinutes(-policy.ExitStartMin)
		winEnd = shift.EndTime.AddMinutes(policy.ExitEndMin)
	}
	if !clock.InTimeRange(t, winStart, winEnd, shift.IsOvernight) {
		reason := fmt.Sprintf("Outside %s window. Expected window: %s to %s", expected, winStart, winEnd)
		return &domain.Evaluation{Approved: false, RejectionReason: reason}, nil
	}

	// Cool-down
	if lastRecord != nil {
		delta := clock.DurationMinutes(lastRecord.EventTime, capturedAt)

		var required int
		var label string
		switch {
		case lastRecord.EventType == domain.EventTypeIn && expected == domain.EventTypeOut:
			required, label = policy.InToOutMin, "IN to OUT"
		case lastRecord.EventType == domain.EventTypeOut && expected == domain.EventTypeIn:
			required, label = policy.OutToInMin, "OUT to IN"
		default:
			required = policy.InToOutMin
			if policy.OutToInMin > required {
				required = policy.OutToInMin
			}
			label = fmt.Sprintf("duplicate %s", expected)
		}

		if delta < required {
			reason := fmt.Sprintf("%s cooldown violation. Required: %d minutes, Actual: %d minutes", label, required, delta)
			return &domain.Evaluation{Approved: false, RejectionReason: reason}, nil
		}
	}

	// Classification
	boundary := shift.StartTime
	if expected == domain.EventTypeOut {
		boundary = shift.EndTime
	}
	m := clock.DurationMinutesTOD(boundary, t, shift.IsOvernight)

	var status domain.EvaluationStatus
	var comp domain.Compliance

	if expected == domain.EventTypeIn {
		switch {
		case m < -policy.EarlyArrivalGraceMin:
			status = domain.StatusEarlyIn
		case m > policy.LateArrivalGraceMin:
			status = domain.StatusLateIn
		default:
			status = domain.StatusOnTimeIn
		}
		comp.IsLate = status == domain.StatusLateIn
		comp.LateMinutes = maxInt(0, m)
	} else {
		switch {
		case m < -policy.EarlyDepartureGraceMin:
			status = domain.StatusEarlyOut
		case m > policy.OvertimeThresholdMin:
			status = domain.StatusOvertimeOut
		default:
			status = domain.StatusOnTimeOut
		}
		comp.IsEarlyLeave = status == domain.StatusEarlyOut
		comp.IsOvertime = status == domain.StatusOvertimeOut
		comp.OvertimeMinutes = maxInt(0, m)
		comp.EarlyDepartureMinutes = maxInt(0, -m)
	}

	if policy.BreakStart != nil && policy.BreakEnd != nil {
		comp.WithinBreak = clock.InTimeRange(t, *policy.BreakStart, *policy.BreakEnd, shift.IsOvernight)
	}

	return &domain.Evaluation{
		Approved:   true,
		EventType:  expected,
		Status:     status,
		Compliance: comp,
	}, nil
}

// AttendanceAllowed implements the separate weekend/holiday gate of §4.3 step 8.
// Ingestion itself never calls this; it is a standalone query for callers that
// need to pre-flight whether an employee is expected to be working a given date
func (e *Evaluator) AttendanceAllowed(ctx context.Context, employee *domain.Employee, date clock.Date) (bool, error) {
	policy, err := e.resolvePolicy(ctx, employee)
	if err != nil {
		return false, err
	}
	if policy == nil {
		return true, nil
	}
	if date.IsWeekend() && !policy.AllowWeekend {
		return false, nil
	}
	if e.Holidays != nil {
		holiday, err := e.Holidays.IsHoliday(ctx, date)
		if err != nil {
			return false, err
		}
		if holiday && !policy.AllowHoliday {
			return false, nil
		}
	}
	return true, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
