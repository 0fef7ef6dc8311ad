package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	perr "attendance/internal/platform/errors"

	"attendance/internal/core/clock"
	"attendance/internal/modkit/repokit"
	"attendance/internal/services/attendance/domain"
)

// PolicyBinder binds a PolicyRepo to a Queryer
func PolicyBinder() repokit.Binder[domain.PolicyRepo] {
	return repokit.BindFunc[domain.PolicyRepo](func(q repokit.Queryer) domain.PolicyRepo {
		return &policyRepo{q: q}
	})
}

type policyRepo struct{ q repokit.Queryer }

const policySelect = `
	SELECT p.id, p.shift_id, p.entry_start_min, p.entry_end_min, p.exit_start_min, p.exit_end_min,
	       p.early_arrival_grace_min, p.late_arrival_grace_min, p.early_departure_grace_min, p.overtime_threshold_min,
	       p.in_to_out_min, p.out_to_in_min, p.allow_weekend, p.allow_holiday, p.auto_clock_out,
	       p.break_start, p.break_end, p.is_active, p.is_default,
	       s.id, s.name, s.start_time, s.end_time, s.is_overnight, s.timezone, s.grace_period_minutes
	  FROM attendance_policies p
	  JOIN shifts s ON s.id = p.shift_id`

func (r *policyRepo) FindActiveForShift(ctx context.Context, shiftID uuid.UUID) (*domain.AttendancePolicy, error) {
	row := r.q.QueryRow(ctx, policySelect+` WHERE p.shift_id = $1 AND p.is_active = true`, shiftID)
	return scanPolicy(row)
}

func (r *policyRepo) FindActiveDefault(ctx context.Context) (*domain.AttendancePolicy, error) {
	row := r.q.QueryRow(ctx, policySelect+` WHERE p.is_default = true AND p.is_active = true`)
	return scanPolicy(row)
}

func scanPolicy(row repokit.Row) (*domain.AttendancePolicy, error) {
	var p domain.AttendancePolicy
	var s domain.Shift
	var breakStart, breakEnd *string
	var startTime, endTime string

	err := row.Scan(
		&p.ID, &p.ShiftID, &p.EntryStartMin, &p.EntryEndMin, &p.ExitStartMin, &p.ExitEndMin,
		&p.EarlyArrivalGraceMin, &p.LateArrivalGraceMin, &p.EarlyDepartureGraceMin, &p.OvertimeThresholdMin,
		&p.InToOutMin, &p.OutToInMin, &p.AllowWeekend, &p.AllowHoliday, &p.AutoClockOut,
		&breakStart, &breakEnd, &p.IsActive, &p.IsDefault,
		&s.ID, &s.Name, &startTime, &endTime, &s.IsOvernight, &s.Timezone, &s.GracePeriodMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, perr.FromPostgresWithField(err, "policy lookup failed")
	}

	if s.StartTime, err = clock.ParseTimeOfDay(startTime); err != nil {
		return nil, err
	}
	if s.EndTime, err = clock.ParseTimeOfDay(endTime); err != nil {
		return nil, err
	}
	if breakStart != nil && breakEnd != nil {
		bs, err := clock.ParseTimeOfDay(*breakStart)
		if err != nil {
			return nil, err
		}
		be, err := clock.ParseTimeOfDay(*breakEnd)
		if err != nil {
			return nil, err
		}
		p.BreakStart, p.BreakEnd = &bs, &be
	}

	p.Shift = s
	return &p, nil
}
