package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	perr "attendance/internal/platform/errors"

	"attendance/internal/core/clock"
	"attendance/internal/modkit/repokit"
	"attendance/internal/services/attendance/domain"
)

// RecordBinder binds a RecordRepo to a Queryer
func RecordBinder() repokit.Binder[domain.RecordRepo] {
	return repokit.BindFunc[domain.RecordRepo](func(q repokit.Queryer) domain.RecordRepo {
		return &recordRepo{q: q}
	})
}

type recordRepo struct{ q repokit.Queryer }

const recordSelect = `
	SELECT id, employee_id, device_id, recognition_event_id, attendance_date, event_time, event_type,
	       shift_id, is_late, is_early_leave, is_overtime, duration_minutes, notes, status
	  FROM attendance_records`

func (r *recordRepo) LastFor(ctx context.Context, employeeID uuid.UUID) (*domain.AttendanceRecord, error) {
	row := r.q.QueryRow(ctx, recordSelect+`
		 WHERE employee_id = $1 AND status = 'VALID'
		 ORDER BY event_time DESC
		 LIMIT 1`, employeeID)
	return scanRecord(row)
}

func (r *recordRepo) LastInFor(ctx context.Context, employeeID uuid.UUID, date clock.Date) (*domain.AttendanceRecord, error) {
	row := r.q.QueryRow(ctx, recordSelect+`
		 WHERE employee_id = $1 AND event_type = 'IN' AND status = 'VALID'
		   AND attendance_date = $2
		 ORDER BY event_time DESC
		 LIMIT 1`, employeeID, date.String())
	return scanRecord(row)
}

// Append is idempotent with respect to RecognitionEventID: a unique index on
// recognition_event_id means a re-delivered append is a no-op, not a duplicate row
func (r *recordRepo) Append(ctx context.Context, record *domain.AttendanceRecord) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO attendance_records (
			id, employee_id, device_id, recognition_event_id, attendance_date, event_time, event_type,
			shift_id, is_late, is_early_leave, is_overtime, duration_minutes, notes, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (recognition_event_id) DO NOTHING`,
		record.ID, record.EmployeeID, record.DeviceID, record.RecognitionEventID, record.AttendanceDate.String(),
		record.EventTime, record.EventType, record.ShiftID, record.IsLate, record.IsEarlyLeave, record.IsOvertime,
		record.DurationMinutes, record.Notes, record.Status,
	)
	if err != nil {
		return perr.FromPostgresWithField(err, "attendance record append failed")
	}
	return nil
}

func scanRecord(row repokit.Row) (*domain.AttendanceRecord, error) {
	var rec domain.AttendanceRecord
	var date string

	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.DeviceID, &rec.RecognitionEventID, &date, &rec.EventTime, &rec.EventType,
		&rec.ShiftID, &rec.IsLate, &rec.IsEarlyLeave, &rec.IsOvertime, &rec.DurationMinutes, &rec.Notes, &rec.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, perr.FromPostgresWithField(err, "attendance record lookup failed")
	}

	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	rec.AttendanceDate = d
	return &rec, nil
}

func parseDate(s string) (clock.Date, error) {
	var d clock.Date
	_, err := fmt.Sscanf(s, "%04d-%02d-%02d", &d.Year, &d.Month, &d.Day)
	if err != nil {
		return clock.Date{}, perr.Wrapf(err, perr.ErrorCodeDB, "malformed attendance_date %q", s)
	}
	return d, nil
}
