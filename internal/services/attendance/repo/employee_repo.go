// Package repo provides the Postgres repository implementations for the
// attendance domain ports
package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	perr "attendance/internal/platform/errors"

	"attendance/internal/modkit/repokit"
	"attendance/internal/services/attendance/domain"
)

// EmployeeBinder binds an EmployeeRepo to a Queryer
func EmployeeBinder() repokit.Binder[domain.EmployeeRepo] {
	return repokit.BindFunc[domain.EmployeeRepo](func(q repokit.Queryer) domain.EmployeeRepo {
		return &employeeRepo{q: q}
	})
}

type employeeRepo struct{ q repokit.Queryer }

func (r *employeeRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, employee_code, name, status, shift_id
		  FROM employees
		 WHERE id = $1`, id)
	return scanEmployee(row)
}

func (r *employeeRepo) FindByCode(ctx context.Context, code string) (*domain.Employee, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, employee_code, name, status, shift_id
		  FROM employees
		 WHERE employee_code = $1`, code)
	return scanEmployee(row)
}

func scanEmployee(row repokit.Row) (*domain.Employee, error) {
	var e domain.Employee
	var shiftID *uuid.UUID
	if err := row.Scan(&e.ID, &e.EmployeeCode, &e.Name, &e.Status, &shiftID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, perr.FromPostgresWithField(err, "employee lookup failed")
	}
	e.ShiftID = shiftID
	return &e, nil
}
