package service

import (
	"context"

	"github.com/google/uuid"

	perr "attendance/internal/platform/errors"

	"attendance/internal/modkit/repokit"
)

// lockEmployee takes a transaction-scoped Postgres advisory lock keyed by the
// employee id. It is released automatically at transaction end (commit or
// rollback), giving exactly the per-employee serialization §5/§9 calls for
// without a separate lock table or TTL to manage
func lockEmployee(ctx context.Context, q repokit.Queryer, employeeID uuid.UUID) error {
	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, employeeID.String())
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "employee lock failed for %s", employeeID)
	}
	return nil
}
