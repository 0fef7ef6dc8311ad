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

// DeviceBinder binds a DeviceRepo to a Queryer
func DeviceBinder() repokit.Binder[domain.DeviceRepo] {
	return repokit.BindFunc[domain.DeviceRepo](func(q repokit.Queryer) domain.DeviceRepo {
		return &deviceRepo{q: q}
	})
}

type deviceRepo struct{ q repokit.Queryer }

func (r *deviceRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Device, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, device_code, status, last_seen
		  FROM devices
		 WHERE id = $1`, id)

	var d domain.Device
	if err := row.Scan(&d.ID, &d.DeviceCode, &d.Status, &d.LastSeen); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, perr.FromPostgresWithField(err, "device lookup failed")
	}
	return &d, nil
}
