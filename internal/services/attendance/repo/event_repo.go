package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	perr "attendance/internal/platform/errors"

	"attendance/internal/modkit/repokit"
	"attendance/internal/services/attendance/domain"
)

// EventBinder binds an EventRepo to a Queryer
func EventBinder() repokit.Binder[domain.EventRepo] {
	return repokit.BindFunc[domain.EventRepo](func(q repokit.Queryer) domain.EventRepo {
		return &eventRepo{q: q}
	})
}

type eventRepo struct{ q repokit.Queryer }

func (r *eventRepo) ExistsByFingerprint(ctx context.Context, hash string) (bool, error) {
	row := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM recognition_events WHERE dedup_hash = $1)`, hash)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, perr.FromPostgresWithField(err, "dedup lookup failed")
	}
	return exists, nil
}

// Insert persists event. A unique-constraint violation on dedup_hash surfaces
// as a *perr.Error with code ErrorCodeDuplicateKey; callers treat this the
// same as a fingerprint already existing
func (r *eventRepo) Insert(ctx context.Context, event *domain.RecognitionEvent) error {
	var faceX, faceY, faceW, faceH *float64
	if event.FaceBox != nil {
		faceX, faceY, faceW, faceH = &event.FaceBox.X, &event.FaceBox.Y, &event.FaceBox.W, &event.FaceBox.H
	}

	_, err := r.q.Exec(ctx, `
		INSERT INTO recognition_events (
			id, device_id, employee_id, captured_at, embedding,
			similarity_score, liveness_score, liveness_passed,
			face_box_x, face_box_y, face_box_w, face_box_h,
			snapshot_url, processing_duration_ms, dedup_hash, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		event.ID, event.DeviceID, event.EmployeeID, event.CapturedAt, event.Embedding,
		event.SimilarityScore, event.LivenessScore, event.LivenessPassed,
		faceX, faceY, faceW, faceH,
		event.SnapshotURL, event.ProcessingDurationMS, event.DedupHash, event.Status,
	)
	if err != nil {
		if perr.IsDuplicateKey(err) {
			return perr.Wrap(err, perr.ErrorCodeDuplicateKey, "recognition event dedup_hash already exists")
		}
		return perr.FromPostgresWithField(err, "recognition event insert failed")
	}
	return nil
}

// RecentFor is used only by reporting; the ingestion pipeline never calls it
func (r *eventRepo) RecentFor(ctx context.Context, employeeID, deviceID uuid.UUID, since time.Time) ([]domain.RecognitionEvent, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, device_id, employee_id, captured_at, status, dedup_hash
		  FROM recognition_events
		 WHERE employee_id = $1 AND device_id = $2 AND captured_at >= $3
		 ORDER BY captured_at DESC`, employeeID, deviceID, since)
	if err != nil {
		return nil, perr.FromPostgresWithField(err, "recent events query failed")
	}
	defer rows.Close()

	var out []domain.RecognitionEvent
	for rows.Next() {
		var e domain.RecognitionEvent
		if err := rows.Scan(&e.ID, &e.DeviceID, &e.EmployeeID, &e.CapturedAt, &e.Status, &e.DedupHash); err != nil {
			return nil, perr.FromPostgresWithField(err, "recent events scan failed")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgresWithField(err, "recent events iteration failed")
	}
	return out, nil
}

func (r *eventRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM recognition_events WHERE captured_at < $1`, cutoff)
	if err != nil {
		return 0, perr.FromPostgresWithField(err, "recognition event purge failed")
	}
	return int(tag.RowsAffected()), nil
}
