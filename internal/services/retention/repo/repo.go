// Package repo provides the retention storage repository implementation
package repo

import (
	"context"
	"strings"
	"time"

	"attendance/internal/modkit/repokit"
	attdom "attendance/internal/services/attendance/domain"
	rtdom "attendance/internal/services/retention/domain"
	"attendance/internal/services/retention/guardrails"
)

// New returns a binder that uses Postgres for the retention_runs coordination
// state, delegating the actual recognition_events purge to the attendance
// domain's EventRepo so there is exactly one implementation of that deletion
func New(events repokit.Binder[attdom.EventRepo]) repokit.Binder[rtdom.StorageRepo] {
	return &binder{events: events}
}

type binder struct {
	events repokit.Binder[attdom.EventRepo]
}

func (b *binder) Bind(q repokit.Queryer) rtdom.StorageRepo {
	return &pgStore{pg: q, events: b.events.Bind(q)}
}

type pgStore struct {
	pg     repokit.Queryer
	events attdom.EventRepo
}

// Start marks retention processing for a bucket
func (s *pgStore) Start(ctx context.Context, windowEnd time.Time) error {
	res, err := s.pg.Exec(ctx, `
	  INSERT INTO retention_runs (window_end, status, started_at)
	  VALUES ($1, 'running', now())
	  ON CONFLICT (window_end) DO UPDATE
	     SET status = 'running', started_at = COALESCE(retention_runs.started_at, now())
	   WHERE retention_runs.status IN ('pending', 'error')`,
		windowEnd.UTC(),
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return guardrails.ErrLeaseHeld // sentinel = "already running or done"
	}
	return nil
}

// PurgeOlderThan delegates to the attendance EventRepo's purge_older_than
// so the event-store retention rule lives in exactly one place
func (s *pgStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	return s.events.PurgeOlderThan(ctx, cutoff.UTC())
}

// Finish marks the bucket as done or error, recording the purge outcome
func (s *pgStore) Finish(ctx context.Context, windowEnd time.Time, fin rtdom.FinishInfo) error {
	_, err := s.pg.Exec(ctx, `
	  UPDATE retention_runs
	     SET finished_at    = COALESCE(finished_at, now()),
	         status         = $2,
	         deleted_count  = $3,
	         prune_ms       = $4,
	         error          = NULLIF($5,''),
	         lease_claimed_at = NULL,
	         lease_owner      = NULL,
	         lease_expires_at = NULL
	   WHERE window_end = $1
	`, windowEnd.UTC(), fin.Status, fin.Deleted, fin.PruneMS, fin.ErrText)
	return err
}

// NextBucketNeedingWork claims the oldest bucket still pending or errored
func (s *pgStore) NextBucketNeedingWork(ctx context.Context) (time.Time, bool, error) {
	row := s.pg.QueryRow(ctx, `
		WITH next AS (
			SELECT window_end
			  FROM retention_runs
			 WHERE status IN ('pending','error')
			 ORDER BY window_end
			 LIMIT 1
			 FOR UPDATE SKIP LOCKED
		)
		UPDATE retention_runs r
		   SET status = 'running', started_at = COALESCE(r.started_at, now())
		  FROM next
		 WHERE r.window_end = next.window_end
		RETURNING r.window_end
	`)
	var wnd time.Time
	if err := row.Scan(&wnd); err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return wnd.UTC(), true, nil
}
