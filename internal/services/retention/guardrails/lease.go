// Package guardrails provides helper functions to manage worker leases for retention processing
package guardrails

import (
	"context"
	"fmt"
	"os"
	"time"

	"attendance/internal/modkit"
	"attendance/internal/platform/store"
)

// ErrLeaseHeld signals another worker owns the bucket already
var ErrLeaseHeld = fmt.Errorf("retention: bucket lease already held")

// MakeLease claims the retention_runs lease columns (auto-reclaim via expires_at)
func MakeLease(
	deps modkit.Deps,
	owner string,
	ttl time.Duration,
) func(ctx context.Context, windowEnd time.Time, do func(context.Context) error) error {
	owner = fmt.Sprintf("%s:%d", owner, os.Getpid())

	if ttl <= 0 {
		ttl = 3 * time.Minute
	}

	toInterval := func(d time.Duration) string { return fmt.Sprintf("%d seconds", int64(d/time.Second)) }

	return func(ctx context.Context, windowEnd time.Time, do func(context.Context) error) error {
		var claimed bool
		if err := deps.PG.Tx(ctx, func(q store.RowQuerier) error {
			row := q.QueryRow(ctx, `
				UPDATE retention_runs
				   SET lease_claimed_at = now(), lease_owner = $2, lease_expires_at = now() + ($3)::interval
				 WHERE window_end = $1
				   AND (lease_claimed_at IS NULL OR lease_expires_at <= now())
				RETURNING true
			`, windowEnd.UTC(), owner, toInterval(ttl))
			var ok bool
			if err := row.Scan(&ok); err != nil {
				return nil // no rows -> couldn't claim
			}
			claimed = ok
			return nil
		}); err != nil {
			return err
		}
		if !claimed {
			return ErrLeaseHeld
		}
		return do(ctx)
	}
}
