// Package service provides the retention implementation
package service

import (
	"context"
	"errors"
	"time"

	"attendance/internal/modkit/repokit"
	"attendance/internal/platform/logger"
	rtdom "attendance/internal/services/retention/domain"
	"attendance/internal/services/retention/guardrails"
)

// Config controls retention behavior
type Config struct {
	Workers int

	// MaxAge is how long a recognition_event is kept before it is purged
	MaxAge time.Duration

	// EnableLeases uses the shared advisory lease (optional)
	EnableLeases bool
}

// Service wires TxRunner + Binder into the domain operations
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[rtdom.StorageRepo]
	Cfg    Config

	// Lease(ctx, windowEnd, do) should take a bucket-scoped advisory lock and run do()
	Lease func(ctx context.Context, windowEnd time.Time, do func(context.Context) error) error
}

// New constructs the retention service
func New(
	db repokit.TxRunner,
	binder repokit.Binder[rtdom.StorageRepo],
	cfg Config,
	lease func(context.Context, time.Time, func(context.Context) error) error,
) *Service {
	if db == nil {
		panic("retention.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("retention.Service requires a non nil Repo binder")
	}
	return &Service{DB: db, Binder: binder, Cfg: cfg, Lease: lease}
}

// ApplyWindow runs one purge pass for the bucket ending at windowEnd (idempotent)
func (s *Service) ApplyWindow(ctx context.Context, windowEnd time.Time) error {
	l := logger.C(ctx).With().Str("mod", "retention").Time("window_end", windowEnd.UTC()).Logger()
	l.Info().Msg("retention: apply-window start")

	windowEnd = windowEnd.Truncate(24 * time.Hour).UTC()

	run := func(ctx context.Context) error {
		if err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
			return s.Binder.Bind(q).Start(ctx, windowEnd)
		}); err != nil {
			if errors.Is(err, guardrails.ErrLeaseHeld) {
				l.Debug().Msg("retention: bucket not eligible; clean skip")
				return nil
			}
			return err
		}
		return s.applyWindowUnlocked(ctx, windowEnd)
	}

	if s.Lease != nil && s.Cfg.EnableLeases {
		if err := s.Lease(ctx, windowEnd, run); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			if errors.Is(err, guardrails.ErrLeaseHeld) {
				l.Debug().Msg("retention: lease not acquired; clean skip")
				return nil
			}
			l.Error().Err(err).Msg("retention: apply-window failed")
			return err
		}
		return nil
	}

	return run(ctx)
}

func (s *Service) applyWindowUnlocked(ctx context.Context, windowEnd time.Time) (retErr error) {
	start := time.Now()
	var deleted int
	var errText string

	defer func() {
		_ = s.DB.Tx(ctx, func(q repokit.Queryer) error {
			return s.Binder.Bind(q).Finish(ctx, windowEnd, rtdom.FinishInfo{
				Status:  map[bool]string{true: "error", false: "done"}[retErr != nil],
				Deleted: deleted,
				PruneMS: int(time.Since(start).Milliseconds()),
				ErrText: errText,
			})
		})
	}()

	cutoff := windowEnd.Add(-s.Cfg.MaxAge)

	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		n, e := s.Binder.Bind(q).PurgeOlderThan(ctx, cutoff)
		deleted = n
		return e
	})
	if err != nil {
		errText = err.Error()
		retErr = err
		return retErr
	}

	return nil
}

// RunRange loops ApplyWindow across the interval, one bucket per day
func (s *Service) RunRange(ctx context.Context, start, end time.Time) error {
	start = start.Truncate(24 * time.Hour).UTC()
	end = end.Truncate(24 * time.Hour).UTC()
	if end.Before(start) {
		return errors.New("end before start")
	}
	cur := start
	for !cur.After(end) {
		if err := s.ApplyWindow(ctx, cur); err != nil {
			logger.C(ctx).Error().Time("window_end", cur).Err(err).Msg("retention: ApplyWindow failed")
		}
		cur = cur.Add(24 * time.Hour)
	}
	return nil
}

// RunResume drains any buckets still pending a purge pass
func (s *Service) RunResume(ctx context.Context) error {
	w := s.Cfg.Workers
	if w <= 0 {
		w = 2
	}
	sem := make(chan struct{}, w)
	errs := make(chan error, w)

	worker := func() {
		defer func() { <-sem }()
		for {
			var wnd time.Time
			var ok bool
			err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
				w, claimed, e := s.Binder.Bind(q).NextBucketNeedingWork(ctx)
				wnd, ok = w, claimed
				return e
			})
			if err != nil {
				errs <- err
				time.Sleep(250 * time.Millisecond)
				continue
			}
			if !ok {
				return
			}
			if e := s.ApplyWindow(ctx, wnd); e != nil {
				errs <- e
			}
		}
	}

	for i := 0; i < w; i++ {
		sem <- struct{}{}
		go worker()
	}

	time.Sleep(100 * time.Millisecond)
	close(errs)
	return nil
}
