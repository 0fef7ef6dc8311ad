package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"attendance/internal/modkit"
	"attendance/internal/modkit/module"
	"attendance/internal/platform/config"
	"attendance/internal/platform/logger"
	"attendance/internal/platform/store"

	retentionmod "attendance/internal/services/retention/module"
)

func parseWhen(label, v string) time.Time {
	// Accept either date or date+hour:
	// - "YYYY-MM-DD" (midnight UTC)
	// - "YYYY-MM-DDTHH"
	if v == "" {
		return time.Time{}
	}
	layouts := []string{"2006-01-02T15", "2006-01-02"}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			if layout == "2006-01-02" {
				return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			}
			return t.UTC()
		}
		lastErr = err
	}
	panic(fmt.Errorf("bad -%s: %w", label, lastErr))
}

func main() {
	root := config.New()
	dbCfg := root.Prefix("SERVICE_PGSQL_")

	logOpt := logger.FromEnv()
	logOpt.Service = "attendance-retention"
	logger.Init(logOpt)
	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         dbCfg.MustString("DBURL"),
			MaxConns:    int32(dbCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: dbCfg.MayInt("SLOW_MS", 500),
			LogSQL:      dbCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var (
		fMode   = flag.String("mode", "window", "retention mode: window | range | resume")
		fWindow = flag.String("window", "", "bucket window-end (UTC) YYYY-MM-DD, used by -mode=window")
		fSince  = flag.String("since", "", "range lower bound (UTC) YYYY-MM-DD, used by -mode=range")
		fUntil  = flag.String("until", "", "range upper bound (UTC) YYYY-MM-DD, used by -mode=range")
	)
	flag.Parse()

	deps := modkit.Deps{Cfg: root, PG: st.PG, Log: *l}

	rm := retentionmod.New(deps)
	module.Register(rm.Name(), rm.Ports())
	ports := module.MustPortsOf[retentionmod.Ports](rm)

	ctx := context.Background()

	switch *fMode {
	case "window":
		windowEnd := parseWhen("window", *fWindow)
		if windowEnd.IsZero() {
			windowEnd = time.Now().UTC().Truncate(24 * time.Hour)
		}
		if err := ports.Runner.ApplyWindow(ctx, windowEnd); err != nil {
			l.Fatal().Err(err).Msg("retention: apply-window failed")
		}

	case "range":
		since := parseWhen("since", *fSince)
		until := parseWhen("until", *fUntil)
		if since.IsZero() || until.IsZero() {
			l.Panic().Msg("retention range mode: -since and -until are required (YYYY-MM-DD)")
		}
		if err := ports.Runner.RunRange(ctx, since, until); err != nil {
			l.Fatal().Err(err).Msg("retention: run-range failed")
		}

	case "resume":
		if err := ports.Runner.RunResume(ctx); err != nil {
			l.Fatal().Err(err).Msg("retention: run-resume failed")
		}

	default:
		l.Panic().Str("mode", *fMode).Msg("retention unknown -mode (expected: window | range | resume)")
	}
}
