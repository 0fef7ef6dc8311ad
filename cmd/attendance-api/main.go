// @title         Attendance Core API
// @version       0.1.0
// @description   Recognition-to-attendance ingestion pipeline

package main

import (
	"context"

	"attendance/internal/platform/config"
	"attendance/internal/platform/logger"
	phttp "attendance/internal/platform/net/http"
	"attendance/internal/platform/store"

	"attendance/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// db config lives under SERVICE_PGSQL_*
	dbCfg := root.Prefix("SERVICE_PGSQL_")

	// bring up logging early, tagged so ingestion/evaluator logs are
	// distinguishable from the retention job's in shared log aggregation
	logOpt := logger.FromEnv()
	logOpt.Service = "attendance-api"
	logger.Init(logOpt)
	l := logger.Get()

	// open the platform store (postgres adapter)
	dsn := dbCfg.MayString("DBURL", "")
	if dsn == "" {
		panic("missing SERVICE_PGSQL_DBURL")
	}
	st, err := store.Open(
		context.Background(),
		store.Config{
			PG: store.PGConfig{
				Enabled:     true,
				URL:         dsn,
				MaxConns:    int32(dbCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: dbCfg.MayInt("SLOW_MS", 500),
				LogSQL:      dbCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (NewServer reads API_PORT under this prefix, i.e. CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount the attendance ingestion API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
