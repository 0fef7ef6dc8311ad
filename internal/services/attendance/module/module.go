// Package module wires the attendance ingestion pipeline into the API using modkit
package module

import (
	"context"
	"net/http"

	"attendance/internal/core/clock"
	"attendance/internal/modkit"
	"attendance/internal/modkit/httpkit"
	str "attendance/internal/platform/strings"

	attendancehttp "attendance/internal/services/attendance/http"
	"attendance/internal/services/attendance/domain"
	"attendance/internal/services/attendance/policy"
	"attendance/internal/services/attendance/repo"
	"attendance/internal/services/attendance/service"
	"attendance/internal/services/attendance/snapshot"
)

// Ports exported by the attendance module for cross-module wiring
type Ports struct {
	Ingest domain.IngestPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	register func(httpkit.Router)
}

// New constructs the attendance module: business zone, evaluator, snapshot
// reader, and the transactional ingestion pipeline, then exposes the ingress
// endpoint over HTTP
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("attendance"), modkit.WithPrefix("/attendance")}, opts...)...)
	modOpts := FromConfig(deps.Cfg)

	zone := clock.MustZone(modOpts.BusinessZone)

	// Policy reads run outside the ingestion transaction: the registry is
	// read-mostly admin state, not written by ingestion (see domain ownership notes)
	policyRepo := repo.PolicyBinder().Bind(deps.PG)
	evaluator := policy.NewEvaluator(policyRepo, zone, nil)

	var reader domain.SnapshotReader
	if modOpts.SnapshotRoot != "" {
		reader = snapshot.NewLocalFileReader(modOpts.SnapshotRoot)
	} else {
		reader = snapshot.NewLocalFileReader("")
	}

	cfg := service.Config{
		BusinessZone:          modOpts.BusinessZone,
		DedupWindowSeconds:    modOpts.DedupWindowSeconds,
		MinSimilarity:         modOpts.MinSimilarity,
		CooldownSerialization: modOpts.CooldownSerialization,
		IngestDeadline:        modOpts.IngestDeadline,
		SnapshotReadMaxBytes:  snapshot.DefaultMaxBytes,
	}

	ingestion := service.NewIngestion(
		deps.PG,
		repo.EmployeeBinder(),
		repo.DeviceBinder(),
		repo.EventBinder(),
		repo.RecordBinder(),
		reader,
		evaluator,
		zone,
		cfg,
	)

	port := ingestPort{ingestion: ingestion, evaluator: evaluator}

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Ingest: port},
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		attendancehttp.Register(r, port)
		if external != nil {
			external(r)
		}
	}
	return m
}

// ingestPort adapts the Ingestion service and Evaluator into the single
// domain.IngestPort surface other modules (and the test suite) depend on
type ingestPort struct {
	ingestion *service.Ingestion
	evaluator *policy.Evaluator
}

func (p ingestPort) Ingest(ctx context.Context, ingress domain.Ingress) (*domain.Outcome, error) {
	return p.ingestion.Ingest(ctx, ingress)
}

func (p ingestPort) AttendanceAllowed(ctx context.Context, employee *domain.Employee, date clock.Date) (bool, error) {
	return p.evaluator.AttendanceAllowed(ctx, employee, date)
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }
