// Package module wires up the retention service as a modkit.Module
package module

import (
	"attendance/internal/modkit"
	"attendance/internal/modkit/httpkit"
	modreg "attendance/internal/modkit/module"
	"attendance/internal/modkit/repokit"

	attrepo "attendance/internal/services/attendance/repo"
	rtdom "attendance/internal/services/retention/domain"
	"attendance/internal/services/retention/guardrails"
	rtrepo "attendance/internal/services/retention/repo"
	rtservice "attendance/internal/services/retention/service"
)

// Ports exported by the retention module
type Ports struct {
	Runner rtdom.RunnerPort
}

// Module implements modkit.Module for retention
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs and wires the retention module using deps.Cfg
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	binder := rtrepo.New(attrepo.EventBinder())

	leaseFn := guardrails.MakeLease(deps, "retention", opts.LeaseTTL)

	svc := rtservice.New(
		repokit.TxRunner(deps.PG),
		binder,
		rtservice.Config{
			Workers:      opts.Workers,
			MaxAge:       opts.MaxAge,
			EnableLeases: opts.EnableLeases,
		},
		leaseFn,
	)

	m := &Module{deps: deps}
	m.ports = Ports{Runner: svc}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "retention" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module config prefix (none)
func (m *Module) Prefix() string { return "" }

// MountRoutes is a no-op: retention has no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}

// Register convenience: allow others to resolve our ports via registry
func Register(deps modkit.Deps) {
	modreg.Register("retention", New(deps))
}
