package module

import (
	"time"

	"attendance/internal/platform/config"
)

// Options for the retention module
type Options struct {
	Workers      int
	MaxAge       time.Duration
	EnableLeases bool
	LeaseTTL     time.Duration
}

// FromConfig fills options from environment
// CORE_RETENTION_WORKERS (default 2) is the number of concurrent drain workers
// CORE_RETENTION_MAX_AGE (default 8760h, one year) is how long events are retained
// CORE_RETENTION_LEASES (default true) enables the retention_runs row lease (guardrails.MakeLease) around bucket processing
func FromConfig(cfg config.Conf) Options {
	n := cfg.Prefix("CORE_RETENTION_")
	return Options{
		Workers:      n.MayInt("WORKERS", 2),
		MaxAge:       n.MayDuration("MAX_AGE", 365*24*time.Hour),
		EnableLeases: n.MayBool("LEASES", true),
		LeaseTTL:     n.MayDuration("LEASE_TTL", 3*time.Minute),
	}
}
