package module

import (
	"time"

	"attendance/internal/platform/config"

	"attendance/internal/services/attendance/service"
)

// Options for the attendance module, sourced from CORE_ATTENDANCE_* env keys
type Options struct {
	BusinessZone           string
	DedupWindowSeconds     int
	MinSimilarity          float64
	CooldownSerialization  service.CooldownSerialization
	IngestDeadline         time.Duration
	SnapshotRoot           string
}

// FromConfig fills options from environment, defaulting to the values the
// core specification documents:
//
//	CORE_ATTENDANCE_BUSINESS_ZONE (default "Asia/Dhaka")
//	CORE_ATTENDANCE_DEDUP_WINDOW_SECONDS (default 300)
//	CORE_ATTENDANCE_MIN_SIMILARITY (default 0.60)
//	CORE_ATTENDANCE_COOLDOWN_SERIALIZATION (default "per_employee_lock")
//	CORE_ATTENDANCE_INGEST_DEADLINE (default 5s)
//	CORE_ATTENDANCE_SNAPSHOT_ROOT (default "", no confinement)
func FromConfig(cfg config.Conf) Options {
	n := cfg.Prefix("CORE_ATTENDANCE_")
	serialization := n.MayEnum("COOLDOWN_SERIALIZATION", string(service.PerEmployeeLock),
		string(service.PerEmployeeLock), string(service.InTransactionRecheck))

	return Options{
		BusinessZone:          n.MayString("BUSINESS_ZONE", "Asia/Dhaka"),
		DedupWindowSeconds:    n.MayInt("DEDUP_WINDOW_SECONDS", 300),
		MinSimilarity:         n.MayFloat64("MIN_SIMILARITY", 0.60),
		CooldownSerialization: service.CooldownSerialization(serialization),
		IngestDeadline:        n.MayDuration("INGEST_DEADLINE", 5*time.Second),
		SnapshotRoot:          n.MayString("SNAPSHOT_ROOT", ""),
	}
}
