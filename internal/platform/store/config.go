package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs. openPG does not read these two fields: it pings with
	// fixed limits (20 attempts, 3s per ping, backoff from 150ms up to 2s)
	ConnectRetries int
	PingTimeout    time.Duration
}

