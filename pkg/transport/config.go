package transport

import (
	"time"

	"transporter-coordinator/pkg/match"
)

// Config carries the core tunables. It is passed into constructors
// explicitly; no component reads ambient state.
type Config struct {
	// MachineTimeout is how long a machine may stay silent before a sweep
	// demotes it to offline.
	MachineTimeout time.Duration
	// SweepInterval is the period of the background liveness sweep.
	SweepInterval time.Duration
	// Match configures the item resolver (fuzzy threshold, abbreviations).
	Match match.Config
}

func DefaultConfig() Config {
	return Config{
		MachineTimeout: 60 * time.Second,
		SweepInterval:  30 * time.Second,
		Match:          match.DefaultConfig(),
	}
}
