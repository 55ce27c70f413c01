package store

import "time"

// Config holds configuration for the Store.
type Config struct {
	// SeqStart is the first value handed out by each per-kind id
	// sequence. Reset restores sequences to this value.
	// Default: 1
	SeqStart int

	// Clock supplies timestamps for record metadata and events.
	// Inject a fixed clock in tests for deterministic CreatedAt values.
	// Default: time.Now
	Clock func() time.Time
}

// DefaultConfig returns sensible defaults for small datasets.
func DefaultConfig() Config {
	return Config{
		SeqStart: 1,
		Clock:    time.Now,
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.SeqStart < 1 {
		c.SeqStart = 1
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
}
