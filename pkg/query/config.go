package query

import (
	"sync"
	"time"
)

// Config holds the settings shared by queries, WaitFor and events.
type Config struct {
	// TestIDAttribute is the attribute read by ByTestID.
	TestIDAttribute string

	// AsyncUtilTimeout is the default WaitFor timeout.
	AsyncUtilTimeout time.Duration

	// AsyncInterval is the default delay between WaitFor checks.
	AsyncInterval time.Duration

	// DebugPrintLimit bounds the DOM dump in query errors.
	DebugPrintLimit int

	// AsyncWrapper wraps a whole WaitFor or Find call.
	AsyncWrapper func(cb func() error) error

	// EventWrapper wraps every event dispatch.
	EventWrapper func(cb func())

	// AdvanceTimersWrapper wraps every check WaitFor makes.
	AdvanceTimersWrapper func(cb func())
}

// DefaultConfig returns the configuration used before any call to
// Configure.
func DefaultConfig() Config {
	return Config{
		TestIDAttribute:      "data-testid",
		AsyncUtilTimeout:     time.Second,
		AsyncInterval:        50 * time.Millisecond,
		DebugPrintLimit:      7000,
		AsyncWrapper:         func(cb func() error) error { return cb() },
		EventWrapper:         func(cb func()) { cb() },
		AdvanceTimersWrapper: func(cb func()) { cb() },
	}
}

var (
	configMu sync.RWMutex
	current  = DefaultConfig()
)

// Configure updates the process-wide configuration. Zero values left by
// update are reset to their defaults.
//
// Example:
//
//	query.Configure(func(c *query.Config) {
//	    c.TestIDAttribute = "data-test"
//	})
func Configure(update func(c *Config)) {
	configMu.Lock()
	defer configMu.Unlock()
	update(&current)
	current = current.withDefaults()
}

// GetConfig returns a copy of the process-wide configuration.
func GetConfig() Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return current
}

// ResetConfig restores the default configuration.
func ResetConfig() {
	configMu.Lock()
	defer configMu.Unlock()
	current = DefaultConfig()
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TestIDAttribute == "" {
		c.TestIDAttribute = d.TestIDAttribute
	}
	if c.AsyncUtilTimeout <= 0 {
		c.AsyncUtilTimeout = d.AsyncUtilTimeout
	}
	if c.AsyncInterval <= 0 {
		c.AsyncInterval = d.AsyncInterval
	}
	if c.DebugPrintLimit <= 0 {
		c.DebugPrintLimit = d.DebugPrintLimit
	}
	if c.AsyncWrapper == nil {
		c.AsyncWrapper = d.AsyncWrapper
	}
	if c.EventWrapper == nil {
		c.EventWrapper = d.EventWrapper
	}
	if c.AdvanceTimersWrapper == nil {
		c.AdvanceTimersWrapper = d.AdvanceTimersWrapper
	}
	return c
}
