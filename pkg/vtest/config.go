package vtest

import (
	"sync"
	"sync/atomic"

	"github.com/vango-go/vtl/pkg/query"
)

// Config is the query configuration extended with render settings.
type Config struct {
	query.Config

	// StrictMode wraps every rendered tree in a strict-mode marker, which
	// renders components twice on mount.
	StrictMode bool
}

var (
	configMu   sync.Mutex
	strictMode atomic.Bool
)

// GetConfig returns the current configuration.
func GetConfig() Config {
	Default()
	return Config{Config: query.GetConfig(), StrictMode: strictMode.Load()}
}

// Configure updates the configuration. Fields update leaves alone keep
// their values; query fields are forwarded to query.Configure.
//
// Example:
//
//	vtest.Configure(func(c *vtest.Config) {
//	    c.StrictMode = true
//	    c.TestIDAttribute = "data-qa"
//	})
func Configure(update func(c *Config)) {
	Default()
	configMu.Lock()
	defer configMu.Unlock()

	cfg := Config{Config: query.GetConfig(), StrictMode: strictMode.Load()}
	update(&cfg)
	strictMode.Store(cfg.StrictMode)
	query.Configure(func(qc *query.Config) { *qc = cfg.Config })
}
