package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-go/vtl/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vtl.yaml"

	// DefaultTestIDAttribute is the attribute read by test ID queries.
	DefaultTestIDAttribute = "data-testid"

	// DefaultAsyncTimeout is the default WaitFor timeout.
	DefaultAsyncTimeout = "1s"

	// DefaultAsyncInterval is the default delay between WaitFor checks.
	DefaultAsyncInterval = "50ms"

	// DefaultDebugPrintLimit bounds DOM dumps in query errors.
	DefaultDebugPrintLimit = 7000

	// DefaultMaxFlushPasses bounds the flush passes of one Act scope.
	DefaultMaxFlushPasses = 50

	// DefaultLogLevel is the level of the harness logger.
	DefaultLogLevel = "warn"
)

// Environment variables that override file settings.
const (
	EnvDebugPrintLimit = "VTL_DEBUG_PRINT_LIMIT"
	EnvStrictMode      = "VTL_STRICT_MODE"
	EnvTestIDAttribute = "VTL_TEST_ID_ATTRIBUTE"
	EnvAsyncTimeout    = "VTL_ASYNC_TIMEOUT"
	EnvLogLevel        = "VTL_LOG_LEVEL"
)

// Config represents the complete vtl.yaml configuration.
type Config struct {
	// Queries contains DOM query settings.
	Queries QueriesConfig `yaml:"queries,omitempty"`

	// Render contains renderer settings.
	Render RenderConfig `yaml:"render,omitempty"`

	// Log contains logging settings.
	Log LogConfig `yaml:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// QueriesConfig contains DOM query settings.
type QueriesConfig struct {
	// TestIDAttribute is the attribute read by test ID queries.
	TestIDAttribute string `yaml:"testIdAttribute,omitempty"`

	// AsyncTimeout is the default WaitFor timeout (e.g., "1s").
	AsyncTimeout string `yaml:"asyncTimeout,omitempty"`

	// AsyncInterval is the delay between WaitFor checks (e.g., "50ms").
	AsyncInterval string `yaml:"asyncInterval,omitempty"`

	// DebugPrintLimit bounds DOM dumps in query errors.
	DebugPrintLimit int `yaml:"debugPrintLimit,omitempty"`
}

// RenderConfig contains renderer settings.
type RenderConfig struct {
	// StrictMode wraps every rendered tree in vdom.StrictMode.
	StrictMode bool `yaml:"strictMode,omitempty"`

	// MaxFlushPasses bounds the flush passes of one Act scope.
	MaxFlushPasses int `yaml:"maxFlushPasses,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from vtl.yaml in dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile loads configuration from a specific file path. JSON files are
// accepted as well, since YAML is a superset of JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E031").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				Wrap(err)
		}
		return nil, errors.New("E031").Wrap(err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E030").
			WithDetail("Failed to parse " + path).
			Wrap(err)
	}
	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.New("E030").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E031").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from, or "".
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) applyDefaults() {
	if c.Queries.TestIDAttribute == "" {
		c.Queries.TestIDAttribute = DefaultTestIDAttribute
	}
	if c.Queries.AsyncTimeout == "" {
		c.Queries.AsyncTimeout = DefaultAsyncTimeout
	}
	if c.Queries.AsyncInterval == "" {
		c.Queries.AsyncInterval = DefaultAsyncInterval
	}
	if c.Queries.DebugPrintLimit == 0 {
		c.Queries.DebugPrintLimit = DefaultDebugPrintLimit
	}
	if c.Render.MaxFlushPasses == 0 {
		c.Render.MaxFlushPasses = DefaultMaxFlushPasses
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := parsePositiveDuration("queries.asyncTimeout", c.Queries.AsyncTimeout); err != nil {
		return err
	}
	if _, err := parsePositiveDuration("queries.asyncInterval", c.Queries.AsyncInterval); err != nil {
		return err
	}
	if c.Queries.DebugPrintLimit < 0 {
		return invalid("queries.debugPrintLimit must not be negative")
	}
	if c.Render.MaxFlushPasses < 0 {
		return invalid("render.maxFlushPasses must not be negative")
	}
	if _, ok := logLevels[strings.ToLower(c.Log.Level)]; !ok {
		return invalid(fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	return nil
}

// ApplyEnv overrides settings from environment variables read through
// lookup (os.LookupEnv in production).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTestIDAttribute); ok && v != "" {
		c.Queries.TestIDAttribute = v
	}
	if v, ok := lookup(EnvAsyncTimeout); ok && v != "" {
		c.Queries.AsyncTimeout = v
	}
	if v, ok := lookup(EnvDebugPrintLimit); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return invalid(EnvDebugPrintLimit + " must be an integer").Wrap(err)
		}
		c.Queries.DebugPrintLimit = n
	}
	if v, ok := lookup(EnvStrictMode); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return invalid(EnvStrictMode + " must be a boolean").Wrap(err)
		}
		c.Render.StrictMode = b
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	return c.Validate()
}

// AsyncTimeoutDuration returns Queries.AsyncTimeout parsed.
func (c *Config) AsyncTimeoutDuration() time.Duration {
	d, err := parsePositiveDuration("", c.Queries.AsyncTimeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultAsyncTimeout)
	}
	return d
}

// AsyncIntervalDuration returns Queries.AsyncInterval parsed.
func (c *Config) AsyncIntervalDuration() time.Duration {
	d, err := parsePositiveDuration("", c.Queries.AsyncInterval)
	if err != nil {
		d, _ = time.ParseDuration(DefaultAsyncInterval)
	}
	return d
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// SlogLevel returns Log.Level as a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	if l, ok := logLevels[strings.ToLower(c.Log.Level)]; ok {
		return l
	}
	return slog.LevelWarn
}

// Exists checks if a vtl.yaml exists in dir.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindConfigDir walks up from startDir to the nearest directory holding a
// vtl.yaml.
func FindConfigDir(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.New("E031").Wrap(err)
	}
	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E031").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads the nearest vtl.yaml above the working
// directory and applies environment overrides. Without a file it returns
// the defaults with environment overrides.
func LoadFromWorkingDir() (*Config, error) {
	cfg := New()
	if wd, err := os.Getwd(); err == nil {
		if dir, err := FindConfigDir(wd); err == nil {
			loaded, err := Load(dir)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parsePositiveDuration(field, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, invalid(fmt.Sprintf("%s %q is not a duration", field, s)).Wrap(err)
	}
	if d <= 0 {
		return 0, invalid(fmt.Sprintf("%s must be positive", field))
	}
	return d, nil
}

func invalid(detail string) *errors.VtlError {
	return errors.New("E030").WithDetail(detail)
}
