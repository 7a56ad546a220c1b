package config

import (
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vango-go/vtl/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Queries.TestIDAttribute != DefaultTestIDAttribute {
		t.Errorf("TestIDAttribute = %q, want %q", cfg.Queries.TestIDAttribute, DefaultTestIDAttribute)
	}
	if got := cfg.AsyncTimeoutDuration(); got != time.Second {
		t.Errorf("AsyncTimeoutDuration = %v", got)
	}
	if got := cfg.AsyncIntervalDuration(); got != 50*time.Millisecond {
		t.Errorf("AsyncIntervalDuration = %v", got)
	}
	if cfg.Render.MaxFlushPasses != DefaultMaxFlushPasses {
		t.Errorf("MaxFlushPasses = %d", cfg.Render.MaxFlushPasses)
	}
	if cfg.SlogLevel() != slog.LevelWarn {
		t.Errorf("SlogLevel = %v", cfg.SlogLevel())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Missing file
	_, err := Load(tmpDir)
	if !stderrors.Is(err, errors.Sentinel("E031")) {
		t.Errorf("missing config err = %v", err)
	}

	configYAML := `
queries:
  testIdAttribute: data-test
  asyncTimeout: 250ms
render:
  strictMode: true
log:
  level: debug
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := &Config{
		Queries: QueriesConfig{
			TestIDAttribute: "data-test",
			AsyncTimeout:    "250ms",
			AsyncInterval:   DefaultAsyncInterval,
			DebugPrintLimit: DefaultDebugPrintLimit,
		},
		Render: RenderConfig{StrictMode: true, MaxFlushPasses: DefaultMaxFlushPasses},
		Log:    LogConfig{Level: "debug"},
	}
	if diff := cmp.Diff(want, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path = %q", cfg.Path())
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel = %v", cfg.SlogLevel())
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vtl.json")
	if err := os.WriteFile(path, []byte(`{"queries": {"debugPrintLimit": 100}}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Queries.DebugPrintLimit != 100 {
		t.Errorf("DebugPrintLimit = %d", cfg.Queries.DebugPrintLimit)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "queries: [unclosed"},
		{"bad duration", "queries:\n  asyncTimeout: soon\n"},
		{"negative duration", "queries:\n  asyncInterval: -1s\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"negative passes", "render:\n  maxFlushPasses: -2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFileName)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFile(path)
			if !stderrors.Is(err, errors.Sentinel("E030")) {
				t.Errorf("err = %v, want E030", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvTestIDAttribute: "data-qa",
		EnvAsyncTimeout:    "3s",
		EnvDebugPrintLimit: "42",
		EnvStrictMode:      "true",
		EnvLogLevel:        "error",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := New()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.Queries.TestIDAttribute != "data-qa" || cfg.AsyncTimeoutDuration() != 3*time.Second ||
		cfg.Queries.DebugPrintLimit != 42 || !cfg.Render.StrictMode || cfg.SlogLevel() != slog.LevelError {
		t.Errorf("env not applied: %+v", cfg)
	}

	env[EnvStrictMode] = "maybe"
	if err := New().ApplyEnv(lookup); !stderrors.Is(err, errors.Sentinel("E030")) {
		t.Errorf("bad bool err = %v", err)
	}
	env[EnvStrictMode] = "false"
	env[EnvDebugPrintLimit] = "many"
	if err := New().ApplyEnv(lookup); err == nil {
		t.Error("expected error for non-integer print limit")
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	cfg := New()
	cfg.Render.StrictMode = true

	if err := cfg.Save(); err == nil {
		t.Error("Save without a path should fail")
	}
	if err := cfg.SaveTo(filepath.Join(dir, ConfigFileName)); err != nil {
		t.Fatal(err)
	}
	if !Exists(dir) {
		t.Fatal("Exists = false after SaveTo")
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, loaded, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFindConfigDir(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if _, err := FindConfigDir(nested); err == nil {
		t.Error("expected error without a config file")
	}

	if err := os.WriteFile(filepath.Join(root, ConfigFileName), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := FindConfigDir(nested)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindConfigDir = %q, want %q", got, want)
	}
}

func TestLoadFromWorkingDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("queries:\n  testIdAttribute: data-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv(EnvDebugPrintLimit, "9")

	cfg, err := LoadFromWorkingDir()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Queries.TestIDAttribute != "data-file" {
		t.Errorf("TestIDAttribute = %q", cfg.Queries.TestIDAttribute)
	}
	if cfg.Queries.DebugPrintLimit != 9 {
		t.Errorf("DebugPrintLimit = %d", cfg.Queries.DebugPrintLimit)
	}
}
