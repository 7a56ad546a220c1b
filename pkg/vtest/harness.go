package vtest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/net/html"

	"github.com/vango-go/vtl/internal/config"
	"github.com/vango-go/vtl/pkg/dom"
	"github.com/vango-go/vtl/pkg/query"
	"github.com/vango-go/vtl/pkg/runtime"
	"github.com/vango-go/vtl/pkg/vdom"
)

// Runtime is the rendering API a Harness drives. *runtime.Runtime
// implements it.
type Runtime interface {
	Document() *dom.Document
	Act(fn func()) error
	InAct() bool
	IsActEnvironment() bool
	SetActEnvironment(enabled bool)
	CreateRoot(container *html.Node) *runtime.Root
	HydrateRoot(container *html.Node, ui *vdom.VNode) *runtime.Root
}

// LegacyRuntime is a Runtime that also has the single-shot API required by
// the LegacyRoot option. *runtime.Legacy implements it.
type LegacyRuntime interface {
	Runtime
	Render(ui *vdom.VNode, container *html.Node) error
	Hydrate(ui *vdom.VNode, container *html.Node) error
	UnmountComponentAtNode(container *html.Node) bool
}

// Harness renders components into one document and tracks their roots.
type Harness struct {
	rt       Runtime
	doc      *dom.Document
	registry *Registry
	logger   *slog.Logger
	out      io.Writer
}

// HarnessOption configures a Harness.
type HarnessOption func(*Harness)

// WithLogger sets the logger for failures that have no caller to return
// to, such as an error flushing after an event fired through query.
func WithLogger(logger *slog.Logger) HarnessOption {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithOutput sets where Debug prints. Defaults to os.Stdout.
func WithOutput(w io.Writer) HarnessOption {
	return func(h *Harness) {
		if w != nil {
			h.out = w
		}
	}
}

// WithRegistry makes the harness track roots in r.
func WithRegistry(r *Registry) HarnessOption {
	return func(h *Harness) {
		if r != nil {
			h.registry = r
		}
	}
}

// New creates a harness for rt.
//
// Example:
//
//	h := vtest.New(runtime.New(dom.New()))
//	h.Setup(t)
func New(rt Runtime, opts ...HarnessOption) *Harness {
	h := &Harness{
		rt:       rt,
		doc:      rt.Document(),
		registry: NewRegistry(),
		logger:   slog.Default(),
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With("component", "vtl.vtest")
	return h
}

var (
	defaultOnce    sync.Once
	defaultHarness *Harness
)

// Default returns the process-wide harness used by the package-level
// functions. On first use it loads vtl.yaml and VTL_* environment
// variables, and installs its wrappers into the query configuration.
func Default() *Harness {
	defaultOnce.Do(func() {
		cfg, err := config.LoadFromWorkingDir()
		if err != nil {
			slog.Default().Warn("ignoring invalid vtl configuration", "error", err)
			cfg = config.New()
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

		rt := runtime.NewLegacy(dom.New(),
			runtime.WithLogger(logger),
			runtime.WithFlusher(runtime.SyncFlusher{MaxPasses: cfg.Render.MaxFlushPasses}),
		)
		defaultHarness = New(rt, WithLogger(logger))

		strictMode.Store(cfg.Render.StrictMode)
		query.Configure(func(c *query.Config) {
			c.TestIDAttribute = cfg.Queries.TestIDAttribute
			c.AsyncUtilTimeout = cfg.AsyncTimeoutDuration()
			c.AsyncInterval = cfg.AsyncIntervalDuration()
			c.DebugPrintLimit = cfg.Queries.DebugPrintLimit
		})
		defaultHarness.InstallWrappers()
	})
	return defaultHarness
}

// Runtime returns the runtime the harness drives.
func (h *Harness) Runtime() Runtime { return h.rt }

// Document returns the harness document.
func (h *Harness) Document() *dom.Document { return h.doc }

// Registry returns the registry of roots.
func (h *Harness) Registry() *Registry { return h.registry }

// Act runs fn and flushes all work it scheduled before returning.
func (h *Harness) Act(fn func()) error {
	return h.rt.Act(fn)
}

// InstallWrappers makes the process-wide query configuration synchronize
// with this harness: events and WaitFor checks run inside Act.
func (h *Harness) InstallWrappers() {
	query.Configure(func(c *query.Config) {
		c.AsyncWrapper = h.asyncWrapper
		c.EventWrapper = h.eventWrapper
		c.AdvanceTimersWrapper = h.advanceTimersWrapper
	})
}

// QueryConfig returns the process-wide query configuration with this
// harness's wrappers.
func (h *Harness) QueryConfig() query.Config {
	cfg := query.GetConfig()
	cfg.AsyncWrapper = h.asyncWrapper
	cfg.EventWrapper = h.eventWrapper
	cfg.AdvanceTimersWrapper = h.advanceTimersWrapper
	return cfg
}

// Within returns queries bound to n that synchronize with this harness.
func (h *Harness) Within(n *html.Node, opts ...query.Option) *query.Queries {
	opts = append([]query.Option{query.WithConfig(h.QueryConfig())}, opts...)
	return query.Within(n, opts...)
}

// Screen returns queries bound to the document body.
func (h *Harness) Screen() *query.Queries {
	return h.Within(h.doc.Body())
}

// WaitFor retries cb until it returns nil. Checks run inside Act; between
// checks updates from other goroutines are applied as they happen.
func (h *Harness) WaitFor(ctx context.Context, cb func() error, opts ...query.WaitOption) error {
	return h.Screen().WaitFor(ctx, cb, opts...)
}

// asyncWrapper turns the act environment off while cb waits, so updates
// from other goroutines flush immediately instead of queueing with a
// warning, then flushes whatever is left.
func (h *Harness) asyncWrapper(cb func() error) error {
	prev := h.rt.IsActEnvironment()
	h.rt.SetActEnvironment(false)
	err := func() error {
		defer h.rt.SetActEnvironment(prev)
		return cb()
	}()
	if flushErr := h.rt.Act(func() {}); err == nil {
		err = flushErr
	}
	return err
}

func (h *Harness) eventWrapper(cb func()) {
	if err := h.rt.Act(cb); err != nil {
		h.logger.Error("flush after event failed", "error", err)
	}
}

func (h *Harness) advanceTimersWrapper(cb func()) {
	if err := h.rt.Act(cb); err != nil {
		h.logger.Error("flush during WaitFor failed", "error", err)
	}
}
