package runtime

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"

	vtlerrors "github.com/vango-go/vtl/internal/errors"
	"github.com/vango-go/vtl/pkg/dom"
	"github.com/vango-go/vtl/pkg/reactive"
	"github.com/vango-go/vtl/pkg/vdom"
)

// Runtime renders component trees into a document.
type Runtime struct {
	doc     *dom.Document
	logger  *slog.Logger
	flusher Flusher
	metrics *metrics
	tracer  trace.Tracer

	scope  *actScope
	actEnv atomic.Bool

	mu      sync.Mutex
	queue   []func()
	dirty   map[*Root]struct{}
	roots   map[*html.Node]*Root
	rootSeq uint64
}

// New creates a runtime with the concurrent root API.
func New(doc *dom.Document, opts ...Option) *Runtime {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	rt := &Runtime{
		doc:     doc,
		logger:  cfg.logger.With("component", "vtl.runtime"),
		flusher: cfg.flusher,
		metrics: newMetrics(cfg.registerer),
		tracer:  cfg.tracerProvider.Tracer(tracerName),
		scope:   newActScope(),
		dirty:   make(map[*Root]struct{}),
		roots:   make(map[*html.Node]*Root),
	}
	rt.actEnv.Store(cfg.actEnvironment)
	return rt
}

// Document returns the document the runtime renders into.
func (rt *Runtime) Document() *dom.Document {
	return rt.doc
}

// IsActEnvironment reports whether updates outside Act are queued and
// warned about.
func (rt *Runtime) IsActEnvironment() bool {
	return rt.actEnv.Load()
}

// SetActEnvironment sets the act environment flag.
func (rt *Runtime) SetActEnvironment(enabled bool) {
	rt.actEnv.Store(enabled)
}

// InAct reports whether the calling goroutine is inside an Act scope.
func (rt *Runtime) InAct() bool {
	return rt.scope.heldByCurrent()
}

// CreateRoot creates an empty root for container. Nothing is rendered
// until Render is called.
func (rt *Runtime) CreateRoot(container *html.Node) *Root {
	return rt.newRoot(container, false)
}

// HydrateRoot creates a root that adopts the markup already in container
// and schedules ui to hydrate it.
func (rt *Runtime) HydrateRoot(container *html.Node, ui *vdom.VNode) *Root {
	r := rt.newRoot(container, true)
	r.element = ui
	rt.scheduleRoot(r)
	return r
}

func (rt *Runtime) newRoot(container *html.Node, hydrate bool) *Root {
	rt.mu.Lock()
	if _, exists := rt.roots[container]; exists {
		rt.logger.Warn("container already has a root; the previous root keeps rendering into it",
			"container", container.Data)
	}
	rt.rootSeq++
	r := newRoot(rt, container, hydrate, rt.rootSeq)
	rt.roots[container] = r
	rt.mu.Unlock()

	rt.metrics.roots.Inc()
	return r
}

func (rt *Runtime) untrack(r *Root) {
	rt.mu.Lock()
	if rt.roots[r.container] == r {
		delete(rt.roots, r.container)
	}
	delete(rt.dirty, r)
	rt.mu.Unlock()

	rt.metrics.roots.Dec()
}

// Act runs fn inside an act scope. When the outermost scope exits, all
// queued work is flushed: roots are committed and effects run, repeatedly,
// until nothing is left. The flush error, if any, is returned.
func (rt *Runtime) Act(fn func()) error {
	return rt.run(func() error {
		reactive.Batch(fn)
		return nil
	})
}

// run is Act for callbacks that fail. A callback error skips the flush.
func (rt *Runtime) run(fn func() error) error {
	outermost := rt.scope.enter()
	defer rt.scope.exit()

	if err := fn(); err != nil {
		return err
	}
	if !outermost {
		return nil
	}
	return rt.flush()
}

// Dispatch queues fn to run at the next flush, on the goroutine that
// flushes. It is safe to call from any goroutine.
func (rt *Runtime) Dispatch(fn func()) {
	rt.mu.Lock()
	rt.queue = append(rt.queue, fn)
	rt.mu.Unlock()
	rt.scheduled()
}

func (rt *Runtime) scheduleRoot(r *Root) {
	rt.mu.Lock()
	rt.dirty[r] = struct{}{}
	rt.mu.Unlock()
	rt.scheduled()
}

// scheduled decides when newly queued work runs.
func (rt *Runtime) scheduled() {
	if rt.scope.heldByCurrent() {
		return
	}
	if rt.actEnv.Load() {
		ve := vtlerrors.New("E010")
		rt.logger.Warn(ve.Message, "code", ve.Code, "hint", ve.Suggestion)
		return
	}
	if err := rt.Act(func() {}); err != nil {
		rt.logger.Error("flush failed", "error", err)
	}
}

func (rt *Runtime) hasPending() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return len(rt.queue) > 0 || len(rt.dirty) > 0
}

// flush drains queued work. The caller holds the act scope.
func (rt *Runtime) flush() error {
	if !rt.hasPending() {
		return nil
	}

	span := rt.startFlushSpan()
	passes, commits := 0, 0
	err := rt.flusher.Flush(func() (bool, error) {
		passes++
		rt.metrics.passes.Inc()
		n, err := rt.pass()
		commits += n
		if err != nil {
			return false, err
		}
		return rt.hasPending(), nil
	})
	if err != nil {
		rt.mu.Lock()
		rt.queue = nil
		rt.dirty = make(map[*Root]struct{})
		rt.mu.Unlock()
	}
	endFlushSpan(span, passes, commits, err)
	return err
}

// pass runs the queued functions, commits dirty roots in creation order and
// runs their effects. It returns the number of roots committed.
func (rt *Runtime) pass() (commits int, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = recoverRender(p)
		}
	}()

	rt.mu.Lock()
	queue := rt.queue
	rt.queue = nil
	rt.mu.Unlock()

	for _, fn := range queue {
		reactive.Batch(fn)
	}

	rt.mu.Lock()
	roots := make([]*Root, 0, len(rt.dirty))
	for r := range rt.dirty {
		roots = append(roots, r)
	}
	rt.dirty = make(map[*Root]struct{})
	rt.mu.Unlock()
	sort.Slice(roots, func(i, j int) bool { return roots[i].seq < roots[j].seq })

	for _, r := range roots {
		if r.unmounted {
			continue
		}
		r.commit()
		commits++
	}
	for _, r := range roots {
		if !r.unmounted {
			r.owner.RunPendingEffects()
		}
	}
	return commits, nil
}

// recoverRender converts a panic from component code into an E003 error.
// Hook misuse stays a panic since it is a programming error.
func recoverRender(p any) error {
	if ve, ok := p.(*vtlerrors.VtlError); ok && (ve.Code == "E001" || ve.Code == "E002") {
		panic(ve)
	}
	if err, ok := p.(error); ok {
		return vtlerrors.New("E003").Wrap(err)
	}
	return vtlerrors.New("E003").Wrap(&PanicError{Value: p})
}

// PanicError carries a panic value that was not an error. Use errors.As on
// a render error to get the original value back.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprint(e.Value)
}
