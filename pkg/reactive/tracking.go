package reactive

import (
	"sync"
	"sync/atomic"

	"github.com/vango-go/vtl/internal/goid"
)

// trackingContext holds the per-goroutine reactive state.
type trackingContext struct {
	currentOwner    *Owner
	currentListener Listener
	batchDepth      int
	pendingUpdates  []Listener
	renderDepth     int
}

func (c *trackingContext) empty() bool {
	return c.currentOwner == nil && c.currentListener == nil &&
		c.batchDepth == 0 && len(c.pendingUpdates) == 0 && c.renderDepth == 0
}

// trackingContexts maps goroutine IDs to their tracking context.
var trackingContexts sync.Map

// globalIDCounter is the source of unique IDs for owners, signals and effects.
var globalIDCounter atomic.Uint64

func nextID() uint64 {
	return globalIDCounter.Add(1)
}

func getTrackingContext() *trackingContext {
	gid := goid.ID()
	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}
	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// release drops the goroutine's context once nothing is tracked, so short
// lived goroutines do not leak entries.
func release(ctx *trackingContext) {
	if ctx.empty() {
		trackingContexts.Delete(goid.ID())
	}
}

// lookupTrackingContext returns the goroutine's context without creating
// one, so read-only checks leave no entry behind.
func lookupTrackingContext() *trackingContext {
	if ctx, ok := trackingContexts.Load(goid.ID()); ok {
		return ctx.(*trackingContext)
	}
	return nil
}

func getCurrentListener() Listener {
	if ctx := lookupTrackingContext(); ctx != nil {
		return ctx.currentListener
	}
	return nil
}

func getCurrentOwner() *Owner {
	if ctx := lookupTrackingContext(); ctx != nil {
		return ctx.currentOwner
	}
	return nil
}

// CurrentOwner returns the Owner installed on this goroutine, or nil.
func CurrentOwner() *Owner {
	return getCurrentOwner()
}

// WithOwner runs fn with owner as the current Owner.
func WithOwner(owner *Owner, fn func()) {
	ctx := getTrackingContext()
	old := ctx.currentOwner
	ctx.currentOwner = owner
	defer func() {
		ctx.currentOwner = old
		release(ctx)
	}()
	fn()
}

// WithListener runs fn with l as the current Listener.
func WithListener(l Listener, fn func()) {
	ctx := getTrackingContext()
	old := ctx.currentListener
	ctx.currentListener = l
	defer func() {
		ctx.currentListener = old
		release(ctx)
	}()
	fn()
}

// Untracked runs a function without tracking signal reads as dependencies.
func Untracked(fn func()) {
	WithListener(nil, fn)
}

// IsRendering reports whether a component render is in progress on this
// goroutine.
func IsRendering() bool {
	ctx := lookupTrackingContext()
	return ctx != nil && ctx.renderDepth > 0
}

func beginRender() {
	getTrackingContext().renderDepth++
}

func endRender() {
	ctx := getTrackingContext()
	ctx.renderDepth--
	release(ctx)
}
