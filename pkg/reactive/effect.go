package reactive

import (
	"reflect"
	"sync/atomic"

	vtlerrors "github.com/vango-go/vtl/internal/errors"
)

// effect is a post-commit side effect owned by a component.
type effect struct {
	id      uint64
	fn      func() Cleanup
	cleanup Cleanup
	deps    []any
	ran     bool
	owner   *Owner

	pending  atomic.Bool
	disposed atomic.Bool
}

func (e *effect) run() {
	if e.disposed.Load() {
		return
	}
	e.pending.Store(false)

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	// Effects run outside any render; reads must not subscribe a component.
	Untracked(func() {
		WithOwner(e.owner, func() {
			e.cleanup = e.fn()
		})
	})
	e.ran = true
}

func (e *effect) dispose() {
	if e.disposed.Swap(true) {
		return
	}
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}

// UseEffect registers fn to run after the component's render is committed.
//
// With no deps the effect runs after every commit. With deps it runs on
// the first commit and afterwards only when a dependency differs
// (reflect.DeepEqual) from the previous render. The returned Cleanup runs
// before the next run and on unmount.
func UseEffect(fn func() Cleanup, deps ...any) {
	owner := mustOwner("UseEffect")
	owner.TrackHook(HookEffect)

	var e *effect
	if slot := owner.UseHookSlot(); slot != nil {
		e = slot.(*effect)
	} else {
		e = &effect{id: nextID(), owner: owner}
		owner.SetHookSlot(e)
		owner.registerEffect(e)
	}

	e.fn = fn
	if e.ran && deps != nil && reflect.DeepEqual(e.deps, deps) {
		return
	}
	e.deps = deps
	if e.pending.CompareAndSwap(false, true) {
		owner.scheduleEffect(e)
	}
}

// OnMount runs fn once, after the first commit of the component.
func OnMount(fn func()) {
	UseEffect(func() Cleanup {
		fn()
		return nil
	}, struct{}{})
}

// OnUnmount registers fn to run when the component unmounts.
func OnUnmount(fn func()) {
	owner := mustOwner("OnUnmount")
	if owner.UseHookSlot() == nil {
		owner.SetHookSlot(true)
		owner.OnCleanup(fn)
	}
}

// mustOwner returns the current owner or panics with E001: hooks only work
// while a component renders.
func mustOwner(hook string) *Owner {
	owner := getCurrentOwner()
	if owner == nil || !IsRendering() {
		panic(vtlerrors.New("E001").WithDetail(hook + " was called outside a component render."))
	}
	return owner
}
