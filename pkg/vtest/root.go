package vtest

import (
	"golang.org/x/net/html"

	vtlerrors "github.com/vango-go/vtl/internal/errors"
	"github.com/vango-go/vtl/pkg/runtime"
	"github.com/vango-go/vtl/pkg/vdom"
)

// Root is a mounted tree in one container.
type Root interface {
	Hydrate(ui *vdom.VNode) error
	Render(ui *vdom.VNode) error
	Unmount() error
}

// legacyRoot drives the single-shot API; every call commits synchronously.
type legacyRoot struct {
	rt        LegacyRuntime
	container *html.Node
}

func (r *legacyRoot) Hydrate(ui *vdom.VNode) error {
	return act(r.rt, func() error { return r.rt.Hydrate(ui, r.container) })
}

func (r *legacyRoot) Render(ui *vdom.VNode) error {
	return act(r.rt, func() error { return r.rt.Render(ui, r.container) })
}

func (r *legacyRoot) Unmount() error {
	return act(r.rt, func() error {
		r.rt.UnmountComponentAtNode(r.container)
		return nil
	})
}

// concurrentRoot wraps a runtime.Root. A hydrating root hydrates when it
// is mounted; Hydrate is then a no-op.
type concurrentRoot struct {
	rt        Runtime
	root      *runtime.Root
	hydrating bool
}

// mount creates the runtime root. Without hydration nothing is painted
// until Render. The runtime root exists even when hydration fails, so
// Unmount can release it.
func (r *concurrentRoot) mount(container *html.Node, ui *vdom.VNode) error {
	if !r.hydrating {
		r.root = r.rt.CreateRoot(container)
		return nil
	}
	return r.rt.Act(func() {
		r.root = r.rt.HydrateRoot(container, ui)
	})
}

func (r *concurrentRoot) Hydrate(*vdom.VNode) error {
	if !r.hydrating {
		panic(vtlerrors.New("E021"))
	}
	return nil
}

func (r *concurrentRoot) Render(ui *vdom.VNode) error {
	return act(r.rt, func() error { return r.root.Render(ui) })
}

func (r *concurrentRoot) Unmount() error {
	if r.root == nil {
		return nil
	}
	return act(r.rt, r.root.Unmount)
}

// act runs fn inside rt.Act and returns fn's error, or else the flush
// error.
func act(rt Runtime, fn func() error) error {
	var err error
	if flushErr := rt.Act(func() { err = fn() }); err == nil {
		err = flushErr
	}
	return err
}
