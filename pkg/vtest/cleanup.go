package vtest

import (
	"fmt"
	"testing"

	"golang.org/x/sync/errgroup"
)

// Cleanup unmounts every root the harness created and removes containers
// Render appended to the document body. The registry is empty afterwards
// even when an unmount fails; the first failure is returned.
//
// Roots are unmounted in parallel. Called from inside Act, for example
// from an event handler, the calling goroutine holds the act scope, so the
// roots are unmounted one by one on it instead.
func (h *Harness) Cleanup() error {
	entries := h.registry.snapshot()
	body := h.doc.Body()

	release := func(e registryEntry) error {
		if err := e.root.Unmount(); err != nil {
			return fmt.Errorf("vtest: unmount: %w", err)
		}
		return h.rt.Act(func() {
			if e.container.Parent == body {
				h.doc.RemoveChild(body, e.container)
			}
		})
	}

	var err error
	if h.rt.InAct() {
		for _, e := range entries {
			if rerr := release(e); rerr != nil && err == nil {
				err = rerr
			}
		}
	} else {
		var g errgroup.Group
		for _, e := range entries {
			g.Go(func() error { return release(e) })
		}
		err = g.Wait()
	}
	h.registry.Clear()

	if err != nil {
		h.logger.Warn("cleanup failed", "roots", len(entries), "error", err)
	} else {
		h.logger.Debug("cleanup", "roots", len(entries))
	}
	return err
}

// Setup registers Cleanup to run when tb finishes.
func (h *Harness) Setup(tb testing.TB) {
	tb.Helper()
	tb.Cleanup(func() {
		if err := h.Cleanup(); err != nil {
			tb.Errorf("vtest cleanup: %v", err)
		}
	})
}

// Cleanup cleans up the Default harness.
func Cleanup() error {
	return Default().Cleanup()
}

// Setup registers cleanup of the Default harness with tb.
func Setup(tb testing.TB) {
	tb.Helper()
	Default().Setup(tb)
}
