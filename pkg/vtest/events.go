package vtest

import (
	"context"

	"golang.org/x/net/html"

	"github.com/vango-go/vtl/pkg/dom"
	"github.com/vango-go/vtl/pkg/query"
)

// FireEvent dispatches ev at target inside Act. It reports whether the
// default action was not prevented.
func (h *Harness) FireEvent(target *html.Node, ev *dom.Event) (bool, error) {
	ok := true
	err := h.rt.Act(func() { ok = h.doc.DispatchEvent(target, ev) })
	return ok, err
}

// Click fires a click at target.
func (h *Harness) Click(target *html.Node) error {
	_, err := h.FireEvent(target, dom.NewEvent("click"))
	return err
}

// Submit fires a submit at target.
func (h *Harness) Submit(target *html.Node) error {
	_, err := h.FireEvent(target, dom.NewEvent("submit"))
	return err
}

// KeyDown fires a keydown for key at target.
func (h *Harness) KeyDown(target *html.Node, key string) error {
	ev := dom.NewEvent("keydown")
	ev.Key = key
	_, err := h.FireEvent(target, ev)
	return err
}

// Input sets the value of target and fires input.
func (h *Harness) Input(target *html.Node, value string) error {
	return h.rt.Act(func() {
		h.doc.SetValue(target, value)
		h.doc.DispatchEvent(target, dom.NewEvent("input"))
	})
}

// Change sets the value of target and fires change.
func (h *Harness) Change(target *html.Node, value string) error {
	return h.rt.Act(func() {
		h.doc.SetValue(target, value)
		h.doc.DispatchEvent(target, dom.NewEvent("change"))
	})
}

// Check sets the checked state of target and fires change.
func (h *Harness) Check(target *html.Node, checked bool) error {
	return h.rt.Act(func() {
		h.doc.SetChecked(target, checked)
		h.doc.DispatchEvent(target, dom.NewEvent("change"))
	})
}

// Act runs fn on the Default harness.
func Act(fn func()) error { return Default().Act(fn) }

// FireEvent dispatches ev on the Default harness.
func FireEvent(target *html.Node, ev *dom.Event) (bool, error) {
	return Default().FireEvent(target, ev)
}

// Click fires a click on the Default harness.
func Click(target *html.Node) error { return Default().Click(target) }

// Submit fires a submit on the Default harness.
func Submit(target *html.Node) error { return Default().Submit(target) }

// KeyDown fires a keydown on the Default harness.
func KeyDown(target *html.Node, key string) error { return Default().KeyDown(target, key) }

// Input sets a value and fires input on the Default harness.
func Input(target *html.Node, value string) error { return Default().Input(target, value) }

// Change sets a value and fires change on the Default harness.
func Change(target *html.Node, value string) error { return Default().Change(target, value) }

// Check toggles a checkbox on the Default harness.
func Check(target *html.Node, checked bool) error { return Default().Check(target, checked) }

// Screen returns queries bound to the Default harness's document body.
func Screen() *query.Queries { return Default().Screen() }

// Within returns queries bound to n that synchronize with the Default
// harness.
func Within(n *html.Node, opts ...query.Option) *query.Queries {
	return Default().Within(n, opts...)
}

// WaitFor retries cb on the Default harness until it returns nil.
func WaitFor(ctx context.Context, cb func() error, opts ...query.WaitOption) error {
	return Default().WaitFor(ctx, cb, opts...)
}
