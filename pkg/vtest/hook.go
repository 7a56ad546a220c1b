package vtest

import (
	"github.com/vango-go/vtl/pkg/reactive"
	"github.com/vango-go/vtl/pkg/vdom"
)

// HookResult holds the latest value returned by a hook callback.
type HookResult[P, R any] struct {
	// Result is updated after every commit of the test component.
	Result *reactive.Ref[R]

	render *RenderResult
	comp   vdom.Component
	props  P
}

// RenderHook calls callback inside a test component that renders nothing,
// using the Default harness.
func RenderHook[P, R any](callback func(props P) R, initialProps P, opts ...RenderOption) (*HookResult[P, R], error) {
	return RenderHookIn(Default(), callback, initialProps, opts...)
}

// RenderHookIn is RenderHook for a specific harness.
func RenderHookIn[P, R any](h *Harness, callback func(props P) R, initialProps P, opts ...RenderOption) (*HookResult[P, R], error) {
	var zero R
	hr := &HookResult[P, R]{
		Result: reactive.NewRef(zero),
		props:  initialProps,
	}
	// One component value for the lifetime of the result, so rerenders
	// keep hook state.
	hr.comp = vdom.Func(func() *vdom.VNode {
		value := callback(hr.props)
		reactive.UseEffect(func() reactive.Cleanup {
			hr.Result.Set(value)
			return nil
		})
		return nil
	})

	r, err := h.Render(vdom.Mount(hr.comp), opts...)
	if err != nil {
		return nil, err
	}
	hr.render = r
	return hr, nil
}

// Rerender renders the test component again with props.
func (hr *HookResult[P, R]) Rerender(props P) error {
	hr.props = props
	return hr.render.Rerender(vdom.Mount(hr.comp))
}

// Unmount unmounts the test component, running effect cleanups.
func (hr *HookResult[P, R]) Unmount() error {
	return hr.render.Unmount()
}

// RenderResult returns the underlying render.
func (hr *HookResult[P, R]) RenderResult() *RenderResult {
	return hr.render
}
