// Package vtest mounts Vango components into an in-memory document so tests
// can interact with them through events and query the result the way a
// user would.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    vtest.Setup(t)
//
//	    r, err := vtest.Render(vdom.Mount(Counter()))
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    button, err := r.GetByRole("button")
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    vtest.Click(button)
//	    if _, err := r.GetByText("count: 1"); err != nil {
//	        t.Error(err)
//	    }
//	}
//
// # Roots and Cleanup
//
// Every container gets exactly one root, created on the first Render into
// it and reused afterwards. Cleanup unmounts all roots and removes the
// containers Render appended to the document body. Setup registers Cleanup
// with t.Cleanup.
//
// # Act
//
// Renders, events and WaitFor checks run inside Act: when Act returns,
// every scheduled render has been committed and every effect has run.
// Wrap direct state updates in tests the same way:
//
//	vtest.Act(func() { setCount(5) })
//
// # Hooks
//
// RenderHook calls a function inside a throwaway component and exposes its
// latest return value:
//
//	h, _ := vtest.RenderHook(func(step int) int {
//	    n, _ := reactive.UseState(step)
//	    return n
//	}, 1)
//	h.Result.Current() // 1
//
// # Harnesses
//
// The package-level functions use Default, a process-wide Harness
// configured from vtl.yaml and VTL_* environment variables. Tests that
// need isolation build their own with New.
package vtest
