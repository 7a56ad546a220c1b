// Package reactive implements the hook and state layer used by vtl
// components.
//
// Every mounted component instance owns an Owner. During a render the
// runtime installs the Owner (and the instance as the current Listener) on
// the rendering goroutine; hooks such as UseState, UseSignal, UseRef and
// UseEffect then find their per-instance state in the Owner's hook slots,
// which keeps their identity stable across renders.
//
// # Signals
//
// A Signal holds a value. Reading it with Get during a render subscribes the
// rendering component; Set notifies subscribers, which makes the runtime
// schedule a re-render:
//
//	count := reactive.UseSignal(0)
//	return Button(OnClick(func() { count.Update(func(n int) int { return n + 1 }) }),
//	    Textf("%d", count.Get()))
//
// Batch groups several writes into one notification pass.
//
// # Effects
//
// UseEffect registers a post-commit effect. The runtime runs pending effects
// after it has applied a render to the document, so an effect always
// observes committed DOM:
//
//	reactive.UseEffect(func() reactive.Cleanup {
//	    stop := subscribe()
//	    return stop
//	}, userID)
//
// With no dependencies the effect runs after every commit. With
// dependencies it runs when any of them changed since the last run.
package reactive
