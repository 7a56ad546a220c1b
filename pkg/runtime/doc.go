// Package runtime mounts vdom trees into a dom.Document and keeps them up
// to date as component state changes.
//
// A Runtime owns roots. Each root renders one tree into one container
// element:
//
//	rt := runtime.New(doc)
//	root := rt.CreateRoot(container)
//	err := rt.Act(func() { root.Render(vdom.Mount(App())) })
//
// # Act
//
// State updates, root renders and dispatched work are queued. They are
// applied when the outermost Act scope exits, so code inside Act observes
// a consistent document and everything it triggered is committed (and its
// effects have run) by the time Act returns. Act scopes nest on one
// goroutine and serialize across goroutines.
//
// The act environment flag describes how updates outside any Act scope are
// treated. In an act environment (the default, meant for tests) they are
// queued for the next flush and logged as E010 warnings. Outside an act
// environment they are flushed right away.
//
// # Legacy API
//
// New returns a runtime with the concurrent root API only. NewLegacy adds
// the single-shot API (Render, Hydrate, UnmountComponentAtNode) which
// commits synchronously.
//
// # Hydration
//
// HydrateRoot attaches to markup that already exists in the container,
// typically produced by package render. Matching nodes are adopted in place;
// mismatches are repaired and reported as E040 warnings.
package runtime
