// Package errors provides structured, actionable error messages for vtl.
//
// Every error carries a stable code (e.g. "E020") that maps to a registered
// template with a short message, a longer explanation and a documentation
// link. Callers add a suggestion or example when they know how to fix the
// problem:
//
//	err := errors.New("E020").
//	    WithSuggestion("Construct the harness with runtime.NewLegacy")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E020: LegacyRoot is not supported by this runtime
//	//
//	//   ...
//	//
//	//   Hint: Construct the harness with runtime.NewLegacy
//
// # Error Categories
//
//   - runtime: rendering and hook errors (hook outside render, update depth)
//   - hydration: server markup does not match the client tree
//   - config: unsupported option combinations
//   - internal: invariant violations that indicate a bug in vtl itself
//   - query: DOM query failures
//
// errors.Is matches two errors with the same code, so callers can test
// against the exported sentinels of the packages that raise them.
package errors
