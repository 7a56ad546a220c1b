// Package vdom provides the virtual DOM description used by the vtl runtime.
//
// A VNode tree is a plain value: it describes what a component wants on
// screen and carries no identity of its own. The runtime reconciles VNode
// trees into a real document (see package runtime) and the SSR renderer
// turns them into markup (see package render).
//
// # Core Types
//
// VNode is the building block for elements, text, fragments, components,
// raw HTML and strict-mode markers. Props holds attributes and event
// handlers. Attr and EventHandler are used to build Props.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    Button(OnClick(save), Text("Save")),
//	)
//
// # Components
//
// A Component renders to a VNode. Func wraps a render closure and Mount
// embeds a component in a tree:
//
//	counter := Func(func() *VNode {
//	    n, setN := reactive.UseState(0)
//	    return Button(OnClick(func() { setN(n + 1) }), Textf("%d", n))
//	})
//	tree := Div(Mount(counter))
//
// Two components are "the same" for reconciliation when SameComponent
// reports true; closures created from the same function literal qualify,
// so re-creating a Func on every render keeps its state.
package vdom
