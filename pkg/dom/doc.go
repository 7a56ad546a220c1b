// Package dom is the in-memory document that vtl renders into.
//
// A Document wraps a golang.org/x/net/html tree with the handful of DOM
// operations a renderer and a test need: node creation, child list and
// attribute mutation, mutation observers, event listeners with bubbling,
// CSS selectors (via cascadia) and a pretty printer for debug output.
//
// Nodes are plain *html.Node values, so anything that works on an x/net
// parse tree (html.Render, cascadia, custom walkers) works on a Document.
//
// A Document is not safe for concurrent use. The runtime serializes all
// access through its act scopes.
package dom
