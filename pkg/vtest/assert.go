package vtest

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-go/vtl/pkg/dom"
	"github.com/vango-go/vtl/pkg/render"
	"github.com/vango-go/vtl/pkg/vdom"
)

// RenderToString renders node to HTML without mounting it, as a server
// would before hydration. It returns "" if rendering fails.
func RenderToString(node *vdom.VNode) string {
	out, err := render.RenderToString(node)
	if err != nil {
		return ""
	}
	return out
}

// ExpectContains asserts that the markup of n contains expected.
//
// Example:
//
//	vtest.ExpectContains(t, r.Container, "Welcome Admin")
func ExpectContains(t testing.TB, n *html.Node, expected string) {
	t.Helper()
	markup := dom.OuterHTML(n)
	if !strings.Contains(markup, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(markup, 500))
	}
}

// ExpectNotContains asserts that the markup of n does not contain
// unexpected.
func ExpectNotContains(t testing.TB, n *html.Node, unexpected string) {
	t.Helper()
	markup := dom.OuterHTML(n)
	if strings.Contains(markup, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(markup, 500))
	}
}

// ExpectElement asserts that n has a descendant matching selector.
//
// Example:
//
//	vtest.ExpectElement(t, r.Container, "button.primary")
func ExpectElement(t testing.TB, n *html.Node, selector string) {
	t.Helper()
	found, err := dom.QuerySelector(n, selector)
	if err != nil {
		t.Errorf("invalid selector %q: %v", selector, err)
		return
	}
	if found == nil {
		t.Errorf("expected an element matching %q, got:\n%s", selector, truncate(dom.OuterHTML(n), 500))
	}
}

// ExpectAttribute asserts that element n has attr set to value.
func ExpectAttribute(t testing.TB, n *html.Node, attr, value string) {
	t.Helper()
	got, ok := dom.GetAttribute(n, attr)
	switch {
	case !ok:
		t.Errorf("expected attribute %s=%q not found on:\n%s", attr, value, truncate(dom.OuterHTML(n), 500))
	case got != value:
		t.Errorf("attribute %s = %q, want %q", attr, got, value)
	}
}

// ExpectText asserts that the text content of n, with whitespace
// collapsed, equals want.
func ExpectText(t testing.TB, n *html.Node, want string) {
	t.Helper()
	got := strings.Join(strings.Fields(dom.TextContent(n)), " ")
	if got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
