package dom

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// QuerySelector returns the first descendant of n matching the CSS
// selector, or nil.
func QuerySelector(n *html.Node, selector string) (*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: invalid selector %q: %w", selector, err)
	}
	return cascadia.Query(n, sel), nil
}

// QuerySelectorAll returns every descendant of n matching the CSS selector
// in document order.
func QuerySelectorAll(n *html.Node, selector string) ([]*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("dom: invalid selector %q: %w", selector, err)
	}
	return cascadia.QueryAll(n, sel), nil
}

// Matches reports whether n itself matches the CSS selector.
func Matches(n *html.Node, selector string) (bool, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return false, fmt.Errorf("dom: invalid selector %q: %w", selector, err)
	}
	return sel.Match(n), nil
}
