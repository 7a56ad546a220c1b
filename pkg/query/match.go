package query

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// MatchOption adjusts how a query matches. Options that do not apply to a
// query are ignored.
type MatchOption func(*matchOptions)

type matchOptions struct {
	exact     bool
	normalize func(string) string
	selector  string
	ignore    string
	hidden    bool
	name      any
	level     int
}

func newMatchOptions(opts []MatchOption) matchOptions {
	o := matchOptions{
		exact:     true,
		normalize: normalizeSpace,
		selector:  "*",
		ignore:    "script, style",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Exact selects exact matching (the default) or case-insensitive substring
// matching of string matchers.
func Exact(exact bool) MatchOption {
	return func(o *matchOptions) { o.exact = exact }
}

// Normalizer replaces the default whitespace normalization applied to
// text before matching.
func Normalizer(fn func(string) string) MatchOption {
	return func(o *matchOptions) {
		if fn != nil {
			o.normalize = fn
		}
	}
}

// Selector restricts ByText and ByLabelText to elements matching a CSS
// selector.
func Selector(selector string) MatchOption {
	return func(o *matchOptions) { o.selector = selector }
}

// Ignore sets the CSS selector of elements ByText skips. The default is
// "script, style"; an empty string ignores nothing.
func Ignore(selector string) MatchOption {
	return func(o *matchOptions) { o.ignore = selector }
}

// Hidden makes ByRole include elements excluded from the accessibility
// tree.
func Hidden(hidden bool) MatchOption {
	return func(o *matchOptions) { o.hidden = hidden }
}

// Name filters ByRole results by accessible name. It takes the same
// matcher forms as text queries.
func Name(name any) MatchOption {
	return func(o *matchOptions) { o.name = name }
}

// Level filters ByRole("heading") results by heading level.
func Level(level int) MatchOption {
	return func(o *matchOptions) { o.level = level }
}

// normalizeSpace trims s and collapses whitespace runs to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type matcher struct {
	desc  string
	match func(text string, n *html.Node) bool
}

// newMatcher builds a matcher from a string, *regexp.Regexp or function.
// Any other type is a programming error and panics.
func newMatcher(m any, o matchOptions) matcher {
	norm := o.normalize
	switch v := m.(type) {
	case string:
		if o.exact {
			return matcher{desc: v, match: func(text string, _ *html.Node) bool {
				return norm(text) == v
			}}
		}
		lower := strings.ToLower(v)
		return matcher{desc: v, match: func(text string, _ *html.Node) bool {
			return strings.Contains(strings.ToLower(norm(text)), lower)
		}}
	case *regexp.Regexp:
		return matcher{desc: "/" + v.String() + "/", match: func(text string, _ *html.Node) bool {
			return v.MatchString(norm(text))
		}}
	case func(string, *html.Node) bool:
		return matcher{desc: "custom matcher", match: func(text string, n *html.Node) bool {
			return v(norm(text), n)
		}}
	case func(string) bool:
		return matcher{desc: "custom matcher", match: func(text string, _ *html.Node) bool {
			return v(norm(text))
		}}
	}
	panic(fmt.Sprintf("query: unsupported matcher type %T", m))
}
