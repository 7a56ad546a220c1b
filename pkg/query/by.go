package query

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-go/vtl/pkg/dom"
)

// By describes how to select elements below a root. Build one with
// ByText, ByRole and the other By functions.
type By struct {
	desc string
	all  func(root *html.Node, cfg Config) []*html.Node
}

// String describes the query for error messages.
func (b By) String() string { return b.desc }

// ByText matches elements whose own text (the concatenation of their
// direct text children) matches m. Selector and Ignore narrow the
// candidates.
func ByText(m any, opts ...MatchOption) By {
	o := newMatchOptions(opts)
	mt := newMatcher(m, o)
	return By{
		desc: "with the text: " + mt.desc,
		all: func(root *html.Node, _ Config) []*html.Node {
			return filter(root, func(n *html.Node) bool {
				if !matchesSelector(n, o.selector) || (o.ignore != "" && matchesSelector(n, o.ignore)) {
					return false
				}
				return mt.match(ownText(n), n)
			})
		},
	}
}

// ByTestID matches elements whose Config.TestIDAttribute matches m.
func ByTestID(m any, opts ...MatchOption) By {
	o := newMatchOptions(opts)
	mt := newMatcher(m, o)
	return By{
		desc: "by test ID: " + mt.desc,
		all: func(root *html.Node, cfg Config) []*html.Node {
			return byAttribute(root, cfg.TestIDAttribute, mt)
		},
	}
}

// ByPlaceholderText matches elements whose placeholder attribute matches m.
func ByPlaceholderText(m any, opts ...MatchOption) By {
	mt := newMatcher(m, newMatchOptions(opts))
	return By{
		desc: "with the placeholder text of: " + mt.desc,
		all: func(root *html.Node, _ Config) []*html.Node {
			return byAttribute(root, "placeholder", mt)
		},
	}
}

// ByAltText matches img, input and area elements whose alt attribute
// matches m.
func ByAltText(m any, opts ...MatchOption) By {
	mt := newMatcher(m, newMatchOptions(opts))
	return By{
		desc: "with the alt text: " + mt.desc,
		all: func(root *html.Node, _ Config) []*html.Node {
			return filter(root, func(n *html.Node) bool {
				switch n.DataAtom {
				case atom.Img, atom.Input, atom.Area:
					alt, ok := dom.GetAttribute(n, "alt")
					return ok && mt.match(alt, n)
				}
				return false
			})
		},
	}
}

// ByTitle matches elements whose title attribute matches m, and SVG
// <title> elements whose text matches m.
func ByTitle(m any, opts ...MatchOption) By {
	mt := newMatcher(m, newMatchOptions(opts))
	return By{
		desc: "with the title: " + mt.desc,
		all: func(root *html.Node, _ Config) []*html.Node {
			return filter(root, func(n *html.Node) bool {
				if title, ok := dom.GetAttribute(n, "title"); ok && mt.match(title, n) {
					return true
				}
				return n.Data == "title" && n.Parent != nil && n.Parent.Data == "svg" &&
					mt.match(dom.TextContent(n), n)
			})
		},
	}
}

// ByDisplayValue matches input, textarea and select elements whose current
// value matches m. A select matches through the text of a selected option.
func ByDisplayValue(m any, opts ...MatchOption) By {
	mt := newMatcher(m, newMatchOptions(opts))
	return By{
		desc: "with the display value: " + mt.desc,
		all: func(root *html.Node, _ Config) []*html.Node {
			return filter(root, func(n *html.Node) bool {
				switch n.DataAtom {
				case atom.Input:
					typ, _ := dom.GetAttribute(n, "type")
					switch typ {
					case "checkbox", "radio", "submit", "button", "reset", "image":
						return false
					}
					return mt.match(dom.Value(n), n)
				case atom.Textarea:
					return mt.match(dom.Value(n), n)
				case atom.Select:
					for _, opt := range dom.Elements(n) {
						if opt.DataAtom == atom.Option && dom.HasAttribute(opt, "selected") &&
							mt.match(dom.TextContent(opt), opt) {
							return true
						}
					}
				}
				return false
			})
		},
	}
}

// ByLabelText matches form controls whose label matches m: a <label>
// (through for= or nesting), aria-labelledby or aria-label.
func ByLabelText(m any, opts ...MatchOption) By {
	o := newMatchOptions(opts)
	mt := newMatcher(m, o)
	return By{
		desc: "with the label text of: " + mt.desc,
		all: func(root *html.Node, _ Config) []*html.Node {
			found := make(map[*html.Node]bool)
			top := topOf(root)
			for _, n := range dom.Elements(top) {
				switch {
				case n.DataAtom == atom.Label:
					if mt.match(dom.TextContent(n), n) {
						if c := labeledControl(n); c != nil {
							found[c] = true
						}
					}
				case dom.HasAttribute(n, "aria-labelledby"):
					ids, _ := dom.GetAttribute(n, "aria-labelledby")
					var parts []string
					for _, id := range strings.Fields(ids) {
						if ref := elementByID(top, id); ref != nil {
							parts = append(parts, dom.TextContent(ref))
						}
					}
					if mt.match(strings.Join(parts, " "), n) {
						found[n] = true
					}
				}
				if label, ok := dom.GetAttribute(n, "aria-label"); ok && mt.match(label, n) {
					found[n] = true
				}
			}
			return filter(root, func(n *html.Node) bool {
				return found[n] && matchesSelector(n, o.selector)
			})
		},
	}
}

// ByRole matches elements with the given ARIA role. Name and Level narrow
// the match; elements outside the accessibility tree are skipped unless
// Hidden(true) is given.
func ByRole(role string, opts ...MatchOption) By {
	o := newMatchOptions(opts)
	desc := fmt.Sprintf("with the role %q", role)
	var name *matcher
	if o.name != nil {
		mt := newMatcher(o.name, o)
		name = &mt
		desc += fmt.Sprintf(" and name %q", mt.desc)
	}
	if o.level > 0 {
		desc += fmt.Sprintf(" and level %d", o.level)
	}
	return By{
		desc: desc,
		all: func(root *html.Node, _ Config) []*html.Node {
			return filter(root, func(n *html.Node) bool {
				if Role(n) != role {
					return false
				}
				if !o.hidden && IsInaccessible(n) {
					return false
				}
				if o.level > 0 && headingLevel(n) != o.level {
					return false
				}
				return name == nil || name.match(AccessibleName(n), n)
			})
		},
	}
}

// ownText is the text of n's direct text children.
func ownText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func byAttribute(root *html.Node, attr string, mt matcher) []*html.Node {
	return filter(root, func(n *html.Node) bool {
		v, ok := dom.GetAttribute(n, attr)
		return ok && mt.match(v, n)
	})
}

func filter(root *html.Node, keep func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for _, n := range dom.Elements(root) {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}

func matchesSelector(n *html.Node, selector string) bool {
	if selector == "" || selector == "*" {
		return true
	}
	ok, err := dom.Matches(n, selector)
	return err == nil && ok
}
