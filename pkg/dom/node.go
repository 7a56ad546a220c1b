package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// walk visits n and its descendants depth first. Returning false from fn
// skips the node's children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// Walk visits n and its descendants in document order. Returning false
// from fn skips the node's children.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	walk(n, fn)
}

// Elements returns the element descendants of n in document order,
// excluding n itself.
func Elements(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(x *html.Node) bool {
			if x.Type == html.ElementNode {
				out = append(out, x)
			}
			return true
		})
	}
	return out
}

// OuterHTML serializes n including its own tag.
func OuterHTML(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML serializes the children of n.
func InnerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	walk(n, func(x *html.Node) bool {
		if x.Type == html.TextNode {
			b.WriteString(x.Data)
		}
		return x.Type != html.CommentNode
	})
	return b.String()
}

// Contains reports whether other is n or a descendant of n.
func Contains(n, other *html.Node) bool {
	for x := other; x != nil; x = x.Parent {
		if x == n {
			return true
		}
	}
	return false
}

// GetAttribute returns the value of an attribute and whether it is present.
func GetAttribute(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttribute reports whether an attribute is present.
func HasAttribute(n *html.Node, name string) bool {
	_, ok := GetAttribute(n, name)
	return ok
}

// Value returns the current value of a form control.
func Value(n *html.Node) string {
	switch n.DataAtom {
	case atom.Textarea:
		return TextContent(n)
	case atom.Select:
		var first, selected *html.Node
		walk(n, func(c *html.Node) bool {
			if c.DataAtom == atom.Option {
				if first == nil {
					first = c
				}
				if selected == nil && HasAttribute(c, "selected") {
					selected = c
				}
			}
			return true
		})
		if selected == nil {
			selected = first
		}
		if selected == nil {
			return ""
		}
		return optionValue(selected)
	default:
		v, _ := GetAttribute(n, "value")
		return v
	}
}

func optionValue(n *html.Node) string {
	if v, ok := GetAttribute(n, "value"); ok {
		return v
	}
	return strings.TrimSpace(TextContent(n))
}

// ParseFragment parses markup as the children of context. A nil context
// parses in a <body>.
func ParseFragment(context *html.Node, markup string) ([]*html.Node, error) {
	if context == nil || context.Type != html.ElementNode {
		context = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	}
	return html.ParseFragment(strings.NewReader(markup), context)
}

// CloneTree returns a deep copy of n detached from any tree.
func CloneTree(n *html.Node) *html.Node {
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(CloneTree(c))
	}
	return clone
}
