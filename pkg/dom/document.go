package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a mutable HTML document.
type Document struct {
	root *html.Node
	head *html.Node
	body *html.Node

	listeners map[*html.Node]map[string][]Listener
	observers []*Observer
}

// New creates an empty document with a head and a body.
func New() *Document {
	root, err := html.Parse(strings.NewReader("<!DOCTYPE html><html><head></head><body></body></html>"))
	if err != nil {
		// The input is constant; the parser does not fail on it.
		panic(err)
	}
	d := &Document{
		root:      root,
		listeners: make(map[*html.Node]map[string][]Listener),
	}
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Head:
				d.head = n
			case atom.Body:
				d.body = n
			}
		}
		return true
	})
	return d
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// Head returns the <head> element.
func (d *Document) Head() *html.Node { return d.head }

// Body returns the <body> element.
func (d *Document) Body() *html.Node { return d.body }

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// AppendChild appends child to parent, detaching it from its current
// parent first.
func (d *Document) AppendChild(parent, child *html.Node) {
	d.InsertBefore(parent, child, nil)
}

// InsertBefore inserts child into parent before ref. A nil ref appends.
// Inserting a node directly before itself is a no-op.
func (d *Document) InsertBefore(parent, child, ref *html.Node) {
	if child == ref {
		return
	}
	if child.Parent == parent && child.NextSibling == ref {
		return
	}
	if old := child.Parent; old != nil {
		old.RemoveChild(child)
		d.notify(MutationRecord{Type: ChildList, Target: old, Removed: []*html.Node{child}})
	}
	parent.InsertBefore(child, ref)
	d.notify(MutationRecord{Type: ChildList, Target: parent, Added: []*html.Node{child}})
}

// RemoveChild removes child from parent and drops the event listeners of
// the removed subtree.
func (d *Document) RemoveChild(parent, child *html.Node) {
	if child.Parent != parent {
		return
	}
	parent.RemoveChild(child)
	d.notify(MutationRecord{Type: ChildList, Target: parent, Removed: []*html.Node{child}})
	d.dropListeners(child)
}

// ReplaceChildren removes every child of parent and appends nodes.
func (d *Document) ReplaceChildren(parent *html.Node, nodes ...*html.Node) {
	for c := parent.FirstChild; c != nil; {
		next := c.NextSibling
		d.RemoveChild(parent, c)
		c = next
	}
	for _, n := range nodes {
		d.AppendChild(parent, n)
	}
}

// SetAttribute sets an attribute, recording a mutation only when the
// value changes.
func (d *Document) SetAttribute(n *html.Node, name, value string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == name {
			if n.Attr[i].Val == value {
				return
			}
			old := n.Attr[i].Val
			n.Attr[i].Val = value
			d.notify(MutationRecord{Type: Attributes, Target: n, AttributeName: name, OldValue: old})
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
	d.notify(MutationRecord{Type: Attributes, Target: n, AttributeName: name})
}

// RemoveAttribute removes an attribute if present.
func (d *Document) RemoveAttribute(n *html.Node, name string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == name {
			old := n.Attr[i].Val
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			d.notify(MutationRecord{Type: Attributes, Target: n, AttributeName: name, OldValue: old})
			return
		}
	}
}

// SetText replaces the data of a text or comment node.
func (d *Document) SetText(n *html.Node, text string) {
	if n.Data == text {
		return
	}
	old := n.Data
	n.Data = text
	d.notify(MutationRecord{Type: CharacterData, Target: n, OldValue: old})
}

// SetInnerHTML parses markup in the context of n and replaces its children.
func (d *Document) SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := ParseFragment(n, markup)
	if err != nil {
		return err
	}
	d.ReplaceChildren(n, nodes...)
	return nil
}

// SetValue sets the current value of a form control: the text of a
// textarea, the selected option of a select, the value attribute
// otherwise.
func (d *Document) SetValue(n *html.Node, value string) {
	switch n.DataAtom {
	case atom.Textarea:
		d.ReplaceChildren(n, d.CreateTextNode(value))
	case atom.Select:
		walk(n, func(c *html.Node) bool {
			if c.DataAtom == atom.Option {
				if optionValue(c) == value {
					d.SetAttribute(c, "selected", "")
				} else {
					d.RemoveAttribute(c, "selected")
				}
			}
			return true
		})
	default:
		d.SetAttribute(n, "value", value)
	}
}

// SetChecked sets or clears the checked attribute.
func (d *Document) SetChecked(n *html.Node, checked bool) {
	if checked {
		d.SetAttribute(n, "checked", "")
	} else {
		d.RemoveAttribute(n, "checked")
	}
}
