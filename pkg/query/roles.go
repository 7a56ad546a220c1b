package query

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-go/vtl/pkg/dom"
)

// Role returns the ARIA role of n: the first token of its role attribute,
// or the implicit role of the element. It returns "" for elements with no
// role.
func Role(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	if explicit, ok := dom.GetAttribute(n, "role"); ok {
		if fields := strings.Fields(explicit); len(fields) > 0 {
			return fields[0]
		}
	}
	return implicitRole(n)
}

var implicitRoles = map[atom.Atom]string{
	atom.Article:  "article",
	atom.Aside:    "complementary",
	atom.Button:   "button",
	atom.Dialog:   "dialog",
	atom.Fieldset: "group",
	atom.Footer:   "contentinfo",
	atom.Form:     "form",
	atom.H1:       "heading",
	atom.H2:       "heading",
	atom.H3:       "heading",
	atom.H4:       "heading",
	atom.H5:       "heading",
	atom.H6:       "heading",
	atom.Header:   "banner",
	atom.Hr:       "separator",
	atom.Li:       "listitem",
	atom.Main:     "main",
	atom.Nav:      "navigation",
	atom.Ol:       "list",
	atom.Option:   "option",
	atom.P:        "paragraph",
	atom.Progress: "progressbar",
	atom.Section:  "region",
	atom.Table:    "table",
	atom.Tbody:    "rowgroup",
	atom.Td:       "cell",
	atom.Textarea: "textbox",
	atom.Tfoot:    "rowgroup",
	atom.Th:       "columnheader",
	atom.Thead:    "rowgroup",
	atom.Tr:       "row",
	atom.Ul:       "list",
}

func implicitRole(n *html.Node) string {
	switch n.DataAtom {
	case atom.A, atom.Area:
		if dom.HasAttribute(n, "href") {
			return "link"
		}
		return ""
	case atom.Img:
		if alt, ok := dom.GetAttribute(n, "alt"); ok && alt == "" {
			return "presentation"
		}
		return "img"
	case atom.Input:
		return inputRole(n)
	case atom.Select:
		size, _ := dom.GetAttribute(n, "size")
		if dom.HasAttribute(n, "multiple") || atoiOr(size, 0) > 1 {
			return "listbox"
		}
		return "combobox"
	}
	return implicitRoles[n.DataAtom]
}

func inputRole(n *html.Node) string {
	typ, _ := dom.GetAttribute(n, "type")
	switch strings.ToLower(typ) {
	case "button", "image", "reset", "submit":
		return "button"
	case "checkbox":
		return "checkbox"
	case "radio":
		return "radio"
	case "range":
		return "slider"
	case "number":
		return "spinbutton"
	case "search":
		if dom.HasAttribute(n, "list") {
			return "combobox"
		}
		return "searchbox"
	case "", "email", "tel", "text", "url":
		if dom.HasAttribute(n, "list") {
			return "combobox"
		}
		return "textbox"
	}
	return ""
}

// headingLevel returns the level of a heading element, or 0.
func headingLevel(n *html.Node) int {
	if level, ok := dom.GetAttribute(n, "aria-level"); ok {
		return atoiOr(level, 0)
	}
	switch n.DataAtom {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	}
	return 0
}

// IsInaccessible reports whether n is excluded from the accessibility tree:
// it or an ancestor is hidden, aria-hidden, styled invisible, or inside a
// non-rendered element.
func IsInaccessible(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && hiddenSelf(p) {
			return true
		}
	}
	return false
}

func hiddenSelf(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Head, atom.Script, atom.Style, atom.Template, atom.Noscript:
		return true
	}
	if dom.HasAttribute(n, "hidden") {
		return true
	}
	if v, _ := dom.GetAttribute(n, "aria-hidden"); v == "true" {
		return true
	}
	if style, ok := dom.GetAttribute(n, "style"); ok {
		compact := strings.ReplaceAll(strings.ToLower(style), " ", "")
		return strings.Contains(compact, "display:none") || strings.Contains(compact, "visibility:hidden")
	}
	return false
}

// nameFromContent lists the roles whose accessible name comes from their
// text content.
var nameFromContent = map[string]bool{
	"button":       true,
	"cell":         true,
	"checkbox":     true,
	"columnheader": true,
	"heading":      true,
	"link":         true,
	"menuitem":     true,
	"option":       true,
	"radio":        true,
	"row":          true,
	"rowheader":    true,
	"switch":       true,
	"tab":          true,
	"tooltip":      true,
	"treeitem":     true,
}

// AccessibleName computes a simplified accessible name of n: aria-labelledby,
// aria-label, associated labels for form controls, alt text, the content
// for roles named from content, and finally the title attribute.
func AccessibleName(n *html.Node) string {
	if ids, ok := dom.GetAttribute(n, "aria-labelledby"); ok {
		top := topOf(n)
		var parts []string
		for _, id := range strings.Fields(ids) {
			if ref := elementByID(top, id); ref != nil {
				parts = append(parts, dom.TextContent(ref))
			}
		}
		if name := normalizeSpace(strings.Join(parts, " ")); name != "" {
			return name
		}
	}
	if label, _ := dom.GetAttribute(n, "aria-label"); normalizeSpace(label) != "" {
		return normalizeSpace(label)
	}

	switch n.DataAtom {
	case atom.Input:
		typ, _ := dom.GetAttribute(n, "type")
		switch strings.ToLower(typ) {
		case "button", "submit", "reset":
			if v, ok := dom.GetAttribute(n, "value"); ok {
				return normalizeSpace(v)
			}
			if typ == "submit" {
				return "Submit"
			}
			if typ == "reset" {
				return "Reset"
			}
		case "image":
			if alt, ok := dom.GetAttribute(n, "alt"); ok {
				return normalizeSpace(alt)
			}
		}
		if name := labelsText(n); name != "" {
			return name
		}
	case atom.Select, atom.Textarea, atom.Meter, atom.Output, atom.Progress:
		if name := labelsText(n); name != "" {
			return name
		}
	case atom.Img, atom.Area:
		if alt, ok := dom.GetAttribute(n, "alt"); ok && normalizeSpace(alt) != "" {
			return normalizeSpace(alt)
		}
	}

	if nameFromContent[Role(n)] {
		if name := normalizeSpace(contentName(n)); name != "" {
			return name
		}
	}
	if title, ok := dom.GetAttribute(n, "title"); ok {
		return normalizeSpace(title)
	}
	return ""
}

// contentName is the text of n with images contributing their alt text.
func contentName(n *html.Node) string {
	var b strings.Builder
	dom.Walk(n, func(c *html.Node) bool {
		switch {
		case c.Type == html.TextNode:
			b.WriteString(c.Data)
		case c.Type != html.ElementNode:
			return false
		case c != n && hiddenSelf(c):
			return false
		case c.DataAtom == atom.Img:
			alt, _ := dom.GetAttribute(c, "alt")
			b.WriteString(alt)
		}
		return true
	})
	return b.String()
}

// labelsText joins the text of the labels associated with a form control.
func labelsText(control *html.Node) string {
	var parts []string
	for _, label := range labelsOf(control) {
		parts = append(parts, dom.TextContent(label))
	}
	return normalizeSpace(strings.Join(parts, " "))
}

// labelsOf returns the <label> elements associated with control, through
// the for attribute or by nesting.
func labelsOf(control *html.Node) []*html.Node {
	var labels []*html.Node
	if id, ok := dom.GetAttribute(control, "id"); ok && id != "" {
		for _, l := range dom.Elements(topOf(control)) {
			if l.DataAtom == atom.Label {
				if f, _ := dom.GetAttribute(l, "for"); f == id {
					labels = append(labels, l)
				}
			}
		}
	}
	for p := control.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Label && !dom.HasAttribute(p, "for") {
			labels = append(labels, p)
			break
		}
	}
	return labels
}

// labeledControl returns the form control a <label> labels, or nil.
func labeledControl(label *html.Node) *html.Node {
	if id, ok := dom.GetAttribute(label, "for"); ok {
		return elementByID(topOf(label), id)
	}
	for _, c := range dom.Elements(label) {
		if isLabelable(c) {
			return c
		}
	}
	return nil
}

func isLabelable(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Button, atom.Meter, atom.Output, atom.Progress, atom.Select, atom.Textarea:
		return true
	case atom.Input:
		typ, _ := dom.GetAttribute(n, "type")
		return typ != "hidden"
	}
	return false
}

func topOf(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

func elementByID(top *html.Node, id string) *html.Node {
	if id == "" {
		return nil
	}
	for _, n := range dom.Elements(top) {
		if v, _ := dom.GetAttribute(n, "id"); v == id {
			return n
		}
	}
	return nil
}

func atoiOr(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}
