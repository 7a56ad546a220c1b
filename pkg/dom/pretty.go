package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Pretty renders n as indented markup for debug output. Output longer than
// maxLength bytes is cut and suffixed with "..."; maxLength <= 0 disables
// the limit.
func Pretty(n *html.Node, maxLength int) string {
	var b strings.Builder
	if n.Type == html.DocumentNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			pretty(&b, c, 0)
		}
	} else {
		pretty(&b, n, 0)
	}
	out := strings.TrimRight(b.String(), "\n")
	if maxLength > 0 && len(out) > maxLength {
		return out[:maxLength] + "..."
	}
	return out
}

func pretty(b *strings.Builder, n *html.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return
		}
		b.WriteString(indent)
		b.WriteString(html.EscapeString(text))
		b.WriteByte('\n')
	case html.CommentNode:
		b.WriteString(indent)
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->\n")
	case html.DoctypeNode:
		b.WriteString(indent)
		b.WriteString("<!DOCTYPE ")
		b.WriteString(n.Data)
		b.WriteString(">\n")
	case html.ElementNode:
		b.WriteString(indent)
		b.WriteByte('<')
		b.WriteString(n.Data)
		for _, a := range n.Attr {
			b.WriteString("\n")
			b.WriteString(indent)
			b.WriteString("  ")
			b.WriteString(a.Key)
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(a.Val))
			b.WriteByte('"')
		}
		if len(n.Attr) > 0 {
			b.WriteString("\n")
			b.WriteString(indent)
		}
		if n.FirstChild == nil {
			if len(n.Attr) == 0 {
				b.WriteByte(' ')
			}
			b.WriteString("/>\n")
			return
		}
		b.WriteString(">\n")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			pretty(b, c, depth+1)
		}
		b.WriteString(indent)
		b.WriteString("</")
		b.WriteString(n.Data)
		b.WriteString(">\n")
	}
}
