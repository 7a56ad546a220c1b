package runtime

import (
	"golang.org/x/net/html"

	vtlerrors "github.com/vango-go/vtl/internal/errors"
	"github.com/vango-go/vtl/pkg/dom"
)

// hydrationCursor walks the existing children of one host parent while a
// root hydrates. A nil cursor claims nothing.
type hydrationCursor struct {
	rc   *reconciler
	node *html.Node
}

// peek returns the next claimable node, skipping comments.
func (hc *hydrationCursor) peek() *html.Node {
	n := hc.node
	for n != nil && n.Type == html.CommentNode {
		n = n.NextSibling
	}
	return n
}

func (hc *hydrationCursor) claimElement(tag string) *html.Node {
	if hc == nil {
		return nil
	}
	n := hc.peek()
	if n == nil || n.Type != html.ElementNode || n.Data != tag {
		hc.mismatch("<"+tag+">", n)
		return nil
	}
	hc.node = n.NextSibling
	return n
}

func (hc *hydrationCursor) claimText(text string) *html.Node {
	if hc == nil {
		return nil
	}
	n := hc.peek()
	if n == nil || n.Type != html.TextNode {
		hc.mismatch("text "+quote(text), n)
		return nil
	}
	hc.node = n.NextSibling
	if n.Data != text {
		hc.mismatch("text "+quote(text), n)
		hc.rc.doc.SetText(n, text)
	}
	return n
}

// claimRaw adopts the next nodes if they serialize to the same markup as
// the parsed raw HTML.
func (hc *hydrationCursor) claimRaw(markup string) []*html.Node {
	if hc == nil {
		return nil
	}
	want, err := dom.ParseFragment(nil, markup)
	if err != nil || len(want) == 0 {
		return nil
	}
	var claimed []*html.Node
	n := hc.node
	for _, w := range want {
		if n == nil || dom.OuterHTML(n) != dom.OuterHTML(w) {
			hc.mismatch("raw HTML", n)
			return nil
		}
		claimed = append(claimed, n)
		n = n.NextSibling
	}
	hc.node = n
	return claimed
}

func (hc *hydrationCursor) mismatch(expected string, found *html.Node) {
	rt := hc.rc.rt
	rt.metrics.mismatches.Inc()
	ve := vtlerrors.New("E040")
	rt.logger.Warn(ve.Message, "code", ve.Code, "expected", expected, "found", describe(found))
}

func describe(n *html.Node) string {
	switch {
	case n == nil:
		return "nothing"
	case n.Type == html.ElementNode:
		return "<" + n.Data + ">"
	case n.Type == html.TextNode:
		return "text " + quote(n.Data)
	default:
		return "node"
	}
}

func quote(s string) string {
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return `"` + s + `"`
}
