package runtime

import (
	"golang.org/x/net/html"

	"github.com/vango-go/vtl/pkg/dom"
	"github.com/vango-go/vtl/pkg/vdom"
)

// Legacy is a Runtime with the single-shot API. Its calls commit
// synchronously: when Render returns, the document reflects ui and mount
// effects have run.
type Legacy struct {
	*Runtime

	legacyRoots map[*html.Node]*Root
}

// NewLegacy creates a runtime that supports both the concurrent and the
// single-shot API.
func NewLegacy(doc *dom.Document, opts ...Option) *Legacy {
	return &Legacy{
		Runtime:     New(doc, opts...),
		legacyRoots: make(map[*html.Node]*Root),
	}
}

// Render renders ui into container, reusing the container's root from a
// previous call.
func (l *Legacy) Render(ui *vdom.VNode, container *html.Node) error {
	return l.commit(ui, container, false)
}

// Hydrate is Render for a container that holds server markup for ui.
func (l *Legacy) Hydrate(ui *vdom.VNode, container *html.Node) error {
	return l.commit(ui, container, true)
}

func (l *Legacy) commit(ui *vdom.VNode, container *html.Node, hydrate bool) error {
	return l.run(func() error {
		root, ok := l.legacyRoots[container]
		if !ok || root.unmounted {
			root = l.newRoot(container, hydrate)
			l.legacyRoots[container] = root
		}
		root.element = ui
		return root.commitNow()
	})
}

// UnmountComponentAtNode unmounts the tree rendered into container. It
// returns false if container has no legacy root.
func (l *Legacy) UnmountComponentAtNode(container *html.Node) bool {
	var found bool
	_ = l.run(func() error {
		root, ok := l.legacyRoots[container]
		if !ok {
			return nil
		}
		delete(l.legacyRoots, container)
		found = !root.unmounted
		root.unmount()
		return nil
	})
	return found
}
