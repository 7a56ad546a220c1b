package runtime

import (
	"golang.org/x/net/html"

	"github.com/vango-go/vtl/pkg/reactive"
	"github.com/vango-go/vtl/pkg/vdom"
)

// kindRoot marks the fiber of a root container.
const kindRoot vdom.VKind = 255

// fiber is the committed counterpart of a VNode.
type fiber struct {
	kind   vdom.VKind
	key    string
	tag    string
	vnode  *vdom.VNode
	parent *fiber

	node  *html.Node   // element, text and root fibers
	nodes []*html.Node // raw fibers

	children []*fiber

	comp vdom.Component
	inst *instance

	// owner is the reactive owner that components below this fiber attach
	// to, so context values flow down the tree.
	owner  *reactive.Owner
	strict bool
}

// hostNodes appends the top-level document nodes of f to out.
func (f *fiber) hostNodes(out []*html.Node) []*html.Node {
	switch f.kind {
	case vdom.KindElement, vdom.KindText:
		return append(out, f.node)
	case vdom.KindRaw:
		return append(out, f.nodes...)
	}
	for _, c := range f.children {
		out = c.hostNodes(out)
	}
	return out
}

func (f *fiber) childHostNodes() []*html.Node {
	var out []*html.Node
	for _, c := range f.children {
		out = c.hostNodes(out)
	}
	return out
}

func childVNodes(f *fiber) []*vdom.VNode {
	out := make([]*vdom.VNode, len(f.children))
	for i, c := range f.children {
		out[i] = c.vnode
	}
	return out
}

// sameType reports whether f can be updated in place to render vn.
func sameType(f *fiber, vn *vdom.VNode) bool {
	if f.kind != vn.Kind {
		return false
	}
	switch vn.Kind {
	case vdom.KindElement:
		return f.tag == vn.Tag
	case vdom.KindComponent:
		return vdom.SameComponent(f.comp, vn.Comp)
	}
	return true
}
