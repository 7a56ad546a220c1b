package runtime

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-go/vtl/pkg/dom"
	"github.com/vango-go/vtl/pkg/vdom"
)

const innerHTMLProp = "dangerouslySetInnerHTML"

// reconciler applies one commit of a root.
type reconciler struct {
	rt      *Runtime
	root    *Root
	doc     *dom.Document
	renders int
}

// reconcileChildren matches vnodes against parent's child fibers by key,
// or by position among unkeyed children, updating matches in place and
// creating or removing the rest. Document placement is left to place.
func (rc *reconciler) reconcileChildren(parent *fiber, vnodes []*vdom.VNode, hc *hydrationCursor) {
	keyed := make(map[string]*fiber)
	var unkeyed []*fiber
	for _, f := range parent.children {
		if f.key != "" {
			keyed[f.key] = f
		} else {
			unkeyed = append(unkeyed, f)
		}
	}

	next := make([]*fiber, 0, len(vnodes))
	pos := 0
	for _, vn := range vnodes {
		if vn == nil {
			continue
		}
		var match *fiber
		if vn.Key != "" {
			match = keyed[vn.Key]
			delete(keyed, vn.Key)
		} else if pos < len(unkeyed) {
			match = unkeyed[pos]
			pos++
		}

		if match != nil && sameType(match, vn) {
			rc.update(match, vn)
			next = append(next, match)
			continue
		}
		if match != nil {
			rc.remove(match)
		}
		next = append(next, rc.create(parent, vn, hc))
	}

	for _, f := range keyed {
		rc.remove(f)
	}
	for ; pos < len(unkeyed); pos++ {
		rc.remove(unkeyed[pos])
	}
	parent.children = next
}

func (rc *reconciler) create(parent *fiber, vn *vdom.VNode, hc *hydrationCursor) *fiber {
	f := &fiber{
		kind:   vn.Kind,
		key:    vn.Key,
		tag:    vn.Tag,
		vnode:  vn,
		parent: parent,
		owner:  parent.owner,
		strict: parent.strict,
	}

	switch vn.Kind {
	case vdom.KindText:
		if n := hc.claimText(vn.Text); n != nil {
			f.node = n
		} else {
			f.node = rc.doc.CreateTextNode(vn.Text)
		}

	case vdom.KindElement:
		var childCursor *hydrationCursor
		if n := hc.claimElement(vn.Tag); n != nil {
			f.node = n
			childCursor = &hydrationCursor{rc: rc, node: n.FirstChild}
		} else {
			f.node = rc.doc.CreateElement(vn.Tag)
		}
		rc.applyProps(f, nil, vn)
		if !rc.applyInnerHTML(f, vn) {
			rc.reconcileChildren(f, vn.Children, childCursor)
			rc.place(f.node, f.childHostNodes())
		}

	case vdom.KindRaw:
		if nodes := hc.claimRaw(vn.Text); nodes != nil {
			f.nodes = nodes
		} else {
			f.nodes = rc.parseRaw(vn.Text)
		}

	case vdom.KindFragment, vdom.KindStrict:
		if vn.Kind == vdom.KindStrict {
			f.strict = true
		}
		rc.reconcileChildren(f, vn.Children, hc)

	case vdom.KindComponent:
		f.comp = vn.Comp
		f.inst = newInstance(rc.root, parent.owner)
		f.owner = f.inst.owner
		out := rc.render(f)
		if f.strict {
			// Mount renders twice under strict mode so impure renders show.
			out = rc.render(f)
		}
		rc.reconcileChildren(f, single(out), hc)
	}
	return f
}

func (rc *reconciler) update(f *fiber, vn *vdom.VNode) {
	prev := f.vnode
	same := prev == vn
	f.vnode = vn
	f.key = vn.Key

	switch f.kind {
	case vdom.KindText:
		if f.node.Data != vn.Text {
			rc.doc.SetText(f.node, vn.Text)
		}

	case vdom.KindRaw:
		if prev.Text != vn.Text {
			rc.detach(f.nodes)
			f.nodes = rc.parseRaw(vn.Text)
		}

	case vdom.KindElement:
		if !same {
			rc.applyProps(f, prev, vn)
		}
		if !rc.applyInnerHTML(f, vn) {
			rc.reconcileChildren(f, vn.Children, nil)
			rc.place(f.node, f.childHostNodes())
		}

	case vdom.KindFragment, vdom.KindStrict:
		rc.reconcileChildren(f, vn.Children, nil)

	case vdom.KindComponent:
		if same && !f.inst.dirty.Load() {
			// Unchanged input: skip the render but visit descendants,
			// which may hold dirty instances.
			rc.reconcileChildren(f, childVNodes(f), nil)
			return
		}
		f.comp = vn.Comp
		rc.reconcileChildren(f, single(rc.render(f)), nil)
	}
}

func (rc *reconciler) render(f *fiber) *vdom.VNode {
	rc.renders++
	return f.inst.render(f.comp)
}

// remove detaches f's document nodes and unmounts its components.
func (rc *reconciler) remove(f *fiber) {
	rc.detach(f.hostNodes(nil))
	rc.unmountFiber(f)
}

func (rc *reconciler) unmountFiber(f *fiber) {
	for _, c := range f.children {
		rc.unmountFiber(c)
	}
	if f.inst != nil {
		f.inst.unmount()
	}
}

func (rc *reconciler) detach(nodes []*html.Node) {
	for _, n := range nodes {
		if n.Parent != nil {
			rc.doc.RemoveChild(n.Parent, n)
		}
	}
}

// place puts nodes into parent in order, moving only nodes that are out of
// position, and removes any other children of parent.
func (rc *reconciler) place(parent *html.Node, nodes []*html.Node) {
	cursor := parent.FirstChild
	for _, n := range nodes {
		if n == cursor {
			cursor = cursor.NextSibling
			continue
		}
		rc.doc.InsertBefore(parent, n, cursor)
	}
	for cursor != nil {
		next := cursor.NextSibling
		rc.doc.RemoveChild(parent, cursor)
		cursor = next
	}
}

// applyProps updates attributes and listeners of an element. Attributes
// present in prev but not in vn are removed; attributes set on the document
// by other means are left alone.
func (rc *reconciler) applyProps(f *fiber, prev, vn *vdom.VNode) {
	seen := make(map[string]bool)
	for _, a := range vn.Attributes() {
		if a.Name == strings.ToLower(innerHTMLProp) {
			continue
		}
		seen[a.Name] = true
		rc.doc.SetAttribute(f.node, a.Name, a.Value)
	}
	if prev != nil {
		for _, a := range prev.Attributes() {
			if !seen[a.Name] && a.Name != strings.ToLower(innerHTMLProp) {
				rc.doc.RemoveAttribute(f.node, a.Name)
			}
		}
	}

	rc.doc.RemoveEventListeners(f.node)
	for typ, h := range vn.Handlers() {
		l := adaptHandler(h)
		if l == nil {
			rc.rt.logger.Warn("unsupported event handler type", "event", typ, "tag", vn.Tag)
			continue
		}
		rc.doc.AddEventListener(f.node, typ, l)
	}
}

// applyInnerHTML handles the dangerouslySetInnerHTML prop. It reports
// whether the element's children are managed by it.
func (rc *reconciler) applyInnerHTML(f *fiber, vn *vdom.VNode) bool {
	markup, ok := vn.Props[innerHTMLProp].(string)
	if !ok {
		return false
	}
	for _, c := range f.children {
		rc.unmountFiber(c)
	}
	f.children = nil
	if dom.InnerHTML(f.node) != markup {
		if err := rc.doc.SetInnerHTML(f.node, markup); err != nil {
			rc.rt.logger.Warn("invalid inner HTML", "tag", vn.Tag, "error", err)
		}
	}
	return true
}

func (rc *reconciler) parseRaw(markup string) []*html.Node {
	nodes, err := dom.ParseFragment(nil, markup)
	if err != nil {
		rc.rt.logger.Warn("invalid raw HTML", "error", err)
		return nil
	}
	return nodes
}

// adaptHandler converts a handler value into a dom.Listener. Supported
// forms are func(), func(*dom.Event), func(string) receiving the target's
// value (or the key for keyboard events) and func(bool) receiving the
// target's checked state.
func adaptHandler(h any) dom.Listener {
	switch fn := h.(type) {
	case func():
		return func(*dom.Event) { fn() }
	case func(*dom.Event):
		return fn
	case dom.Listener:
		return fn
	case func(string):
		return func(e *dom.Event) {
			if strings.HasPrefix(e.Type, "key") {
				fn(e.Key)
				return
			}
			fn(dom.Value(e.Target))
		}
	case func(bool):
		return func(e *dom.Event) { fn(dom.HasAttribute(e.Target, "checked")) }
	}
	return nil
}
