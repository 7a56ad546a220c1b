package vtest

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	vtlerrors "github.com/vango-go/vtl/internal/errors"
	"github.com/vango-go/vtl/pkg/dom"
	"github.com/vango-go/vtl/pkg/query"
	"github.com/vango-go/vtl/pkg/vdom"
)

// RenderOption configures Render.
type RenderOption func(*renderOptions)

type renderOptions struct {
	container *html.Node
	base      *html.Node
	hydrate   bool
	legacy    bool
	wrapper   func(children *vdom.VNode) *vdom.VNode
	queries   []query.Option
}

// Container renders into n instead of a fresh div. Cleanup unmounts the
// root but leaves n in the document.
func Container(n *html.Node) RenderOption {
	return func(o *renderOptions) { o.container = n }
}

// BaseElement sets the element queries are bound to and, when no
// Container is given, the parent of the generated container. Defaults to
// the document body.
func BaseElement(n *html.Node) RenderOption {
	return func(o *renderOptions) { o.base = n }
}

// Hydrate attaches to server-rendered markup already in the container
// instead of rendering fresh nodes.
func Hydrate() RenderOption {
	return func(o *renderOptions) { o.hydrate = true }
}

// LegacyRoot renders through the runtime's single-shot API. The harness
// runtime must implement LegacyRuntime.
func LegacyRoot() RenderOption {
	return func(o *renderOptions) { o.legacy = true }
}

// Wrapper wraps the rendered tree, typically in context providers. It is
// applied again on every Rerender.
func Wrapper(fn func(children *vdom.VNode) *vdom.VNode) RenderOption {
	return func(o *renderOptions) { o.wrapper = fn }
}

// Queries passes options, such as custom queries, to the bound queries.
func Queries(opts ...query.Option) RenderOption {
	return func(o *renderOptions) { o.queries = append(o.queries, opts...) }
}

// RenderResult is a rendered tree with queries bound to its base element.
type RenderResult struct {
	*query.Queries

	// Container holds the rendered nodes.
	Container *html.Node

	// BaseElement is the element queries and Debug default to.
	BaseElement *html.Node

	h       *Harness
	root    Root
	wrapper func(children *vdom.VNode) *vdom.VNode
}

// Render mounts ui into a container attached to the document and returns
// queries bound to it. Rendering into a container that already has a root
// updates that root.
func (h *Harness) Render(ui *vdom.VNode, opts ...RenderOption) (*RenderResult, error) {
	var o renderOptions
	for _, opt := range opts {
		opt(&o)
	}

	var legacy LegacyRuntime
	if o.legacy {
		lr, ok := h.rt.(LegacyRuntime)
		if !ok {
			return nil, vtlerrors.New("E020").WithDetail(fmt.Sprintf("runtime %T has no legacy render API", h.rt))
		}
		legacy = lr
	}

	base := o.base
	if base == nil {
		base = h.doc.Body()
	}
	container := o.container
	if container == nil {
		container = h.doc.CreateElement("div")
		h.doc.AppendChild(base, container)
	}

	ui = h.decorate(ui, o.wrapper)

	root, ok := h.registry.Lookup(container)
	if !ok {
		var cr *concurrentRoot
		if legacy != nil {
			root = &legacyRoot{rt: legacy, container: container}
		} else {
			cr = &concurrentRoot{rt: h.rt, hydrating: o.hydrate}
			root = cr
		}
		// Track the container before mounting so Cleanup removes it even
		// when the first render fails.
		if err := h.registry.Add(container, root); err != nil {
			return nil, err
		}
		h.logger.Debug("root created", "legacy", legacy != nil, "hydrate", o.hydrate)
		if cr != nil {
			if err := cr.mount(container, ui); err != nil {
				return nil, err
			}
		}
	}

	var err error
	if o.hydrate {
		err = root.Hydrate(ui)
	} else {
		err = root.Render(ui)
	}
	if err != nil {
		return nil, err
	}

	qopts := append([]query.Option{query.WithConfig(h.QueryConfig())}, o.queries...)
	return &RenderResult{
		Queries:     query.Within(base, qopts...),
		Container:   container,
		BaseElement: base,
		h:           h,
		root:        root,
		wrapper:     o.wrapper,
	}, nil
}

// Render mounts ui using the Default harness.
func Render(ui *vdom.VNode, opts ...RenderOption) (*RenderResult, error) {
	return Default().Render(ui, opts...)
}

// decorate applies the user wrapper, then the strict-mode marker outermost.
func (h *Harness) decorate(ui *vdom.VNode, wrapper func(*vdom.VNode) *vdom.VNode) *vdom.VNode {
	if wrapper != nil {
		ui = wrapper(ui)
	}
	if strictMode.Load() {
		ui = vdom.StrictMode(ui)
	}
	return ui
}

// Rerender renders ui into the same root, reusing component state where
// the tree matches.
func (r *RenderResult) Rerender(ui *vdom.VNode) error {
	return r.root.Render(r.h.decorate(ui, r.wrapper))
}

// Unmount unmounts the root. The container stays in the document until
// Cleanup.
func (r *RenderResult) Unmount() error {
	return r.root.Unmount()
}

// PrettyDOM formats nodes, or BaseElement when none are given, cut to the
// configured DebugPrintLimit.
func (r *RenderResult) PrettyDOM(nodes ...*html.Node) string {
	return r.PrettyDOMLimit(r.Config().DebugPrintLimit, nodes...)
}

// PrettyDOMLimit is PrettyDOM with an explicit limit per node; 0 disables
// it.
func (r *RenderResult) PrettyDOMLimit(limit int, nodes ...*html.Node) string {
	if len(nodes) == 0 {
		nodes = []*html.Node{r.BaseElement}
	}
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = dom.Pretty(n, limit)
	}
	return strings.Join(parts, "\n")
}

// Debug prints PrettyDOM to the harness output.
func (r *RenderResult) Debug(nodes ...*html.Node) {
	fmt.Fprintln(r.h.out, r.PrettyDOM(nodes...))
}

// DebugLimit prints PrettyDOMLimit to the harness output.
func (r *RenderResult) DebugLimit(limit int, nodes ...*html.Node) {
	fmt.Fprintln(r.h.out, r.PrettyDOMLimit(limit, nodes...))
}

// AsFragment returns a detached copy of the container's current content.
// Later renders do not change it.
func (r *RenderResult) AsFragment() *html.Node {
	frag := &html.Node{Type: html.DocumentNode}
	nodes, err := dom.ParseFragment(r.Container, dom.InnerHTML(r.Container))
	if err != nil {
		for c := r.Container.FirstChild; c != nil; c = c.NextSibling {
			frag.AppendChild(dom.CloneTree(c))
		}
		return frag
	}
	for _, n := range nodes {
		frag.AppendChild(n)
	}
	return frag
}
