package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	vtlerrors "github.com/vango-go/vtl/internal/errors"
	"github.com/vango-go/vtl/pkg/reactive"
	"github.com/vango-go/vtl/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Pretty output does not hydrate
	// cleanly, since the extra whitespace becomes text nodes.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer renders VNode trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	owner := reactive.NewOwner(nil)
	defer owner.Dispose()
	return r.renderNode(w, node, owner, 0)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, owner *reactive.Owner, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, owner, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindFragment, vdom.KindStrict:
		return r.renderChildren(w, node.Children, owner, depth)
	case vdom.KindComponent:
		return r.renderComponent(w, node, owner, depth)
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return fmt.Errorf("render: unknown node kind: %d", node.Kind)
	}
}

func (r *Renderer) renderChildren(w io.Writer, children []*vdom.VNode, owner *reactive.Owner, depth int) error {
	for _, child := range children {
		if err := r.renderNode(w, child, owner, depth); err != nil {
			return err
		}
	}
	return nil
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, owner *reactive.Owner, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if vdom.IsVoidElement(tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	if rawHTML, ok := node.Props["dangerouslySetInnerHTML"].(string); ok {
		if _, err := io.WriteString(w, rawHTML); err != nil {
			return err
		}
	} else {
		block := r.config.Pretty && hasElementChild(node) && !isInlineElement(tag)
		if block {
			io.WriteString(w, "\n")
		}
		childDepth := depth + 1
		if !block {
			childDepth = 0
		}
		if err := r.renderChildren(w, node.Children, owner, childDepth); err != nil {
			return err
		}
		if block {
			r.writeIndent(w, depth)
		}
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderComponent renders a component under its own owner so hook slots
// stay per instance.
func (r *Renderer) renderComponent(w io.Writer, node *vdom.VNode, parent *reactive.Owner, depth int) (err error) {
	if node.Comp == nil {
		return nil
	}
	owner := reactive.NewOwner(parent)

	var output *vdom.VNode
	func() {
		defer func() {
			if p := recover(); p != nil {
				if e, ok := p.(error); ok {
					err = vtlerrors.New("E003").Wrap(e)
				} else {
					err = vtlerrors.New("E003").WithDetail(fmt.Sprint(p))
				}
			}
		}()
		reactive.WithOwner(owner, func() {
			owner.StartRender()
			defer owner.EndRender()
			output = node.Comp.Render()
		})
	}()
	if err != nil {
		return err
	}
	return r.renderNode(w, output, owner, depth)
}

// renderAttributes writes the resolved attributes of an element in sorted
// order.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	for _, attr := range node.Attributes() {
		if attr.Name == "dangerouslysetinnerhtml" {
			continue
		}
		var err error
		if vdom.IsBooleanAttr(attr.Name) && attr.Value == "" {
			_, err = io.WriteString(w, " "+attr.Name)
		} else {
			_, err = fmt.Fprintf(w, ` %s="%s"`, attr.Name, escapeAttr(attr.Value))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func hasElementChild(node *vdom.VNode) bool {
	for _, c := range node.Children {
		if c != nil && c.Kind != vdom.KindText {
			return true
		}
	}
	return false
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat(r.config.Indent, depth))
}

// RenderToString renders node with the default configuration.
func RenderToString(node *vdom.VNode) (string, error) {
	return NewRenderer(RendererConfig{}).RenderToString(node)
}
