package vdom

import (
	"reflect"
	"strings"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
	KindRaw                    // Raw HTML (dangerous)
	KindStrict                 // Strict-mode marker, renders its children
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	case KindStrict:
		return "Strict"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes and event handlers
	Children []*VNode  // Child nodes
	Key      string    // Reconciliation key
	Text     string    // For KindText and KindRaw
	Comp     Component // For KindComponent
}

// Props holds attributes and event handlers.
type Props map[string]any

// Handlers returns the event handlers of an element keyed by DOM event
// type ("click", "input", ...).
func (v *VNode) Handlers() map[string]any {
	if v == nil || v.Kind != KindElement {
		return nil
	}
	var out map[string]any
	for key, value := range v.Props {
		if !IsEventProp(key, value) {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[strings.ToLower(key[2:])] = value
	}
	return out
}

// IsInteractive returns true if this node has event handlers.
func (v *VNode) IsInteractive() bool {
	return len(v.Handlers()) > 0
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // func(), func(string) or func(*dom.Event)
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}

// Mount embeds a component in a tree.
func Mount(c Component) *VNode {
	if c == nil {
		return nil
	}
	return &VNode{Kind: KindComponent, Comp: c}
}

// SameComponent reports whether a and b are the same component type.
// FuncComponents compare by the code pointer of their render function, so
// two closures built from one literal match while their captures differ.
func SameComponent(a, b Component) bool {
	if a == nil || b == nil {
		return a == b
	}
	fa, okA := a.(*FuncComponent)
	fb, okB := b.(*FuncComponent)
	if okA && okB {
		return reflect.ValueOf(fa.render).Pointer() == reflect.ValueOf(fb.render).Pointer()
	}
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}
