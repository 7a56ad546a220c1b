package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Event is a synthetic DOM event.
type Event struct {
	Type          string
	Target        *html.Node
	CurrentTarget *html.Node
	Bubbles       bool

	// Key is set for keyboard events.
	Key string
	// Detail carries event specific data supplied by the dispatcher.
	Detail map[string]any

	defaultPrevented   bool
	propagationStopped bool
}

// NewEvent creates a bubbling event of the given type.
func NewEvent(typ string) *Event {
	return &Event{Type: strings.ToLower(typ), Bubbles: !nonBubbling[strings.ToLower(typ)]}
}

var nonBubbling = map[string]bool{
	"focus":      true,
	"blur":       true,
	"load":       true,
	"mouseenter": true,
	"mouseleave": true,
	"scroll":     true,
}

// PreventDefault marks the event as canceled.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation stops the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.propagationStopped = true }

// Listener handles an event.
type Listener func(*Event)

// AddEventListener registers fn for events of type typ on n.
func (d *Document) AddEventListener(n *html.Node, typ string, fn Listener) {
	byType := d.listeners[n]
	if byType == nil {
		byType = make(map[string][]Listener)
		d.listeners[n] = byType
	}
	typ = strings.ToLower(typ)
	byType[typ] = append(byType[typ], fn)
}

// RemoveEventListeners removes every listener registered on n.
func (d *Document) RemoveEventListeners(n *html.Node) {
	delete(d.listeners, n)
}

// HasEventListeners reports whether n has listeners for typ.
func (d *Document) HasEventListeners(n *html.Node, typ string) bool {
	return len(d.listeners[n][strings.ToLower(typ)]) > 0
}

func (d *Document) dropListeners(n *html.Node) {
	if len(d.listeners) == 0 {
		return
	}
	walk(n, func(x *html.Node) bool {
		delete(d.listeners, x)
		return true
	})
}

// DispatchEvent delivers ev to target and, when it bubbles, to each
// ancestor in turn. It returns false if a listener called PreventDefault.
func (d *Document) DispatchEvent(target *html.Node, ev *Event) bool {
	ev.Target = target
	for n := target; n != nil; n = n.Parent {
		ev.CurrentTarget = n
		// Copy so listeners may add or remove listeners while running.
		fns := append([]Listener(nil), d.listeners[n][ev.Type]...)
		for _, fn := range fns {
			fn(ev)
		}
		if ev.propagationStopped || !ev.Bubbles {
			break
		}
	}
	ev.CurrentTarget = nil
	return !ev.defaultPrevented
}
