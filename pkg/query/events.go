package query

import (
	"golang.org/x/net/html"

	"github.com/vango-go/vtl/pkg/dom"
)

// FireEvent dispatches ev at target inside Config.EventWrapper. It returns
// false if a listener called PreventDefault.
func FireEvent(doc *dom.Document, target *html.Node, ev *dom.Event) bool {
	ok := true
	GetConfig().EventWrapper(func() {
		ok = doc.DispatchEvent(target, ev)
	})
	return ok
}

// Click fires a click event.
func Click(doc *dom.Document, target *html.Node) bool {
	return FireEvent(doc, target, dom.NewEvent("click"))
}

// Submit fires a submit event, usually at a form.
func Submit(doc *dom.Document, target *html.Node) bool {
	return FireEvent(doc, target, dom.NewEvent("submit"))
}

// KeyDown fires a keydown event carrying key.
func KeyDown(doc *dom.Document, target *html.Node, key string) bool {
	ev := dom.NewEvent("keydown")
	ev.Key = key
	return FireEvent(doc, target, ev)
}

// Input sets the value of target and fires an input event.
func Input(doc *dom.Document, target *html.Node, value string) bool {
	return setAndFire(doc, target, "input", func() { doc.SetValue(target, value) })
}

// Change sets the value of target and fires a change event.
func Change(doc *dom.Document, target *html.Node, value string) bool {
	return setAndFire(doc, target, "change", func() { doc.SetValue(target, value) })
}

// Check sets the checked state of a checkbox or radio and fires a change
// event.
func Check(doc *dom.Document, target *html.Node, checked bool) bool {
	return setAndFire(doc, target, "change", func() { doc.SetChecked(target, checked) })
}

func setAndFire(doc *dom.Document, target *html.Node, typ string, set func()) bool {
	ok := true
	GetConfig().EventWrapper(func() {
		set()
		ok = doc.DispatchEvent(target, dom.NewEvent(typ))
	})
	return ok
}
