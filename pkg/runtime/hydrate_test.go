package runtime

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-go/vtl/pkg/dom"
	"github.com/vango-go/vtl/pkg/render"
	"github.com/vango-go/vtl/pkg/vdom"
)

func TestHydrateAdoptsServerMarkup(t *testing.T) {
	f := newFixture(t)
	app := func() *vdom.VNode {
		return vdom.Div(vdom.Class("app"), vdom.H1(vdom.Text("Title")), counter())
	}
	markup, err := render.RenderToString(app())
	if err != nil {
		t.Fatal(err)
	}
	if err := f.doc.SetInnerHTML(f.container, markup); err != nil {
		t.Fatal(err)
	}
	button, _ := dom.QuerySelector(f.container, "button")

	obs := f.doc.Observe(f.container, true)
	defer obs.Disconnect()
	f.act(t, func() { f.rt.HydrateRoot(f.container, app()) })

	records := obs.TakeRecords()
	if n := dom.CountInsertions(records); n != 0 {
		t.Errorf("hydration inserted %d nodes", n)
	}
	if len(records) != 0 {
		t.Errorf("hydration mutated the document: %d records", len(records))
	}
	if f.logs.Len() != 0 {
		t.Errorf("unexpected warnings: %s", f.logs)
	}

	f.click(t, "button")
	if got, _ := dom.QuerySelector(f.container, "button"); got != button {
		t.Error("server button was replaced")
	}
	if got := dom.TextContent(button); got != "count: 1" {
		t.Errorf("button text = %q", got)
	}
}

func TestHydrateSkipsComments(t *testing.T) {
	f := newFixture(t)
	if err := f.doc.SetInnerHTML(f.container, "<!-- ssr --><p>hi</p>"); err != nil {
		t.Fatal(err)
	}
	p := f.container.LastChild

	f.act(t, func() { f.rt.HydrateRoot(f.container, vdom.P(vdom.Text("hi"))) })
	if f.container.FirstChild != p || f.container.LastChild != p {
		t.Errorf("html = %q", f.html())
	}
}

func TestHydrationMismatchIsRepaired(t *testing.T) {
	f := newFixture(t)
	if err := f.doc.SetInnerHTML(f.container, "<p>old</p><i>extra</i>"); err != nil {
		t.Fatal(err)
	}

	f.act(t, func() { f.rt.HydrateRoot(f.container, vdom.Span(vdom.Text("new"))) })

	if got := f.html(); got != "<span>new</span>" {
		t.Errorf("html = %q", got)
	}
	if !strings.Contains(f.logs.String(), "E040") {
		t.Errorf("expected E040 warning, got %q", f.logs)
	}
	if got := testutil.ToFloat64(f.rt.metrics.mismatches); got != 1 {
		t.Errorf("mismatches = %v", got)
	}
}

func TestHydrationTextMismatchKeepsNode(t *testing.T) {
	f := newFixture(t)
	if err := f.doc.SetInnerHTML(f.container, "<p>server</p>"); err != nil {
		t.Fatal(err)
	}
	p := f.container.FirstChild

	f.act(t, func() { f.rt.HydrateRoot(f.container, vdom.P(vdom.Text("client"))) })
	if f.container.FirstChild != p || f.html() != "<p>client</p>" {
		t.Errorf("html = %q", f.html())
	}
	if !strings.Contains(f.logs.String(), "E040") {
		t.Error("text mismatch should warn")
	}
}

func TestHydrateRawMarkup(t *testing.T) {
	f := newFixture(t)
	if err := f.doc.SetInnerHTML(f.container, "<b>x</b>"); err != nil {
		t.Fatal(err)
	}
	b := f.container.FirstChild

	f.act(t, func() { f.rt.HydrateRoot(f.container, vdom.Raw("<b>x</b>")) })
	if f.container.FirstChild != b {
		t.Error("raw markup was not adopted")
	}
}
