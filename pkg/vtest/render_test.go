package vtest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	vtlerrors "github.com/vango-go/vtl/internal/errors"
	"github.com/vango-go/vtl/pkg/dom"
	"github.com/vango-go/vtl/pkg/query"
	"github.com/vango-go/vtl/pkg/reactive"
	"github.com/vango-go/vtl/pkg/runtime"
	"github.com/vango-go/vtl/pkg/vdom"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newHarness returns an isolated harness whose Debug output goes to the
// returned buffer.
func newHarness(t *testing.T) (*Harness, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	rt := runtime.NewLegacy(dom.New(), runtime.WithLogger(quietLogger()))
	h := New(rt, WithLogger(quietLogger()), WithOutput(out))
	h.Setup(t)
	return h, out
}

func mustRender(t *testing.T, h *Harness, ui *vdom.VNode, opts ...RenderOption) *RenderResult {
	t.Helper()
	r, err := h.Render(ui, opts...)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return r
}

func counter() vdom.Component {
	return vdom.Func(func() *vdom.VNode {
		n, setN := reactive.UseState(0)
		return vdom.Button(vdom.OnClick(func() { setN(n + 1) }), vdom.Textf("count: %d", n))
	})
}

func TestRenderAppendsContainerToBody(t *testing.T) {
	h, _ := newHarness(t)
	r := mustRender(t, h, vdom.Span(vdom.Text("hi")))

	if r.Container.Parent != h.Document().Body() {
		t.Error("container is not a child of body")
	}
	if r.BaseElement != h.Document().Body() {
		t.Error("base element is not body")
	}
	if got := dom.InnerHTML(r.Container); got != "<span>hi</span>" {
		t.Errorf("container = %q", got)
	}
	if _, err := r.GetByText("hi"); err != nil {
		t.Error(err)
	}
	if h.Registry().Len() != 1 {
		t.Errorf("registry has %d roots", h.Registry().Len())
	}
}

func TestRenderReusesRootForContainer(t *testing.T) {
	h, _ := newHarness(t)
	container := h.Document().CreateElement("section")
	h.Document().AppendChild(h.Document().Body(), container)

	r := mustRender(t, h, vdom.Mount(counter()), Container(container))
	button, err := r.GetByRole("button")
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Click(button); err != nil {
		t.Fatal(err)
	}

	r2 := mustRender(t, h, vdom.Mount(counter()), Container(container))
	if h.Registry().Len() != 1 {
		t.Errorf("registry has %d roots, want 1", h.Registry().Len())
	}
	if _, err := r2.GetByText("count: 1"); err != nil {
		t.Errorf("state lost on second render: %v", err)
	}
	if r2.Container != container {
		t.Error("second render used a different container")
	}
}

func TestRerenderUpdatesInPlace(t *testing.T) {
	h, out := newHarness(t)
	r := mustRender(t, h, vdom.Div(vdom.Mount(counter()), vdom.P(vdom.Text("one"))))
	button, _ := r.GetByRole("button")
	if err := h.Click(button); err != nil {
		t.Fatal(err)
	}

	container := r.Container
	if err := r.Rerender(vdom.Div(vdom.Mount(counter()), vdom.P(vdom.Text("two")))); err != nil {
		t.Fatal(err)
	}
	if h.Registry().Len() != 1 {
		t.Errorf("registry has %d roots after Rerender, want 1", h.Registry().Len())
	}
	if r.Container != container || container.Parent != h.Document().Body() {
		t.Error("Rerender moved to another container")
	}
	if root, ok := h.Registry().Lookup(container); !ok || root != r.root {
		t.Error("Rerender replaced the root")
	}
	if got, _ := r.GetByRole("button"); got != button {
		t.Error("button was recreated")
	}
	if _, err := r.GetByText("count: 1"); err != nil {
		t.Error(err)
	}

	r.Debug()
	if !strings.Contains(out.String(), "two") || strings.Contains(out.String(), "one") {
		t.Errorf("Debug output does not reflect the rerender:\n%s", out)
	}
}

func TestAsFragmentIsASnapshot(t *testing.T) {
	h, _ := newHarness(t)
	r := mustRender(t, h, vdom.P(vdom.Text("before")))

	frag := r.AsFragment()
	if err := r.Rerender(vdom.P(vdom.Text("after"))); err != nil {
		t.Fatal(err)
	}

	if got := dom.TextContent(frag); got != "before" {
		t.Errorf("fragment text = %q, want before", got)
	}
	if got := dom.TextContent(r.Container); got != "after" {
		t.Errorf("container text = %q, want after", got)
	}
	if frag.FirstChild == r.Container.FirstChild {
		t.Error("fragment shares nodes with the container")
	}
}

func TestLegacyRootNeedsLegacyRuntime(t *testing.T) {
	rt := runtime.New(dom.New(), runtime.WithLogger(quietLogger()))
	h := New(rt, WithLogger(quietLogger()))
	h.Setup(t)

	_, err := h.Render(vdom.Text("x"), LegacyRoot())
	if !errors.Is(err, vtlerrors.Sentinel("E020")) {
		t.Fatalf("err = %v, want E020", err)
	}
	if h.Document().Body().FirstChild != nil {
		t.Error("document was modified")
	}
	if h.Registry().Len() != 0 {
		t.Error("a root was registered")
	}
}

func TestLegacyRoot(t *testing.T) {
	h, _ := newHarness(t)
	r := mustRender(t, h, vdom.Mount(counter()), LegacyRoot())

	button, err := r.GetByRole("button", query.Name("count: 0"))
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Click(button); err != nil {
		t.Fatal(err)
	}
	ExpectText(t, button, "count: 1")

	if err := r.Unmount(); err != nil {
		t.Fatal(err)
	}
	if r.Container.FirstChild != nil {
		t.Errorf("container not emptied: %q", dom.InnerHTML(r.Container))
	}
}

func TestHydrateAdoptsExistingMarkup(t *testing.T) {
	h, _ := newHarness(t)
	app := func() *vdom.VNode {
		return vdom.Div(vdom.H1(vdom.Text("Title")), vdom.Mount(counter()))
	}
	container := h.Document().CreateElement("div")
	h.Document().AppendChild(h.Document().Body(), container)
	if err := h.Document().SetInnerHTML(container, RenderToString(app())); err != nil {
		t.Fatal(err)
	}
	server, _ := dom.QuerySelector(container, "button")

	obs := h.Document().Observe(container, true)
	defer obs.Disconnect()
	r := mustRender(t, h, app(), Container(container), Hydrate())
	if n := dom.CountInsertions(obs.TakeRecords()); n != 0 {
		t.Errorf("hydration inserted %d nodes", n)
	}

	button, _ := r.GetByRole("button")
	if button != server {
		t.Fatal("server button was replaced")
	}
	if err := h.Click(button); err != nil {
		t.Fatal(err)
	}
	ExpectText(t, button, "count: 1")
}

func TestHydrateOnRenderedRootPanics(t *testing.T) {
	h, _ := newHarness(t)
	r := mustRender(t, h, vdom.Text("x"))

	defer func() {
		rec := recover()
		err, ok := rec.(error)
		if !ok || !errors.Is(err, vtlerrors.Sentinel("E021")) {
			t.Errorf("recovered %v, want E021", rec)
		}
	}()
	_, _ = h.Render(vdom.Text("x"), Container(r.Container), Hydrate())
	t.Error("Render did not panic")
}

func TestWrapperAppliesOnRerender(t *testing.T) {
	h, _ := newHarness(t)
	wrap := func(children *vdom.VNode) *vdom.VNode {
		return vdom.Div(vdom.Class("provider"), children)
	}
	r := mustRender(t, h, vdom.Text("a"), Wrapper(wrap))
	if got := dom.InnerHTML(r.Container); got != `<div class="provider">a</div>` {
		t.Errorf("container = %q", got)
	}
	if err := r.Rerender(vdom.Text("b")); err != nil {
		t.Fatal(err)
	}
	if got := dom.InnerHTML(r.Container); got != `<div class="provider">b</div>` {
		t.Errorf("after rerender = %q", got)
	}
}

func TestStrictModeRendersTwiceOnMount(t *testing.T) {
	h, _ := newHarness(t)
	strictMode.Store(true)
	t.Cleanup(func() { strictMode.Store(false) })

	var renders atomic.Int32
	comp := vdom.Func(func() *vdom.VNode {
		renders.Add(1)
		return vdom.Text("strict")
	})
	r := mustRender(t, h, vdom.Mount(comp))
	if got := renders.Load(); got != 2 {
		t.Errorf("renders = %d, want 2", got)
	}
	if got := dom.InnerHTML(r.Container); got != "strict" {
		t.Errorf("container = %q", got)
	}
}

func TestWaitForSeesBackgroundUpdate(t *testing.T) {
	h, _ := newHarness(t)
	var setStatus func(string)
	comp := vdom.Func(func() *vdom.VNode {
		status, set := reactive.UseState("loading")
		setStatus = set
		return vdom.P(vdom.Text(status))
	})
	r := mustRender(t, h, vdom.Mount(comp))

	done := make(chan struct{})
	set := setStatus
	go func() {
		defer close(done)
		time.Sleep(20 * time.Millisecond)
		set("loaded")
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := h.WaitFor(ctx, func() error {
		_, err := r.GetByText("loaded")
		return err
	}, query.Interval(5*time.Millisecond))
	<-done
	if err != nil {
		t.Fatal(err)
	}
	if !h.Runtime().IsActEnvironment() {
		t.Error("act environment not restored")
	}
}

func TestFindTimesOut(t *testing.T) {
	h, _ := newHarness(t)
	r := mustRender(t, h, vdom.P(vdom.Text("present")))

	_, err := r.Find(context.Background(), ByText("absent"), Timeout(50*time.Millisecond))
	if !errors.Is(err, query.ErrTimeout) {
		t.Fatalf("err = %v, want timeout", err)
	}
	if !errors.Is(err, query.ErrNoElement) {
		t.Errorf("timeout does not carry the last failure: %v", err)
	}
}

func TestPrettyDOMLimit(t *testing.T) {
	h, out := newHarness(t)
	r := mustRender(t, h, vdom.P(vdom.Text("a fairly long paragraph")))

	if got := r.PrettyDOMLimit(5, r.Container); got != dom.Pretty(r.Container, 5) {
		t.Errorf("PrettyDOMLimit = %q", got)
	}
	if !strings.HasSuffix(r.PrettyDOMLimit(5), "...") {
		t.Error("limit not applied")
	}
	if got := r.PrettyDOMLimit(0, r.Container); !strings.Contains(got, "a fairly long paragraph") {
		t.Errorf("unlimited output = %q", got)
	}

	r.DebugLimit(5, r.Container)
	if got := strings.TrimSpace(out.String()); got != dom.Pretty(r.Container, 5) {
		t.Errorf("DebugLimit printed %q", got)
	}
}
