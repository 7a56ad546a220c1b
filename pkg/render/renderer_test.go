package render

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	vtlerrors "github.com/vango-go/vtl/internal/errors"
	"github.com/vango-go/vtl/pkg/reactive"
	. "github.com/vango-go/vtl/pkg/vdom"
)

func mustRender(t *testing.T, node *VNode) string {
	t.Helper()
	html, err := RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return html
}

func TestRenderText(t *testing.T) {
	if got := mustRender(t, Text("Hello, World!")); got != "Hello, World!" {
		t.Errorf("got %q, want %q", got, "Hello, World!")
	}
	got := mustRender(t, Text("<script>alert('xss')</script>"))
	if strings.Contains(got, "<script>") {
		t.Errorf("HTML should be escaped, got %q", got)
	}
}

func TestRenderElement(t *testing.T) {
	got := mustRender(t, Div(Class("container"),
		H1(Text("Title")),
		P(Text("Content")),
	))
	want := `<div class="container"><h1>Title</h1><p>Content</p></div>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderVoidElements(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want string
	}{
		{"input", Input(Type("text"), Name("email")), `<input name="email" type="text">`},
		{"br", Br(), `<br>`},
		{"img", Img(Src("/a.png"), Alt("A")), `<img alt="A" src="/a.png">`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustRender(t, tt.node); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderBooleanAttributes(t *testing.T) {
	got := mustRender(t, Input(Disabled(), AttrKV("required", false), AriaHidden(true)))
	if got != `<input aria-hidden="true" disabled>` {
		t.Errorf("got %q", got)
	}
}

func TestRenderSkipsHandlersAndKeys(t *testing.T) {
	got := mustRender(t, Button(Key("k"), OnClick(func() {}), Text("Go")))
	if got != `<button>Go</button>` {
		t.Errorf("got %q", got)
	}
}

func TestRenderFragmentAndStrict(t *testing.T) {
	got := mustRender(t, Fragment(
		Span(Text("a")),
		StrictMode(Span(Text("b")), Fragment(Text("c"))),
	))
	if got != `<span>a</span><span>b</span>c` {
		t.Errorf("got %q", got)
	}
}

func TestRenderRaw(t *testing.T) {
	got := mustRender(t, Div(Raw("<b>bold</b>"), AttrKV("dangerouslySetInnerHTML", nil)))
	if got != `<div><b>bold</b></div>` {
		t.Errorf("got %q", got)
	}
	got = mustRender(t, Div(AttrKV("dangerouslySetInnerHTML", "<i>x</i>"), Text("ignored")))
	if got != `<div><i>x</i></div>` {
		t.Errorf("got %q", got)
	}
}

func TestRenderComponentWithHooks(t *testing.T) {
	counter := func(start int) Component {
		return Func(func() *VNode {
			n, _ := reactive.UseState(start)
			ref := reactive.UseRef("")
			ref.Set("seen")
			reactive.UseEffect(func() reactive.Cleanup {
				t.Error("effects must not run during server rendering")
				return nil
			})
			return Span(Textf("%d", n))
		})
	}
	got := mustRender(t, Div(counter(1), counter(2)))
	if got != `<div><span>1</span><span>2</span></div>` {
		t.Errorf("got %q", got)
	}
}

func TestRenderComponentPanic(t *testing.T) {
	boom := Func(func() *VNode { panic("boom") })
	_, err := RenderToString(Div(boom))
	if !stderrors.Is(err, vtlerrors.Sentinel("E003")) {
		t.Fatalf("err = %v, want E003", err)
	}
	if reactive.IsRendering() {
		t.Error("render depth leaked after panic")
	}
}

func TestRenderPretty(t *testing.T) {
	r := NewRenderer(RendererConfig{Pretty: true})
	got, err := r.RenderToString(Ul(Li(Text("a")), Li(Span(Text("b")))))
	if err != nil {
		t.Fatal(err)
	}
	want := "<ul>\n  <li>a</li>\n  <li>\n    <span>b</span>\n  </li>\n</ul>\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderNilNode(t *testing.T) {
	if got := mustRender(t, nil); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestRenderToWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(RendererConfig{}).RenderToWriter(&buf, P(Text("x"))); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "<p>x</p>" {
		t.Errorf("got %q", buf.String())
	}
}

func TestRenderAttributeEscaping(t *testing.T) {
	got := mustRender(t, Div(TitleAttr(`a "quoted" <value>`)))
	if got != `<div title="a &quot;quoted&quot; &lt;value&gt;"></div>` {
		t.Errorf("got %q", got)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	if _, err := RenderToString(&VNode{Kind: VKind(99)}); err == nil {
		t.Error("expected error for unknown kind")
	}
}
