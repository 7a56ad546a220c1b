package runtime

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vango-go/vtl/pkg/reactive"
	"github.com/vango-go/vtl/pkg/vdom"
)

func TestMetricsRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	f := newFixture(t, WithRegisterer(reg))
	root := f.rt.CreateRoot(f.container)

	f.act(t, func() { root.Render(vdom.Mount(counter())) })
	f.click(t, "button")

	if got := testutil.ToFloat64(f.rt.metrics.commits); got != 2 {
		t.Errorf("commits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(f.rt.metrics.renders); got != 2 {
		t.Errorf("renders = %v, want 2", got)
	}
	if got := testutil.ToFloat64(f.rt.metrics.roots); got != 1 {
		t.Errorf("roots = %v, want 1", got)
	}

	count, err := testutil.GatherAndCount(reg,
		"vtl_runtime_commits_total",
		"vtl_runtime_component_renders_total",
		"vtl_runtime_flush_passes_total",
		"vtl_runtime_hydration_mismatches_total",
		"vtl_runtime_roots",
	)
	if err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Errorf("gathered %d series, want 5", count)
	}

	if err := root.Unmount(); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(f.rt.metrics.roots); got != 0 {
		t.Errorf("roots after unmount = %v", got)
	}
}

func TestFlushSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	f := newFixture(t, WithTracerProvider(tp))
	root := f.rt.CreateRoot(f.container)

	f.act(t, func() {})
	if n := len(sr.Ended()); n != 0 {
		t.Fatalf("empty flush recorded %d spans", n)
	}

	f.act(t, func() { root.Render(vdom.Text("x")) })
	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	span := spans[0]
	if span.Name() != "vtl.flush" {
		t.Errorf("name = %q", span.Name())
	}
	if span.Status().Code != codes.Ok {
		t.Errorf("status = %v", span.Status())
	}
	want := map[attribute.Key]int64{"vtl.flush.passes": 1, "vtl.flush.commits": 1}
	for _, kv := range span.Attributes() {
		if v, ok := want[kv.Key]; ok && kv.Value.AsInt64() != v {
			t.Errorf("%s = %d, want %d", kv.Key, kv.Value.AsInt64(), v)
		}
	}
}

func TestFlushSpanRecordsError(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	f := newFixture(t, WithTracerProvider(tp), WithFlusher(SyncFlusher{MaxPasses: 2}))
	root := f.rt.CreateRoot(f.container)
	loop := vdom.Func(func() *vdom.VNode {
		n, setN := reactive.UseState(0)
		reactive.UseEffect(func() reactive.Cleanup {
			setN(n + 1)
			return nil
		})
		return vdom.Textf("%d", n)
	})

	if err := f.rt.Act(func() { root.Render(vdom.Mount(loop)) }); err == nil {
		t.Fatal("expected an error")
	}
	spans := sr.Ended()
	if len(spans) != 1 || spans[0].Status().Code != codes.Error {
		t.Fatalf("spans = %v", spans)
	}
}
