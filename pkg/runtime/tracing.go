package runtime

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vango-go/vtl/pkg/runtime"

func (rt *Runtime) startFlushSpan() trace.Span {
	_, span := rt.tracer.Start(context.Background(), "vtl.flush",
		trace.WithSpanKind(trace.SpanKindInternal))
	return span
}

func endFlushSpan(span trace.Span, passes, commits int, err error) {
	span.SetAttributes(
		attribute.Int("vtl.flush.passes", passes),
		attribute.Int("vtl.flush.commits", commits),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
