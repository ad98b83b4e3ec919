package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// GlobalTracer is used by repositories and analyzers to start spans.
// Exporter setup is left to the embedding application; with no SDK
// configured the tracer is a noop.
var GlobalTracer = otel.Tracer("pulsefit-core")

func EndSpanWithErrCheck(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
