// Package trace provides TraceSink adapters so callers can observe
// pipeline progress without the engine knowing anything about logging or
// telemetry backends.
package trace

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// SlogSink forwards stage progress to a structured logger.
type SlogSink struct {
	Logger *slog.Logger
}

func (s SlogSink) Stage(stage, message string) {
	if s.Logger == nil {
		return
	}
	s.Logger.Info(message, "stage", stage)
}

// SpanSink records each stage as an event on the active span.
type SpanSink struct {
	Span oteltrace.Span
}

func (s SpanSink) Stage(stage, message string) {
	if s.Span == nil {
		return
	}
	s.Span.AddEvent(message, oteltrace.WithAttributes(attribute.String("pipeline.stage", stage)))
}

// StartSpan opens an analysis span on the given tracer and returns a sink
// bound to it. The caller must End the span.
func StartSpan(ctx context.Context, tracer oteltrace.Tracer, dealID string) (context.Context, oteltrace.Span, SpanSink) {
	ctx, span := tracer.Start(ctx, "dealscreen.analyze",
		oteltrace.WithAttributes(attribute.String("deal.id", dealID)))
	return ctx, span, SpanSink{Span: span}
}
