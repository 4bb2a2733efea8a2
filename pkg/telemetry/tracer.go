// Package telemetry provides OpenTelemetry integration for the application.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TracerName is the default tracer name for the application
	TracerName = "github.com/coinform/credserve"
)

// Tracer returns the global tracer for the application
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartSpan starts a new span with the given name and returns the context and span.
// The caller is responsible for calling span.End() when the operation is complete.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// SpanFromContext returns the current span from the context.
// If no span is found, a no-op span is returned.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// SetSpanError records an error on the span and sets its status to error
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanOK sets the span status to OK
func SetSpanOK(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// AddSpanEvent adds an event to the span with optional attributes
func AddSpanEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// SetSpanAttributes sets attributes on the span
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
}

// Common attribute keys for consistent naming
var (
	// Request attributes
	AttrRequestID = attribute.Key("request.id")

	// Item attributes (the item being reviewed)
	AttrItemType = attribute.Key("item.type")
	AttrItemID   = attribute.Key("item.id")
	AttrItemURL  = attribute.Key("item.url")

	// Review attributes
	AttrReviewID         = attribute.Key("review.id")
	AttrReviewBot        = attribute.Key("review.bot")
	AttrReviewConfidence = attribute.Key("review.confidence")

	// External service attributes
	AttrServiceName    = attribute.Key("service.name")
	AttrServiceBatch   = attribute.Key("service.batch_size")
	AttrCircuitState   = attribute.Key("circuit.state")

	// Result attributes
	AttrDurationMs = attribute.Key("duration.ms")
)

// WithRequestAttributes returns span start options for an incoming review request
func WithRequestAttributes(requestID, itemType string) trace.SpanStartOption {
	return trace.WithAttributes(
		AttrRequestID.String(requestID),
		AttrItemType.String(itemType),
	)
}

// WithReviewAttributes returns span start options for a reviewer invocation
func WithReviewAttributes(reviewID string, bot string) trace.SpanStartOption {
	return trace.WithAttributes(
		AttrReviewID.String(reviewID),
		AttrReviewBot.String(bot),
	)
}
