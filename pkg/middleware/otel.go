package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/vango-dev/formkit/pkg/features/form"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for formkit.
const defaultTracerName = "formkit"

// OTelConfig configures the OpenTelemetry observer.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "formkit").
	TracerName string

	// TracerProvider provides the tracer.
	// Default: the global provider at construction time.
	TracerProvider trace.TracerProvider

	// IncludeFailedFields records the names of fields that failed
	// validation as a span attribute. Enabled by default.
	IncludeFailedFields bool

	// Filter determines which forms to trace.
	// Return true to trace the form, false to skip.
	// If nil, all forms are traced.
	Filter func(form string) bool

	// AttributeExtractor adds custom attributes from the result.
	// Called once per traced submission.
	AttributeExtractor func(form string, result form.SubmitResult) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry observer.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeFailedFields enables/disables the failed field attribute.
func WithIncludeFailedFields(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeFailedFields = include
	}
}

// WithFormFilter sets a filter function for forms.
func WithFormFilter(filter func(form string) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(form string, result form.SubmitResult) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:          defaultTracerName,
		IncludeFailedFields: true,
	}
}

// Tracing is a form.Observer that traces submissions.
type Tracing struct {
	form.NopObserver
	config OTelConfig
}

var _ form.Observer = (*Tracing)(nil)

// OpenTelemetry creates an observer that wraps every submission in a span.
//
// The span:
//   - Is named "formkit.submit <form>" and carries the form name
//   - Is the active span in the context passed to OnFinish and OnFinishFailed
//   - Records the field count, failed field count and outcome
//   - Has status Error on validation failure and on callback errors
//
// Example:
//
//	c := form.New(
//	    form.WithName("signup"),
//	    form.WithObserver(middleware.OpenTelemetry(
//	        middleware.WithTracerName("my-app"),
//	    )),
//	)
//
// Without WithTracerProvider the global provider is used. Configure it in
// main() before creating controllers:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) *Tracing {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}
	config.tracer = config.TracerProvider.Tracer(config.TracerName)

	return &Tracing{config: config}
}

// spanContextKey marks contexts whose span was started by Tracing.
type spanContextKey struct{}

// SubmitStarted implements form.Observer.
func (t *Tracing) SubmitStarted(ctx context.Context, formName string) context.Context {
	if t.config.Filter != nil && !t.config.Filter(formName) {
		return ctx
	}

	ctx, span := t.config.tracer.Start(
		ctx,
		fmt.Sprintf("formkit.submit %s", formLabel(formName)),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("formkit.form", formName)),
	)
	return context.WithValue(ctx, spanContextKey{}, span)
}

// SubmitFinished implements form.Observer.
func (t *Tracing) SubmitFinished(ctx context.Context, formName string, result form.SubmitResult) {
	span := SpanFromContext(ctx)
	if span == nil {
		return
	}
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.Int("formkit.fields", result.Fields),
		attribute.Int("formkit.failed_fields", len(result.Errors)),
		attribute.String("formkit.outcome", result.Outcome()),
		attribute.Int64("formkit.duration_ms", result.Duration.Milliseconds()),
	}
	if t.config.IncludeFailedFields && len(result.Errors) > 0 {
		attrs = append(attrs, attribute.String("formkit.failed", strings.Join(result.Errors.Names(), ",")))
	}
	if t.config.AttributeExtractor != nil {
		attrs = append(attrs, t.config.AttributeExtractor(formName, result)...)
	}
	span.SetAttributes(attrs...)

	switch {
	case result.Err != nil:
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, result.Err.Error())
	case len(result.Errors) > 0:
		span.SetStatus(codes.Error, "validation failed")
	default:
		span.SetStatus(codes.Ok, "")
	}
}

// SpanFromContext returns the submission span started by Tracing, or nil
// when ctx does not carry one.
//
// Example:
//
//	form.WithOnFinish(func(ctx context.Context, v form.Values) error {
//	    if span := middleware.SpanFromContext(ctx); span != nil {
//	        span.AddEvent("archived")
//	    }
//	    return nil
//	})
func SpanFromContext(ctx context.Context) trace.Span {
	if span, ok := ctx.Value(spanContextKey{}).(trace.Span); ok {
		return span
	}
	return nil
}
