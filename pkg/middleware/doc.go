// Package middleware provides form observers for production deployments.
//
// This package includes:
//   - OpenTelemetry tracing of submissions
//   - Prometheus metrics for validation and submission
//   - Structured logging of outcomes
//   - Chain, to attach several observers to one controller
//
// # OpenTelemetry
//
// The OpenTelemetry observer wraps every submission in a span. The span
// is active in the context handed to OnFinish, so database drivers and
// HTTP clients called from the callback inherit the trace:
//
//	c := form.New(
//	    form.WithObserver(middleware.OpenTelemetry()),
//	    form.WithOnFinish(func(ctx context.Context, v form.Values) error {
//	        _, err := db.ExecContext(ctx, "INSERT ...")
//	        return err
//	    }),
//	)
//
// Configure with options:
//
//	middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithFormFilter(func(name string) bool {
//	        return name != "search"
//	    }),
//	)
//
// # Prometheus Metrics
//
// The Prometheus observer counts validations and submissions:
//   - formkit_field_validations_total: Single-field validations by result
//   - formkit_field_validation_failures_total: Failures by field
//   - formkit_submissions_total: Submissions by outcome
//   - formkit_submit_duration_seconds: Submit duration histogram
//
// One observer serves any number of controllers; series are labeled with
// the controller name.
//
//	metrics := middleware.Prometheus(middleware.WithRegistry(reg))
//	obs := middleware.Chain(metrics, middleware.OpenTelemetry())
//	c := form.New(form.WithName("login"), form.WithObserver(obs))
package middleware
