package middleware

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/formkit/pkg/features/form"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "formkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for submit duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "formkit",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a form.Observer that records Prometheus metrics.
type Metrics struct {
	registrations      *prometheus.CounterVec
	unregistrations    *prometheus.CounterVec
	validations        *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	submissions        *prometheus.CounterVec
	submitDuration     *prometheus.HistogramVec
}

var _ form.Observer = (*Metrics)(nil)

// Prometheus creates an observer that collects metrics for every
// controller it is attached to.
//
// Metrics collected:
//   - formkit_field_registrations_total: Counter of registrations by form
//   - formkit_field_unregistrations_total: Counter of unmounted fields by form
//   - formkit_field_validations_total: Counter of single-field validations by form and result
//   - formkit_field_validation_failures_total: Counter of failed validations by form and field
//   - formkit_submissions_total: Counter of submissions by form and outcome
//   - formkit_submit_duration_seconds: Histogram of submit duration by form
//
// The metrics are registered with the configured registry, so each
// registry takes one Prometheus observer.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	obs := middleware.Prometheus(middleware.WithRegistry(reg))
//	c := form.New(form.WithName("signup"), form.WithObserver(obs))
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "field_registrations_total",
			Help:        "Total number of field registrations, including rule changes",
			ConstLabels: config.ConstLabels,
		}, []string{"form"}),

		unregistrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "field_unregistrations_total",
			Help:        "Total number of unmounted fields",
			ConstLabels: config.ConstLabels,
		}, []string{"form"}),

		validations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "field_validations_total",
			Help:        "Total number of single-field validations",
			ConstLabels: config.ConstLabels,
		}, []string{"form", "result"}),

		validationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "field_validation_failures_total",
			Help:        "Total number of failed validations per field",
			ConstLabels: config.ConstLabels,
		}, []string{"form", "field"}),

		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "submissions_total",
			Help:        "Total number of submissions by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"form", "outcome"}),

		submitDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "submit_duration_seconds",
			Help:        "Submit duration in seconds, validation and callback included",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"form"}),
	}
}

// FieldRegistered implements form.Observer. A rule change on a mounted
// field counts as a registration.
func (m *Metrics) FieldRegistered(formName, _ string, _ int) {
	m.registrations.WithLabelValues(formLabel(formName)).Inc()
}

// FieldUnregistered implements form.Observer.
func (m *Metrics) FieldUnregistered(formName, _ string) {
	m.unregistrations.WithLabelValues(formLabel(formName)).Inc()
}

// FieldValidated implements form.Observer.
func (m *Metrics) FieldValidated(formName, field, message string) {
	name := formLabel(formName)
	if message == "" {
		m.validations.WithLabelValues(name, "valid").Inc()
		return
	}
	m.validations.WithLabelValues(name, "invalid").Inc()
	m.validationFailures.WithLabelValues(name, field).Inc()
}

// SubmitStarted implements form.Observer.
func (m *Metrics) SubmitStarted(ctx context.Context, _ string) context.Context {
	return ctx
}

// SubmitFinished implements form.Observer. Every field of a failed
// validation counts as a validation failure.
func (m *Metrics) SubmitFinished(_ context.Context, formName string, result form.SubmitResult) {
	name := formLabel(formName)
	m.submissions.WithLabelValues(name, result.Outcome()).Inc()
	m.submitDuration.WithLabelValues(name).Observe(result.Duration.Seconds())
	for field := range result.Errors {
		m.validationFailures.WithLabelValues(name, field).Inc()
	}
}

// formLabel keeps unnamed controllers on one series.
func formLabel(name string) string {
	if name == "" {
		return "default"
	}
	return name
}
