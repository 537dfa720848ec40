package middleware

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/vango-dev/formkit/pkg/features/form"
)

func TestPrometheusObserver_RecordsLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := Prometheus(WithRegistry(reg))

	c := form.New(form.WithName("login"), form.WithObserver(m))
	c.Register("username", []form.Rule{form.Required(), form.MinLength(3)})
	c.Register("password", []form.Rule{form.Required()})

	c.SetFieldValue("username", "ab")
	c.SetFieldTouched("username", true) // invalid
	c.SetFieldValue("username", "abc")  // valid

	if _, err := c.Submit(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.SetFieldValue("password", "secret") // touched by submit, valid
	if _, err := c.Submit(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Unregister("password")

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"registrations", m.registrations.WithLabelValues("login"), 2},
		{"unregistrations", m.unregistrations.WithLabelValues("login"), 1},
		{"valid validations", m.validations.WithLabelValues("login", "valid"), 2},
		{"invalid validations", m.validations.WithLabelValues("login", "invalid"), 1},
		{"username failures", m.validationFailures.WithLabelValues("login", "username"), 1},
		{"password failures", m.validationFailures.WithLabelValues("login", "password"), 1},
		{"invalid submissions", m.submissions.WithLabelValues("login", form.OutcomeInvalid), 1},
		{"succeeded submissions", m.submissions.WithLabelValues("login", form.OutcomeSucceeded), 1},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(tt.c); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	if got := testutil.CollectAndCount(m.submitDuration, "formkit_submit_duration_seconds"); got != 1 {
		t.Errorf("expected one submit_duration series, got %d", got)
	}
}

func TestPrometheusObserver_OptionsAndDefaultLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := Prometheus(
		WithRegistry(reg),
		WithNamespace("app"),
		WithSubsystem("forms"),
		WithConstLabels(prometheus.Labels{"env": "test"}),
		WithBuckets([]float64{0.1, 1}),
	)

	c := form.New(form.WithObserver(m))
	c.Register("q", nil)
	c.Submit(context.Background(), nil)

	if got := testutil.ToFloat64(m.submissions.WithLabelValues("default", form.OutcomeSucceeded)); got != 1 {
		t.Errorf("expected unnamed form on the default label, got %v", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, mf := range families {
		if mf.GetName() == "app_forms_submissions_total" {
			found = true
			labels := mf.GetMetric()[0].GetLabel()
			hasEnv := false
			for _, l := range labels {
				if l.GetName() == "env" && l.GetValue() == "test" {
					hasEnv = true
				}
			}
			if !hasEnv {
				t.Errorf("expected const label env=test, got %v", labels)
			}
		}
	}
	if !found {
		t.Error("expected app_forms_submissions_total to be registered")
	}
}

func TestPrometheusObserver_DuplicateRegistryPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	Prometheus(WithRegistry(reg))

	defer func() {
		if recover() == nil {
			t.Error("expected second registration on one registry to panic")
		}
	}()
	Prometheus(WithRegistry(reg))
}
