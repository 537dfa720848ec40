package archive

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vango-dev/formkit/pkg/features/form"
)

// ErrEmptyForm is returned for records without a form name.
var ErrEmptyForm = errors.New("archive: record has no form name")

// Redacted replaces the value of redacted fields.
const Redacted = "[redacted]"

// Record is one accepted submission.
type Record struct {
	ID          string      `json:"id"`
	Form        string      `json:"form"`
	SubmittedAt time.Time   `json:"submittedAt"`
	Values      form.Values `json:"values"`
}

// Archiver stores records. Implementations must be safe for concurrent use.
type Archiver interface {
	// Archive stores r and returns where it went.
	Archive(ctx context.Context, r Record) (string, error)
}

// LogArchiver logs records instead of storing them.
type LogArchiver struct {
	Logger *slog.Logger
}

// Archive implements Archiver.
func (a LogArchiver) Archive(ctx context.Context, r Record) (string, error) {
	if r.Form == "" {
		return "", ErrEmptyForm
	}
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "submission archived",
		"form", r.Form,
		"id", r.ID,
		"fields", r.Values.Names(),
	)
	return "log:" + r.ID, nil
}

// SinkOption configures Sink.
type SinkOption func(*sinkConfig)

type sinkConfig struct {
	redact func(name string) bool
	now    func() time.Time
	logger *slog.Logger
}

// WithRedacted redacts exactly the named fields, replacing the default
// rule.
func WithRedacted(names ...string) SinkOption {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(c *sinkConfig) {
		c.redact = func(name string) bool { return set[name] }
	}
}

// WithSinkLogger sets the logger for archive failures.
func WithSinkLogger(logger *slog.Logger) SinkOption {
	return func(c *sinkConfig) {
		c.logger = logger
	}
}

func withClock(now func() time.Time) SinkOption {
	return func(c *sinkConfig) {
		c.now = now
	}
}

// isSecret is the default redaction rule.
func isSecret(name string) bool {
	return strings.Contains(strings.ToLower(name), "password")
}

// Sink returns a form.WithOnFinish callback archiving the values of
// formName. An archive failure is returned from the callback, so it is
// reported as the Submit error.
func Sink(a Archiver, formName string, opts ...SinkOption) func(context.Context, form.Values) error {
	cfg := sinkConfig{
		redact: isSecret,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(ctx context.Context, values form.Values) error {
		r := Record{
			ID:          newID(),
			Form:        formName,
			SubmittedAt: cfg.now().UTC(),
			Values:      redact(values, cfg.redact),
		}
		location, err := a.Archive(ctx, r)
		if err != nil {
			cfg.logger.Error("archive failed", "form", formName, "id", r.ID, "error", err)
			return err
		}
		cfg.logger.Debug("submission stored", "form", formName, "location", location)
		return nil
	}
}

func redact(values form.Values, secret func(string) bool) form.Values {
	out := values.Clone()
	for name := range out {
		if secret(name) {
			out[name] = Redacted
		}
	}
	return out
}

func newID() string {
	return uuid.NewString()
}
