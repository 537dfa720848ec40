package middleware

import (
	"context"
	"log/slog"

	"github.com/vango-dev/formkit/pkg/features/form"
)

// Chain combines observers into one. Notifications go to the observers in
// order; SubmitStarted threads the context through each of them and
// SubmitFinished runs in reverse so that the first observer sees the
// submission first and last. Nil observers are skipped.
func Chain(observers ...form.Observer) form.Observer {
	list := make(chain, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	if len(list) == 1 {
		return list[0]
	}
	return list
}

type chain []form.Observer

func (c chain) FieldRegistered(formName, field string, rules int) {
	for _, o := range c {
		o.FieldRegistered(formName, field, rules)
	}
}

func (c chain) FieldUnregistered(formName, field string) {
	for _, o := range c {
		o.FieldUnregistered(formName, field)
	}
}

func (c chain) FieldValidated(formName, field, message string) {
	for _, o := range c {
		o.FieldValidated(formName, field, message)
	}
}

func (c chain) SubmitStarted(ctx context.Context, formName string) context.Context {
	for _, o := range c {
		ctx = o.SubmitStarted(ctx, formName)
	}
	return ctx
}

func (c chain) SubmitFinished(ctx context.Context, formName string, result form.SubmitResult) {
	for i := len(c) - 1; i >= 0; i-- {
		c[i].SubmitFinished(ctx, formName, result)
	}
}

// Logging returns an observer that logs validation failures at Debug and
// submission outcomes at Info. A nil logger uses slog.Default().
func Logging(logger *slog.Logger) form.Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &logObserver{logger: logger}
}

type logObserver struct {
	form.NopObserver
	logger *slog.Logger
}

func (l *logObserver) FieldValidated(formName, field, message string) {
	if message != "" {
		l.logger.Debug("field invalid", "form", formName, "field", field, "message", message)
	}
}

func (l *logObserver) SubmitFinished(ctx context.Context, formName string, result form.SubmitResult) {
	l.logger.InfoContext(ctx, "submission",
		"form", formName,
		"outcome", result.Outcome(),
		"fields", result.Fields,
		"failed", len(result.Errors),
		"duration", result.Duration,
	)
}
