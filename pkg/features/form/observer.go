package form

import (
	"context"
	"errors"
	"time"
)

// Observer receives lifecycle notifications from a controller.
// Implementations must be safe for concurrent use across controllers.
type Observer interface {
	// FieldRegistered is called when a field mounts or its rules change.
	FieldRegistered(form, field string, rules int)

	// FieldUnregistered is called when a field unmounts.
	FieldUnregistered(form, field string)

	// FieldValidated is called for every single-field validation that
	// writes state, with the failure message or "".
	FieldValidated(form, field, message string)

	// SubmitStarted is called when Submit begins. The returned context is
	// passed to the callbacks and to SubmitFinished.
	SubmitStarted(ctx context.Context, form string) context.Context

	// SubmitFinished is called with the terminal result of a submission.
	SubmitFinished(ctx context.Context, form string, result SubmitResult)
}

// NopObserver ignores every notification. Embed it to implement only
// part of Observer.
type NopObserver struct{}

func (NopObserver) FieldRegistered(string, string, int) {}
func (NopObserver) FieldUnregistered(string, string) {}
func (NopObserver) FieldValidated(string, string, string) {}
func (NopObserver) SubmitStarted(ctx context.Context, _ string) context.Context {
	return ctx
}
func (NopObserver) SubmitFinished(context.Context, string, SubmitResult) {}

// SubmitResult describes one finished submission.
type SubmitResult struct {
	// State is SubmitSucceeded or SubmitFailed.
	State SubmitState

	// Values are the validated values on success.
	Values Values

	// Errors are the failing fields on validation failure.
	Errors Errors

	// Err is the error returned by the OnFinish callback, if any.
	Err error

	// Fields is the number of registered fields validated.
	Fields int

	// Duration covers validation and the callback.
	Duration time.Duration
}

// Submission outcomes reported by SubmitResult.Outcome.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "callback_failed"
	OutcomeAborted   = "aborted"
)

// Outcome classifies the result with a low-cardinality label: valid
// submissions are OutcomeSucceeded or OutcomeFailed depending on the
// OnFinish error, validation failures are OutcomeInvalid, and a done
// context is OutcomeAborted.
func (r SubmitResult) Outcome() string {
	switch {
	case r.State == SubmitSucceeded && r.Err == nil:
		return OutcomeSucceeded
	case r.State == SubmitSucceeded:
		return OutcomeFailed
	case len(r.Errors) > 0:
		return OutcomeInvalid
	case errors.Is(r.Err, context.Canceled), errors.Is(r.Err, context.DeadlineExceeded):
		return OutcomeAborted
	default:
		return OutcomeFailed
	}
}
