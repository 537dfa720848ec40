package form

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vango-dev/formkit/pkg/vdom"
)

// SubmitState is the phase of the submission state machine.
type SubmitState uint8

const (
	SubmitIdle SubmitState = iota
	SubmitValidating
	SubmitSucceeded
	SubmitFailed
)

func (s SubmitState) String() string {
	switch s {
	case SubmitIdle:
		return "idle"
	case SubmitValidating:
		return "validating"
	case SubmitSucceeded:
		return "succeeded"
	case SubmitFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SubmitState returns the current phase and tracks the read.
// Outside of a running Submit it is always SubmitIdle.
func (c *Controller) SubmitState() SubmitState {
	return c.state.Get()
}

// Submitting reports whether a Submit is running and tracks the read.
func (c *Controller) Submitting() bool {
	return c.state.Get() != SubmitIdle
}

// Submit validates every registered field and calls OnFinish with the
// values, or OnFinishFailed with the errors. ev may be nil; when it has a
// PreventDefault method that method is called first.
//
// The returned error is OnFinish's error as is, or ctx's error when ctx
// is already done. A validation failure is reported through the result,
// not the error. The controller is back to SubmitIdle when Submit returns.
// A panic in a callback is reported to the observer as a failed
// submission and then propagates.
func (c *Controller) Submit(ctx context.Context, ev any) (SubmitResult, error) {
	if p, ok := ev.(interface{ PreventDefault() }); ok {
		p.PreventDefault()
	}

	start := time.Now()
	ctx = c.observer.SubmitStarted(ctx, c.name)
	c.state.Set(SubmitValidating)
	defer c.state.Set(SubmitIdle)

	result := SubmitResult{Fields: c.registry.Len()}

	finished := false
	defer func() {
		if finished {
			return
		}
		r := recover()
		result.Err = fmt.Errorf("form: submit panicked: %v", r)
		result.Duration = time.Since(start)
		c.logger.Error("submit panicked", "form", c.name, "panic", r)
		c.observer.SubmitFinished(ctx, c.name, result)
		panic(r)
	}()

	values, err := c.ValidateFields(ctx)
	if err != nil {
		result.State = SubmitFailed
		var verr *ValidationError
		if errors.As(err, &verr) {
			result.Errors = verr.Errors.Clone()
		} else {
			result.Err = err
		}
		c.state.Set(SubmitFailed)

		if result.Errors != nil {
			c.logger.Warn("submit failed validation", "form", c.name, "fields", result.Errors.Names())
			if c.onFinishFailed != nil {
				c.onFinishFailed(ctx, result.Errors.Clone())
			}
		} else {
			c.logger.Warn("submit aborted", "form", c.name, "error", err)
		}

		result.Duration = time.Since(start)
		finished = true
		c.observer.SubmitFinished(ctx, c.name, result)
		return result, result.Err
	}

	result.State = SubmitSucceeded
	result.Values = values
	c.state.Set(SubmitSucceeded)

	if c.onFinish != nil {
		result.Err = c.onFinish(ctx, values.Clone())
	}
	result.Duration = time.Since(start)

	if result.Err != nil {
		c.logger.Warn("submit callback failed", "form", c.name, "error", result.Err)
	} else {
		c.logger.Info("form submitted", "form", c.name, "fields", result.Fields, "duration", result.Duration)
	}

	finished = true
	c.observer.SubmitFinished(ctx, c.name, result)
	return result, result.Err
}

// HandleSubmit returns a handler for vdom.OnSubmit that submits with the
// controller's context.
func (c *Controller) HandleSubmit() func(*vdom.Event) error {
	return func(ev *vdom.Event) error {
		_, err := c.Submit(c.ctx, ev)
		return err
	}
}

// HandleReset returns a handler for vdom.OnReset that resets the form.
func (c *Controller) HandleReset() func(*vdom.Event) {
	return func(ev *vdom.Event) {
		ev.PreventDefault()
		c.ResetFields()
	}
}
