package form

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/vango-dev/formkit/pkg/vdom"
)

type recordingObserver struct {
	NopObserver
	mu         sync.Mutex
	registered []string
	removed    []string
	validated  map[string]string
	started    int
	results    []SubmitResult
}

type observerKey struct{}

func (o *recordingObserver) FieldRegistered(_, field string, _ int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.registered = append(o.registered, field)
}

func (o *recordingObserver) FieldUnregistered(_, field string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.removed = append(o.removed, field)
}

func (o *recordingObserver) FieldValidated(_, field, message string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.validated == nil {
		o.validated = make(map[string]string)
	}
	o.validated[field] = message
}

func (o *recordingObserver) SubmitStarted(ctx context.Context, _ string) context.Context {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started++
	return context.WithValue(ctx, observerKey{}, "span")
}

func (o *recordingObserver) SubmitFinished(_ context.Context, _ string, result SubmitResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, result)
}

func TestSubmitSuccess(t *testing.T) {
	var got Values
	var stateInCallback SubmitState
	var submitting bool
	failedCalled := false

	var c *Controller
	c = New(
		WithInitialValues(Values{"username": "ada"}),
		WithOnFinish(func(ctx context.Context, values Values) error {
			got = values
			stateInCallback = c.SubmitState()
			submitting = c.Submitting()
			return nil
		}),
		WithOnFinishFailed(func(context.Context, Errors) { failedCalled = true }),
	)
	c.Register("username", []Rule{Required()})

	ev := vdom.NewEvent("submit", nil)
	result, err := c.Submit(context.Background(), ev)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if !ev.DefaultPrevented() {
		t.Error("expected PreventDefault")
	}
	if failedCalled {
		t.Error("OnFinishFailed must not be called on success")
	}
	if !reflect.DeepEqual(got, Values{"username": "ada"}) {
		t.Errorf("unexpected values %v", got)
	}
	if stateInCallback != SubmitSucceeded || !submitting {
		t.Errorf("expected succeeded while the callback runs, got %s", stateInCallback)
	}
	if result.State != SubmitSucceeded || result.Fields != 1 {
		t.Errorf("unexpected result %+v", result)
	}
	if c.SubmitState() != SubmitIdle || c.Submitting() {
		t.Errorf("expected idle after submit, got %s", c.SubmitState())
	}
}

func TestSubmitFailure(t *testing.T) {
	finishCalled := false
	var failed Errors

	c := New(
		WithOnFinish(func(context.Context, Values) error {
			finishCalled = true
			return nil
		}),
		WithOnFinishFailed(func(_ context.Context, errs Errors) { failed = errs }),
	)
	c.Register("email", []Rule{Required()})
	c.Register("name", nil)

	result, err := c.Submit(context.Background(), nil)
	if err != nil {
		t.Fatalf("validation failure is not an error, got %v", err)
	}
	if finishCalled {
		t.Error("OnFinish must not be called on failure")
	}
	if !reflect.DeepEqual(failed, Errors{"email": MsgRequired}) {
		t.Errorf("unexpected errors %v", failed)
	}
	if result.State != SubmitFailed || !reflect.DeepEqual(result.Errors, failed) {
		t.Errorf("unexpected result %+v", result)
	}
	if c.SubmitState() != SubmitIdle {
		t.Errorf("expected idle, got %s", c.SubmitState())
	}
}

func TestSubmitReturnsCallbackError(t *testing.T) {
	boom := errors.New("backend down")
	calls := 0
	c := New(WithOnFinish(func(context.Context, Values) error {
		calls++
		return boom
	}))

	result, err := c.Submit(context.Background(), nil)
	if err != boom {
		t.Errorf("expected the callback error as is, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected no retry, got %d calls", calls)
	}
	if result.State != SubmitSucceeded || result.Err != boom {
		t.Errorf("unexpected result %+v", result)
	}
	if c.SubmitState() != SubmitIdle {
		t.Error("expected idle after callback error")
	}
}

func TestSubmitCallbackPanicPropagates(t *testing.T) {
	c := New(WithOnFinish(func(context.Context, Values) error {
		panic("boom")
	}))

	func() {
		defer func() {
			if recover() != "boom" {
				t.Error("expected panic to propagate")
			}
		}()
		c.Submit(context.Background(), nil)
	}()

	if c.SubmitState() != SubmitIdle {
		t.Error("expected idle after panic")
	}
}

func TestSubmitCallbackPanicFinishesObserver(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		field   string
		outcome string
	}{
		{
			name:    "OnFinish",
			opts:    []Option{WithOnFinish(func(context.Context, Values) error { panic("boom") })},
			outcome: OutcomeFailed,
		},
		{
			name:    "OnFinishFailed",
			opts:    []Option{WithOnFinishFailed(func(context.Context, Errors) { panic("boom") })},
			field:   "username",
			outcome: OutcomeInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := &recordingObserver{}
			c := New(append(tt.opts, WithObserver(obs))...)
			if tt.field != "" {
				c.Register(tt.field, []Rule{Required()})
			}

			func() {
				defer func() {
					if recover() != "boom" {
						t.Error("expected panic to propagate")
					}
				}()
				c.Submit(context.Background(), nil)
			}()

			if obs.started != 1 || len(obs.results) != 1 {
				t.Fatalf("expected one started and one finished, got %d and %d", obs.started, len(obs.results))
			}
			r := obs.results[0]
			if r.Err == nil || !strings.Contains(r.Err.Error(), "boom") {
				t.Errorf("expected the panic in the result error, got %v", r.Err)
			}
			if got := r.Outcome(); got != tt.outcome {
				t.Errorf("Outcome() = %q, want %q", got, tt.outcome)
			}
			if c.SubmitState() != SubmitIdle {
				t.Error("expected idle after panic")
			}
		})
	}
}

func TestSubmitRepeatable(t *testing.T) {
	calls := 0
	c := New(WithOnFinish(func(context.Context, Values) error {
		calls++
		return nil
	}))
	for i := 0; i < 3; i++ {
		if _, err := c.Submit(context.Background(), nil); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestSubmitCanceledContext(t *testing.T) {
	finishCalled := false
	c := New(WithOnFinish(func(context.Context, Values) error {
		finishCalled = true
		return nil
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := c.Submit(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if finishCalled || result.State != SubmitFailed {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestSubmitObserver(t *testing.T) {
	obs := &recordingObserver{}
	var sawValue any
	c := New(
		WithName("login"),
		WithObserver(obs),
		WithOnFinish(func(ctx context.Context, _ Values) error {
			sawValue = ctx.Value(observerKey{})
			return nil
		}),
	)
	c.Register("a", nil)
	c.SetFieldTouched("a", true)
	c.Unregister("a")
	c.Submit(context.Background(), nil)

	if !reflect.DeepEqual(obs.registered, []string{"a"}) || !reflect.DeepEqual(obs.removed, []string{"a"}) {
		t.Errorf("unexpected registration events %v / %v", obs.registered, obs.removed)
	}
	if msg, ok := obs.validated["a"]; !ok || msg != "" {
		t.Errorf("expected a validated without error, got %q, %v", msg, ok)
	}
	if obs.started != 1 || len(obs.results) != 1 || obs.results[0].State != SubmitSucceeded {
		t.Errorf("unexpected submit events %d / %+v", obs.started, obs.results)
	}
	if sawValue != "span" {
		t.Error("expected callbacks to receive the observer's context")
	}
}

func TestHandleSubmit(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "conn")
	var seen any
	c := New(
		WithContext(ctx),
		WithOnFinish(func(ctx context.Context, _ Values) error {
			seen = ctx.Value(ctxKey{})
			return nil
		}),
	)

	ev := vdom.NewEvent("submit", nil)
	if err := vdom.Dispatch(c.HandleSubmit(), ev); err != nil {
		t.Fatal(err)
	}
	if seen != "conn" {
		t.Errorf("expected controller context, got %v", seen)
	}
	if !ev.DefaultPrevented() {
		t.Error("expected PreventDefault")
	}
}

func TestHandleReset(t *testing.T) {
	c := New(WithInitialValues(Values{"a": "1"}))
	c.SetFieldValue("a", "2")

	ev := vdom.NewEvent("reset", nil)
	if err := vdom.Dispatch(c.HandleReset(), ev); err != nil {
		t.Fatal(err)
	}
	if c.GetFieldValue("a") != "1" || !ev.DefaultPrevented() {
		t.Errorf("expected reset, got %v", c.GetFieldValue("a"))
	}
}

func TestSubmitStateString(t *testing.T) {
	states := map[SubmitState]string{
		SubmitIdle:       "idle",
		SubmitValidating: "validating",
		SubmitSucceeded:  "succeeded",
		SubmitFailed:     "failed",
		SubmitState(9):   "unknown",
	}
	for s, want := range states {
		if s.String() != want {
			t.Errorf("expected %s, got %s", want, s)
		}
	}
}

func TestSubmitResultOutcome(t *testing.T) {
	tests := []struct {
		name   string
		result SubmitResult
		want   string
	}{
		{"succeeded", SubmitResult{State: SubmitSucceeded}, OutcomeSucceeded},
		{"callback error", SubmitResult{State: SubmitSucceeded, Err: errors.New("boom")}, OutcomeFailed},
		{"invalid", SubmitResult{State: SubmitFailed, Errors: Errors{"a": "x"}}, OutcomeInvalid},
		{"canceled", SubmitResult{State: SubmitFailed, Err: context.Canceled}, OutcomeAborted},
		{"deadline", SubmitResult{State: SubmitFailed, Err: fmt.Errorf("wrapped: %w", context.DeadlineExceeded)}, OutcomeAborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Outcome(); got != tt.want {
				t.Errorf("Outcome() = %q, want %q", got, tt.want)
			}
		})
	}
}
