package form

import (
	"context"
	"errors"
	"reflect"
	"testing"

	ferrors "github.com/vango-dev/formkit/internal/errors"
	"github.com/vango-dev/formkit/pkg/vango"
)

func newTestController(opts ...Option) *Controller {
	return New(opts...)
}

func TestSetFieldValueUntouchedLeavesErrors(t *testing.T) {
	c := newTestController()
	c.Register("username", []Rule{Required(), MinLength(3)})

	c.SetFieldValue("username", "ab")

	if c.GetFieldValue("username") != "ab" {
		t.Errorf("expected ab, got %v", c.GetFieldValue("username"))
	}
	if len(c.GetFieldError("username")) != 0 {
		t.Errorf("expected no error before touch, got %v", c.GetFieldError("username"))
	}
}

func TestSetFieldValueTouchedRevalidates(t *testing.T) {
	c := newTestController()
	c.Register("username", []Rule{Required(), MinLength(3)})
	c.SetFieldTouched("username", true)

	if got := c.GetFieldError("username"); len(got) != 1 || got[0] != MsgRequired {
		t.Fatalf("expected required error after touch, got %v", got)
	}

	c.SetFieldValue("username", "ab")
	if got := c.GetFieldError("username"); len(got) != 1 || got[0] != "must be at least 3 characters" {
		t.Errorf("expected minlen error, got %v", got)
	}

	c.SetFieldValue("username", "abc")
	if _, ok := c.Errors()["username"]; ok {
		t.Error("expected error entry removed once valid")
	}
}

func TestSetFieldTouchedAlwaysRevalidates(t *testing.T) {
	c := newTestController()
	c.Register("password", []Rule{Required()})
	c.Register("confirm", []Rule{EqualTo("password")})

	c.SetFieldValue("confirm", "a")
	c.SetFieldTouched("confirm", true)
	if c.FieldError("confirm") != "must match password" {
		t.Fatalf("expected mismatch, got %q", c.FieldError("confirm"))
	}

	// A sibling change does not revalidate confirm on its own.
	c.SetFieldValue("password", "a")
	if c.FieldError("confirm") != "must match password" {
		t.Fatalf("expected stale mismatch, got %q", c.FieldError("confirm"))
	}

	// Touching again refreshes it even though it is already touched.
	c.SetFieldTouched("confirm", true)
	if c.FieldError("confirm") != "" {
		t.Errorf("expected error cleared, got %q", c.FieldError("confirm"))
	}
}

func TestSetFieldTouchedFalse(t *testing.T) {
	c := newTestController()
	c.Register("a", []Rule{Required()})
	c.SetFieldTouched("a", true)
	c.SetFieldTouched("a", false)

	if c.IsTouched("a") {
		t.Error("expected a untouched")
	}
	if c.FieldError("a") != "" {
		t.Error("expected FieldError hidden for untouched field")
	}
	if len(c.GetFieldError("a")) != 1 {
		t.Error("expected the stored error to remain")
	}
}

func TestValidateFieldDoesNotWrite(t *testing.T) {
	c := newTestController()
	c.Register("a", []Rule{Required()})

	msg, ok := c.ValidateField("a")
	if ok || msg != MsgRequired {
		t.Errorf("expected required failure, got (%q, %v)", msg, ok)
	}
	if len(c.Errors()) != 0 || c.IsTouched("a") {
		t.Error("ValidateField must not write state")
	}

	if msg, ok := c.ValidateField("unknown"); !ok || msg != "" {
		t.Errorf("expected unregistered field to pass, got (%q, %v)", msg, ok)
	}
}

func TestValidateFields(t *testing.T) {
	c := newTestController(WithInitialValues(Values{"a": "x", "b": ""}))
	c.Register("a", []Rule{Required()})
	c.Register("b", []Rule{Required()})
	c.SetFields([]FieldData{{Name: "a", Errors: []string{"stale"}}})

	values, err := c.ValidateFields(context.Background())
	if values != nil {
		t.Errorf("expected nil values on failure, got %v", values)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !reflect.DeepEqual(verr.Errors, Errors{"b": MsgRequired}) {
		t.Errorf("expected only b to fail, got %v", verr.Errors)
	}
	if !reflect.DeepEqual(c.Errors(), Errors{"b": MsgRequired}) {
		t.Errorf("expected errors replaced, got %v", c.Errors())
	}
	if !c.IsTouched("a") || !c.IsTouched("b") {
		t.Error("expected every registered field touched")
	}
	if err.Error() != "form: b: "+MsgRequired {
		t.Errorf("unexpected message %q", err.Error())
	}

	c.SetFieldValue("b", "y")
	values, err = c.ValidateFields(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !reflect.DeepEqual(values, Values{"a": "x", "b": "y"}) {
		t.Errorf("unexpected values %v", values)
	}
	if len(c.Errors()) != 0 {
		t.Errorf("expected no errors, got %v", c.Errors())
	}

	values["a"] = "mutated"
	if c.GetFieldValue("a") != "x" {
		t.Error("returned values must be a copy")
	}
}

func TestValidateFieldsSnapshot(t *testing.T) {
	c := newTestController(WithInitialValues(Values{"a": "1"}))
	c.Register("a", []Rule{Custom(func(value any, all Values) string {
		all["b"] = "written"
		return ""
	})})
	c.Register("b", []Rule{Custom(func(value any, all Values) string {
		if all["b"] == "written" {
			return "saw another field's write"
		}
		return ""
	})})
	c.SetFieldValue("b", "2")

	if _, err := c.ValidateFields(context.Background()); err != nil {
		t.Errorf("expected every field to see the same snapshot, got %v", err)
	}
	if c.GetFieldValue("b") != "2" {
		t.Errorf("predicate write leaked into state: %v", c.GetFieldValue("b"))
	}
}

func TestValidateFieldsCanceled(t *testing.T) {
	c := newTestController()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.ValidateFields(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestValuesChangeCallback(t *testing.T) {
	var changed, all []Values
	c := newTestController(
		WithInitialValues(Values{"a": 1}),
		WithOnValuesChange(func(ch, al Values) {
			changed = append(changed, ch)
			all = append(all, al)
		}),
	)

	c.SetFieldValue("b", 2)
	c.SetFieldsValue(Values{"a": 3, "c": 4})

	if len(changed) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(changed))
	}
	if !reflect.DeepEqual(changed[0], Values{"b": 2}) || !reflect.DeepEqual(all[0], Values{"a": 1, "b": 2}) {
		t.Errorf("unexpected first notification %v / %v", changed[0], all[0])
	}
	if !reflect.DeepEqual(changed[1], Values{"a": 3, "c": 4}) || !reflect.DeepEqual(all[1], Values{"a": 3, "b": 2, "c": 4}) {
		t.Errorf("unexpected second notification %v / %v", changed[1], all[1])
	}
}

func TestSetFieldsValueDoesNotValidate(t *testing.T) {
	c := newTestController()
	c.Register("a", []Rule{MinLength(5)})
	c.SetFieldTouched("a", true)
	c.SetFieldsValue(Values{"a": "x"})

	if len(c.GetFieldError("a")) != 0 {
		t.Errorf("expected no error, got %v", c.GetFieldError("a"))
	}
}

func TestSetFields(t *testing.T) {
	c := newTestController(WithInitialValues(Values{"a": "1", "b": "2"}))
	c.SetFields([]FieldData{{Name: "a", Errors: []string{"taken"}}})
	c.SetFields([]FieldData{
		{Name: "a", Value: "x"},
		{Name: "b", Errors: []string{"server says no", "ignored"}},
		{Name: "c", Value: 3, Errors: []string{}},
	})

	if !reflect.DeepEqual(c.GetFieldsValue(), Values{"a": "x", "b": "2", "c": 3}) {
		t.Errorf("unexpected values %v", c.GetFieldsValue())
	}
	if !reflect.DeepEqual(c.GetFieldError("a"), []string{"taken"}) {
		t.Errorf("expected error kept when Errors is nil, got %v", c.GetFieldError("a"))
	}
	if !reflect.DeepEqual(c.GetFieldError("b"), []string{"server says no"}) {
		t.Errorf("expected first message, got %v", c.GetFieldError("b"))
	}

	c.SetFields([]FieldData{{Name: "a", Errors: []string{}}})
	if len(c.GetFieldError("a")) != 0 {
		t.Error("expected empty Errors to clear")
	}
}

func TestUnregisterPurges(t *testing.T) {
	c := newTestController()
	c.Register("a", []Rule{Required()})
	c.SetFieldValue("a", "")
	c.SetFieldTouched("a", true)

	c.Unregister("a")

	if _, ok := c.GetFieldsValue()["a"]; ok {
		t.Error("value survived unregister")
	}
	if _, ok := c.Errors()["a"]; ok {
		t.Error("error survived unregister")
	}
	if _, ok := c.Touched()["a"]; ok {
		t.Error("touched survived unregister")
	}
	if c.Registry().Has("a") {
		t.Error("rules survived unregister")
	}
	if c.GetFieldValue("a") != nil || len(c.GetFieldError("a")) != 0 {
		t.Error("expected absent sentinels")
	}
}

func TestUnregisterPurgesUnregisteredName(t *testing.T) {
	obs := &recordingObserver{}
	c := newTestController(WithObserver(obs))
	c.SetFieldValue("ghost", "x")
	c.SetFieldTouched("ghost", true)
	c.SetFields([]FieldData{{Name: "ghost", Errors: []string{"stale"}}})

	c.Unregister("ghost")

	if _, ok := c.GetFieldsValue()["ghost"]; ok {
		t.Error("value survived unregister")
	}
	if _, ok := c.Errors()["ghost"]; ok {
		t.Error("error survived unregister")
	}
	if _, ok := c.Touched()["ghost"]; ok {
		t.Error("touched survived unregister")
	}
	if len(obs.removed) != 0 {
		t.Errorf("expected no unregistered event for an unknown name, got %v", obs.removed)
	}
}

func TestUnregisterBatchesNotifications(t *testing.T) {
	c := newTestController()
	c.Register("a", []Rule{Required()})
	c.SetFieldTouched("a", true)
	c.SetFieldValue("a", "")

	dirty := 0
	listener := vango.NewListenerFunc(func() { dirty++ })
	vango.WithListener(listener, func() {
		c.Values()
		c.Errors()
		c.Touched()
	})

	c.Unregister("a")
	if dirty != 1 {
		t.Errorf("expected one notification for the purge, got %d", dirty)
	}
}

func TestRegisterInvalidRulePanics(t *testing.T) {
	c := newTestController()
	defer func() {
		err, _ := recover().(error)
		if !ferrors.HasCode(err, "F004") {
			t.Errorf("expected F004 panic, got %v", err)
		}
		if c.Registry().Has("a") {
			t.Error("invalid rules must not be registered")
		}
	}()
	c.Register("a", []Rule{{Kind: KindPattern}})
}

func TestResetFields(t *testing.T) {
	initial := Values{"a": "1", "b": "2"}
	c := newTestController(WithInitialValues(initial))
	initial["a"] = "changed"

	c.Register("a", []Rule{Required()})
	c.Register("b", []Rule{Required()})
	c.SetFieldValue("a", "")
	c.SetFieldValue("z", "extra")
	c.SetFieldTouched("a", true)
	c.SetFieldTouched("b", true)

	c.ResetFields()

	if !reflect.DeepEqual(c.GetFieldsValue(), Values{"a": "1", "b": "2"}) {
		t.Errorf("expected initial values, got %v", c.GetFieldsValue())
	}
	if len(c.Errors()) != 0 || len(c.Touched()) != 0 {
		t.Error("expected errors and touched cleared")
	}
	if !c.Registry().Has("a") || !c.Registry().Has("b") {
		t.Error("expected registrations kept")
	}
}

func TestResetSkipsUnmountedInitialValues(t *testing.T) {
	c := newTestController(WithInitialValues(Values{"a": "1", "b": "2"}))
	c.Register("a", nil)
	c.Register("b", nil)
	c.Unregister("b")

	c.ResetFields()
	if !reflect.DeepEqual(c.GetFieldsValue(), Values{"a": "1"}) {
		t.Errorf("expected b to stay gone, got %v", c.GetFieldsValue())
	}

	c.Register("b", nil)
	c.ResetFields()
	if !reflect.DeepEqual(c.GetFieldsValue(), Values{"a": "1", "b": "2"}) {
		t.Errorf("expected b restored after remount, got %v", c.GetFieldsValue())
	}
}

func TestInitialValuesVisibleBeforeMount(t *testing.T) {
	c := newTestController(WithInitialValues(Values{"later": "x"}))
	if c.GetFieldValue("later") != "x" {
		t.Errorf("expected seeded value, got %v", c.GetFieldValue("later"))
	}
}

func TestIsValid(t *testing.T) {
	c := newTestController()
	c.Register("a", []Rule{Required()})
	if !c.IsValid() {
		t.Error("expected valid before validation")
	}
	c.SetFieldTouched("a", true)
	if c.IsValid() {
		t.Error("expected invalid after touch")
	}
}

func TestInstanceSharesState(t *testing.T) {
	h := NewInstance()
	if h.Bound() {
		t.Fatal("expected unbound handle")
	}
	c := New(WithInstance(h), WithInitialValues(Values{"a": "1"}))

	if c.Instance() != h {
		t.Error("expected controller to expose the bound handle")
	}

	h.SetFieldValue("a", "2")
	if c.GetFieldValue("a") != "2" {
		t.Errorf("expected write through handle, got %v", c.GetFieldValue("a"))
	}
	c.Register("a", []Rule{MinLength(3)})
	if _, err := h.ValidateFields(context.Background()); err == nil {
		t.Error("expected validation failure through handle")
	}
	if !reflect.DeepEqual(h.GetFieldError("a"), c.GetFieldError("a")) {
		t.Error("handle and controller disagree on errors")
	}

	h.SetFieldsValue(Values{"a": "abc"})
	h.SetFields([]FieldData{{Name: "a", Errors: []string{}}})
	if !reflect.DeepEqual(h.GetFieldsValue(), c.GetFieldsValue()) {
		t.Error("handle and controller disagree on values")
	}
	h.ResetFields()
	if h.GetFieldValue("a") != "1" {
		t.Errorf("expected reset through handle, got %v", h.GetFieldValue("a"))
	}
}

func TestControllerInstanceLazy(t *testing.T) {
	c := New()
	h := c.Instance()
	if h != c.Instance() {
		t.Error("expected the same handle on every call")
	}
	h.SetFieldValue("x", 1)
	if c.GetFieldValue("x") != 1 {
		t.Error("expected handle bound to controller")
	}
}

func TestInstanceMisuse(t *testing.T) {
	expectPanic := func(t *testing.T, code string, fn func()) {
		t.Helper()
		defer func() {
			err, _ := recover().(error)
			if !ferrors.HasCode(err, code) {
				t.Errorf("expected %s panic, got %v", code, err)
			}
		}()
		fn()
	}

	t.Run("unbound", func(t *testing.T) {
		expectPanic(t, "F003", func() { NewInstance().GetFieldsValue() })
	})
	t.Run("bound twice", func(t *testing.T) {
		h := NewInstance()
		New(WithInstance(h))
		expectPanic(t, "F002", func() { New(WithInstance(h)) })
	})
}
