package form

import (
	"testing"

	"github.com/vango-dev/formkit/pkg/vdom"
)

func TestBindingMountUnmount(t *testing.T) {
	c := New()
	b := Bind(c, "email", Required())

	if c.Registry().Has("email") {
		t.Fatal("Bind must not register before Mount")
	}
	b.Mount()
	b.Mount()
	if !b.Mounted() || !c.Registry().Has("email") {
		t.Fatal("expected email registered")
	}

	b.Change("a@b.co")
	b.Unmount()
	b.Unmount()
	if c.Registry().Has("email") || c.GetFieldValue("email") != nil {
		t.Error("expected email purged")
	}
}

func TestBindingSetRulesIdentity(t *testing.T) {
	c := New()
	rules := []Rule{MinLength(3)}
	b := Bind(c, "name", rules...)
	b.Mount()

	obs := &recordingObserver{}
	c.observer = obs

	b.SetRules(rules)
	if len(obs.registered) != 0 {
		t.Errorf("same slice must not re-register, got %v", obs.registered)
	}

	b.SetRules([]Rule{MinLength(3)})
	if len(obs.registered) != 1 {
		t.Errorf("new slice must re-register, got %v", obs.registered)
	}

	b.SetRules([]Rule{MaxLength(2)})
	got, _ := c.Registry().Rules("name")
	if len(got) != 1 || got[0].Kind != KindMaxLength {
		t.Errorf("expected replaced rules, got %+v", got)
	}
}

func TestBindingSetRulesUnmounted(t *testing.T) {
	c := New()
	b := Bind(c, "name")
	b.SetRules([]Rule{Required()})
	if c.Registry().Has("name") {
		t.Error("unmounted binding must not register")
	}
	b.Mount()
	if got, _ := c.Registry().Rules("name"); len(got) != 1 {
		t.Errorf("expected the new rules on mount, got %+v", got)
	}
}

func TestBindingValueDefaultsToEmpty(t *testing.T) {
	c := New()
	b := Bind(c, "x")
	if b.Value() != "" {
		t.Errorf("expected empty string, got %#v", b.Value())
	}
	c.SetFieldValue("x", 0)
	if b.Value() != 0 {
		t.Errorf("expected 0, got %#v", b.Value())
	}
}

func TestBindingChangeAcceptsEventOrValue(t *testing.T) {
	c := New()
	b := Bind(c, "x")

	b.Change(vdom.NewEvent("input", "from event"))
	if c.GetFieldValue("x") != "from event" {
		t.Errorf("expected target value, got %v", c.GetFieldValue("x"))
	}
	b.Change(42)
	if c.GetFieldValue("x") != 42 {
		t.Errorf("expected raw value, got %v", c.GetFieldValue("x"))
	}
}

func TestBindingDecorate(t *testing.T) {
	c := New(WithInitialValues(Values{"username": "ad"}))
	b := Bind(c, "username", Required(), MinLength(3))
	b.Mount()

	var forwardedInput string
	blurred := 0
	child := vdom.Input(
		vdom.Type("text"),
		vdom.Class("input"),
		vdom.OnInput(func(s string) { forwardedInput = s }),
		vdom.OnBlur(func() { blurred++ }),
	)

	out := b.Decorate(child)
	if out == child {
		t.Fatal("expected a copy")
	}
	if _, ok := child.Props["value"]; ok {
		t.Error("original child must not be modified")
	}
	if out.Props["value"] != "ad" || out.Props["name"] != "username" || out.Props["class"] != "input" {
		t.Errorf("unexpected props %v", out.Props)
	}

	if err := vdom.Dispatch(out.Props.Handler("oninput"), vdom.NewEvent("input", "ada")); err != nil {
		t.Fatal(err)
	}
	if c.GetFieldValue("username") != "ada" || forwardedInput != "ada" {
		t.Errorf("expected value written and forwarded, got %v / %q", c.GetFieldValue("username"), forwardedInput)
	}
	if b.Error() != "" {
		t.Error("no error before blur")
	}

	c.SetFieldValue("username", "a")
	if err := vdom.Dispatch(out.Props.Handler("onblur"), vdom.NewEvent("blur", nil)); err != nil {
		t.Fatal(err)
	}
	if blurred != 1 || !c.IsTouched("username") {
		t.Error("expected blur recorded and forwarded")
	}
	if b.Error() != "must be at least 3 characters" {
		t.Errorf("expected minlen error after blur, got %q", b.Error())
	}

	if err := vdom.Dispatch(out.Props.Handler("onchange"), vdom.NewEvent("change", "abcd")); err != nil {
		t.Fatal(err)
	}
	if b.Error() != "" {
		t.Errorf("expected change handler to revalidate, got %q", b.Error())
	}
}

func TestBindingDecorateKeepsName(t *testing.T) {
	b := Bind(New(), "field")
	out := b.Decorate(vdom.Input(vdom.Name("custom")))
	if out.Props["name"] != "custom" {
		t.Errorf("expected caller name kept, got %v", out.Props["name"])
	}
	if b.Decorate(nil) != nil {
		t.Error("expected nil child to stay nil")
	}
	text := vdom.Text("plain")
	if b.Decorate(text) != text {
		t.Error("expected non-element child returned as is")
	}
}
