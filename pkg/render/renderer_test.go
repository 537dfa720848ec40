package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/formkit/pkg/vdom"
)

func renderString(t *testing.T, node *vdom.VNode) (string, *Renderer) {
	t.Helper()
	r := NewRenderer(RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	return html, r
}

func TestRenderElement(t *testing.T) {
	html, _ := renderString(t, vdom.Div(vdom.Class("field"), vdom.ID("f1"), "hello"))

	want := `<div class="field" id="f1">hello</div>`
	if html != want {
		t.Errorf("expected %s, got %s", want, html)
	}
}

func TestRenderVoidAndBoolean(t *testing.T) {
	html, _ := renderString(t, vdom.Input(vdom.Name("a"), vdom.Disabled(), vdom.Attribute("required", false)))

	want := `<input disabled name="a">`
	if html != want {
		t.Errorf("expected %s, got %s", want, html)
	}
}

func TestRenderEmptyValueKept(t *testing.T) {
	html, _ := renderString(t, vdom.Input(vdom.Name("a"), vdom.Value(""), vdom.Placeholder("")))

	want := `<input name="a" value="">`
	if html != want {
		t.Errorf("expected %s, got %s", want, html)
	}
}

func TestRenderEscaping(t *testing.T) {
	html, _ := renderString(t, vdom.Div(vdom.Data("x", `"<'&>`), `<script>alert("x")</script>`))

	if strings.Contains(html, "<script>") {
		t.Errorf("text was not escaped: %s", html)
	}
	if !strings.Contains(html, `data-x="&quot;&lt;&#39;&amp;&gt;"`) {
		t.Errorf("attribute was not escaped: %s", html)
	}
}

func TestRenderTextareaValue(t *testing.T) {
	html, _ := renderString(t, vdom.Textarea(vdom.Name("bio"), vdom.Value("a<b")))

	want := `<textarea name="bio">a&lt;b</textarea>`
	if html != want {
		t.Errorf("expected %s, got %s", want, html)
	}
}

func TestRenderHandlersAndHIDs(t *testing.T) {
	blurred := false
	tree := vdom.Form(
		vdom.OnSubmit(func() {}),
		vdom.Input(vdom.Name("a"), vdom.OnBlur(func() { blurred = true })),
		vdom.Span("static"),
	)

	html, r := renderString(t, tree)

	if !strings.Contains(html, `<form data-hid="h1" data-on-submit="true">`) {
		t.Errorf("form markers missing: %s", html)
	}
	if !strings.Contains(html, `<input name="a" data-hid="h2" data-on-blur="true">`) {
		t.Errorf("input markers missing: %s", html)
	}
	if strings.Contains(html, `<span data-hid`) {
		t.Errorf("static element should not get a HID: %s", html)
	}

	if got := r.HIDs(); len(got) != 2 || got[0] != "h1" || got[1] != "h2" {
		t.Errorf("expected HIDs [h1 h2], got %v", got)
	}
	if err := vdom.Dispatch(r.Handler("h2", "onblur"), vdom.NewEvent("blur", nil)); err != nil {
		t.Fatal(err)
	}
	if !blurred {
		t.Error("expected blur handler to be registered under h2")
	}
	if r.Handler("h2", "onclick") != nil {
		t.Error("expected nil for unregistered event")
	}

	r.Reset()
	if len(r.HIDs()) != 0 {
		t.Error("expected Reset to clear the registry")
	}
}

func TestRenderComponentAndFragment(t *testing.T) {
	comp := vdom.Func(func() *vdom.VNode { return vdom.Span("c") })
	html, _ := renderString(t, vdom.Fragment(vdom.Raw("<hr>"), comp, "t"))

	want := `<hr><span>c</span>t`
	if html != want {
		t.Errorf("expected %s, got %s", want, html)
	}
}

func TestRenderPretty(t *testing.T) {
	r := NewRenderer(RendererConfig{Pretty: true})
	html, err := r.RenderToString(vdom.Div(vdom.Div("x")))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "\n  <div>") {
		t.Errorf("expected indented child, got %q", html)
	}
}
