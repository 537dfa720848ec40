package server

import (
	_ "embed"

	"github.com/vango-dev/formkit/pkg/render"
	"github.com/vango-dev/formkit/pkg/vdom"
)

//go:embed client.js
var clientScript string

const pageStyle = `
body{font-family:system-ui,sans-serif;max-width:32rem;margin:3rem auto;padding:0 1rem;color:#1f2328}
.form-item{margin-bottom:1rem}
.form-item-label{display:block;font-weight:600;margin-bottom:.25rem}
.form-item-required{color:#cf222e;margin-left:.25rem}
.form-item input{width:100%;padding:.5rem;border:1px solid #d0d7de;border-radius:6px;box-sizing:border-box}
.form-item input.field-error{border-color:#cf222e}
.form-item-error{color:#cf222e;font-size:.875rem;margin-top:.25rem}
.form-actions{display:flex;gap:.5rem}
.form-status{margin-top:1rem;color:#57606a}
`

func document(title string, body ...any) *vdom.VNode {
	return vdom.Html(
		vdom.Attribute("lang", "en"),
		vdom.Head(
			vdom.Meta(vdom.Charset("utf-8")),
			vdom.Meta(vdom.Name("viewport"), vdom.Attribute("content", "width=device-width, initial-scale=1")),
			vdom.Title(title),
			vdom.Element("style", vdom.Raw(pageStyle)),
		),
		vdom.Body(body...),
	)
}

func indexPage(forms []Form) *vdom.VNode {
	items := make([]*vdom.VNode, 0, len(forms))
	for _, f := range forms {
		items = append(items, vdom.Li(
			vdom.Element("a", vdom.Attribute("href", "/forms/"+f.Name), f.Title),
		))
	}
	return document("formkit",
		vdom.H1("Forms"),
		vdom.Ul(items),
	)
}

func formPage(f Form, formHTML string) *vdom.VNode {
	return document(f.Title,
		vdom.Main(
			vdom.Div(
				vdom.ID("form-root"),
				vdom.Data("ws", "/ws/"+f.Name),
				vdom.Raw(formHTML),
			),
			vdom.P(vdom.Class("form-status"), vdom.ID("form-status"), vdom.Attribute("aria-live", "polite")),
		),
		vdom.Script(vdom.Raw(clientScript)),
	)
}

// renderPage renders a full document. Page chrome has no handlers.
func renderPage(page *vdom.VNode) (string, error) {
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(page)
	if err != nil {
		return "", err
	}
	return "<!DOCTYPE html>\n" + html, nil
}
