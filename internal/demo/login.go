package demo

import (
	"github.com/vango-dev/formkit/pkg/features/form"
	"github.com/vango-dev/formkit/pkg/vdom"
)

var (
	usernameRules = []form.Rule{form.Required().WithMessage("please enter your username"), form.MinLength(3)}
	passwordRules = []form.Rule{form.Required().WithMessage("please enter your password"), form.MinLength(6)}
)

func loginView(c *form.Controller) *vdom.VNode {
	return shell(c, "Log in", "Log in",
		form.Item(form.FieldProps{Name: "username", Label: "Username", Rules: usernameRules},
			vdom.Input(vdom.Type("text"), vdom.Autocomplete("username")),
		),
		form.Item(form.FieldProps{Name: "password", Label: "Password", Rules: passwordRules},
			vdom.Input(vdom.Type("password"), vdom.Autocomplete("current-password")),
		),
	)
}
