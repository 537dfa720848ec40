package demo

import (
	"github.com/vango-dev/formkit/pkg/features/form"
	"github.com/vango-dev/formkit/pkg/vdom"
)

// Registration is the shape of an accepted registration.
type Registration struct {
	Username        string `form:"username" validate:"required,minlen=3,maxlen=20"`
	Email           string `form:"email" validate:"required,email"`
	Age             int    `form:"age" validate:"required,min=18,max=100"`
	Password        string `form:"password" validate:"required,minlen=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"required"`
}

// registerRules is built once so every render passes the same slices.
var registerRules = func() map[string][]form.Rule {
	rules, err := form.StructRules(Registration{})
	if err != nil {
		panic(err)
	}
	rules["confirmPassword"] = append(rules["confirmPassword"], form.EqualTo("password").WithMessage("passwords do not match"))
	return rules
}()

func registerView(c *form.Controller) *vdom.VNode {
	field := func(name, label, typ, autocomplete string) *vdom.VNode {
		return form.Item(form.FieldProps{Name: name, Label: label, Rules: registerRules[name]},
			vdom.Input(vdom.Type(typ), vdom.Autocomplete(autocomplete)),
		)
	}

	return shell(c, "Create an account", "Register",
		field("username", "Username", "text", "username"),
		field("email", "Email", "email", "email"),
		field("age", "Age", "number", "off"),
		field("password", "Password", "password", "new-password"),
		field("confirmPassword", "Confirm password", "password", "new-password"),
	)
}
