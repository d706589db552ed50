package views

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"inkwell/forms"
)

func formField(label, name, typ, value string, errs forms.Errors) g.Node {
	return Div(Class("form-group"),
		Label(For(name), g.Text(label)),
		Input(Type(typ), Name(name), ID(name), Value(value)),
		fieldError(errs[name]),
	)
}

func fieldError(message string) g.Node {
	if message == "" {
		return nil
	}
	return P(Class("text-error"), Small(g.Text(message)))
}

func RegisterPage(form forms.Register, errs forms.Errors) g.Node {
	return Section(Class("auth-form"),
		H1(g.Text("Register")),
		Form(Method("post"), Action("/register"),
			formField("Username", "username", "text", form.Username, errs),
			formField("Email Address", "email", "text", form.Email, errs),
			formField("Password", "password", "password", "", errs),
			formField("Validate Password", "confirm_password", "password", "", errs),
			Button(Type("submit"), g.Text("Let's Get You Involved")),
		),
	)
}

func LoginPage(form forms.Login, errs forms.Errors) g.Node {
	return Section(Class("auth-form"),
		H1(g.Text("Log In")),
		Form(Method("post"), Action("/login"),
			formField("Email Address", "email", "text", form.Email, errs),
			formField("Password", "password", "password", "", errs),
			Button(Type("submit"), g.Text("Welcome Back")),
		),
	)
}
