package views

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"inkwell/database"
)

type LayoutProps struct {
	SiteName    string
	Title       string
	CurrentUser *database.User
	Flash       string
}

func NavbarComponent(props LayoutProps) g.Node {
	username := ""
	isAdmin := false
	if props.CurrentUser != nil {
		username = props.CurrentUser.Username
		isAdmin = props.CurrentUser.IsAdmin()
	}

	return Nav(Class("nav"),
		Div(Class("nav-left"),
			Div(Class("brand"), A(Href("/"), g.Text(props.SiteName))),
			A(Href("/about"), g.Text("About")),
			A(Href("/contact"), g.Text("Contact")),
			g.If(isAdmin,
				A(Href("/new-post"), g.Text("New Post")),
			),
		),
		Div(Class("nav-links nav-right"),
			g.If(username == "",
				Div(
					A(Href("/login"), g.Text("Login")),
					A(Href("/register"), g.Text("Register")),
				),
			),
			g.If(username != "",
				Div(Class("row"),
					Div(Class("col"), g.Textf("Logged in as %s", username)),
					Div(Class("col"), A(Href("/logout"), g.Text("Logout"))),
				)),
		),
	)
}

func FooterComponent(props LayoutProps) g.Node {
	return Footer(Class("footer"),
		P(Class("colophon"),
			Small(g.Textf("%s — a quiet corner for long-form writing.", props.SiteName)),
		),
	)
}

func flashComponent(message string) g.Node {
	if message == "" {
		return nil
	}
	return Div(Class("flash"), g.Text(message))
}

func Layout(props LayoutProps, children ...g.Node) g.Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),

				Link(Rel("stylesheet"), Href("/assets/css/main.css")),

				TitleEl(g.Text(props.Title)),
			),
			Body(
				Div(Class("container"), Style("margin-top: 1.5em;"),
					NavbarComponent(props),
					flashComponent(props.Flash),
					Main(
						g.Group(children),
					),
				),
				FooterComponent(props),
			),
		),
	)
}
