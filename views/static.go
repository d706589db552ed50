package views

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

func AboutPage() g.Node {
	return Section(Class("static-page"),
		H1(g.Text("About")),
		P(g.Text("Inkwell is a small, single-author blog. One writer publishes; everyone with an account can read and comment.")),
		P(g.Text("Posts are written in markdown and rendered server-side. No trackers, no feeds of feeds, just writing.")),
	)
}

func ContactPage() g.Node {
	return Section(Class("static-page"),
		H1(g.Text("Contact")),
		P(g.Text("Questions, corrections, or just want to say hello?")),
		P(
			g.Text("Write to "),
			A(Href("mailto:editor@inkwell.example"), g.Text("editor@inkwell.example")),
			g.Text(" and the editor will get back to you."),
		),
	)
}
