package views

import (
	"fmt"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"inkwell/database"
	"inkwell/forms"
)

func IndexPage(posts []database.BlogPost, user *database.User) g.Node {
	isAdmin := user.IsAdmin()

	return Section(Class("post-list"),
		H1(g.Text("Latest Posts")),
		g.If(len(posts) == 0,
			P(g.Text("Nothing has been published yet.")),
		),
		g.Group(g.Map(posts, func(post database.BlogPost) g.Node {
			return postCard(post, isAdmin)
		})),
	)
}

func postCard(post database.BlogPost, isAdmin bool) g.Node {
	postURL := fmt.Sprintf("/post/%d", post.ID)

	return Article(Class("card post-card"),
		H2(A(Href(postURL), g.Text(post.Title))),
		P(Class("subtitle"), g.Text(post.Subtitle)),
		P(Class("byline"),
			Small(g.Textf("by %s on %s", post.Author.Username, post.Date)),
		),
		g.If(isAdmin,
			Div(Class("admin-controls"),
				A(Href(fmt.Sprintf("/edit-post/%d", post.ID)), g.Text("Edit")),
				g.Text(" "),
				A(Href(fmt.Sprintf("/delete_post/%d", post.ID)), g.Text("Delete")),
			),
		),
	)
}

func PostPage(post *database.BlogPost, user *database.User, form forms.Comment, errs forms.Errors) g.Node {
	return Section(Class("post"),
		Article(
			H1(g.Text(post.Title)),
			P(Class("subtitle"), g.Text(post.Subtitle)),
			P(Class("byline"),
				Small(g.Textf("by %s on %s", post.Author.Username, post.Date)),
			),
			Img(Class("post-image"), Src(post.ImgURL), Alt(post.Title)),
			Div(Class("post-body"), Markdown(post.Body)),
		),
		commentsSection(post, user, form, errs),
	)
}

func commentsSection(post *database.BlogPost, user *database.User, form forms.Comment, errs forms.Errors) g.Node {
	return Section(Class("comments"),
		H3(g.Textf("Comments (%d)", len(post.Comments))),
		g.Group(g.Map(post.Comments, func(comment database.Comment) g.Node {
			return commentCard(post, comment, user)
		})),
		commentForm(post, user, form, errs),
	)
}

func commentCard(post *database.BlogPost, comment database.Comment, user *database.User) g.Node {
	canDelete := user != nil && (user.ID == comment.AuthorID || user.IsAdmin())

	return Div(Class("card comment"),
		Img(Class("avatar"), Src(GravatarURL(comment.Author.Email)), Alt(comment.Author.Username)),
		Div(Class("comment-body"),
			P(Strong(g.Text(comment.Author.Username))),
			P(g.Text(comment.Text)),
			g.If(canDelete,
				A(Href(fmt.Sprintf("/delete_comment/%d-%d", post.ID, comment.ID)), g.Text("Delete")),
			),
		),
	)
}

func commentForm(post *database.BlogPost, user *database.User, form forms.Comment, errs forms.Errors) g.Node {
	if user == nil {
		return P(
			A(Href("/login"), g.Text("Log in")),
			g.Text(" to join the conversation."),
		)
	}

	return Form(Method("post"), Action(fmt.Sprintf("/post/%d", post.ID)),
		Div(Class("form-group"),
			Label(For("text"), g.Text("Comment")),
			Textarea(Name("text"), ID("text"), Rows("4"), g.Text(form.Text)),
			fieldError(errs["text"]),
		),
		Button(Type("submit"), g.Text("Share Your Thoughts!")),
	)
}

func PostFormPage(heading string, form forms.Post, errs forms.Errors) g.Node {
	return Section(Class("post-form"),
		H1(g.Text(heading)),
		Form(Method("post"),
			formField("Blog Post Title", "title", "text", form.Title, errs),
			formField("Subtitle", "subtitle", "text", form.Subtitle, errs),
			formField("Blog Image URL", "img_url", "text", form.ImgURL, errs),
			Div(Class("form-group"),
				Label(For("body"), g.Text("Blog Content")),
				Textarea(Name("body"), ID("body"), Rows("16"), g.Text(form.Body)),
				fieldError(errs["body"]),
			),
			Button(Type("submit"), g.Text("Submit Post")),
		),
	)
}
