package site

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"inkwell/constants"
	"inkwell/database"
	"inkwell/forms"
	"inkwell/views"
)

func urlParamUint(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (s *Site) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := database.ListPosts(s.db)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.render(w, r, http.StatusOK, constants.APP_NAME, views.IndexPage(posts, currentUser(r)))
}

// viewPost renders a post with its comments on GET and accepts a new comment
// on POST. Commenting needs an identified actor; the form is only shown to
// signed-in users, and a forged anonymous submission gets a 403.
func (s *Site) viewPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := urlParamUint(r, "postID")
	if !ok {
		s.notFound(w)
		return
	}

	post, err := database.GetPost(s.db, postID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if post == nil {
		s.notFound(w)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.render(w, r, http.StatusOK, post.Title, views.PostPage(post, currentUser(r), forms.Comment{}, nil))

	case http.MethodPost:
		user := currentUser(r)
		if user == nil {
			s.forbidden(w)
			return
		}

		form := forms.Comment{Text: strings.TrimSpace(r.FormValue("text"))}
		if errs := form.Validate(); !errs.Valid() {
			s.render(w, r, http.StatusUnprocessableEntity, post.Title, views.PostPage(post, user, form, errs))
			return
		}

		comment := database.Comment{
			Text:     form.Text,
			AuthorID: user.ID,
			PostID:   post.ID,
		}
		if err := database.CreateComment(s.db, &comment); err != nil {
			s.serverError(w, err)
			return
		}

		// Redirect back so a refresh doesn't resubmit the comment.
		http.Redirect(w, r, "/post/"+strconv.Itoa(int(post.ID)), http.StatusSeeOther)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Site) createPost(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.render(w, r, http.StatusOK, "New Post", views.PostFormPage("New Post", forms.Post{}, nil))

	case http.MethodPost:
		form := postFormFromRequest(r)
		if errs := form.Validate(); !errs.Valid() {
			s.render(w, r, http.StatusUnprocessableEntity, "New Post", views.PostFormPage("New Post", form, errs))
			return
		}

		user := currentUser(r)
		post := database.BlogPost{
			Title:    form.Title,
			Subtitle: form.Subtitle,
			Date:     time.Now().Format(constants.POST_DATE_FORMAT),
			Body:     form.Body,
			ImgURL:   form.ImgURL,
			AuthorID: user.ID,
		}
		if err := database.CreatePost(s.db, &post); err != nil {
			if errors.Is(err, database.ErrDuplicateTitle) {
				s.render(w, r, http.StatusUnprocessableEntity, "New Post",
					views.PostFormPage("New Post", form, forms.Errors{"title": "A post with that title already exists."}))
				return
			}
			s.serverError(w, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// editPost overwrites title, subtitle, image URL and body. The creation date
// and the author stay as they were.
func (s *Site) editPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := urlParamUint(r, "postID")
	if !ok {
		s.notFound(w)
		return
	}

	post, err := database.GetPost(s.db, postID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if post == nil {
		s.notFound(w)
		return
	}

	switch r.Method {
	case http.MethodGet:
		form := forms.Post{
			Title:    post.Title,
			Subtitle: post.Subtitle,
			ImgURL:   post.ImgURL,
			Body:     post.Body,
		}
		s.render(w, r, http.StatusOK, "Edit Post", views.PostFormPage("Edit Post", form, nil))

	case http.MethodPost:
		form := postFormFromRequest(r)
		if errs := form.Validate(); !errs.Valid() {
			s.render(w, r, http.StatusUnprocessableEntity, "Edit Post", views.PostFormPage("Edit Post", form, errs))
			return
		}

		post.Title = form.Title
		post.Subtitle = form.Subtitle
		post.ImgURL = form.ImgURL
		post.Body = form.Body

		if err := database.SavePost(s.db, post); err != nil {
			if errors.Is(err, database.ErrDuplicateTitle) {
				s.render(w, r, http.StatusUnprocessableEntity, "Edit Post",
					views.PostFormPage("Edit Post", form, forms.Errors{"title": "A post with that title already exists."}))
				return
			}
			s.serverError(w, err)
			return
		}

		http.Redirect(w, r, "/post/"+strconv.Itoa(int(post.ID)), http.StatusSeeOther)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Site) deletePost(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodPost, http.MethodDelete:
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID, ok := urlParamUint(r, "postID")
	if !ok {
		s.notFound(w)
		return
	}

	post, err := database.GetPost(s.db, postID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if post == nil {
		s.notFound(w)
		return
	}

	if err := database.DeletePost(s.db, post); err != nil {
		s.serverError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// deleteComment is open to the comment's author and to admins; everyone else
// gets a 403 before anything is touched.
func (s *Site) deleteComment(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodPost, http.MethodDelete:
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	postID, ok := urlParamUint(r, "postID")
	if !ok {
		s.notFound(w)
		return
	}
	commentID, ok := urlParamUint(r, "commentID")
	if !ok {
		s.notFound(w)
		return
	}

	comment, err := database.GetComment(s.db, commentID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if comment == nil || comment.PostID != postID {
		s.notFound(w)
		return
	}

	user := currentUser(r)
	if user == nil || (user.ID != comment.AuthorID && !user.IsAdmin()) {
		s.forbidden(w)
		return
	}

	if err := database.DeleteComment(s.db, comment); err != nil {
		s.serverError(w, err)
		return
	}

	http.Redirect(w, r, "/post/"+strconv.Itoa(int(postID)), http.StatusSeeOther)
}

func (s *Site) about(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "About", views.AboutPage())
}

func (s *Site) contact(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "Contact", views.ContactPage())
}

func postFormFromRequest(r *http.Request) forms.Post {
	return forms.Post{
		Title:    strings.TrimSpace(r.FormValue("title")),
		Subtitle: strings.TrimSpace(r.FormValue("subtitle")),
		ImgURL:   strings.TrimSpace(r.FormValue("img_url")),
		Body:     strings.TrimSpace(r.FormValue("body")),
	}
}
