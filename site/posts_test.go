package site

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"inkwell/database"
)

func createPost(t *testing.T, s *Site, admin *http.Cookie, title string) *database.BlogPost {
	t.Helper()
	form := url.Values{
		"title":    {title},
		"subtitle": {"A subtitle"},
		"img_url":  {"https://example.com/cover.png"},
		"body":     {"Some **bold** words."},
	}
	w := doPost(t, s, "/new-post", form, admin)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("create post %q: code %d, body %s", title, w.Code, w.Body.String())
	}

	posts, err := database.ListPosts(s.db)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	for i := range posts {
		if posts[i].Title == title {
			return &posts[i]
		}
	}
	t.Fatalf("post %q not found after creation", title)
	return nil
}

func TestNewPostAuthorization(t *testing.T) {
	s := newTestSite(t)
	register(t, s, "admin", "admin@x.com", "password1")
	reader := register(t, s, "bob", "bob@x.com", "password1")

	form := url.Values{
		"title":    {"Sneaky"},
		"subtitle": {"s"},
		"img_url":  {"https://example.com/x.png"},
		"body":     {"b"},
	}

	if w := doPost(t, s, "/new-post", form); w.Code != http.StatusForbidden {
		t.Fatalf("anonymous create: code %d, want 403", w.Code)
	}
	if w := doPost(t, s, "/new-post", form, reader); w.Code != http.StatusForbidden {
		t.Fatalf("reader create: code %d, want 403", w.Code)
	}

	posts, _ := database.ListPosts(s.db)
	if len(posts) != 0 {
		t.Fatalf("post created despite 403")
	}
}

func TestCreatePost(t *testing.T) {
	s := newTestSite(t)
	admin := register(t, s, "admin", "admin@x.com", "password1")

	post := createPost(t, s, admin, "First Light")
	if post.Date == "" {
		t.Fatalf("post date not set")
	}

	w := doGet(t, s, "/")
	if !strings.Contains(w.Body.String(), "First Light") {
		t.Fatalf("index does not list the new post")
	}

	t.Run("duplicate title", func(t *testing.T) {
		form := url.Values{
			"title":    {"First Light"},
			"subtitle": {"again"},
			"img_url":  {"https://example.com/y.png"},
			"body":     {"b"},
		}
		w := doPost(t, s, "/new-post", form, admin)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("code %d, want 422", w.Code)
		}
		if !strings.Contains(w.Body.String(), "already exists") {
			t.Fatalf("expected title error, got: %s", w.Body.String())
		}
	})

	t.Run("invalid image url", func(t *testing.T) {
		form := url.Values{
			"title":    {"Second"},
			"subtitle": {"s"},
			"img_url":  {"not a url"},
			"body":     {"b"},
		}
		w := doPost(t, s, "/new-post", form, admin)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("code %d, want 422", w.Code)
		}
	})
}

func TestEditPostKeepsDateAndAuthor(t *testing.T) {
	s := newTestSite(t)
	admin := register(t, s, "admin", "admin@x.com", "password1")
	post := createPost(t, s, admin, "Original Title")

	form := url.Values{
		"title":    {"Updated Title"},
		"subtitle": {"Updated subtitle"},
		"img_url":  {"https://example.com/new.png"},
		"body":     {"Updated body."},
	}
	w := doPost(t, s, fmt.Sprintf("/edit-post/%d", post.ID), form, admin)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("edit code %d, body %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != fmt.Sprintf("/post/%d", post.ID) {
		t.Fatalf("edit redirects to %q", loc)
	}

	updated, err := database.GetPost(s.db, post.ID)
	if err != nil || updated == nil {
		t.Fatalf("reload post: %v", err)
	}
	if updated.Title != "Updated Title" || updated.Subtitle != "Updated subtitle" ||
		updated.ImgURL != "https://example.com/new.png" || updated.Body != "Updated body." {
		t.Fatalf("edit did not round-trip fields: %+v", updated)
	}
	if updated.Date != post.Date {
		t.Fatalf("edit changed date: %q -> %q", post.Date, updated.Date)
	}
	if updated.AuthorID != post.AuthorID {
		t.Fatalf("edit changed author: %d -> %d", post.AuthorID, updated.AuthorID)
	}
}

func TestEditPostNotFound(t *testing.T) {
	s := newTestSite(t)
	admin := register(t, s, "admin", "admin@x.com", "password1")

	if w := doGet(t, s, "/edit-post/999", admin); w.Code != http.StatusNotFound {
		t.Fatalf("code %d, want 404", w.Code)
	}
}

func TestViewPostNotFound(t *testing.T) {
	s := newTestSite(t)
	if w := doGet(t, s, "/post/12345"); w.Code != http.StatusNotFound {
		t.Fatalf("code %d, want 404", w.Code)
	}
}

func TestCommenting(t *testing.T) {
	s := newTestSite(t)
	admin := register(t, s, "admin", "admin@x.com", "password1")
	reader := register(t, s, "bob", "bob@x.com", "password1")
	post := createPost(t, s, admin, "Commentable")
	postURL := fmt.Sprintf("/post/%d", post.ID)

	t.Run("anonymous is forbidden", func(t *testing.T) {
		w := doPost(t, s, postURL, url.Values{"text": {"hi"}})
		if w.Code != http.StatusForbidden {
			t.Fatalf("code %d, want 403", w.Code)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		w := doPost(t, s, postURL, url.Values{"text": {""}}, reader)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("code %d, want 422", w.Code)
		}
	})

	t.Run("too long", func(t *testing.T) {
		w := doPost(t, s, postURL, url.Values{"text": {strings.Repeat("x", 501)}}, reader)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("code %d, want 422", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		w := doPost(t, s, postURL, url.Values{"text": {"What a read!"}}, reader)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("code %d", w.Code)
		}
		if loc := w.Header().Get("Location"); loc != postURL {
			t.Fatalf("redirect to %q, want %q", loc, postURL)
		}
		res := doGet(t, s, postURL)
		if !strings.Contains(res.Body.String(), "What a read!") {
			t.Fatalf("comment not shown on post page")
		}
	})
}

func TestDeleteCommentAuthorization(t *testing.T) {
	s := newTestSite(t)
	admin := register(t, s, "admin", "admin@x.com", "password1")
	alice := register(t, s, "alice", "alice@x.com", "password1")
	mallory := register(t, s, "mallory", "mallory@x.com", "password1")
	post := createPost(t, s, admin, "Moderated")
	postURL := fmt.Sprintf("/post/%d", post.ID)

	comment := func() database.Comment {
		doPost(t, s, postURL, url.Values{"text": {"mine"}}, alice)
		loaded, err := database.GetPost(s.db, post.ID)
		if err != nil || loaded == nil || len(loaded.Comments) == 0 {
			t.Fatalf("comment setup failed: %v", err)
		}
		return loaded.Comments[len(loaded.Comments)-1]
	}

	c := comment()
	deleteURL := fmt.Sprintf("/delete_comment/%d-%d", post.ID, c.ID)

	if w := doGet(t, s, deleteURL); w.Code != http.StatusForbidden {
		t.Fatalf("anonymous delete: code %d, want 403", w.Code)
	}
	if w := doGet(t, s, deleteURL, mallory); w.Code != http.StatusForbidden {
		t.Fatalf("stranger delete: code %d, want 403", w.Code)
	}
	if got, _ := database.GetComment(s.db, c.ID); got == nil {
		t.Fatalf("comment deleted despite 403")
	}

	if w := doGet(t, s, deleteURL, alice); w.Code != http.StatusSeeOther {
		t.Fatalf("owner delete: code %d", w.Code)
	}
	if got, _ := database.GetComment(s.db, c.ID); got != nil {
		t.Fatalf("owner delete left the comment in place")
	}

	c = comment()
	adminDeleteURL := fmt.Sprintf("/delete_comment/%d-%d", post.ID, c.ID)
	if w := doGet(t, s, adminDeleteURL, admin); w.Code != http.StatusSeeOther {
		t.Fatalf("admin delete: code %d", w.Code)
	}
	if got, _ := database.GetComment(s.db, c.ID); got != nil {
		t.Fatalf("admin delete left the comment in place")
	}
}

func TestDeleteCommentMismatchedPost(t *testing.T) {
	s := newTestSite(t)
	admin := register(t, s, "admin", "admin@x.com", "password1")
	first := createPost(t, s, admin, "First")
	second := createPost(t, s, admin, "Second")

	doPost(t, s, fmt.Sprintf("/post/%d", first.ID), url.Values{"text": {"on first"}}, admin)
	loaded, _ := database.GetPost(s.db, first.ID)
	c := loaded.Comments[0]

	w := doGet(t, s, fmt.Sprintf("/delete_comment/%d-%d", second.ID, c.ID), admin)
	if w.Code != http.StatusNotFound {
		t.Fatalf("code %d, want 404", w.Code)
	}
	if got, _ := database.GetComment(s.db, c.ID); got == nil {
		t.Fatalf("comment deleted through the wrong post")
	}
}

func TestDeletePost(t *testing.T) {
	s := newTestSite(t)
	admin := register(t, s, "admin", "admin@x.com", "password1")
	reader := register(t, s, "bob", "bob@x.com", "password1")
	post := createPost(t, s, admin, "Doomed")

	doPost(t, s, fmt.Sprintf("/post/%d", post.ID), url.Values{"text": {"so long"}}, reader)

	if w := doGet(t, s, fmt.Sprintf("/delete_post/%d", post.ID), reader); w.Code != http.StatusForbidden {
		t.Fatalf("reader delete: code %d, want 403", w.Code)
	}
	if got, _ := database.GetPost(s.db, post.ID); got == nil {
		t.Fatalf("post deleted despite 403")
	}

	if w := doGet(t, s, fmt.Sprintf("/delete_post/%d", post.ID), admin); w.Code != http.StatusSeeOther {
		t.Fatalf("admin delete: code %d", w.Code)
	}
	if got, _ := database.GetPost(s.db, post.ID); got != nil {
		t.Fatalf("post still present after admin delete")
	}

	// cascade: no comments left pointing at the deleted post
	var orphans int64
	s.db.Model(&database.Comment{}).Where("post_id = ?", post.ID).Count(&orphans)
	if orphans != 0 {
		t.Fatalf("%d orphaned comments after post delete", orphans)
	}

	if w := doGet(t, s, fmt.Sprintf("/delete_post/%d", post.ID), admin); w.Code != http.StatusNotFound {
		t.Fatalf("deleting a missing post: code %d, want 404", w.Code)
	}
}

func TestAPIPosts(t *testing.T) {
	s := newTestSite(t)
	admin := register(t, s, "admin", "admin@x.com", "password1")
	createPost(t, s, admin, "Syndicated")

	w := doGet(t, s, "/api/v1/posts")
	if w.Code != http.StatusOK {
		t.Fatalf("code %d", w.Code)
	}
	var payload []apiPost
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload) != 1 || payload[0].Title != "Syndicated" || payload[0].Author != "admin" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

// The full path a reader and the admin walk through together.
func TestReaderAdminScenario(t *testing.T) {
	s := newTestSite(t)

	admin := register(t, s, "admin", "admin@x.com", "password1")
	hello := createPost(t, s, admin, "Hello")
	postURL := fmt.Sprintf("/post/%d", hello.ID)

	alice := register(t, s, "alice", "alice@x.com", "password1")
	res := doGet(t, s, "/", alice)
	if !strings.Contains(res.Body.String(), "Logged in as alice") {
		t.Fatalf("alice session not established")
	}

	if w := doPost(t, s, postURL, url.Values{"text": {"Nice!"}}, alice); w.Code != http.StatusSeeOther {
		t.Fatalf("comment code %d", w.Code)
	}

	res = doGet(t, s, postURL, alice)
	body := res.Body.String()
	if !strings.Contains(body, "Comments (1)") || !strings.Contains(body, "Nice!") || !strings.Contains(body, "alice") {
		t.Fatalf("post page missing alice's comment")
	}

	loaded, _ := database.GetPost(s.db, hello.ID)
	deleteURL := fmt.Sprintf("/delete_comment/%d-%d", hello.ID, loaded.Comments[0].ID)
	if w := doGet(t, s, deleteURL, alice); w.Code != http.StatusSeeOther {
		t.Fatalf("alice deleting her comment: code %d", w.Code)
	}

	res = doGet(t, s, postURL, alice)
	if !strings.Contains(res.Body.String(), "Comments (0)") {
		t.Fatalf("comment still shown after deletion")
	}

	if w := doGet(t, s, fmt.Sprintf("/delete_post/%d", hello.ID), alice); w.Code != http.StatusForbidden {
		t.Fatalf("alice deleting the post: code %d, want 403", w.Code)
	}
	if got, _ := database.GetPost(s.db, hello.ID); got == nil {
		t.Fatalf("post vanished after forbidden delete")
	}
}
