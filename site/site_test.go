package site

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"inkwell/config"
	"inkwell/database"
)

func newTestSite(t *testing.T) *Site {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	var cfg config.Config
	cfg.Session.Secret = "test-secret"

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return New(db, cfg, logger)
}

func doGet(t *testing.T, s *Site, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func doPost(t *testing.T, s *Site, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

// register signs up a user and returns the session cookie. The first user
// registered against a fresh database becomes the admin.
func register(t *testing.T, s *Site, username, email, password string) *http.Cookie {
	t.Helper()
	form := url.Values{
		"username":         {username},
		"email":            {email},
		"password":         {password},
		"confirm_password": {password},
	}
	w := doPost(t, s, "/register", form)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("register %s: code %d, body %s", username, w.Code, w.Body.String())
	}
	cookie := sessionCookie(w)
	if cookie == nil {
		t.Fatalf("register %s: no session cookie", username)
	}
	return cookie
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			return c
		}
	}
	return nil
}

func flashMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == flashCookieName && c.Value != "" {
			message, err := base64.URLEncoding.DecodeString(c.Value)
			if err != nil {
				t.Fatalf("flash decode: %v", err)
			}
			return string(message)
		}
	}
	return ""
}

func userCount(t *testing.T, s *Site) int64 {
	t.Helper()
	var count int64
	if err := s.db.Model(&database.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	return count
}
