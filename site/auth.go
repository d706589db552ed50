package site

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"inkwell/database"
	"inkwell/forms"
	"inkwell/views"
)

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword reports whether password matches the stored hash. A
// malformed hash simply fails the check.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *Site) register(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if currentUser(r) != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		s.render(w, r, http.StatusOK, "Register", views.RegisterPage(forms.Register{}, nil))

	case http.MethodPost:
		form := forms.Register{
			Username:        strings.TrimSpace(r.FormValue("username")),
			Email:           strings.TrimSpace(r.FormValue("email")),
			Password:        r.FormValue("password"),
			ConfirmPassword: r.FormValue("confirm_password"),
		}
		if errs := form.Validate(); !errs.Valid() {
			s.render(w, r, http.StatusUnprocessableEntity, "Register", views.RegisterPage(form, errs))
			return
		}

		passwordHash, err := hashPassword(form.Password)
		if err != nil {
			s.serverError(w, err)
			return
		}

		user := database.User{
			Username:     form.Username,
			Email:        form.Email,
			PasswordHash: passwordHash,
		}
		if err := database.CreateUser(s.db, &user); err != nil {
			switch {
			case errors.Is(err, database.ErrDuplicateUsername):
				s.render(w, r, http.StatusUnprocessableEntity, "Register",
					views.RegisterPage(form, forms.Errors{"username": "That username is already taken."}))
			case errors.Is(err, database.ErrDuplicateEmail):
				s.render(w, r, http.StatusUnprocessableEntity, "Register",
					views.RegisterPage(form, forms.Errors{"email": "An account with that email already exists."}))
			default:
				s.serverError(w, err)
			}
			return
		}

		if err := s.issueSession(w, &user); err != nil {
			s.serverError(w, err)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Site) login(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if currentUser(r) != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		s.render(w, r, http.StatusOK, "Log In", views.LoginPage(forms.Login{}, nil))

	case http.MethodPost:
		form := forms.Login{
			Email:    strings.TrimSpace(r.FormValue("email")),
			Password: r.FormValue("password"),
		}
		if errs := form.Validate(); !errs.Valid() {
			s.render(w, r, http.StatusUnprocessableEntity, "Log In", views.LoginPage(form, errs))
			return
		}

		user, err := database.GetUserByEmail(s.db, form.Email)
		if err != nil {
			s.serverError(w, err)
			return
		}
		// The two failure messages stay distinct on purpose, matching the
		// product's original behavior.
		if user == nil {
			s.setFlash(w, "No account with that email exists.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !checkPassword(user.PasswordHash, form.Password) {
			s.setFlash(w, "Incorrect password.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if err := s.issueSession(w, user); err != nil {
			s.serverError(w, err)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// logout clears the session cookie whether or not anyone is signed in.
func (s *Site) logout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
