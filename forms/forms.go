// Package forms holds the submitted-form types and their field-level
// validation. Validation runs before any write; an empty Errors map means
// the form is acceptable.
package forms

import (
	"fmt"
	"net/mail"
	"net/url"
	"unicode/utf8"

	"inkwell/constants"
)

type Errors map[string]string

func (e Errors) Valid() bool {
	return len(e) == 0
}

type Register struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

func (f Register) Validate() Errors {
	errs := Errors{}
	if f.Username == "" {
		errs["username"] = "Username is required."
	}
	if f.Email == "" {
		errs["email"] = "Email address is required."
	} else if !validEmail(f.Email) {
		errs["email"] = "That doesn't look like a valid email address."
	}
	if f.Password == "" {
		errs["password"] = "Password is required."
	} else if utf8.RuneCountInString(f.Password) < constants.MIN_PASSWORD_LENGTH {
		errs["password"] = fmt.Sprintf("Password must be at least %d characters long.", constants.MIN_PASSWORD_LENGTH)
	}
	if f.ConfirmPassword != f.Password {
		errs["confirm_password"] = "Passwords do not match."
	}
	return errs
}

type Login struct {
	Email    string
	Password string
}

func (f Login) Validate() Errors {
	errs := Errors{}
	if f.Email == "" {
		errs["email"] = "Email address is required."
	} else if !validEmail(f.Email) {
		errs["email"] = "That doesn't look like a valid email address."
	}
	if f.Password == "" {
		errs["password"] = "Password is required."
	}
	return errs
}

type Post struct {
	Title    string
	Subtitle string
	ImgURL   string
	Body     string
}

func (f Post) Validate() Errors {
	errs := Errors{}
	if f.Title == "" {
		errs["title"] = "Title is required."
	}
	if f.Subtitle == "" {
		errs["subtitle"] = "Subtitle is required."
	}
	if f.ImgURL == "" {
		errs["img_url"] = "Image URL is required."
	} else if !validURL(f.ImgURL) {
		errs["img_url"] = "Image URL must be a valid http(s) URL."
	}
	if f.Body == "" {
		errs["body"] = "Post body is required."
	}
	return errs
}

type Comment struct {
	Text string
}

func (f Comment) Validate() Errors {
	errs := Errors{}
	if f.Text == "" {
		errs["text"] = "Comment text is required."
	} else if utf8.RuneCountInString(f.Text) > constants.MAX_COMMENT_LENGTH {
		errs["text"] = fmt.Sprintf("Comments are limited to %d characters.", constants.MAX_COMMENT_LENGTH)
	}
	return errs
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
