package site

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"inkwell/database"
)

// Sessions are stateless: the cookie holds a signed token carrying the user
// id, and the users table is the only lookup. There is no session table to
// invalidate, so logout just drops the cookie.
const sessionCookieName = "inkwell_session"

const sessionLifetime = 7 * 24 * time.Hour

func (s *Site) issueSession(w http.ResponseWriter, user *database.User) error {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionLifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Session.Secret))
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(sessionLifetime),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Site) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// resolveSessionToken verifies the token signature and expiry and loads the
// referenced user. Any failure resolves to the anonymous actor (nil),
// without distinguishing why.
func (s *Site) resolveSessionToken(tokenStr string) *database.User {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.Session.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return nil
	}
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return nil
	}

	user, err := database.GetUser(s.db, uint(id))
	if err != nil {
		s.log.WithError(err).Error("session user lookup failed")
		return nil
	}
	return user
}
