package site

import (
	"context"
	"net/http"

	"inkwell/database"
)

type contextKey string

const currentUserKey = contextKey("current_user")

// capability is what a route declares it needs. Routes carry it via
// requireCapability, so no handler re-implements its own gate.
type capability int

const (
	capIdentified capability = iota
	capAdmin
)

// identityMiddleware resolves the session cookie to a user and stores it in
// the request context. Requests with a missing, malformed or stale token
// proceed as anonymous, and a stale cookie is cleared on the way.
func (s *Site) identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		user := s.resolveSessionToken(cookie.Value)
		if user == nil {
			s.clearSession(w)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Site) requireCapability(c capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := currentUser(r)
			switch c {
			case capIdentified:
				if user == nil {
					s.forbidden(w)
					return
				}
			case capAdmin:
				if !user.IsAdmin() {
					s.forbidden(w)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func currentUser(r *http.Request) *database.User {
	user, _ := r.Context().Value(currentUserKey).(*database.User)
	return user
}
