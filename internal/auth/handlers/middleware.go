package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"slicesite/internal/auth/service"
	"slicesite/internal/common/httpx"
	"slicesite/internal/domain"
)

type ctxKey int

const userKey ctxKey = 0

// UserFrom returns the authenticated user placed in the context by
// RequireUser.
func UserFrom(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userKey).(domain.User)
	return u, ok
}

// ContextWithUser is exported for handler tests that bypass the middleware.
func ContextWithUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

type Middleware struct {
	auth   service.AuthServiceInterface
	admins map[string]bool
}

func NewMiddleware(auth service.AuthServiceInterface, adminEmails []string) *Middleware {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(e)] = true
	}
	return &Middleware{auth: auth, admins: admins}
}

// RequireUser resolves the bearer token and stores the active user in the
// request context. Status codes follow the original API: 401 for a missing
// token, 403 for an invalid one, 400 for an inactive user.
func (m *Middleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(raw, "Bearer ")
		if !ok || token == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			httpx.WriteProblem(w, http.StatusUnauthorized, "not_authenticated", "Not authenticated")
			return
		}

		user, err := m.auth.Authenticate(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidToken):
				httpx.WriteProblem(w, http.StatusForbidden, "invalid_token", "Could not validate credentials")
			case errors.Is(err, domain.ErrInactiveUser):
				httpx.WriteProblem(w, http.StatusBadRequest, "inactive_user", "Inactive user")
			default:
				httpx.WriteProblem(w, http.StatusInternalServerError, "auth_error", "failed to authenticate")
			}
			return
		}
		next(w, r.WithContext(ContextWithUser(r.Context(), user)))
	}
}

// RequireAdmin additionally checks the caller against the configured admin
// list. The guarded handlers themselves perform no privilege checks.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireUser(func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFrom(r.Context())
		if !m.admins[strings.ToLower(user.Email)] {
			httpx.WriteProblem(w, http.StatusForbidden, "not_privileged", "The user doesn't have enough privileges")
			return
		}
		next(w, r)
	})
}
