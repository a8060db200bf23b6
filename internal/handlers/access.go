package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/carevault/apiserver/types"
)

type contextKey string

const (
	contextUserKey  contextKey = "user"
	contextTokenKey contextKey = "token"
)

// Capability is a predicate over the authenticated user.
type Capability func(types.User) bool

// Authenticated holds for any resolved user.
func Authenticated(types.User) bool { return true }

// RoleIs holds when the user's role matches, ignoring case.
func RoleIs(role types.Role) Capability {
	return func(u types.User) bool {
		return strings.EqualFold(string(u.Role), string(role))
	}
}

// AnyOf holds when at least one of caps holds.
func AnyOf(caps ...Capability) Capability {
	return func(u types.User) bool {
		for _, c := range caps {
			if c(u) {
				return true
			}
		}
		return false
	}
}

// Require rejects requests without an identity (401) or whose identity
// fails capability (403). It never touches the store.
func Require(capability Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := userFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !capability(user) {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Gates bundles the middleware chains used by the routers.
type Gates struct {
	// Auth admits any authenticated user.
	Auth func(http.Handler) http.Handler
	// Manager admits managers only.
	Manager func(http.Handler) http.Handler
}

func withUser(ctx context.Context, user types.User) context.Context {
	return context.WithValue(ctx, contextUserKey, user)
}

func userFromContext(ctx context.Context) (types.User, bool) {
	user, ok := ctx.Value(contextUserKey).(types.User)
	return user, ok && user.ID > 0
}

// currentUser is only called behind a gate, so the identity is present.
func currentUser(r *http.Request) types.User {
	user, _ := userFromContext(r.Context())
	return user
}
