// internal/app/system/authz/roles.go
package authz

import (
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/mentorhub/internal/domain/roles"
)

// HasAnyRole reports whether the current request's user has any of the given roles.
// Returns false if no user is present (i.e., not signed in).
func HasAnyRole(r *http.Request, want ...string) bool {
	if _, _, _, ok := UserCtx(r); !ok {
		return false
	}
	return roles.Allow(Roles(r), want...)
}

// HasRole is a convenience wrapper for a single role.
func HasRole(r *http.Request, role string) bool {
	return HasAnyRole(r, role)
}

// Role returns the current user's primary role (lowercased) and whether a user is present.
func Role(r *http.Request) (string, bool) {
	role, _, _, ok := UserCtx(r)
	return role, ok
}

// Roles returns every role the current user holds, or nil when signed out.
func Roles(r *http.Request) []string {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return nil
	}
	return u.RoleSet()
}
