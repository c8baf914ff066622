// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/domain/roles"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's primary role (lowercased), name, Mongo ObjectID, and a found flag.
// If no user is present in context or the user ID is malformed, it returns
// "visitor", "", NilObjectID, false. This ensures callers can trust that
// ok=true means a valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// Require returns nil when the current user holds any of the required
// roles, and an *apperr.AuthorizationError otherwise. A request without a
// valid user is always denied.
func Require(r *http.Request, required ...string) error {
	if _, _, _, ok := UserCtx(r); !ok {
		return &apperr.AuthorizationError{Required: required}
	}
	if !roles.Allow(Roles(r), required...) {
		return &apperr.AuthorizationError{Required: required}
	}
	return nil
}

// IsMentor reports whether the current request's user holds the mentor role.
func IsMentor(r *http.Request) bool {
	return HasRole(r, roles.Mentor)
}

// IsConsultant reports whether the current request's user holds the consultant role.
func IsConsultant(r *http.Request) bool {
	return HasRole(r, roles.Consultant)
}
