// Package recordpolicy provides authorization policies for the mentorship
// records (groups, companies, mentors, sessions, indicators).
//
// Authorization rules:
//   - Mentors can read and write every record
//   - Consultants can read every record, including summaries and exports
//   - Anyone else (signed out or holding no role) is denied
package recordpolicy

import (
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/domain/roles"
)

var (
	// ReadRoles may list, view, summarize and export records.
	ReadRoles = []string{roles.Mentor, roles.Consultant}
	// WriteRoles may create, update, delete and recount records.
	WriteRoles = []string{roles.Mentor}
)

// Scope is what the current user may do with records. Views use it to hide
// write controls from read-only users.
type Scope struct {
	CanView bool
	CanEdit bool
}

// ForRequest returns the record scope of the request's user.
func ForRequest(r *http.Request) Scope {
	return Scope{
		CanView: authz.HasAnyRole(r, ReadRoles...),
		CanEdit: authz.HasAnyRole(r, WriteRoles...),
	}
}

// Read returns nil when the user may read records, or an
// *apperr.AuthorizationError. Denials are counted.
func Read(r *http.Request) error {
	return check(r, ReadRoles)
}

// Write returns nil when the user may change records, or an
// *apperr.AuthorizationError. Denials are counted.
func Write(r *http.Request) error {
	return check(r, WriteRoles)
}

func check(r *http.Request, required []string) error {
	err := authz.Require(r, required...)
	if err == nil {
		return nil
	}
	if _, _, _, ok := authz.UserCtx(r); !ok {
		metrics.Denied("signed_out")
	} else {
		metrics.Denied("missing_role")
	}
	return err
}
