// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a form submission fails validation, the form is re-rendered with
// the user's previously entered values, an error message, and whatever
// option lists the form needs (groups, mentors, companies).
//
// Example usage:
//
//	type formData struct {
//		formutil.Base
//		CompanyID string
//		Name      string
//	}
//
//	data := formData{CompanyID: cid, Name: name}
//	formutil.SetBase(&data.Base, r, "New Company", "/companies")
//	data.SetError("Company ID is required.")
package formutil

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/mentorhub/internal/domain/roles"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// Base contains common fields for form pages that can be embedded in form data structs.
type Base struct {
	Title       string
	IsLoggedIn  bool
	Role        string
	UserName    string
	CanWrite    bool
	BackURL     string
	CurrentPath string
	CSRFField   template.HTML
	Error       template.HTML
	FieldErrors map[string]string
}

// SetBase populates the common Base fields from the request context.
//
// Parameters:
//   - b: pointer to the Base struct to populate
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func SetBase(b *Base, r *http.Request, title, backDefault string) {
	role, uname, _, ok := authz.UserCtx(r)
	b.Title = title
	b.IsLoggedIn = ok
	b.Role = role
	b.UserName = uname
	b.CanWrite = authz.HasRole(r, roles.Mentor)
	b.BackURL = httpnav.ResolveBackURL(r, backDefault)
	b.CurrentPath = httpnav.CurrentPath(r)
	b.CSRFField = csrf.TemplateField(r)
}

// SetError sets the error message on a Base struct. msg is escaped.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(template.HTMLEscapeString(msg))
}

// SetFieldError records msg against a form field and also sets it as the
// page-level error when none is set yet.
func (b *Base) SetFieldError(field, msg string) {
	if b.FieldErrors == nil {
		b.FieldErrors = make(map[string]string)
	}
	b.FieldErrors[field] = msg
	if b.Error == "" {
		b.SetError(msg)
	}
}

// SetFieldErrors records errs field by field in order, so the page-level
// error is the first failing input on the form. Keys missing from order
// are recorded last.
func (b *Base) SetFieldErrors(errs map[string]string, order []string) {
	for _, f := range order {
		if msg, ok := errs[f]; ok {
			b.SetFieldError(f, msg)
		}
	}
	for f, msg := range errs {
		if _, done := b.FieldErrors[f]; !done {
			b.SetFieldError(f, msg)
		}
	}
}

// ValidationErrors returns the field error carried by an
// *apperr.ValidationError, keyed by field, or nil for any other error.
func ValidationErrors(err error) map[string]string {
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	return map[string]string{ve.Field: ve.Message}
}
