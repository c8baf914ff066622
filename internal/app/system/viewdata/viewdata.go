// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/dalemusser/mentorhub/internal/app/system/flash"
	"github.com/dalemusser/mentorhub/internal/domain/roles"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// SiteName is shown in the layout header and page titles.
const SiteName = "MentorHub"

// BaseVM contains common fields for all read-only view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type listData struct {
//	    viewdata.BaseVM
//	    Rows []row
//	}
//
//	data := listData{BaseVM: viewdata.NewBaseVM(r, "Companies", "/dashboard")}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn   bool
	Role         string
	UserName     string
	CanWrite     bool // mentor: create/edit/delete links are shown
	IsConsultant bool

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection for inline delete/recount forms
	CSRFToken string
	CSRFField template.HTML

	// One-shot success messages from the previous POST
	Flashes []string
}

// NewBaseVM creates a fully populated BaseVM for a page.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)

	return BaseVM{
		SiteName:     SiteName,
		IsLoggedIn:   signedIn,
		Role:         role,
		UserName:     name,
		CanWrite:     authz.HasRole(r, roles.Mentor),
		IsConsultant: authz.HasRole(r, roles.Consultant),
		Title:        title,
		BackURL:      httpnav.ResolveBackURL(r, backDefault),
		CurrentPath:  httpnav.CurrentPath(r),
		CSRFToken:    csrf.Token(r),
		CSRFField:    csrf.TemplateField(r),
		Flashes:      flash.Messages(r),
	}
}
