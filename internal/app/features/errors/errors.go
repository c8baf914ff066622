// internal/app/features/errors/errors.go
package errors

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/authz"
	"github.com/gorilla/csrf"
)

// pageData is the basic view model for error pages.
type pageData struct {
	Title      string
	Code       int
	IsLoggedIn bool
	Role       string
	UserName   string
	Message    string
	BackURL    string
	CSRFField  template.HTML
}

// Handler is the errors feature handler.
// No DB needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	RenderForbidden(w, r, "You don't have permission to view this page.", "/")
}

// Unauthorized renders a friendly "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	RenderUnauthorized(w, r, "/login")
}

// NotFound is installed as the router's NotFound handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	RenderNotFound(w, r, "The page you requested does not exist.", "/")
}

func basePage(r *http.Request, code int, title, msg, back string) pageData {
	role, name, _, signedIn := authz.UserCtx(r)
	return pageData{
		Title:      title,
		Code:       code,
		IsLoggedIn: signedIn,
		Role:       role,
		UserName:   name,
		Message:    msg,
		BackURL:    back,
		CSRFField:  csrf.TemplateField(r),
	}
}
