// internal/app/features/errors/render.go
package errors

import (
	"net/http"
	"sync"

	"github.com/dalemusser/mentorhub/internal/app/system/render"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"github.com/dalemusser/waffle/pantry/httpnav"
)

var (
	mu         sync.RWMutex
	renderPage render.Func = render.Template
)

// UseRenderer swaps the renderer used for error pages. Tests pass a
// capturing renderer; nil restores the template engine.
func UseRenderer(f render.Func) {
	mu.Lock()
	defer mu.Unlock()
	renderPage = render.Or(f)
}

func show(w http.ResponseWriter, r *http.Request, data pageData) {
	mu.RLock()
	f := renderPage
	mu.RUnlock()
	w.WriteHeader(data.Code)
	f(w, r, "error_page", data)
}

func backOr(r *http.Request, backURL, fallback string) string {
	if backURL != "" {
		return backURL
	}
	return httpnav.ResolveBackURL(r, fallback)
}

// RenderUnauthorized shows a "sign in required" page.
// If backURL is empty, it will default to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	show(w, r, basePage(r, http.StatusUnauthorized, "Sign in required", "Please sign in to continue.", backURL))
}

// RenderForbidden shows an access error page with a message.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	show(w, r, basePage(r, http.StatusForbidden, "Access denied", msg, backOr(r, backURL, "/")))
}

// RenderNotFound shows a 404 page.
func RenderNotFound(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	show(w, r, basePage(r, http.StatusNotFound, "Not found", msg, backOr(r, backURL, "/")))
}

// RenderBadRequest shows a 400 page.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	show(w, r, basePage(r, http.StatusBadRequest, "Bad request", msg, backOr(r, backURL, "/")))
}

// RenderServerError shows a 500 page. Callers log before calling.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	show(w, r, basePage(r, http.StatusInternalServerError, "Something went wrong", msg, backOr(r, backURL, "/")))
}

// RenderAppError picks the page for an apperr kind. StoreError and unknown
// errors render a generic 500 without leaking the cause.
func RenderAppError(w http.ResponseWriter, r *http.Request, err error, backURL string) {
	switch {
	case apperr.IsAuthorization(err):
		RenderForbidden(w, r, "You don't have permission to do that.", backURL)
	case apperr.IsNotFound(err):
		RenderNotFound(w, r, "That record no longer exists.", backURL)
	case apperr.IsValidation(err):
		RenderBadRequest(w, r, apperr.Message(err), backURL)
	default:
		RenderServerError(w, r, "A database error occurred.", backURL)
	}
}
