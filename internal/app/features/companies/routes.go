// internal/app/features/companies/routes.go
package companies

import (
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all Company routes under the base path (typically
// "/companies" from bootstrap). Every handler applies the record policy
// itself before reading or writing, so the route groups only require a
// signed-in user.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		// Read: mentor or consultant
		pr.Get("/", h.ServeList)
		pr.Get("/summary", h.ServeSummary)
		pr.Get("/export", h.ServeExport)
		pr.Get("/{id}", h.ServeDetail)

		// Write: mentor only
		pr.Get("/new", h.ServeNew)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
