// Package render is the seam between handlers and the template engine.
package render

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
)

// Func renders the named template with data.
type Func func(w http.ResponseWriter, r *http.Request, name string, data any)

// Template renders through the booted waffle template engine.
func Template(w http.ResponseWriter, r *http.Request, name string, data any) {
	templates.Render(w, r, name, data)
}

// Or returns f, or Template when f is nil.
func Or(f Func) Func {
	if f == nil {
		return Template
	}
	return f
}
