// internal/app/features/sessions/templates.go
package sessions

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "sessions",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
