// internal/app/features/builder/templates.go
package builder

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "builder",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
