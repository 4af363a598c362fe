// internal/app/features/builder/routes.go
package builder

import (
	"github.com/dalemusser/courtpost/internal/app/system/gate"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the builder flow under the path where the caller
// mounts it. Typically: r.Mount("/builder", builder.Routes(handler, sessionMgr))
func Routes(h *Handler, sm *gate.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeBuilder)
		pr.Post("/preview", h.HandlePreview)
		pr.Post("/generate", h.HandleGenerate)
		pr.Post("/export", h.HandleExport)
	})

	return r
}
