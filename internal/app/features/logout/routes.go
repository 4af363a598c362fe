// internal/app/features/logout/routes.go
package logout

import (
	"github.com/dalemusser/courtpost/internal/app/system/gate"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *gate.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		// Only allow signed-in users to hit /logout.
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeLogout)
	})

	return r
}
