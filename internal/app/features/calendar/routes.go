// internal/app/features/calendar/routes.go
package calendar

import (
	"github.com/dalemusser/courtpost/internal/app/system/gate"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *gate.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/ics", h.HandleICS)
	})

	return r
}
