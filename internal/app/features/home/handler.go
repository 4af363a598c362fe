package home

import (
	"net/http"

	"github.com/dalemusser/courtpost/internal/app/system/gate"
	"github.com/dalemusser/courtpost/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	SM  *gate.SessionManager
	Log *zap.Logger
}

func NewHandler(sm *gate.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		SM:  sm,
		Log: logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	data := struct {
		viewdata.BaseVM
	}{
		BaseVM: viewdata.NewBaseVM(r, h.SM, "Welcome", "/"),
	}

	templates.Render(w, r, "home", data)
}
