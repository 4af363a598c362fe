// internal/app/features/builder/handler.go
package builder

import (
	"net/http"
	"time"

	uierrors "github.com/dalemusser/courtpost/internal/app/features/errors"
	"github.com/dalemusser/courtpost/internal/app/system/gate"
	"github.com/dalemusser/courtpost/internal/app/system/viewdata"
	"github.com/dalemusser/courtpost/internal/newsletter"
	"github.com/dalemusser/courtpost/internal/newsletter/booking"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler provides HTTP handlers for the newsletter builder flow:
// upload the CSV export, review the grouped preview, generate the
// email, and export the payload.
type Handler struct {
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	Engine     *newsletter.Engine
	SessionMgr *gate.SessionManager

	// AdminReportBase is the admin side of the booking site, used only
	// to link staff to the report downloads. Empty hides the links.
	AdminReportBase string
}

func NewHandler(engine *newsletter.Engine, sm *gate.SessionManager, errLog *uierrors.ErrorLogger, adminReportBase string, logger *zap.Logger) *Handler {
	return &Handler{
		Log:             logger,
		ErrLog:          errLog,
		Engine:          engine,
		SessionMgr:      sm,
		AdminReportBase: adminReportBase,
	}
}

// ServeBuilder handles GET /builder: the upload form.
func (h *Handler) ServeBuilder(w http.ResponseWriter, r *http.Request) {
	data := BuilderData{
		BaseVM: viewdata.NewBaseVM(r, h.SessionMgr, "Build Newsletter", "/"),
		Events: emptyEventFields(),
	}
	if h.AdminReportBase != "" {
		now := time.Now()
		data.CoursesReportURL = booking.CoursesReportURL(h.AdminReportBase, now)
		data.SessionsReportURL = booking.SessionsReportURL(h.AdminReportBase, now)
	}
	templates.Render(w, r, "builder", data)
}
