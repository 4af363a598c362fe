// internal/app/features/builder/export.go
package builder

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dalemusser/courtpost/internal/domain/models"
	"go.uber.org/zap"
)

// HandleExport handles POST /builder/export.
// The result page posts the export payload back; this validates it and
// serves it as a JSON download for the mailing tool.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/builder")
		return
	}

	var payload models.ExportPayload
	if err := json.Unmarshal([]byte(r.FormValue("payload")), &payload); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode export payload failed", err, "The export data was invalid. Please regenerate the newsletter.", "/builder")
		return
	}
	if payload.Subject == "" || payload.Content == "" {
		h.ErrLog.LogBadRequest(w, r, "incomplete export payload", nil, "The export data was incomplete. Please regenerate the newsletter.", "/builder")
		return
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "encode export payload failed", err, "A server error occurred.", "/builder")
		return
	}

	filename := "newsletter-" + time.Now().Format("2006-01-02") + ".json"
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := w.Write(out); err != nil {
		h.Log.Error("export: write response", zap.Error(err))
	}
}
