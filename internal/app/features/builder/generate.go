// internal/app/features/builder/generate.go
package builder

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/dalemusser/courtpost/internal/app/system/timeouts"
	"github.com/dalemusser/courtpost/internal/app/system/viewdata"
	"github.com/dalemusser/courtpost/internal/newsletter"
	"github.com/dalemusser/waffle/pantry/templates"
)

// HandleGenerate handles POST /builder/generate.
// It rebuilds the session records from the hidden preview field, runs
// the generation engine, and shows the finished newsletter.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/builder")
		return
	}

	records, err := DecodeRecords(r.FormValue("records"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode records failed", err, "The preview data was invalid. Please upload the CSV again.", "/builder")
		return
	}

	events := manualEvents(eventFieldsFromForm(r, true))
	order := splitOrder(r.FormValue("order"))
	subject := strings.TrimSpace(r.FormValue("subject"))
	summary := strings.TrimSpace(r.FormValue("summary"))

	// Prose calls go out to the model; they need the long timeout.
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Generate(), h.Log, "newsletter generation")
	defer cancel()

	doc, manifest, err := h.Engine.Build(ctx, newsletter.BuildInput{
		Records: records,
		Events:  events,
		Order:   order,
		Subject: subject,
		Summary: summary,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "newsletter build failed", err, "The newsletter could not be generated.", "/builder")
		return
	}

	exportJSON, err := json.MarshalIndent(newsletter.Export(doc), "", "  ")
	if err != nil {
		h.ErrLog.LogServerError(w, r, "encode export payload failed", err, "A server error occurred.", "/builder")
		return
	}

	rows := make([]ManifestRow, len(manifest))
	for i, m := range manifest {
		rows[i] = ManifestRow{
			Key:        m.Key,
			Kind:       m.Kind,
			Sessions:   m.Sessions,
			Warning:    m.Warning,
			BookingURL: m.BookingURL,
		}
	}

	data := ResultData{
		BaseVM:      viewdata.NewBaseVM(r, h.SessionMgr, "Newsletter Ready", "/builder"),
		Subject:     doc.Subject,
		PreviewText: doc.PreviewText,
		Summary:     doc.Summary,
		BodyHTML:    template.HTML(doc.HTML),
		Manifest:    rows,
		ExportJSON:  string(exportJSON),
		RecordsJSON: r.FormValue("records"),
	}

	templates.Render(w, r, "builder_result", data)
}

// splitOrder parses the comma-separated block order field.
func splitOrder(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
