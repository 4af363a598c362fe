// internal/app/features/builder/preview.go
package builder

import (
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/courtpost/internal/app/system/viewdata"
	"github.com/dalemusser/courtpost/internal/domain/models"
	"github.com/dalemusser/courtpost/internal/newsletter/booking"
	"github.com/dalemusser/courtpost/internal/newsletter/capacity"
	"github.com/dalemusser/courtpost/internal/newsletter/csvdata"
	"github.com/dalemusser/courtpost/internal/newsletter/displayfmt"
	"github.com/dalemusser/courtpost/internal/newsletter/grouping"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
)

// HandlePreview handles POST /builder/preview.
// This parses the CSV and shows the grouped preview. The user must
// confirm to actually generate the newsletter.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	// Cap the body before parsing so an oversized upload is refused
	// rather than buffered. The parse must come first: every later read
	// of r.Form depends on it.
	r.Body = http.MaxBytesReader(w, r.Body, csvdata.MaxUploadSize)
	if err := r.ParseMultipartForm(csvdata.MaxUploadSize); err != nil {
		h.renderFormError(w, r, uploadErrorMessage(err), emptyEventFields())
		return
	}

	events := eventFieldsFromForm(r, false)

	file, _, err := r.FormFile("csv")
	if err != nil {
		h.renderFormError(w, r, "CSV file is required.", events)
		return
	}
	defer file.Close()

	result, parseErr := csvdata.ParseSessions(file, csvdata.DefaultParseOptions())
	if parseErr != nil {
		switch {
		case errors.Is(parseErr, csvdata.ErrTooManyRows):
			h.renderFormError(w, r, "CSV file has too many rows.", events)
		case errors.Is(parseErr, csvdata.ErrNoValidRows):
			if result.HasErrors() {
				h.renderFormErrorHTML(w, r, csvdata.FormatRowErrors(result.Errors, 5), events)
			} else {
				h.renderFormError(w, r, "CSV file contains no session rows.", events)
			}
		default:
			h.renderFormError(w, r, "CSV file could not be read: "+parseErr.Error(), events)
		}
		return
	}

	// Assign stable keys to the manual events so block ordering can
	// reference them between preview and generate.
	for i := range events {
		if events[i].Title != "" && events[i].Key == "" {
			events[i].Key = "event-" + uuid.NewString()
		}
	}

	recordsJSON, err := encodeRecords(result.Records)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "encode records failed", err, "A server error occurred.", "/builder")
		return
	}

	grouped := grouping.Group(result.Records)

	data := BuilderData{
		BaseVM:       viewdata.NewBaseVM(r, h.SessionMgr, "Build Newsletter - Preview", "/builder"),
		Events:       events,
		ShowPreview:  true,
		AdultGroups:  groupRows(grouped.Adult),
		JuniorGroups: groupRows(grouped.Junior),
		EventRows:    eventRows(grouped.Events),
		RecordsJSON:  recordsJSON,
		TotalRecords: len(result.Records),
		BlockKeys:    blockKeys(grouped, events),
		Subject:      strings.TrimSpace(r.FormValue("subject")),
		Summary:      strings.TrimSpace(r.FormValue("summary")),
	}

	// Rejected rows don't block the preview; surface them alongside it.
	if result.HasErrors() {
		data.Error = csvdata.FormatRowErrors(result.Errors, 5)
	}

	templates.Render(w, r, "builder", data)
}

// uploadErrorMessage maps a multipart parse failure to a message the
// form can show.
func uploadErrorMessage(err error) string {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
		return "CSV file is too large. Maximum size is 5 MB."
	}
	return "The upload could not be read. Please try again."
}

// eventFieldsFromForm collects the manual event slots. Form parsing
// must already have happened (r.ParseMultipartForm or r.ParseForm).
// withKeys reads the hidden key fields carried over from a previous
// preview.
func eventFieldsFromForm(r *http.Request, withKeys bool) []EventField {
	titles := r.Form["event_title"]
	details := r.Form["event_details"]
	urls := r.Form["event_url"]
	images := r.Form["event_image"]
	keys := r.Form["event_key"]

	at := func(vals []string, i int) string {
		if i < len(vals) {
			return strings.TrimSpace(vals[i])
		}
		return ""
	}

	fields := emptyEventFields()
	for i := range fields {
		fields[i] = EventField{
			Title:    at(titles, i),
			Details:  at(details, i),
			URL:      at(urls, i),
			ImageURL: at(images, i),
		}
		if withKeys {
			fields[i].Key = at(keys, i)
		}
	}
	return fields
}

// manualEvents filters the filled-in slots into engine inputs.
func manualEvents(fields []EventField) []models.EventInput {
	var out []models.EventInput
	for _, f := range fields {
		if f.Title == "" {
			continue
		}
		out = append(out, models.EventInput{
			Key:      f.Key,
			Title:    f.Title,
			Details:  f.Details,
			URL:      f.URL,
			ImageURL: f.ImageURL,
		})
	}
	return out
}

func groupRows(groups []models.CourseGroup) []GroupRow {
	rows := make([]GroupRow, len(groups))
	for i, g := range groups {
		label, _ := models.TierLabel(g.Tier)
		earliest, _ := displayfmt.Date(g.MinStartDate)
		rows[i] = GroupRow{
			Icon:     models.TierIcon(g.Tier),
			Label:    label,
			Sessions: len(g.Sessions),
			Earliest: earliest,
			Warning:  g.Warning(capacity.WarningFor).Label(),
		}
	}
	return rows
}

func eventRows(groups []models.EventGroup) []EventRow {
	rows := make([]EventRow, len(groups))
	for i, g := range groups {
		rows[i] = EventRow{Name: g.Name, Sessions: len(g.Sessions)}
	}
	return rows
}

// blockKeys lists the orderable block keys for the preview page.
func blockKeys(grouped grouping.Grouped, events []EventField) []string {
	var keys []string
	if len(grouped.Adult) > 0 {
		keys = append(keys, "adults")
	}
	if len(grouped.Junior) > 0 {
		keys = append(keys, "juniors")
	}
	for _, g := range grouped.Events {
		keys = append(keys, "event:"+g.Name)
	}
	for _, f := range events {
		if f.Key != "" {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

func (h *Handler) renderFormError(w http.ResponseWriter, r *http.Request, msg string, events []EventField) {
	h.renderFormErrorHTML(w, r, csvdata.FormatRowErrors([]csvdata.RowError{{Reason: msg}}, 1), events)
}

func (h *Handler) renderFormErrorHTML(w http.ResponseWriter, r *http.Request, errHTML template.HTML, events []EventField) {
	data := BuilderData{
		BaseVM: viewdata.NewBaseVM(r, h.SessionMgr, "Build Newsletter", "/"),
		Error:  errHTML,
		Events: events,
	}
	if h.AdminReportBase != "" {
		now := time.Now()
		data.CoursesReportURL = booking.CoursesReportURL(h.AdminReportBase, now)
		data.SessionsReportURL = booking.SessionsReportURL(h.AdminReportBase, now)
	}
	templates.Render(w, r, "builder", data)
}
