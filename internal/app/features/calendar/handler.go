// internal/app/features/calendar/handler.go

// Package calendar serves an iCalendar export of the parsed session
// records so staff can drop the term's schedule into their calendars.
package calendar

import (
	"fmt"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	uierrors "github.com/dalemusser/courtpost/internal/app/features/errors"
	"github.com/dalemusser/courtpost/internal/app/features/builder"
	"github.com/dalemusser/courtpost/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler provides the ICS download endpoint.
type Handler struct {
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, ErrLog: errLog}
}

// sessionLength is the assumed slot length for calendar entries; the
// CSV only carries a start time and a free-form duration string.
const sessionLength = time.Hour

// HandleICS handles POST /calendar/ics.
// The builder result page posts the records JSON back; this turns each
// session into a VEVENT and serves the calendar as a download.
func (h *Handler) HandleICS(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/builder")
		return
	}

	records, err := builder.DecodeRecords(r.FormValue("records"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode records failed", err, "The schedule data was invalid. Please regenerate the newsletter.", "/builder")
		return
	}
	if len(records) == 0 {
		h.ErrLog.LogBadRequest(w, r, "empty records payload", nil, "There are no sessions to export.", "/builder")
		return
	}

	cal := BuildCalendar(records)

	filename := "courtpost-" + time.Now().Format("2006-01-02") + ".ics"
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := cal.SerializeTo(w); err != nil {
		h.Log.Error("calendar: serialize", zap.Error(err))
	}
}

// BuildCalendar converts session records into an iCalendar document.
// Each session becomes one event starting at its date and time-of-day.
func BuildCalendar(records []models.SessionRecord) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//CourtPost//Schedule Export//EN")

	for _, rec := range records {
		start := sessionStart(rec)

		ev := cal.AddEvent(uuid.NewString() + "@courtpost")
		ev.SetCreatedTime(start)
		ev.SetDtStampTime(start)
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(sessionLength))
		ev.SetSummary(rec.Name)
		ev.SetLocation(rec.Venue)
		ev.SetDescription(eventDescription(rec))
	}
	return cal
}

// sessionStart combines the date-only and time-of-day fields.
func sessionStart(rec models.SessionRecord) time.Time {
	d := rec.StartDate
	t := rec.StartTime
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func eventDescription(rec models.SessionRecord) string {
	desc := string(rec.Category)
	if rec.Tier != "" {
		desc += " / " + string(rec.Tier)
	}
	if rec.DurationText != "" {
		desc += " / " + rec.DurationText
	}
	return fmt.Sprintf("%s (%d signed up)", desc, rec.ActiveParticipants)
}
