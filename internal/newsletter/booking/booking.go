// internal/newsletter/booking/booking.go

// Package booking derives destination URLs on the club's booking site
// for course groups and standalone events.
package booking

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dalemusser/courtpost/internal/domain/models"
)

// DefaultBaseURL is the public coaching page the CTA buttons link to.
// Overridable from configuration for other clubs on the same platform.
const DefaultBaseURL = "https://clubspark.lta.org.uk/VamosTennis/Coaching"

// dateFilterLayout is the ISO-8601 timestamp the site expects inside
// its date-range query value.
const dateFilterLayout = "2006-01-02T00:00:00.000Z"

// Builder derives booking URLs. The zero value uses DefaultBaseURL.
type Builder struct {
	BaseURL string
}

// New returns a Builder for the given base URL ("" = default).
func New(baseURL string) Builder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Builder{BaseURL: baseURL}
}

// CourseURL builds the destination for a course group: the category's
// route segment, the tier's booking code, and a date-range filter
// anchored at the group's earliest start date.
//
// The query shape is reproduced verbatim from the live site, including
// its quirks: the skill-level key has percent-encoded brackets while
// the date-range key does not, and the date value is a JSON-quoted ISO
// timestamp that is then percent-encoded ("%22...%22"). Treat the
// double encoding as a contract with the booking system, not a pattern
// to extend. One deliberate difference: url.QueryEscape also encodes
// the timestamp's colons (%3A) where the site's own links leave them
// literal; the platform decodes both forms to the same value.
func (b Builder) CourseURL(g models.CourseGroup) (string, error) {
	segment, err := routeSegment(g.Category)
	if err != nil {
		return "", err
	}
	code, err := models.TierBookingCode(g.Tier)
	if err != nil {
		return "", err
	}

	quoted := `"` + g.MinStartDate.Format(dateFilterLayout) + `"`
	return fmt.Sprintf("%s/%s?skill-level%%5B%%5D=%d&date-range[]=%s",
		b.BaseURL, segment, code, url.QueryEscape(quoted)), nil
}

// EventURL passes an event's externally supplied link through
// unchanged. Event links are opaque identifiers, never synthesized.
func (b Builder) EventURL(g models.EventGroup) string {
	return g.BookingURL
}

func routeSegment(c models.Category) (string, error) {
	switch c {
	case models.CategoryAdult:
		return "Adult", nil
	case models.CategoryJunior:
		return "Junior", nil
	}
	return "", fmt.Errorf("no booking route for category %q", string(c))
}

// reportDateLayout is the slashed date format the admin report
// endpoints expect, percent-encoded into the query.
const reportDateLayout = "2006/01/02"

// reportWindow is how far ahead the CSV export links look.
const reportWindow = 6 * 7 * 24 * time.Hour

// CoursesReportURL returns the admin report link for downloading the
// courses CSV covering the six weeks from the given day.
func CoursesReportURL(adminBase string, from time.Time) string {
	return reportURL(adminBase, "Coaching_Courses", from)
}

// SessionsReportURL returns the admin report link for downloading the
// sessions CSV covering the six weeks from the given day.
func SessionsReportURL(adminBase string, from time.Time) string {
	return reportURL(adminBase, "Coaching_Sessions", from)
}

func reportURL(adminBase, report string, from time.Time) string {
	start := url.QueryEscape(from.Format(reportDateLayout))
	end := url.QueryEscape(from.Add(reportWindow).Format(reportDateLayout))
	return fmt.Sprintf("%s/%s?startdateforfiltering=%s&enddateforfiltering=%s&category=&status=Upcoming&leadcoachforfiltering=&venue=",
		adminBase, report, start, end)
}
