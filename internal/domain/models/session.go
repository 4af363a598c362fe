// internal/domain/models/session.go
package models

import "time"

// Category is the top-level classification of a scheduled record:
// an adult course, a junior course, or a standalone event.
type Category string

const (
	CategoryAdult  Category = "adult"
	CategoryJunior Category = "junior"
	CategoryEvent  Category = "event"
)

// IsCourse reports whether the category is a course (adult or junior)
// rather than a standalone event.
func (c Category) IsCourse() bool {
	return c == CategoryAdult || c == CategoryJunior
}

// SessionRecord is one validated row of the booking system's CSV export.
// It is immutable once parsed and owned by the pipeline run that created
// it; nothing is persisted across invocations.
type SessionRecord struct {
	Name               string
	Category           Category
	Tier               SkillTier // empty when Category is CategoryEvent
	Venue              string
	StartDate          time.Time // date only; time-of-day lives in StartTime
	StartTime          time.Time // time-of-day only (zero date)
	DurationText       string    // free-form, passed through unmodified
	ActiveParticipants int
}
