// internal/domain/models/groups.go
package models

import "time"

// CourseGroup is the display unit for course sessions: every
// SessionRecord sharing the same (category, tier) pair. Sessions are
// ordered by ascending start date, ties broken by venue name, and the
// group remembers the earliest start date for the booking-link filter.
type CourseGroup struct {
	Category     Category
	Tier         SkillTier
	Sessions     []SessionRecord // sorted; never empty
	MinStartDate time.Time
}

// Warning returns the most severe capacity warning among the group's
// sessions, given a per-session classifier.
func (g CourseGroup) Warning(classify func(count int) Warning) Warning {
	w := WarningNone
	for _, s := range g.Sessions {
		w = w.Max(classify(s.ActiveParticipants))
	}
	return w
}

// EventGroup is the display unit for standalone events: every Event
// record sharing the same name, plus the externally supplied link and
// prose the builder collects for it.
type EventGroup struct {
	Name     string
	Sessions []SessionRecord // sorted like CourseGroup sessions; may be empty for manual events

	// Externally supplied, passed through opaque.
	BookingURL  string
	ImageURL    string
	Description string
}
