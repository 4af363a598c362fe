// internal/newsletter/grouping/grouping.go

// Package grouping buckets validated session records into display
// units: course groups keyed by (category, skill tier) and event
// groups keyed by name.
package grouping

import (
	"sort"

	"github.com/dalemusser/courtpost/internal/domain/models"
)

// Grouped is the output of one grouping pass. Course groups are
// returned per category in ascending tier-rank order; event groups in
// first-seen input order. Every input record lands in exactly one
// group, and empty groups are never emitted.
type Grouped struct {
	Adult  []models.CourseGroup
	Junior []models.CourseGroup
	Events []models.EventGroup
}

// Group buckets records into course and event groups.
func Group(records []models.SessionRecord) Grouped {
	type courseKey struct {
		category models.Category
		tier     models.SkillTier
	}

	courses := make(map[courseKey][]models.SessionRecord)
	events := make(map[string][]models.SessionRecord)
	var eventOrder []string

	for _, rec := range records {
		if rec.Category == models.CategoryEvent {
			if _, seen := events[rec.Name]; !seen {
				eventOrder = append(eventOrder, rec.Name)
			}
			events[rec.Name] = append(events[rec.Name], rec)
			continue
		}
		k := courseKey{rec.Category, rec.Tier}
		courses[k] = append(courses[k], rec)
	}

	var out Grouped
	for _, category := range []models.Category{models.CategoryAdult, models.CategoryJunior} {
		var groups []models.CourseGroup
		for _, tier := range models.OrderedTiers() {
			sessions, ok := courses[courseKey{category, tier}]
			if !ok {
				continue
			}
			sortSessions(sessions)
			groups = append(groups, models.CourseGroup{
				Category:     category,
				Tier:         tier,
				Sessions:     sessions,
				MinStartDate: sessions[0].StartDate,
			})
		}
		if category == models.CategoryAdult {
			out.Adult = groups
		} else {
			out.Junior = groups
		}
	}

	for _, name := range eventOrder {
		sessions := events[name]
		sortSessions(sessions)
		out.Events = append(out.Events, models.EventGroup{
			Name:     name,
			Sessions: sessions,
		})
	}

	return out
}

// sortSessions orders sessions by ascending start date, ties broken by
// venue name. Sorting happens on the typed values, never on formatted
// strings, and is stable so repeated runs produce identical order.
func sortSessions(sessions []models.SessionRecord) {
	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].StartDate.Equal(sessions[j].StartDate) {
			return sessions[i].StartDate.Before(sessions[j].StartDate)
		}
		return sessions[i].Venue < sessions[j].Venue
	})
}
