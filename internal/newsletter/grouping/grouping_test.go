package grouping

import (
	"testing"
	"time"

	"github.com/dalemusser/courtpost/internal/domain/models"
)

func rec(t *testing.T, name string, cat models.Category, tier models.SkillTier, venue, start string, participants int) models.SessionRecord {
	t.Helper()
	d, err := time.Parse("2006-01-02", start)
	if err != nil {
		t.Fatal(err)
	}
	tm, err := time.Parse("15:04", "18:00")
	if err != nil {
		t.Fatal(err)
	}
	return models.SessionRecord{
		Name:               name,
		Category:           cat,
		Tier:               tier,
		Venue:              venue,
		StartDate:          d,
		StartTime:          tm,
		DurationText:       "6 weeks",
		ActiveParticipants: participants,
	}
}

func TestGroup_BucketsByCategoryAndTier(t *testing.T) {
	records := []models.SessionRecord{
		rec(t, "Adult Beginner", models.CategoryAdult, models.TierBeginner, "Belair Park", "2025-07-27", 3),
		rec(t, "Adult Advanced", models.CategoryAdult, models.TierAdvanced, "Belair Park", "2025-07-28", 5),
		rec(t, "Junior Red", models.CategoryJunior, models.TierBeginner, "Dulwich Park", "2025-08-04", 8),
		rec(t, "Club Tournament", models.CategoryEvent, "", "Belair Park", "2025-08-10", 12),
	}

	g := Group(records)

	if len(g.Adult) != 2 {
		t.Fatalf("got %d adult groups, want 2", len(g.Adult))
	}
	if len(g.Junior) != 1 {
		t.Fatalf("got %d junior groups, want 1", len(g.Junior))
	}
	if len(g.Events) != 1 {
		t.Fatalf("got %d event groups, want 1", len(g.Events))
	}

	// Every record lands in exactly one group.
	total := 0
	for _, cg := range g.Adult {
		total += len(cg.Sessions)
	}
	for _, cg := range g.Junior {
		total += len(cg.Sessions)
	}
	for _, eg := range g.Events {
		total += len(eg.Sessions)
	}
	if total != len(records) {
		t.Errorf("grouped %d sessions, want %d", total, len(records))
	}
}

func TestGroup_TierOrder(t *testing.T) {
	// Input arrives in reverse display order; output must be rank order.
	records := []models.SessionRecord{
		rec(t, "A", models.CategoryAdult, models.TierAdvanced, "Belair Park", "2025-07-27", 0),
		rec(t, "B", models.CategoryAdult, models.TierIntermediate, "Belair Park", "2025-07-27", 0),
		rec(t, "C", models.CategoryAdult, models.TierImprover, "Belair Park", "2025-07-27", 0),
		rec(t, "D", models.CategoryAdult, models.TierBeginner, "Belair Park", "2025-07-27", 0),
	}

	g := Group(records)
	want := []models.SkillTier{
		models.TierBeginner, models.TierImprover,
		models.TierIntermediate, models.TierAdvanced,
	}
	if len(g.Adult) != len(want) {
		t.Fatalf("got %d groups, want %d", len(g.Adult), len(want))
	}
	for i, tier := range want {
		if g.Adult[i].Tier != tier {
			t.Errorf("group[%d].Tier = %q, want %q", i, g.Adult[i].Tier, tier)
		}
	}
}

func TestGroup_SessionOrderAndMinStartDate(t *testing.T) {
	records := []models.SessionRecord{
		rec(t, "Later", models.CategoryAdult, models.TierBeginner, "Dulwich Park", "2025-08-10", 0),
		rec(t, "Earlier", models.CategoryAdult, models.TierBeginner, "Belair Park", "2025-07-27", 0),
		rec(t, "SameDayB", models.CategoryAdult, models.TierBeginner, "Belair Park", "2025-08-10", 0),
	}

	g := Group(records)
	if len(g.Adult) != 1 {
		t.Fatalf("got %d groups, want 1", len(g.Adult))
	}
	sessions := g.Adult[0].Sessions

	if sessions[0].Venue != "Belair Park" || !sessions[0].StartDate.Equal(records[1].StartDate) {
		t.Errorf("first session = %s %s, want earliest date", sessions[0].Venue, sessions[0].StartDate)
	}
	// Same-date ties break on venue.
	if sessions[1].Venue != "Belair Park" || sessions[2].Venue != "Dulwich Park" {
		t.Errorf("tie-break order = %s, %s; want Belair before Dulwich", sessions[1].Venue, sessions[2].Venue)
	}

	if !g.Adult[0].MinStartDate.Equal(records[1].StartDate) {
		t.Errorf("MinStartDate = %s, want %s", g.Adult[0].MinStartDate, records[1].StartDate)
	}
}

func TestGroup_EventsKeyedByNameInInputOrder(t *testing.T) {
	records := []models.SessionRecord{
		rec(t, "Tournament", models.CategoryEvent, "", "Belair Park", "2025-08-10", 2),
		rec(t, "Open Day", models.CategoryEvent, "", "Dulwich Park", "2025-08-03", 4),
		rec(t, "Tournament", models.CategoryEvent, "", "Belair Park", "2025-08-17", 6),
	}

	g := Group(records)
	if len(g.Events) != 2 {
		t.Fatalf("got %d event groups, want 2", len(g.Events))
	}
	if g.Events[0].Name != "Tournament" || g.Events[1].Name != "Open Day" {
		t.Errorf("event order = %q, %q; want first-seen order", g.Events[0].Name, g.Events[1].Name)
	}
	if len(g.Events[0].Sessions) != 2 {
		t.Errorf("Tournament has %d sessions, want 2", len(g.Events[0].Sessions))
	}
}

func TestGroup_EmptyInput(t *testing.T) {
	g := Group(nil)
	if len(g.Adult) != 0 || len(g.Junior) != 0 || len(g.Events) != 0 {
		t.Error("Group(nil) should produce no groups")
	}
}

func TestGroupWarning(t *testing.T) {
	records := []models.SessionRecord{
		rec(t, "A", models.CategoryAdult, models.TierBeginner, "Belair Park", "2025-07-27", 3),
		rec(t, "B", models.CategoryAdult, models.TierBeginner, "Dulwich Park", "2025-07-27", 11),
	}

	g := Group(records)
	classify := func(count int) models.Warning {
		switch {
		case count >= 10:
			return models.WarningFull
		case count >= 7:
			return models.WarningLimited
		}
		return models.WarningNone
	}
	if got := g.Adult[0].Warning(classify); got != models.WarningFull {
		t.Errorf("group warning = %v, want the most severe session warning", got)
	}
}
