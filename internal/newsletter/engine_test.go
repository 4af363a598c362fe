package newsletter

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dalemusser/courtpost/internal/domain/models"
	"github.com/dalemusser/courtpost/internal/newsletter/booking"
	"github.com/dalemusser/courtpost/internal/newsletter/capacity"
	"github.com/dalemusser/courtpost/internal/newsletter/csvdata"
)

const sampleCSV = `Name,Type,Skill Level,Venue,Start Date,Time,Duration Text,Active Participants
Adult Beginner Course,Adult,Beginner,Belair Park,2025-07-27,18:00,6 weeks,8
Adult Intermediate Course,Adult,Intermediate,Dulwich Park,2025-08-04,19:00,6 weeks,3
Junior Red Course,Junior,Beginner,Dulwich Park,2025-08-04,09:30,8 weeks,11
Club Tournament,Event,,Belair Park,2025-08-10,10:00,1 day,5
`

func TestEngine_BuildFromCSV(t *testing.T) {
	parsed, err := csvdata.ParseSessions(strings.NewReader(sampleCSV), csvdata.DefaultParseOptions())
	if err != nil {
		t.Fatalf("ParseSessions() error = %v", err)
	}
	if parsed.HasErrors() {
		t.Fatalf("unexpected row errors: %v", parsed.Errors)
	}

	e := New(booking.New(""), capacity.Default(), nil)
	doc, manifest, err := e.Build(context.Background(), BuildInput{
		Records: parsed.Records,
		Events: []models.EventInput{{
			Key:     "manual-1",
			Title:   "Summer Social",
			Details: "Friday 7pm at the clubhouse",
			URL:     "https://example.com/social",
		}},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// Fallback prose, since no generator is configured.
	if doc.Subject != "🎾 New Courses Available!" {
		t.Errorf("Subject = %q, want fallback", doc.Subject)
	}
	if doc.PreviewText == "" || doc.Summary == "" {
		t.Error("preview and summary should be filled from the fallback table")
	}

	for _, want := range []string{
		"<h2>Adult Courses</h2>",
		"<h2>Term Time Junior Courses</h2>",
		"<li>Sundays 6pm @ Belair Park — 6 weeks starting 27 Jul <strong>(Limited spots!)</strong></li>",
		"<li>Mondays 7pm @ Dulwich Park — 6 weeks starting 4 Aug</li>",
		"<strong>(Full!)</strong>",
		"<h2>Club Tournament</h2>",
		"<h2>Summer Social</h2>",
		"Friday 7pm at the clubhouse",
	} {
		if !strings.Contains(doc.HTML, want) {
			t.Errorf("HTML missing %q", want)
		}
	}

	// The CSV event carries no link, so no booking URL appears for it.
	var keys []string
	for _, e := range manifest {
		keys = append(keys, e.Key)
	}
	wantKeys := []string{"adult:beginner", "adult:intermediate", "junior:beginner", "event:Club Tournament", "manual-1"}
	if len(keys) != len(wantKeys) {
		t.Fatalf("manifest keys = %v, want %v", keys, wantKeys)
	}
	for i := range wantKeys {
		if keys[i] != wantKeys[i] {
			t.Errorf("manifest[%d].Key = %q, want %q", i, keys[i], wantKeys[i])
		}
	}
}

func TestEngine_BuildDeterministic(t *testing.T) {
	parsed, err := csvdata.ParseSessions(strings.NewReader(sampleCSV), csvdata.DefaultParseOptions())
	if err != nil {
		t.Fatalf("ParseSessions() error = %v", err)
	}

	e := New(booking.New(""), capacity.Default(), nil)
	in := BuildInput{Records: parsed.Records}

	doc1, _, err := e.Build(context.Background(), in)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	doc2, _, err := e.Build(context.Background(), in)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if doc1.HTML != doc2.HTML {
		t.Error("Build() output differs between identical runs")
	}
}

func TestExport(t *testing.T) {
	doc := models.Document{
		Subject:     "July Courses",
		PreviewText: "New courses this month",
		HTML:        "<div>body</div>",
	}

	raw, err := json.Marshal(Export(doc))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got["subject"] != "July Courses" || got["content"] != "<div>body</div>" || got["preview_text"] != "New courses this month" {
		t.Errorf("Export payload = %v", got)
	}
}
