package assemble

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/courtpost/internal/domain/models"
	"github.com/dalemusser/courtpost/internal/newsletter/booking"
	"github.com/dalemusser/courtpost/internal/newsletter/capacity"
	"github.com/dalemusser/courtpost/internal/newsletter/grouping"
)

func session(t *testing.T, name string, cat models.Category, tier models.SkillTier, venue, start, clock string, participants int) models.SessionRecord {
	t.Helper()
	d, err := time.Parse("2006-01-02", start)
	if err != nil {
		t.Fatal(err)
	}
	tm, err := time.Parse("15:04", clock)
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

func testAssembler() Assembler {
	return New(booking.New(""), capacity.Default(), nil)
}

func sampleInput(t *testing.T) Input {
	t.Helper()
	records := []models.SessionRecord{
		session(t, "Adult Beginner", models.CategoryAdult, models.TierBeginner, "Belair Park", "2025-07-27", "18:00", 8),
		session(t, "Adult Advanced", models.CategoryAdult, models.TierAdvanced, "Dulwich Park", "2025-08-04", "19:00", 3),
		session(t, "Junior Red", models.CategoryJunior, models.TierBeginner, "Dulwich Park", "2025-08-04", "09:30", 11),
	}
	return Input{
		Groups: grouping.Group(records),
		Events: []models.EventInput{{
			Key:     "manual-1",
			Title:   "Club Tournament",
			Details: "Sunday 10am at Belair Park",
			URL:     "https://example.com/signup",
		}},
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	a := testAssembler()
	ctx := context.Background()
	in := sampleInput(t)

	doc1, manifest1, err := a.Assemble(ctx, in)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	doc2, manifest2, err := a.Assemble(ctx, in)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if doc1.HTML != doc2.HTML {
		t.Error("Assemble() HTML differs between identical runs")
	}
	if doc1.Subject != doc2.Subject || doc1.PreviewText != doc2.PreviewText || doc1.Summary != doc2.Summary {
		t.Error("Assemble() prose differs between identical runs")
	}
	if len(manifest1) != len(manifest2) {
		t.Fatalf("manifest lengths differ: %d vs %d", len(manifest1), len(manifest2))
	}
	for i := range manifest1 {
		if manifest1[i] != manifest2[i] {
			t.Errorf("manifest[%d] differs between runs", i)
		}
	}
}

func TestAssemble_SessionLine(t *testing.T) {
	a := testAssembler()
	doc, _, err := a.Assemble(context.Background(), sampleInput(t))
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	want := "<li>Sundays 6pm @ Belair Park — 6 weeks starting 27 Jul <strong>(Limited spots!)</strong></li>"
	if !strings.Contains(doc.HTML, want) {
		t.Errorf("HTML missing session line:\n%s", want)
	}

	// 3 participants is under the warning threshold.
	if !strings.Contains(doc.HTML, "<li>Mondays 7pm @ Dulwich Park — 6 weeks starting 4 Aug</li>") {
		t.Error("HTML missing unwarned session line")
	}

	// 11 participants is full.
	if !strings.Contains(doc.HTML, "<strong>(Full!)</strong>") {
		t.Error("HTML missing full warning")
	}
}

func TestAssemble_WrapperAndProse(t *testing.T) {
	a := testAssembler()
	doc, _, err := a.Assemble(context.Background(), sampleInput(t))
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if !strings.HasPrefix(doc.HTML, wrapperOpen) {
		t.Error("HTML does not start with the newsletter wrapper")
	}
	if !strings.HasSuffix(doc.HTML, "</div>") {
		t.Error("HTML does not close the wrapper")
	}

	// Fallback prose fills subject, preview, and summary.
	if doc.Subject == "" || doc.PreviewText == "" || doc.Summary == "" {
		t.Errorf("prose not filled: subject=%q preview=%q summary=%q", doc.Subject, doc.PreviewText, doc.Summary)
	}
	if !strings.Contains(doc.HTML, "<h1>"+doc.Subject+"</h1>") {
		t.Error("HTML missing subject heading")
	}
}

func TestAssemble_SubjectOverride(t *testing.T) {
	a := testAssembler()
	in := sampleInput(t)
	in.Subject = "July Courses & <Events>"

	doc, _, err := a.Assemble(context.Background(), in)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if doc.Subject != "July Courses & <Events>" {
		t.Errorf("Subject = %q, want override kept verbatim", doc.Subject)
	}
	if !strings.Contains(doc.HTML, "<h1>July Courses &amp; &lt;Events&gt;</h1>") {
		t.Error("subject heading not escaped")
	}
}

func TestAssemble_SectionsAndHeadings(t *testing.T) {
	a := testAssembler()
	doc, _, err := a.Assemble(context.Background(), sampleInput(t))
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	for _, want := range []string{
		"<h2>Adult Courses</h2>",
		"<h2>Term Time Junior Courses</h2>",
		"<h3>🌱 Beginner</h3>",
		"<h3>🏆 Advanced</h3>",
		"<h2>Club Tournament</h2>",
		"<p><strong>Age Groups:</strong></p>",
		"<li>Junior Red</li>",
	} {
		if !strings.Contains(doc.HTML, want) {
			t.Errorf("HTML missing %q", want)
		}
	}

	// Beginner section renders before Advanced.
	if strings.Index(doc.HTML, "🌱 Beginner") > strings.Index(doc.HTML, "🏆 Advanced") {
		t.Error("tier sections out of rank order")
	}
}

func TestAssemble_BookingButtons(t *testing.T) {
	a := testAssembler()
	doc, _, err := a.Assemble(context.Background(), sampleInput(t))
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	if !strings.Contains(doc.HTML, "skill-level%5B%5D=1") {
		t.Error("HTML missing beginner booking code")
	}
	if !strings.Contains(doc.HTML, `class="cta-button">Book Beginner</a>`) {
		t.Error("HTML missing adult beginner CTA")
	}
	if !strings.Contains(doc.HTML, `href="https://example.com/signup" class="cta-button">Book Your Spot</a>`) {
		t.Error("HTML missing event CTA")
	}
}

func TestAssemble_BlockOrder(t *testing.T) {
	a := testAssembler()
	ctx := context.Background()
	in := sampleInput(t)

	// Default: canonical order.
	doc, _, err := a.Assemble(ctx, in)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	keys := blockKeys(doc)
	want := []string{BlockAdults, BlockJuniors, "manual-1"}
	if !equalKeys(keys, want) {
		t.Errorf("default block order = %v, want %v", keys, want)
	}

	// Caller order wins; unknown keys are dropped; unmentioned blocks
	// are appended.
	in.Order = []string{"manual-1", "nonexistent", BlockAdults}
	doc, _, err = a.Assemble(ctx, in)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	keys = blockKeys(doc)
	want = []string{"manual-1", BlockAdults, BlockJuniors}
	if !equalKeys(keys, want) {
		t.Errorf("custom block order = %v, want %v", keys, want)
	}
}

func blockKeys(doc models.Document) []string {
	var keys []string
	for _, b := range doc.Blocks {
		keys = append(keys, b.Key)
	}
	return keys
}

func equalKeys(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestAssemble_Manifest(t *testing.T) {
	a := testAssembler()
	_, manifest, err := a.Assemble(context.Background(), sampleInput(t))
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	byKey := make(map[string]models.ManifestEntry, len(manifest))
	for _, e := range manifest {
		byKey[e.Key] = e
	}

	adult, ok := byKey["adult:beginner"]
	if !ok {
		t.Fatalf("manifest missing adult:beginner, got %v", manifest)
	}
	if adult.Kind != "courses" || adult.Warning != "Limited spots!" || adult.Sessions != 1 {
		t.Errorf("adult:beginner entry = %+v", adult)
	}
	if !strings.Contains(adult.BookingURL, "skill-level%5B%5D=1") {
		t.Errorf("adult:beginner BookingURL = %q", adult.BookingURL)
	}

	junior, ok := byKey["junior:beginner"]
	if !ok {
		t.Fatalf("manifest missing junior:beginner")
	}
	if junior.Warning != "Full!" {
		t.Errorf("junior:beginner Warning = %q, want Full!", junior.Warning)
	}

	event, ok := byKey["manual-1"]
	if !ok {
		t.Fatalf("manifest missing manual event")
	}
	if event.Kind != "event" || event.BookingURL != "https://example.com/signup" {
		t.Errorf("manual event entry = %+v", event)
	}
}

func TestAssemble_EventGroupFromCSV(t *testing.T) {
	a := testAssembler()
	records := []models.SessionRecord{
		session(t, "Open Day", models.CategoryEvent, "", "Belair Park", "2025-08-10", "10:00", 2),
	}
	groups := grouping.Group(records)
	groups.Events[0].BookingURL = "https://example.com/open-day"
	groups.Events[0].Description = "Come and try tennis for free."

	doc, manifest, err := a.Assemble(context.Background(), Input{Groups: groups})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	// Events use the singular weekday.
	if !strings.Contains(doc.HTML, "<li>Sunday 10am @ Belair Park — 6 weeks starting 10 Aug</li>") {
		t.Errorf("HTML missing event session line:\n%s", doc.HTML)
	}
	if !strings.Contains(doc.HTML, "Come and try tennis for free.") {
		t.Error("HTML missing event description")
	}
	if len(manifest) != 1 || manifest[0].Key != EventBlockKey("Open Day") {
		t.Errorf("manifest = %v", manifest)
	}
}

func TestAssemble_EventWithoutURLHasNoCTA(t *testing.T) {
	a := testAssembler()
	records := []models.SessionRecord{
		session(t, "Social Night", models.CategoryEvent, "", "Belair Park", "2025-08-10", "19:00", 2),
	}

	doc, _, err := a.Assemble(context.Background(), Input{Groups: grouping.Group(records)})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if strings.Contains(doc.HTML, "Book Your Spot") {
		t.Error("event without a link should have no CTA")
	}
}

func TestAssemble_EventDescriptionKeepsLineBreaks(t *testing.T) {
	a := testAssembler()
	records := []models.SessionRecord{
		session(t, "Open Day", models.CategoryEvent, "", "Belair Park", "2025-08-10", "10:00", 2),
	}
	groups := grouping.Group(records)
	groups.Events[0].Description = "Free taster sessions.\nRackets provided."

	doc, _, err := a.Assemble(context.Background(), Input{Groups: groups})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if !strings.Contains(doc.HTML, "<p>Free taster sessions.<br>Rackets provided.</p>") {
		t.Errorf("plain-text description not paragraph-wrapped:\n%s", doc.HTML)
	}
}

func TestAssemble_SanitizesManualEventDetails(t *testing.T) {
	a := testAssembler()
	in := Input{
		Events: []models.EventInput{{
			Key:     "manual-1",
			Title:   "Tournament",
			Details: `Great fun<script>alert("x")</script>`,
		}},
	}

	doc, _, err := a.Assemble(context.Background(), in)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if strings.Contains(doc.HTML, "<script>") {
		t.Error("event details not sanitized")
	}
	if !strings.Contains(doc.HTML, "Great fun") {
		t.Error("event details dropped entirely")
	}
}
