// internal/newsletter/assemble/assemble.go

// Package assemble combines grouped sessions, capacity warnings,
// formatted dates, booking links, and prose into the final newsletter
// document. Given identical inputs the output is byte-identical across
// runs; every non-deterministic concern (clocks, network) lives with
// the caller.
package assemble

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/dalemusser/courtpost/internal/domain/models"
	"github.com/dalemusser/courtpost/internal/newsletter/booking"
	"github.com/dalemusser/courtpost/internal/newsletter/capacity"
	"github.com/dalemusser/courtpost/internal/newsletter/displayfmt"
	"github.com/dalemusser/courtpost/internal/newsletter/grouping"
	"github.com/dalemusser/courtpost/internal/newsletter/htmlsanitize"
	"github.com/dalemusser/courtpost/internal/newsletter/prose"
)

// Top-level block keys. CSV-derived event blocks are keyed
// "event:<name>"; manually entered events use their assigned key.
const (
	BlockAdults  = "adults"
	BlockJuniors = "juniors"

	eventKeyPrefix = "event:"
)

// EventBlockKey returns the block key for a CSV-derived event group.
func EventBlockKey(name string) string { return eventKeyPrefix + name }

// wrapperOpen is the email-client-friendly container the whole
// newsletter renders into, kept exactly as the mailer expects it.
const wrapperOpen = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; width: 100%; box-sizing: border-box; text-align: left;">`

// juniorAgeGroups explains the colored-ball progression shown in the
// junior section. Order matters for deterministic output.
var juniorAgeGroups = []string{
	"🔵 Blue (4–6) – New to tennis",
	"🔴 Red (6–8) – Rallying, volleying, serving",
	"🟠 Orange (8–11) - Hitting from mid-court and learning tactics. Great for beginners and improvers.",
	"🟢 Green (11–14) - Playing on full-size courts with standard balls. All levels welcome, with drills matched to ability.",
}

// Assembler renders newsletter documents. Prose must be a generator
// that cannot fail (wrap external ones with prose.WithFallback).
type Assembler struct {
	Booking  booking.Builder
	Capacity capacity.Thresholds
	Prose    prose.Generator
}

// New returns an Assembler with the given collaborators. A nil
// generator gets the fallback table.
func New(b booking.Builder, th capacity.Thresholds, g prose.Generator) Assembler {
	return Assembler{Booking: b, Capacity: th, Prose: prose.WithFallback(g)}
}

// Input is everything one assembly pass needs: the grouped records,
// manually entered events, the human-chosen top-level order, and
// optional subject/summary overrides ("" = ask the generator).
type Input struct {
	Groups  grouping.Grouped
	Events  []models.EventInput
	Order   []string
	Subject string
	Summary string
}

// Assemble renders the document and its manifest. Ordering within a
// category section is fixed by tier rank; only the top-level block
// order is caller-chosen. Blocks missing from Order are appended in
// canonical order so no group silently disappears.
func (a Assembler) Assemble(ctx context.Context, in Input) (models.Document, []models.ManifestEntry, error) {
	blocks := make(map[string]models.Block)
	manifests := make(map[string][]models.ManifestEntry)
	var canonical []string

	addBlock := func(b models.Block, m []models.ManifestEntry) {
		blocks[b.Key] = b
		manifests[b.Key] = m
		canonical = append(canonical, b.Key)
	}

	if len(in.Groups.Adult) > 0 {
		html, entries, err := a.courseSection(ctx, models.CategoryAdult, in.Groups.Adult)
		if err != nil {
			return models.Document{}, nil, err
		}
		addBlock(models.Block{Key: BlockAdults, Kind: "courses", HTML: html}, entries)
	}
	if len(in.Groups.Junior) > 0 {
		html, entries, err := a.courseSection(ctx, models.CategoryJunior, in.Groups.Junior)
		if err != nil {
			return models.Document{}, nil, err
		}
		addBlock(models.Block{Key: BlockJuniors, Kind: "courses", HTML: html}, entries)
	}
	for _, g := range in.Groups.Events {
		html, entry, err := a.eventGroupBlock(g)
		if err != nil {
			return models.Document{}, nil, err
		}
		addBlock(models.Block{Key: EventBlockKey(g.Name), Kind: "event", HTML: html},
			[]models.ManifestEntry{entry})
	}
	for _, ev := range in.Events {
		html, entry := a.manualEventBlock(ctx, ev)
		addBlock(models.Block{Key: ev.Key, Kind: "event", HTML: html},
			[]models.ManifestEntry{entry})
	}

	ordered := orderBlocks(in.Order, canonical)

	var doc models.Document
	var manifest []models.ManifestEntry
	var body []string
	for _, key := range ordered {
		b := blocks[key]
		doc.Blocks = append(doc.Blocks, b)
		manifest = append(manifest, manifests[key]...)
		body = append(body, b.HTML)
	}

	// Prose derived from the rendered body: subject, preview, summary.
	bodyText := prose.HTMLText(strings.Join(body, "\n"))

	doc.Subject = in.Subject
	if doc.Subject == "" {
		doc.Subject, _ = a.Prose.SubjectLine(ctx, bodyText)
	}
	doc.PreviewText, _ = a.Prose.PreviewText(ctx, bodyText)
	doc.Summary = in.Summary
	if doc.Summary == "" {
		doc.Summary, _ = a.Prose.Summary(ctx, bodyText)
	}

	var out []string
	out = append(out, wrapperOpen)
	if doc.Subject != "" {
		out = append(out, "<h1>"+template.HTMLEscapeString(doc.Subject)+"</h1>")
	}
	if doc.Summary != "" {
		out = append(out,
			`<div style="margin: 40px 0;">`,
			"<p>"+htmlsanitize.Sanitize(doc.Summary)+"</p>",
			"</div>")
	}
	out = append(out, body...)
	out = append(out, "</div>")
	doc.HTML = strings.Join(out, "\n")

	return doc, manifest, nil
}

// orderBlocks resolves the final block order: the caller's order with
// unknown keys dropped, then any blocks the caller didn't mention, in
// canonical order.
func orderBlocks(requested, canonical []string) []string {
	known := make(map[string]bool, len(canonical))
	for _, k := range canonical {
		known[k] = true
	}

	var out []string
	used := make(map[string]bool, len(canonical))
	for _, k := range requested {
		if known[k] && !used[k] {
			out = append(out, k)
			used[k] = true
		}
	}
	for _, k := range canonical {
		if !used[k] {
			out = append(out, k)
		}
	}
	return out
}

/*─────────────────────────────────────────────────────────────────────────────*
| Course sections                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func sectionTitle(c models.Category) string {
	if c == models.CategoryJunior {
		return "Term Time Junior Courses"
	}
	return "Adult Courses"
}

func sectionContext(c models.Category) prose.Section {
	if c == models.CategoryJunior {
		return prose.SectionJuniors
	}
	return prose.SectionAdults
}

// courseSection renders one category's section: heading, intro, then
// per-tier subsections in rank order, each with its session list and
// booking button. Groups arrive already tier-ordered from grouping.
func (a Assembler) courseSection(ctx context.Context, category models.Category, groups []models.CourseGroup) (string, []models.ManifestEntry, error) {
	var parts []string
	parts = append(parts, "<h2>"+sectionTitle(category)+"</h2>")

	intro, _ := a.Prose.SectionIntro(ctx, sectionContext(category))
	if intro != "" {
		parts = append(parts, "<p>"+htmlsanitize.Sanitize(intro)+"</p>")
	}

	if category == models.CategoryJunior {
		parts = append(parts, juniorExplanation(groups)...)
	}

	var entries []models.ManifestEntry
	for _, g := range groups {
		label, err := models.TierLabel(g.Tier)
		if err != nil {
			return "", nil, err
		}

		parts = append(parts, "<h3>"+models.TierIcon(g.Tier)+" "+label+"</h3>")

		desc, _ := a.Prose.TierDescription(ctx, g.Tier)
		if desc != "" {
			parts = append(parts, "<p>"+htmlsanitize.Sanitize(desc)+"</p>")
		}

		parts = append(parts, "<ul>")
		for _, s := range g.Sessions {
			line, err := a.sessionLine(s, true)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, line)
		}
		parts = append(parts, "</ul>")

		url, err := a.Booking.CourseURL(g)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, ctaButton(url, "Book "+label))

		entries = append(entries, models.ManifestEntry{
			Key:        fmt.Sprintf("%s:%s", category, strings.ToLower(label)),
			Kind:       "courses",
			Category:   category,
			Tier:       g.Tier,
			BookingURL: url,
			Warning:    g.Warning(a.Capacity.For).Label(),
			Sessions:   len(g.Sessions),
		})
	}

	return strings.Join(parts, "\n"), entries, nil
}

// juniorExplanation renders the colored-ball age-group list plus the
// course names on offer.
func juniorExplanation(groups []models.CourseGroup) []string {
	parts := []string{"<p><strong>Age Groups:</strong></p>", "<ul>"}
	for _, g := range juniorAgeGroups {
		parts = append(parts, "<li>"+g+"</li>")
	}
	parts = append(parts, "</ul>")

	var names []string
	seen := make(map[string]bool)
	for _, g := range groups {
		for _, s := range g.Sessions {
			if !seen[s.Name] {
				seen[s.Name] = true
				names = append(names, s.Name)
			}
		}
	}
	if len(names) > 0 {
		parts = append(parts, "<p><strong>Available Courses:</strong></p>", "<ul>")
		for _, n := range names {
			parts = append(parts, "<li>"+template.HTMLEscapeString(n)+"</li>")
		}
		parts = append(parts, "</ul>")
	}
	return parts
}

// sessionLine renders one session as a list item:
//
//	Sundays 6pm @ Belair Park — 6 weeks starting 27 Jul (Limited spots!)
//
// Courses use the pluralised weekday since they repeat weekly; events
// use the singular.
func (a Assembler) sessionLine(s models.SessionRecord, weekly bool) (string, error) {
	day, err := displayfmt.Weekday(s.StartDate, weekly)
	if err != nil {
		return "", err
	}
	clock, err := displayfmt.Clock(s.StartTime)
	if err != nil {
		return "", err
	}
	date, err := displayfmt.Date(s.StartDate)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("<li>")
	b.WriteString(day)
	b.WriteString(" ")
	b.WriteString(clock)
	b.WriteString(" @ ")
	b.WriteString(template.HTMLEscapeString(s.Venue))
	b.WriteString(" — ")
	b.WriteString(template.HTMLEscapeString(s.DurationText))
	b.WriteString(" starting ")
	b.WriteString(date)
	if w := a.Capacity.For(s.ActiveParticipants); w != models.WarningNone {
		b.WriteString(" <strong>(")
		b.WriteString(w.Label())
		b.WriteString(")</strong>")
	}
	b.WriteString("</li>")
	return b.String(), nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Event sections                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// eventGroupBlock renders a CSV-derived event group. The description
// and image are optional and externally supplied; the booking link, if
// present, is opaque.
func (a Assembler) eventGroupBlock(g models.EventGroup) (string, models.ManifestEntry, error) {
	var parts []string
	parts = append(parts, `<div style="margin: 40px 0;">`)
	parts = append(parts, "<h2>"+template.HTMLEscapeString(g.Name)+"</h2>")

	if g.ImageURL != "" {
		parts = append(parts, eventImage(g.ImageURL, g.Name))
	}
	if g.Description != "" {
		parts = append(parts, string(htmlsanitize.PrepareForDisplay(g.Description)))
	}

	if len(g.Sessions) > 0 {
		parts = append(parts, "<ul>")
		for _, s := range g.Sessions {
			line, err := a.sessionLine(s, false)
			if err != nil {
				return "", models.ManifestEntry{}, err
			}
			parts = append(parts, line)
		}
		parts = append(parts, "</ul>")
	}

	url := a.Booking.EventURL(g)
	if url != "" {
		parts = append(parts, ctaButton(url, "Book Your Spot"))
	}
	parts = append(parts, "</div>")

	warning := models.WarningNone
	for _, s := range g.Sessions {
		warning = warning.Max(a.Capacity.For(s.ActiveParticipants))
	}

	return strings.Join(parts, "\n"), models.ManifestEntry{
		Key:        EventBlockKey(g.Name),
		Kind:       "event",
		Category:   models.CategoryEvent,
		BookingURL: url,
		Warning:    warning.Label(),
		Sessions:   len(g.Sessions),
	}, nil
}

// manualEventBlock renders a staff-entered event. The description runs
// through the generator (which degrades to the staff wording) and is
// sanitized either way.
func (a Assembler) manualEventBlock(ctx context.Context, ev models.EventInput) (string, models.ManifestEntry) {
	var parts []string
	parts = append(parts, `<div style="margin: 40px 0;">`)
	parts = append(parts, "<h2>"+template.HTMLEscapeString(ev.Title)+"</h2>")

	if ev.ImageURL != "" {
		parts = append(parts, eventImage(ev.ImageURL, ev.Title))
	}

	desc, _ := a.Prose.EventDescription(ctx, ev.Title, ev.Details)
	if desc != "" {
		parts = append(parts, string(htmlsanitize.PrepareForDisplay(desc)))
	}

	if ev.URL != "" {
		parts = append(parts, ctaButton(ev.URL, "Book Your Spot"))
	}
	parts = append(parts, "</div>")

	return strings.Join(parts, "\n"), models.ManifestEntry{
		Key:        ev.Key,
		Kind:       "event",
		Category:   models.CategoryEvent,
		BookingURL: ev.URL,
	}
}

func eventImage(src, alt string) string {
	return fmt.Sprintf(`<img src="%s" alt="%s" style="width: 100%%; max-width: 600px; margin: 10px auto; display: block;" />`,
		template.HTMLEscapeString(src), template.HTMLEscapeString(alt))
}

func ctaButton(url, text string) string {
	return fmt.Sprintf(`<p style="text-align: center;"><a href="%s" class="cta-button">%s</a></p>`,
		template.HTMLEscapeString(url), template.HTMLEscapeString(text))
}
