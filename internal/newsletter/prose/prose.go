// internal/newsletter/prose/prose.go

// Package prose is the engine's boundary with the generative-text
// service. The assembler only ever sees the Generator interface plus a
// complete fallback table, so a missing API key, a timeout, or a bad
// response can never block newsletter generation.
package prose

import (
	"context"

	"github.com/dalemusser/courtpost/internal/domain/models"
)

// Section identifies a document-level prose context.
type Section string

const (
	SectionAdults  Section = "adults"
	SectionJuniors Section = "juniors"
	SectionEvents  Section = "events"
)

// Generator produces one piece of prose per context. Implementations
// may fail; callers are expected to wrap with WithFallback so failures
// degrade to fixed text.
type Generator interface {
	SubjectLine(ctx context.Context, newsletterText string) (string, error)
	PreviewText(ctx context.Context, newsletterText string) (string, error)
	Summary(ctx context.Context, newsletterText string) (string, error)
	SectionIntro(ctx context.Context, section Section) (string, error)
	TierDescription(ctx context.Context, tier models.SkillTier) (string, error)
	EventDescription(ctx context.Context, title, details string) (string, error)
}

// Fallback texts. The table must cover every context so a document can
// always be produced with no external calls at all.
const (
	FallbackSubjectLine = "🎾 New Courses Available!"
	FallbackPreviewText = "New courses and fun events this month"
	FallbackSummary     = "Check out what's coming up this month — from new tennis courses to help you improve your game!"
)

var fallbackSectionIntros = map[Section]string{
	SectionAdults:  "Perfect for players of all levels, our adult courses focus on technique, strategy, and match play.",
	SectionJuniors: "Fun and engaging courses for young players, using the LTA's colored ball progression system.",
	SectionEvents:  "Special sessions and events to enhance your tennis experience and meet other players.",
}

var fallbackTierDescriptions = map[models.SkillTier]string{
	models.TierBeginner:     "Perfect for those new to tennis or returning after a break.",
	models.TierImprover:     "For players who are confident rallying and ready to level up.",
	models.TierIntermediate: "For regular players wanting to refine technique and strategy.",
	models.TierAdvanced:     "For experienced players focusing on advanced techniques and match play.",
}

// Fallback is the no-external-call Generator. It never fails.
type Fallback struct{}

func (Fallback) SubjectLine(context.Context, string) (string, error) {
	return FallbackSubjectLine, nil
}

func (Fallback) PreviewText(context.Context, string) (string, error) {
	return FallbackPreviewText, nil
}

func (Fallback) Summary(context.Context, string) (string, error) {
	return FallbackSummary, nil
}

func (Fallback) SectionIntro(_ context.Context, section Section) (string, error) {
	if intro, ok := fallbackSectionIntros[section]; ok {
		return intro, nil
	}
	return "Join our tennis courses and improve your game!", nil
}

func (Fallback) TierDescription(_ context.Context, tier models.SkillTier) (string, error) {
	if desc, ok := fallbackTierDescriptions[tier]; ok {
		return desc, nil
	}
	return "Suitable for all levels.", nil
}

// EventDescription falls back to the staff member's own wording; the
// generator is only there to polish it.
func (Fallback) EventDescription(_ context.Context, _ string, details string) (string, error) {
	return details, nil
}

// withFallback wraps a Generator so every method degrades to the
// fallback table on error or empty output.
type withFallback struct {
	inner Generator
}

// WithFallback returns a Generator that never fails: any error or
// blank result from the wrapped generator is replaced by the fixed
// fallback for that context.
func WithFallback(g Generator) Generator {
	if g == nil {
		return Fallback{}
	}
	return withFallback{inner: g}
}

func pick(s string, err error, fallback func() string) (string, error) {
	if err != nil || s == "" {
		return fallback(), nil
	}
	return s, nil
}

func (w withFallback) SubjectLine(ctx context.Context, text string) (string, error) {
	s, err := w.inner.SubjectLine(ctx, text)
	return pick(s, err, func() string { return FallbackSubjectLine })
}

func (w withFallback) PreviewText(ctx context.Context, text string) (string, error) {
	s, err := w.inner.PreviewText(ctx, text)
	return pick(s, err, func() string { return FallbackPreviewText })
}

func (w withFallback) Summary(ctx context.Context, text string) (string, error) {
	s, err := w.inner.Summary(ctx, text)
	return pick(s, err, func() string { return FallbackSummary })
}

func (w withFallback) SectionIntro(ctx context.Context, section Section) (string, error) {
	s, err := w.inner.SectionIntro(ctx, section)
	return pick(s, err, func() string {
		intro, _ := Fallback{}.SectionIntro(ctx, section)
		return intro
	})
}

func (w withFallback) TierDescription(ctx context.Context, tier models.SkillTier) (string, error) {
	s, err := w.inner.TierDescription(ctx, tier)
	return pick(s, err, func() string {
		desc, _ := Fallback{}.TierDescription(ctx, tier)
		return desc
	})
}

func (w withFallback) EventDescription(ctx context.Context, title, details string) (string, error) {
	s, err := w.inner.EventDescription(ctx, title, details)
	return pick(s, err, func() string { return details })
}
