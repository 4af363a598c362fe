// internal/domain/models/tiers.go
package models

import (
	"fmt"
	"strings"
)

// SkillTier is one of the four proficiency categories used to group
// adult and junior course sessions.
type SkillTier string

const (
	TierBeginner     SkillTier = "Beginner"
	TierImprover     SkillTier = "Improver"
	TierIntermediate SkillTier = "Intermediate"
	TierAdvanced     SkillTier = "Advanced"
)

// TierInfo carries the fixed display and routing metadata for a skill tier.
type TierInfo struct {
	Rank        int    // display ordering within a category section
	BookingCode int    // integer the booking site expects in its URL query
	Label       string // display label for section headings
	Icon        string // icon text shown next to the label
}

// tierTable is the registry for all four tiers.
//
// The booking codes are imposed by the downstream booking system and do
// NOT follow display order: Improver sorts second but books as 4. Keep
// this table exactly as observed; do not "fix" the numbering.
var tierTable = map[SkillTier]TierInfo{
	TierBeginner:     {Rank: 0, BookingCode: 1, Label: "Beginner", Icon: "🌱"},
	TierImprover:     {Rank: 1, BookingCode: 4, Label: "Improver", Icon: "🎾"},
	TierIntermediate: {Rank: 2, BookingCode: 2, Label: "Intermediate", Icon: "🔥"},
	TierAdvanced:     {Rank: 3, BookingCode: 3, Label: "Advanced", Icon: "🏆"},
}

// ErrUnknownTier is returned when a tier is not in the registry. This
// indicates a table mismatch and is fatal for the invocation.
var ErrUnknownTier = fmt.Errorf("unknown skill tier")

// OrderedTiers returns the four tiers in display order.
func OrderedTiers() []SkillTier {
	return []SkillTier{TierBeginner, TierImprover, TierIntermediate, TierAdvanced}
}

// TierRank returns the display rank for ordering tier sections.
func TierRank(t SkillTier) (int, error) {
	info, ok := tierTable[t]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, string(t))
	}
	return info.Rank, nil
}

// TierBookingCode returns the booking-site code used in outbound URLs.
func TierBookingCode(t SkillTier) (int, error) {
	info, ok := tierTable[t]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, string(t))
	}
	return info.BookingCode, nil
}

// TierLabel returns the display label for a tier.
func TierLabel(t SkillTier) (string, error) {
	info, ok := tierTable[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, string(t))
	}
	return info.Label, nil
}

// TierIcon returns the icon text for a tier, or "" if unknown.
func TierIcon(t SkillTier) string {
	return tierTable[t].Icon
}

// ParseTier maps a raw CSV value to a SkillTier, case-insensitively.
func ParseTier(raw string) (SkillTier, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "beginner":
		return TierBeginner, true
	case "improver":
		return TierImprover, true
	case "intermediate":
		return TierIntermediate, true
	case "advanced":
		return TierAdvanced, true
	}
	return "", false
}

// ParseCategory maps a raw CSV value to a Category, case-insensitively.
func ParseCategory(raw string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "adult":
		return CategoryAdult, true
	case "junior":
		return CategoryJunior, true
	case "event":
		return CategoryEvent, true
	}
	return "", false
}
