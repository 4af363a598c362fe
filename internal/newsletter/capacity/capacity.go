// internal/newsletter/capacity/capacity.go

// Package capacity derives the spots warning shown next to a session
// from its active participant count.
package capacity

import "github.com/dalemusser/courtpost/internal/domain/models"

// Participant-count thresholds. These are the single source of truth
// for capacity labels; rendering code must go through WarningFor.
const (
	LimitedAt = 7
	FullAt    = 10
)

// Thresholds allows the cutoffs to be overridden from configuration.
type Thresholds struct {
	Limited int
	Full    int
}

// Default returns the standard thresholds.
func Default() Thresholds {
	return Thresholds{Limited: LimitedAt, Full: FullAt}
}

// For classifies a participant count against the thresholds.
func (t Thresholds) For(count int) models.Warning {
	switch {
	case count >= t.Full:
		return models.WarningFull
	case count >= t.Limited:
		return models.WarningLimited
	}
	return models.WarningNone
}

// WarningFor classifies a participant count using the default
// thresholds.
func WarningFor(count int) models.Warning {
	return Default().For(count)
}
