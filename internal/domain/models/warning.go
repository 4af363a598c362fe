// internal/domain/models/warning.go
package models

// Warning is a capacity-based label derived from participant counts.
// It is computed, never stored.
type Warning int

const (
	WarningNone Warning = iota
	WarningLimited
	WarningFull
)

// Label returns the display text appended to session lines, or "" for
// WarningNone.
func (w Warning) Label() string {
	switch w {
	case WarningLimited:
		return "Limited spots!"
	case WarningFull:
		return "Full!"
	}
	return ""
}

// Max returns the more severe of two warnings. Severity follows the
// declaration order: None < Limited < Full.
func (w Warning) Max(other Warning) Warning {
	if other > w {
		return other
	}
	return w
}
