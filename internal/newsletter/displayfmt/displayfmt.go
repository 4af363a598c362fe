// internal/newsletter/displayfmt/displayfmt.go

// Package displayfmt renders dates and times of day for newsletter
// display. Formatting is locale-fixed and display-only; all ordering
// happens upstream on the typed values before they reach this package.
package displayfmt

import (
	"errors"
	"fmt"
	"time"
)

// ErrZeroValue means a zero time reached the formatter. Values are
// validated by the parser, so this indicates an upstream invariant
// violation rather than bad user input.
var ErrZeroValue = errors.New("displayfmt: zero time value")

// Clock renders a time of day in 12-hour form with a lowercase am/pm
// suffix and no leading zero: 18:00 -> "6pm", 09:30 -> "9:30am",
// 00:00 -> "12am", 12:00 -> "12pm". Minutes are omitted on the hour.
//
// A value parsed from "00:00" is not the zero time.Time (the parser's
// missing date fields land in year 0), so midnight formats normally.
func Clock(t time.Time) (string, error) {
	if t.IsZero() {
		return "", ErrZeroValue
	}

	hour := t.Hour()
	minute := t.Minute()

	suffix := "am"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		suffix = "pm"
	case hour > 12:
		display = hour - 12
		suffix = "pm"
	}

	if minute == 0 {
		return fmt.Sprintf("%d%s", display, suffix), nil
	}
	return fmt.Sprintf("%d:%02d%s", display, minute, suffix), nil
}

// Date renders a calendar date as day-of-month plus abbreviated month
// name: 2025-08-04 -> "4 Aug".
func Date(d time.Time) (string, error) {
	if d.IsZero() {
		return "", ErrZeroValue
	}
	return fmt.Sprintf("%d %s", d.Day(), d.Format("Jan")), nil
}

// Weekday renders the weekday name of a date, pluralised for weekly
// course sessions ("Sundays") and singular for one-off events.
func Weekday(d time.Time, plural bool) (string, error) {
	if d.IsZero() {
		return "", ErrZeroValue
	}
	name := d.Weekday().String()
	if plural {
		return name + "s", nil
	}
	return name, nil
}
