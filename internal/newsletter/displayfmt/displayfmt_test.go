package displayfmt

import (
	"errors"
	"testing"
	"time"
)

func mustClock(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func TestClock(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"18:00", "6pm"},
		{"09:30", "9:30am"},
		{"00:00", "12am"},
		{"12:00", "12pm"},
		{"12:15", "12:15pm"},
		{"00:05", "12:05am"},
		{"23:59", "11:59pm"},
		{"01:00", "1am"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Clock(mustClock(t, tt.in))
			if err != nil {
				t.Fatalf("Clock(%s) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Clock(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClock_ZeroValue(t *testing.T) {
	if _, err := Clock(time.Time{}); !errors.Is(err, ErrZeroValue) {
		t.Errorf("Clock(zero) error = %v, want ErrZeroValue", err)
	}
}

func TestClock_ParsedMidnightIsNotZero(t *testing.T) {
	// "00:00" parses to a year-0 value, which must still format.
	got, err := Clock(mustClock(t, "00:00"))
	if err != nil {
		t.Fatalf("Clock(00:00) error = %v", err)
	}
	if got != "12am" {
		t.Errorf("Clock(00:00) = %q, want 12am", got)
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-08-04", "4 Aug"},
		{"2025-07-27", "27 Jul"},
		{"2025-12-01", "1 Dec"},
	}

	for _, tt := range tests {
		d, err := time.Parse("2006-01-02", tt.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.in, err)
		}
		got, err := Date(d)
		if err != nil {
			t.Fatalf("Date(%s) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Date(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := Date(time.Time{}); !errors.Is(err, ErrZeroValue) {
		t.Errorf("Date(zero) error = %v, want ErrZeroValue", err)
	}
}

func TestWeekday(t *testing.T) {
	sunday, err := time.Parse("2006-01-02", "2025-07-27")
	if err != nil {
		t.Fatal(err)
	}

	got, err := Weekday(sunday, true)
	if err != nil {
		t.Fatalf("Weekday() error = %v", err)
	}
	if got != "Sundays" {
		t.Errorf("Weekday(plural) = %q, want Sundays", got)
	}

	got, err = Weekday(sunday, false)
	if err != nil {
		t.Fatalf("Weekday() error = %v", err)
	}
	if got != "Sunday" {
		t.Errorf("Weekday(singular) = %q, want Sunday", got)
	}
}
