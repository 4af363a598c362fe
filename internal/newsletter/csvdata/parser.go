// internal/newsletter/csvdata/parser.go

// Package csvdata parses the booking system's CSV export of scheduled
// courses and sessions into typed session records.
//
// Validation is row-isolating: a malformed row becomes a RowError in
// the result's report and the remaining rows still parse. The whole
// input fails only when no valid rows remain, or when the caller asks
// for strict mode.
package csvdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/courtpost/internal/domain/models"
)

// Required header columns, exactly as the booking system exports them.
const (
	ColName         = "Name"
	ColType         = "Type"
	ColSkillLevel   = "Skill Level"
	ColVenue        = "Venue"
	ColStartDate    = "Start Date"
	ColTime         = "Time"
	ColDurationText = "Duration Text"
	ColParticipants = "Active Participants"
)

var requiredColumns = []string{
	ColName, ColType, ColSkillLevel, ColVenue,
	ColStartDate, ColTime, ColDurationText, ColParticipants,
}

// Accepted input layouts. Export dates are day-first when slashed.
var dateLayouts = []string{"2006-01-02", "02/01/2006"}

const timeLayout = "15:04"

var (
	// ErrNoValidRows means the file parsed but contained no usable rows.
	ErrNoValidRows = errors.New("no valid session rows in CSV")

	// ErrRowsRejected is returned in strict mode when any row failed
	// validation.
	ErrRowsRejected = errors.New("CSV contains invalid rows")

	// ErrTooManyRows is returned when MaxRows is exceeded.
	ErrTooManyRows = errors.New("CSV exceeds the row limit")
)

// RowError records a single row that failed validation, with its
// 1-based line number in the file and the raw cells for display.
type RowError struct {
	Line   int
	Reason string
	Raw    []string
}

// ParseOptions controls parsing behavior.
type ParseOptions struct {
	// Strict rejects the entire input if any row fails validation.
	// When false, failed rows are collected into Result.Errors and
	// valid rows still parse.
	Strict bool

	// MaxRows limits the number of data rows (0 = no limit).
	MaxRows int
}

// DefaultParseOptions returns the options used by the upload handler.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{MaxRows: MaxRows}
}

// Result holds the validated records and the per-row error report.
type Result struct {
	Records []models.SessionRecord
	Errors  []RowError
}

// HasErrors reports whether any row failed validation.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// ParseSessions reads the CSV export and validates each row.
//
// The first row must be the header; columns are matched by name
// (case-insensitive) so column order does not matter. A missing
// required column fails the whole file.
func ParseSessions(r io.Reader, opts ParseOptions) (Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow ragged rows; validated per row
	reader.TrimLeadingSpace = true

	var result Result

	header, err := reader.Read()
	if err == io.EOF {
		return result, ErrNoValidRows
	}
	if err != nil {
		return result, err
	}

	// Handle BOM in first cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	cols, err := mapHeader(header)
	if err != nil {
		return result, err
	}

	lineNum := 1
	rows := 0
	for {
		rec, err := reader.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, RowError{
				Line:   lineNum,
				Reason: err.Error(),
			})
			continue
		}
		if isEmptyRow(rec) {
			continue
		}

		rows++
		if opts.MaxRows > 0 && rows > opts.MaxRows {
			return result, ErrTooManyRows
		}

		record, rowErr := parseRow(cols, rec, lineNum)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		result.Records = append(result.Records, *record)
	}

	if len(result.Records) == 0 {
		return result, ErrNoValidRows
	}
	if opts.Strict && result.HasErrors() {
		return result, fmt.Errorf("%w: %d row(s) failed validation", ErrRowsRejected, len(result.Errors))
	}
	return result, nil
}

// mapHeader resolves the column index for each required column.
func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(requiredColumns))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	idx := make(map[string]int, len(requiredColumns))
	var missing []string
	for _, want := range requiredColumns {
		i, ok := cols[strings.ToLower(want)]
		if !ok {
			missing = append(missing, want)
			continue
		}
		idx[want] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func isEmptyRow(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// cell returns the trimmed value of a named column, or "" when the row
// is too short to hold it.
func cell(cols map[string]int, rec []string, name string) string {
	i := cols[name]
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// parseRow validates a single data row.
func parseRow(cols map[string]int, rec []string, line int) (*models.SessionRecord, *RowError) {
	fail := func(format string, args ...any) (*models.SessionRecord, *RowError) {
		return nil, &RowError{Line: line, Reason: fmt.Sprintf(format, args...), Raw: rec}
	}

	name := cell(cols, rec, ColName)
	if name == "" {
		return fail("missing name")
	}

	rawType := cell(cols, rec, ColType)
	category, ok := models.ParseCategory(rawType)
	if !ok {
		return fail("unrecognized type %q (allowed: adult, junior, event)", rawType)
	}

	rawTier := cell(cols, rec, ColSkillLevel)
	var tier models.SkillTier
	if category == models.CategoryEvent {
		if rawTier != "" {
			return fail("skill level must be empty for events, got %q", rawTier)
		}
	} else {
		tier, ok = models.ParseTier(rawTier)
		if !ok {
			return fail("unrecognized skill level %q (allowed: Beginner, Improver, Intermediate, Advanced)", rawTier)
		}
	}

	venue := cell(cols, rec, ColVenue)
	if venue == "" {
		return fail("missing venue")
	}

	startDate, err := parseDate(cell(cols, rec, ColStartDate))
	if err != nil {
		return fail("unparseable start date %q", cell(cols, rec, ColStartDate))
	}

	startTime, err := time.Parse(timeLayout, cell(cols, rec, ColTime))
	if err != nil {
		return fail("unparseable time %q (expected HH:MM)", cell(cols, rec, ColTime))
	}

	rawCount := cell(cols, rec, ColParticipants)
	count, err := strconv.Atoi(rawCount)
	if err != nil {
		return fail("active participants %q is not a number", rawCount)
	}
	if count < 0 {
		return fail("active participants must not be negative, got %d", count)
	}

	return &models.SessionRecord{
		Name:               name,
		Category:           category,
		Tier:               tier,
		Venue:              venue,
		StartDate:          startDate,
		StartTime:          startTime,
		DurationText:       cell(cols, rec, ColDurationText),
		ActiveParticipants: count,
	}, nil
}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
