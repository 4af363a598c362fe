// internal/app/features/builder/records.go
package builder

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dalemusser/courtpost/internal/domain/models"
)

// previewRecord is the JSON-serializable form of a validated session
// record, carried in a hidden form field between the preview and
// generate steps. Short keys keep the field compact.
type previewRecord struct {
	Name         string `json:"n"`
	Category     string `json:"c"`
	Tier         string `json:"t,omitempty"`
	Venue        string `json:"v"`
	Date         string `json:"d"`
	Time         string `json:"tm"`
	Duration     string `json:"du"`
	Participants int    `json:"p"`
}

const (
	recordDateLayout = "2006-01-02"
	recordTimeLayout = "15:04"
)

// encodeRecords serializes validated records for the hidden form field.
func encodeRecords(records []models.SessionRecord) (string, error) {
	out := make([]previewRecord, len(records))
	for i, rec := range records {
		out[i] = previewRecord{
			Name:         rec.Name,
			Category:     string(rec.Category),
			Tier:         string(rec.Tier),
			Venue:        rec.Venue,
			Date:         rec.StartDate.Format(recordDateLayout),
			Time:         rec.StartTime.Format(recordTimeLayout),
			Duration:     rec.DurationText,
			Participants: rec.ActiveParticipants,
		}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeRecords parses the hidden form field back into session records.
// The field is user-controlled, so every value is re-validated.
func DecodeRecords(raw string) ([]models.SessionRecord, error) {
	var rows []previewRecord
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, fmt.Errorf("invalid records payload: %w", err)
	}

	records := make([]models.SessionRecord, 0, len(rows))
	for i, row := range rows {
		category, ok := models.ParseCategory(row.Category)
		if !ok {
			return nil, fmt.Errorf("record %d: unknown category %q", i+1, row.Category)
		}

		var tier models.SkillTier
		if category.IsCourse() {
			tier, ok = models.ParseTier(row.Tier)
			if !ok {
				return nil, fmt.Errorf("record %d: unknown skill tier %q", i+1, row.Tier)
			}
		} else if row.Tier != "" {
			return nil, fmt.Errorf("record %d: events must not carry a skill tier", i+1)
		}

		if row.Name == "" {
			return nil, fmt.Errorf("record %d: missing name", i+1)
		}
		if row.Venue == "" {
			return nil, fmt.Errorf("record %d: missing venue", i+1)
		}
		if row.Participants < 0 {
			return nil, fmt.Errorf("record %d: negative participant count", i+1)
		}

		date, err := time.Parse(recordDateLayout, row.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d: invalid date %q", i+1, row.Date)
		}
		clock, err := time.Parse(recordTimeLayout, row.Time)
		if err != nil {
			return nil, fmt.Errorf("record %d: invalid time %q", i+1, row.Time)
		}

		records = append(records, models.SessionRecord{
			Name:               row.Name,
			Category:           category,
			Tier:               tier,
			Venue:              row.Venue,
			StartDate:          date,
			StartTime:          clock,
			DurationText:       row.Duration,
			ActiveParticipants: row.Participants,
		})
	}
	return records, nil
}
