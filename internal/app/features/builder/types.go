// internal/app/features/builder/types.go
package builder

import (
	"html/template"

	"github.com/dalemusser/courtpost/internal/app/system/viewdata"
)

// eventSlots is how many manual event blocks the form offers.
const eventSlots = 3

// BuilderData is the view model for the upload form and the grouped
// preview. The preview carries the parsed records forward in a hidden
// JSON field so nothing is persisted server-side between steps.
type BuilderData struct {
	viewdata.BaseVM

	// Source links to the booking site's admin reports.
	CoursesReportURL  string
	SessionsReportURL string

	// Form state
	Error  template.HTML
	Events []EventField

	// Preview mode
	ShowPreview  bool
	AdultGroups  []GroupRow
	JuniorGroups []GroupRow
	EventRows    []EventRow
	RecordsJSON  string
	TotalRecords int
	BlockKeys    []string
	Subject      string
	Summary      string
	Order        string
}

// GroupRow is one (tier) course group in the preview table.
type GroupRow struct {
	Icon     string
	Label    string
	Sessions int
	Earliest string
	Warning  string
}

// EventRow is one CSV event group in the preview table.
type EventRow struct {
	Name     string
	Sessions int
}

// EventField is one manual event slot on the form. Key is assigned at
// preview time and carried through hidden fields.
type EventField struct {
	Key      string
	Title    string
	Details  string
	URL      string
	ImageURL string
}

func emptyEventFields() []EventField {
	return make([]EventField, eventSlots)
}

// ResultData is the view model for the generated newsletter page.
type ResultData struct {
	viewdata.BaseVM

	Subject     string
	PreviewText string
	Summary     string
	BodyHTML    template.HTML
	Manifest    []ManifestRow
	ExportJSON  string
	RecordsJSON string
}

// ManifestRow is one manifest entry for the result page table.
type ManifestRow struct {
	Key        string
	Kind       string
	Sessions   int
	Warning    string
	BookingURL string
}
