// internal/domain/models/document.go
package models

// Block is one rendered content block of the newsletter: a course
// section for a category, or a single event section. Key is the stable
// identifier used for top-level ordering ("adults", "juniors", or an
// event block key).
type Block struct {
	Key  string
	Kind string // "courses" or "event"
	HTML string
}

// Document is the assembled newsletter: the ordered blocks plus the
// final serialized markup. Given identical inputs the HTML is
// byte-identical across runs.
type Document struct {
	Subject     string
	PreviewText string
	Summary     string
	Blocks      []Block
	HTML        string
}

// ManifestEntry is the machine-readable companion record for one
// rendered unit: a (category, tier) course group or an event.
type ManifestEntry struct {
	Key        string    `json:"key"`
	Kind       string    `json:"kind"` // "courses" or "event"
	Category   Category  `json:"category,omitempty"`
	Tier       SkillTier `json:"tier,omitempty"`
	BookingURL string    `json:"booking_url,omitempty"`
	Warning    string    `json:"warning,omitempty"`
	Sessions   int       `json:"sessions"`
}

// ExportPayload is the JSON document handed to the downstream mailer.
type ExportPayload struct {
	Subject     string `json:"subject"`
	Content     string `json:"content"`
	PreviewText string `json:"preview_text"`
}

// EventInput is a manually entered one-off event from the builder form.
// The URL is opaque and passed through to the rendered block unchanged.
type EventInput struct {
	Key      string // block key, assigned by the builder
	Title    string
	Details  string // free-form date/time/venue description from staff
	URL      string
	ImageURL string
}
