// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, and request limits. AppConfig is where
// everything specific to CourtPost lives.
type AppConfig struct {
	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: courtpost_session)
	SessionDomain string // Cookie domain (blank means current host)

	// CSRF protection
	CSRFKey string // 32-byte key for CSRF token signing

	// Shared gate password. One bcrypt hash for the whole club; empty
	// disables the gate (local dev only).
	GatePasswordHash string

	// Booking site configuration
	BookingBaseURL  string // public coaching pages the CTA buttons link to
	AdminReportBase string // admin side of the booking site, for report download links

	// OpenAI configuration for generated prose. An empty API key means
	// the newsletter uses the built-in fallback copy.
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Base URL of this app (used in absolute links)
	BaseURL string

	// Generation timeout override, e.g. "90s" (blank keeps the default)
	GenerateTimeout string
}
