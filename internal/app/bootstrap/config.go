// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/courtpost/internal/newsletter/booking"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CourtPost.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: session_key, booking_base_url, etc.
//   - Environment variables: COURTPOST_SESSION_KEY, COURTPOST_BOOKING_BASE_URL, etc.
//   - Command-line flags: --session_key, --booking_base_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "courtpost_session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "csrf_key", Default: "dev-only-csrf-key-0123456789ABCD", Desc: "32-byte CSRF signing key"},

	{Name: "gate_password_hash", Default: "", Desc: "bcrypt hash of the shared gate password (empty disables the gate; dev only)"},

	// Booking site
	{Name: "booking_base_url", Default: booking.DefaultBaseURL, Desc: "Public coaching page base URL on the booking site"},
	{Name: "admin_report_base", Default: "", Desc: "Admin base URL on the booking site for CSV report links (empty hides them)"},

	// OpenAI
	{Name: "openai_api_key", Default: "", Desc: "OpenAI API key (empty uses built-in fallback copy)"},
	{Name: "openai_model", Default: "gpt-4o-mini", Desc: "OpenAI model for generated prose"},
	{Name: "openai_base_url", Default: "", Desc: "OpenAI-compatible API base URL override"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL of this app"},
	{Name: "generate_timeout", Default: "", Desc: "Newsletter generation timeout override (e.g. 90s)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, COURTPOST_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "COURTPOST", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		CSRFKey:       appValues.String("csrf_key"),

		GatePasswordHash: appValues.String("gate_password_hash"),

		BookingBaseURL:  appValues.String("booking_base_url"),
		AdminReportBase: appValues.String("admin_report_base"),

		OpenAIAPIKey:  appValues.String("openai_api_key"),
		OpenAIModel:   appValues.String("openai_model"),
		OpenAIBaseURL: appValues.String("openai_base_url"),

		BaseURL:         appValues.String("base_url"),
		GenerateTimeout: appValues.String("generate_timeout"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// Production requires a real session key, CSRF key, and gate password;
// dev mode only warns so local iteration stays frictionless.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if len(appCfg.CSRFKey) != 32 {
		return fmt.Errorf("csrf_key must be exactly 32 bytes, got %d", len(appCfg.CSRFKey))
	}

	if coreCfg.Env == "prod" {
		if appCfg.GatePasswordHash == "" {
			return fmt.Errorf("gate_password_hash is required in production")
		}
		if appCfg.SessionKey == "" || appCfg.SessionKey == "dev-only-change-me-please-0123456789ABCDEF" {
			return fmt.Errorf("session_key must be set to a strong value in production")
		}
		if appCfg.CSRFKey == "dev-only-csrf-key-0123456789ABCD" {
			return fmt.Errorf("csrf_key must be set to a strong value in production")
		}
	} else {
		if appCfg.GatePasswordHash == "" {
			logger.Warn("gate_password_hash not set; the builder is open to anyone")
		}
	}

	if appCfg.OpenAIAPIKey == "" {
		logger.Info("openai_api_key not set; newsletters will use fallback copy")
	}

	return nil
}
