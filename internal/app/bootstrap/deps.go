// internal/app/bootstrap/deps.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/courtpost/internal/app/system/timeouts"
	"github.com/dalemusser/courtpost/internal/newsletter"
	"github.com/dalemusser/courtpost/internal/newsletter/booking"
	"github.com/dalemusser/courtpost/internal/newsletter/capacity"
	"github.com/dalemusser/courtpost/internal/newsletter/prose"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Deps holds backend dependencies for the app. CourtPost keeps no
// database; its only backend is the prose generator the newsletter
// engine calls out to.
type Deps struct {
	Engine *newsletter.Engine
}

// ConnectDB builds the app's backends. The name comes from the WAFFLE
// lifecycle; here it wires the OpenAI client (when configured) and the
// newsletter engine rather than a database.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (Deps, error) {
	var gen prose.Generator

	// Each chat call is capped individually; the generate pass as a
	// whole runs under the long timeout at the handler.
	client, err := prose.NewOpenAI(prose.OpenAIConfig{
		APIKey:  appCfg.OpenAIAPIKey,
		BaseURL: appCfg.OpenAIBaseURL,
		Model:   appCfg.OpenAIModel,
		Timeout: timeouts.Medium(),
	}, logger)
	switch {
	case err == nil:
		gen = client
		logger.Info("prose generator ready", zap.String("model", appCfg.OpenAIModel))
	case errors.Is(err, prose.ErrNoAPIKey):
		logger.Info("no OpenAI API key; using fallback copy")
	default:
		return Deps{}, err
	}

	engine := newsletter.New(booking.New(appCfg.BookingBaseURL), capacity.Default(), gen)
	return Deps{Engine: engine}, nil
}

// EnsureSchema is a no-op: nothing is persisted between invocations.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	return nil
}
