// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/courtpost/internal/app/resources"
	"github.com/dalemusser/courtpost/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after backends are
// built, but before the HTTP handler. It loads shared templates and
// applies any timeout overrides from config.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	if appCfg.GenerateTimeout != "" {
		d, err := time.ParseDuration(appCfg.GenerateTimeout)
		if err != nil {
			return fmt.Errorf("invalid generate_timeout %q: %w", appCfg.GenerateTimeout, err)
		}
		timeouts.Configure(timeouts.Config{Generate: d})
		logger.Info("generation timeout configured", zap.Duration("timeout", d))
	}

	return nil
}
