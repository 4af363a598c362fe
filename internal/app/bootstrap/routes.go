// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	builderfeature "github.com/dalemusser/courtpost/internal/app/features/builder"
	calendarfeature "github.com/dalemusser/courtpost/internal/app/features/calendar"
	errorsfeature "github.com/dalemusser/courtpost/internal/app/features/errors"
	healthfeature "github.com/dalemusser/courtpost/internal/app/features/health"
	homefeature "github.com/dalemusser/courtpost/internal/app/features/home"
	loginfeature "github.com/dalemusser/courtpost/internal/app/features/login"
	logoutfeature "github.com/dalemusser/courtpost/internal/app/features/logout"
	"github.com/dalemusser/courtpost/internal/app/system/gate"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// Version is stamped at build time (-ldflags "-X .../bootstrap.Version=…").
var Version = "dev"

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend setup, and any Startup
// hooks have completed. It creates the session manager, boots the
// template engine, applies CSRF protection, and mounts the feature
// routers: home, login/logout, the builder flow, the calendar export,
// and the health endpoint.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := gate.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// CSRF protection for all form posts. The health endpoint sits
	// outside so probes don't need cookies.
	csrfMW := csrf.Protect(
		[]byte(appCfg.CSRFKey),
		csrf.Secure(secure),
		csrf.Path("/"),
	)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(Version, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	r.Group(func(pr chi.Router) {
		pr.Use(csrfMW)

		// Public pages
		homeHandler := homefeature.NewHandler(sessionMgr, logger)
		pr.Mount("/", homefeature.Routes(homeHandler))

		// Authentication
		loginHandler := loginfeature.NewHandler(sessionMgr, errLog, appCfg.GatePasswordHash, logger)
		pr.Mount("/login", loginfeature.Routes(loginHandler))

		logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
		pr.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

		// Error pages
		errorsHandler := errorsfeature.NewHandler()
		pr.Get("/unauthorized", errorsHandler.Unauthorized)
		pr.NotFound(errorsHandler.NotFound)

		// Newsletter builder flow
		builderHandler := builderfeature.NewHandler(deps.Engine, sessionMgr, errLog, appCfg.AdminReportBase, logger)
		pr.Mount("/builder", builderfeature.Routes(builderHandler, sessionMgr))

		// Calendar export
		calendarHandler := calendarfeature.NewHandler(errLog, logger)
		pr.Mount("/calendar", calendarfeature.Routes(calendarHandler, sessionMgr))
	})

	return r, nil
}
