// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger pairs logging with user-facing error pages so handlers
// report failures in one call.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger wraps the app logger for handler use.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs the underlying error and renders a friendly
// server-error page with the public message.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, internal string, err error, publicMsg, backURL string) {
	e.log.Error(internal,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method))
	RenderServerError(w, r, publicMsg, backURL)
}

// LogBadRequest logs a client error and renders a friendly page with
// the public message.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, internal string, err error, publicMsg, backURL string) {
	e.log.Warn(internal,
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method))
	RenderBadRequest(w, r, publicMsg, backURL)
}
