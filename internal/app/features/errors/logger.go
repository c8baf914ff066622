// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/mentorhub/internal/app/system/observability"
	"github.com/dalemusser/mentorhub/internal/domain/apperr"
	"go.uber.org/zap"
)

// ErrorLogger logs a failure with request context and renders the matching
// error page. Server errors are also reported to Sentry.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger wraps logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	fs := []zap.Field{
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if u, ok := auth.CurrentUser(r); ok {
		fs = append(fs, zap.String("user_id", u.ID))
	}
	return fs
}

// LogServerError logs msg at error level and renders a 500 page with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Error(msg, e.fields(r, err)...)
	userID := ""
	if u, ok := auth.CurrentUser(r); ok {
		userID = u.ID
	}
	observability.CaptureRequestErr(r, userID, err)
	RenderServerError(w, r, userMsg, backURL)
}

// LogBadRequest logs msg at warn level and renders a 400 page with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Warn(msg, e.fields(r, err)...)
	RenderBadRequest(w, r, userMsg, backURL)
}

// LogAppError routes err by kind: authorization and not-found are logged at
// info, validation at warn, anything else as a server error.
func (e *ErrorLogger) LogAppError(w http.ResponseWriter, r *http.Request, msg string, err error, backURL string) {
	switch {
	case apperr.IsAuthorization(err), apperr.IsNotFound(err):
		e.log.Info(msg, e.fields(r, err)...)
		RenderAppError(w, r, err, backURL)
	case apperr.IsValidation(err):
		e.log.Warn(msg, e.fields(r, err)...)
		RenderAppError(w, r, err, backURL)
	default:
		e.LogServerError(w, r, msg, err, "A database error occurred.", backURL)
	}
}
