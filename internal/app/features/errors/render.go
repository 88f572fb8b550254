// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/taskhub/internal/app/system/i18n"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// render is swapped out by tests.
var render = func(w http.ResponseWriter, r *http.Request, name string, data any) {
	templates.Render(w, r, name, data)
}

// RenderUnauthorized shows a friendly "sign in required" page with a 401.
// If backURL is empty, it defaults to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	data := newPage(r, i18n.MsgSignInRequired, i18n.MsgPleaseSignIn, backURL)
	data.BackURL = backURL
	w.WriteHeader(http.StatusUnauthorized)
	render(w, r, "error_page", data)
}

// RenderForbidden shows a friendly access error page with a 403. msgKey is a
// message key; empty uses the generic permission message. If backURL is
// empty, a safe back URL is resolved from the request.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msgKey, backURL string) {
	if msgKey == "" {
		msgKey = i18n.MsgNoPermission
	}
	data := newPage(r, i18n.MsgAccessDenied, msgKey, "/")
	if backURL != "" {
		data.BackURL = backURL
	}
	w.WriteHeader(http.StatusForbidden)
	render(w, r, "error_page", data)
}

// ErrorLogger logs a handler failure and renders a localized error page
// instead of leaking the underlying error to the browser.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger creates an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogBadRequest logs at warn level and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, msgKey, backURL string) {
	e.log.Warn(msg, zap.Error(err), zap.String("path", r.URL.Path))
	e.renderStatus(w, r, http.StatusBadRequest, i18n.MsgBadRequest, msgKey, backURL)
}

// LogServerError logs at error level and renders a 500 page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, msgKey, backURL string) {
	e.log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	e.renderStatus(w, r, http.StatusInternalServerError, i18n.MsgServerError, msgKey, backURL)
}

func (e *ErrorLogger) renderStatus(w http.ResponseWriter, r *http.Request, status int, fallbackKey, msgKey, backURL string) {
	if msgKey == "" {
		msgKey = fallbackKey
	}
	if backURL == "" {
		backURL = "/"
	}
	data := newPage(r, fallbackKey, msgKey, backURL)
	data.BackURL = backURL
	w.WriteHeader(status)
	render(w, r, "error_page", data)
}
