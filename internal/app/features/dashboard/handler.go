// internal/app/features/dashboard/handler.go
package dashboard

import (
	"errors"
	"net/http"

	"github.com/dalemusser/taskhub/internal/app/system/apiclient"
	"github.com/dalemusser/taskhub/internal/app/system/auditlog"
	"github.com/dalemusser/taskhub/internal/app/system/auth"
	"github.com/dalemusser/taskhub/internal/app/system/i18n"
	"github.com/dalemusser/taskhub/internal/app/system/timeouts"
	"github.com/dalemusser/taskhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type renderFunc func(w http.ResponseWriter, r *http.Request, name string, data any)

type Handler struct {
	Loader     *Loader
	SessionMgr *auth.SessionManager
	Audit      *auditlog.Logger
	Log        *zap.Logger

	render renderFunc
}

func NewHandler(loader *Loader, sm *auth.SessionManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Loader:     loader,
		SessionMgr: sm,
		Audit:      audit,
		Log:        logger,
		render: func(w http.ResponseWriter, r *http.Request, name string, data any) {
			templates.Render(w, r, name, data)
		},
	}
}

type dashboardData struct {
	viewdata.BaseVM

	Greeting string
	// Error is the translated banner text; empty on success.
	Error string

	Summary Summary
	Chart   Donut
}

// ServeDashboard renders GET /dashboard.
//
// An unauthorized answer from any backend clears the session, signals the
// credential change and sends the browser to sign in; nothing else is
// rendered. Any other failure renders the page with zeroed counts and the
// generic load error.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		auth.RedirectToLogin(w, r, "")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "dashboard load")
	defer cancel()
	if id := middleware.GetReqID(r.Context()); id != "" {
		ctx = apiclient.WithRequestID(ctx, id)
	}

	data := dashboardData{
		BaseVM: viewdata.NewBaseVM(r, i18n.MsgDashboardTitle, "/"),
	}

	snap, err := h.Loader.Load(ctx, u.Token)
	switch {
	case err == nil:
		data.Summary = Summarize(snap)
		data.Greeting = data.T(i18n.MsgWelcome, greetingName(snap, u))
		h.Log.Debug("dashboard served",
			zap.String("user_id", u.ID),
			zap.Bool("admin", snap.User.IsAdmin()),
			zap.Int("projects", data.Summary.ProjectCount),
			zap.Int("tasks", data.Summary.TaskCount))

	case apiclient.IsUnauthorized(err):
		h.expireSession(w, r, u, err)
		return

	default:
		h.Log.Error("dashboard load failed",
			zap.Error(err),
			zap.String("user_id", u.ID),
			zap.Int("status", apiclient.StatusCode(err)))
		data.Summary = Summarize(Snapshot{})
		data.Summary.ShowUsers = u.IsAdmin()
		data.Greeting = data.T(i18n.MsgWelcome, u.Name)
		data.Error = data.T(i18n.MsgLoadFailed)
	}

	data.Chart = BuildDonut(data.Summary)
	h.render(w, r, "dashboard", data)
}

// expireSession drops the stored token after a backend rejected it.
func (h *Handler) expireSession(w http.ResponseWriter, r *http.Request, u *auth.SessionUser, cause error) {
	service := ""
	var se *apiclient.StatusError
	if errors.As(cause, &se) {
		service = se.Service
	}

	h.Log.Warn("backend rejected session token; signing out",
		zap.String("user_id", u.ID),
		zap.String("service", service),
		zap.Error(cause))

	if h.SessionMgr != nil {
		if err := h.SessionMgr.ClearSession(w, r); err != nil {
			h.Log.Error("failed to clear session", zap.Error(err))
		}
	}
	h.Audit.SessionExpired(r.Context(), r, u.ID, service)

	auth.SignalCredentialsChanged(w)
	auth.RedirectToLogin(w, r, "expired")
}

func greetingName(snap Snapshot, u *auth.SessionUser) string {
	if n := snap.User.DisplayName(); n != "" {
		return n
	}
	return u.Name
}
