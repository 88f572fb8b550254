// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/taskhub/internal/app/features/errors"
	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/auditlog"
	"github.com/dalemusser/taskhub/internal/app/system/auth"
	"github.com/dalemusser/taskhub/internal/app/system/i18n"
	"github.com/dalemusser/taskhub/internal/app/system/ratelimit"
	"github.com/dalemusser/taskhub/internal/app/system/timeouts"
	"github.com/dalemusser/taskhub/internal/app/system/viewdata"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

// Authenticator exchanges credentials for a backend token and resolves the
// token's owner. *userstore.Store satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, token string) (models.User, error)
}

type Handler struct {
	Users      Authenticator
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	AuditLog   *auditlog.Logger
	Limiter    *ratelimit.LoginLimiter
	Log        *zap.Logger

	render func(w http.ResponseWriter, r *http.Request, name string, data any)
}

func NewHandler(users Authenticator, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      users,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		AuditLog:   audit,
		Limiter:    ratelimit.NewLoginLimiter(),
		Log:        logger,
		render: func(w http.ResponseWriter, r *http.Request, name string, data any) {
			templates.Render(w, r, name, data)
		},
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Notice    string
	Email     string
	ReturnURL string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ret := query.Get(r, "return")

	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, urlutil.SafeReturn(ret, "", "/dashboard"), http.StatusSeeOther)
		return
	}

	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, i18n.MsgSignIn, "/"),
		ReturnURL: ret,
	}
	if query.Get(r, "reason") == "expired" {
		data.Notice = data.T(i18n.MsgSessionExpired)
	}
	h.render(w, r, "login", data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "", "/login")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.renderFormWithError(w, r, i18n.MsgMissingFields, email)
		return
	}

	switch h.Limiter.Check(r, email) {
	case ratelimit.BlockedByIP:
		h.AuditLog.LoginFailed(r.Context(), r, email, "rate limited by ip")
		w.WriteHeader(http.StatusTooManyRequests)
		h.renderFormWithError(w, r, i18n.MsgRateLimited, email)
		return
	case ratelimit.BlockedByEmail:
		h.AuditLog.LoginFailed(r.Context(), r, email, "rate limited by account")
		w.WriteHeader(http.StatusTooManyRequests)
		h.renderFormWithError(w, r, i18n.MsgAccountLocked, email)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login exchange")
	defer cancel()

	token, err := h.Users.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, userstore.ErrBadCredentials) {
			h.AuditLog.LoginFailed(r.Context(), r, email, "bad credentials")
			h.renderFormWithError(w, r, i18n.MsgBadCredentials, email)
			return
		}
		h.Log.Error("login exchange failed", zap.Error(err))
		h.AuditLog.LoginFailed(r.Context(), r, email, "users api unavailable")
		h.renderFormWithError(w, r, i18n.MsgSignInFailed, email)
		return
	}

	u, err := h.Users.Profile(ctx, token)
	if err != nil {
		h.Log.Error("profile fetch after login failed", zap.Error(err))
		h.AuditLog.LoginFailed(r.Context(), r, email, "profile unavailable")
		h.renderFormWithError(w, r, i18n.MsgSignInFailed, email)
		return
	}

	su := auth.SessionUser{
		ID:    u.ID,
		Name:  u.FullName(),
		Email: u.Email,
		Role:  u.Role,
		Token: token,
	}
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.ErrLog.LogServerError(w, r, "save session failed", err, "", "/login")
		return
	}

	h.Limiter.ResetEmail(email)
	h.AuditLog.LoginSuccess(r.Context(), r, u.ID, u.Email)
	h.Log.Info("user signed in", zap.String("user_id", u.ID), zap.Bool("admin", u.IsAdmin()))

	dest := urlutil.SafeReturn(strings.TrimSpace(r.FormValue("return")), "", "/dashboard")
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msgKey, email string) {
	// From POST, "return" will be in the form; from GET, we might rely on the query.
	ret := strings.TrimSpace(r.FormValue("return"))
	if ret == "" {
		ret = query.Get(r, "return")
	}

	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, i18n.MsgSignIn, "/"),
		Email:     email,
		ReturnURL: ret,
	}
	data.Error = data.T(msgKey)
	h.render(w, r, "login", data)
}
