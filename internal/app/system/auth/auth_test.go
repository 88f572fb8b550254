package auth_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/taskhub/internal/app/system/auth"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		logger,
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

// signedInCookies runs SignIn against a throwaway request and returns the
// cookies a browser would send back.
func signedInCookies(t *testing.T, sm *auth.SessionManager, u auth.SessionUser) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest("GET", "/login", nil)
	rec := httptest.NewRecorder()
	if err := sm.SignIn(rec, req, u); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	return rec.Result().Cookies()
}

func TestNewSessionManager_RejectsEmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "s", "", time.Hour, false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestRequireSignedIn_NoUser_RedirectsToLogin(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	location := rec.Header().Get("Location")
	if location != "/login?return=%2Fdashboard" {
		t.Errorf("Location = %q", location)
	}
}

func TestRequireSignedIn_NoUser_API_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireSignedIn_NoUser_HTMX_ReturnsHXRedirect(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if hx := rec.Header().Get("HX-Redirect"); !strings.HasPrefix(hx, "/login") {
		t.Errorf("expected HX-Redirect to /login, got %q", hx)
	}
}

func TestSignIn_LoadSessionUser_RoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)
	cookies := signedInCookies(t, sm, auth.SessionUser{
		ID: "u1", Name: "Ada", Email: "ada@example.com", Role: "admin", Token: "tok-1",
	})

	var got *auth.SessionUser
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected user in context")
	}
	if got.ID != "u1" || got.Name != "Ada" || !got.IsAdmin() {
		t.Errorf("user = %+v", got)
	}
}

func TestSessionCookie_TokenIsEncrypted(t *testing.T) {
	sm := newTestSessionManager(t)
	cookies := signedInCookies(t, sm, auth.SessionUser{ID: "u1", Token: "tok-plaintext-marker"})

	for _, c := range cookies {
		raw, err := base64.URLEncoding.DecodeString(c.Value)
		if err != nil {
			t.Fatalf("decode cookie: %v", err)
		}
		parts := strings.SplitN(string(raw), "|", 3)
		if len(parts) != 3 {
			t.Fatalf("unexpected cookie layout: %q", raw)
		}
		payload, err := base64.URLEncoding.DecodeString(parts[1])
		if err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if strings.Contains(string(payload), "tok-plaintext-marker") {
			t.Error("token readable in cookie payload")
		}
	}
}

func TestSessionCookie_OtherKeyCannotRead(t *testing.T) {
	sm := newTestSessionManager(t)
	cookies := signedInCookies(t, sm, auth.SessionUser{ID: "u1", Token: "tok-1"})

	other, err := auth.NewSessionManager("another-session-key-also-32-chars-long", "test-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	other.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.CurrentUser(r); ok {
			t.Error("cookie from a different key must not authenticate")
		}
	})).ServeHTTP(httptest.NewRecorder(), req)
}

func TestLoadSessionUser_GarbageCookieIsAnonymous(t *testing.T) {
	sm := newTestSessionManager(t)

	called := false
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := auth.CurrentUser(r); ok {
			t.Error("garbage cookie must not authenticate")
		}
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "test-session", Value: "not-a-valid-cookie"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Fatal("next handler not called")
	}
}

func TestClearSession_DeletesCookie(t *testing.T) {
	sm := newTestSessionManager(t)
	cookies := signedInCookies(t, sm, auth.SessionUser{ID: "u1", Token: "tok"})

	req := httptest.NewRequest("GET", "/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	if err := sm.ClearSession(rec, req); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			found = true
			if c.MaxAge >= 0 {
				t.Errorf("MaxAge = %d, want negative (delete)", c.MaxAge)
			}
		}
	}
	if !found {
		t.Error("expected deletion cookie")
	}
}

func TestSignalCredentialsChanged(t *testing.T) {
	rec := httptest.NewRecorder()
	auth.SignalCredentialsChanged(rec)
	if got := rec.Header().Get("HX-Trigger"); got != auth.CredentialsChangedEvent {
		t.Errorf("HX-Trigger = %q", got)
	}
}

func TestRedirectToLogin_WithReason(t *testing.T) {
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	auth.RedirectToLogin(rec, req, "expired")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "reason=expired") {
		t.Errorf("Location = %q", loc)
	}
}

func TestCurrentUser_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	user, ok := auth.CurrentUser(req)
	if ok || user != nil {
		t.Errorf("CurrentUser = %v, %v; want nil, false", user, ok)
	}
}

func TestCurrentUser_WithUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "u1", Name: "Test User", Role: "member", Token: "t"})

	user, ok := auth.CurrentUser(req)
	if !ok {
		t.Fatal("expected ok to be true when user in context")
	}
	if user.Role != "member" || user.IsAdmin() {
		t.Errorf("user = %+v", user)
	}
}
