package login

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	uierrors "github.com/dalemusser/taskhub/internal/app/features/errors"
	userstore "github.com/dalemusser/taskhub/internal/app/store/users"
	"github.com/dalemusser/taskhub/internal/app/system/apiclient"
	"github.com/dalemusser/taskhub/internal/app/system/auth"
	"github.com/dalemusser/taskhub/internal/app/system/ratelimit"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/taskhub/internal/testutil"
	"go.uber.org/zap"
)

type rendered struct {
	name string
	data loginFormData
}

func newTestHandler(t *testing.T) (*Handler, *testutil.FakeAPI, *[]rendered) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	api.LoginEmail = "ada@example.com"
	api.LoginPassword = "correct horse"
	api.LoginToken = "tok-1"
	api.ValidToken = "tok-1"
	api.Profile = models.User{ID: "u1", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace", Role: "admin"}

	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only-0123", "test-session", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	users := userstore.New(apiclient.New("users", api.URL()))
	h := NewHandler(users, sm, uierrors.NewErrorLogger(logger), nil, logger)

	var calls []rendered
	h.render = func(w http.ResponseWriter, r *http.Request, name string, data any) {
		calls = append(calls, rendered{name: name, data: data.(loginFormData)})
		w.WriteHeader(http.StatusOK)
	}
	return h, api, &calls
}

func postForm(form url.Values) *http.Request {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestServeLogin(t *testing.T) {
	h, _, calls := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeLogin(rec, httptest.NewRequest("GET", "/login?return=/dashboard", nil))

	if len(*calls) != 1 || (*calls)[0].name != "login" {
		t.Fatalf("render calls = %+v", *calls)
	}
	d := (*calls)[0].data
	if d.ReturnURL != "/dashboard" {
		t.Errorf("ReturnURL = %q", d.ReturnURL)
	}
	if d.Notice != "" || d.Error != "" {
		t.Errorf("unexpected messages: notice=%q error=%q", d.Notice, d.Error)
	}
}

func TestServeLogin_ExpiredNotice(t *testing.T) {
	h, _, calls := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeLogin(rec, httptest.NewRequest("GET", "/login?reason=expired", nil))

	if got := (*calls)[0].data.Notice; got != "Your session has expired. Please sign in again." {
		t.Errorf("Notice = %q", got)
	}
}

func TestServeLogin_SignedInRedirects(t *testing.T) {
	h, _, calls := newTestHandler(t)

	req := httptest.NewRequest("GET", "/login", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "u1", Token: "tok-1"})
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard" {
		t.Errorf("status=%d Location=%q", rec.Code, rec.Header().Get("Location"))
	}
	if len(*calls) != 0 {
		t.Error("signed-in user should not see the form")
	}
}

func TestHandleLoginPost_Success(t *testing.T) {
	h, api, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HandleLoginPost(rec, postForm(url.Values{
		"email":    {"ada@example.com"},
		"password": {"correct horse"},
	}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", loc)
	}
	if api.Hits("/auth/login") != 1 || api.Hits("/users/me") != 1 {
		t.Errorf("hits: login=%d profile=%d", api.Hits("/auth/login"), api.Hits("/users/me"))
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("session cookie not set")
	}

	// The cookie round-trips into a signed-in request carrying the token.
	follow := httptest.NewRequest("GET", "/dashboard", nil)
	follow.AddCookie(cookie)
	var got *auth.SessionUser
	h.SessionMgr.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	})).ServeHTTP(httptest.NewRecorder(), follow)

	if got == nil {
		t.Fatal("session did not load a user")
	}
	if got.Token != "tok-1" || got.ID != "u1" || got.Name != "Ada Lovelace" || !got.IsAdmin() {
		t.Errorf("session user = %+v", got)
	}
}

func TestHandleLoginPost_ReturnURL(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.HandleLoginPost(rec, postForm(url.Values{
		"email":    {"ada@example.com"},
		"password": {"correct horse"},
		"return":   {"/dashboard"},
	}))

	if loc := rec.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Location = %q, want /dashboard", loc)
	}
}

func TestHandleLoginPost_Errors(t *testing.T) {
	tests := []struct {
		name      string
		form      url.Values
		failLogin int
		wantErr   string
		wantCalls int
	}{
		{
			name:    "missing password",
			form:    url.Values{"email": {"ada@example.com"}},
			wantErr: "Please enter your email and password.",
		},
		{
			name:      "wrong password",
			form:      url.Values{"email": {"ada@example.com"}, "password": {"nope"}},
			wantErr:   "Invalid email or password.",
			wantCalls: 1,
		},
		{
			name:      "backend down",
			form:      url.Values{"email": {"ada@example.com"}, "password": {"correct horse"}},
			failLogin: http.StatusBadGateway,
			wantErr:   "Sign-in is temporarily unavailable. Please try again.",
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, api, calls := newTestHandler(t)
			if tt.failLogin != 0 {
				api.FailWith("/auth/login", tt.failLogin)
			}

			rec := httptest.NewRecorder()
			h.HandleLoginPost(rec, postForm(tt.form))

			if len(*calls) != 1 {
				t.Fatalf("render calls = %d, want 1", len(*calls))
			}
			d := (*calls)[0].data
			if d.Error != tt.wantErr {
				t.Errorf("Error = %q, want %q", d.Error, tt.wantErr)
			}
			if d.Email != "ada@example.com" {
				t.Errorf("Email = %q, want the submitted value", d.Email)
			}
			if api.Hits("/auth/login") != tt.wantCalls {
				t.Errorf("login hits = %d, want %d", api.Hits("/auth/login"), tt.wantCalls)
			}
			for _, c := range rec.Result().Cookies() {
				if c.Name == "test-session" {
					t.Error("failed login must not set a session")
				}
			}
		})
	}
}

func TestHandleLoginPost_RateLimited(t *testing.T) {
	h, api, calls := newTestHandler(t)
	h.Limiter = ratelimit.NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)

	bad := url.Values{"email": {"ada@example.com"}, "password": {"nope"}}
	for range 2 {
		h.HandleLoginPost(httptest.NewRecorder(), postForm(bad))
	}

	rec := httptest.NewRecorder()
	h.HandleLoginPost(rec, postForm(url.Values{
		"email":    {"ADA@example.com"},
		"password": {"correct horse"},
	}))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if api.Hits("/auth/login") != 2 {
		t.Errorf("login hits = %d, blocked attempt must not reach the users API", api.Hits("/auth/login"))
	}
	last := (*calls)[len(*calls)-1].data
	if last.Error != "Too many sign-in attempts for this account. Please wait a few minutes." {
		t.Errorf("Error = %q", last.Error)
	}
}

func TestHandleLoginPost_SuccessResetsAccountLimit(t *testing.T) {
	h, _, _ := newTestHandler(t)
	h.Limiter = ratelimit.NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)

	good := url.Values{"email": {"ada@example.com"}, "password": {"correct horse"}}
	for i := range 4 {
		rec := httptest.NewRecorder()
		h.HandleLoginPost(rec, postForm(good))
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("attempt %d: status = %d, want 303", i+1, rec.Code)
		}
	}
}
