package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dalemusser/taskhub/internal/domain/models"
)

// FakeAPI is an in-process stand-in for the users, projects and tasks
// backends. All three are served from one httptest.Server since their paths
// do not overlap; point every client at URL().
type FakeAPI struct {
	Server *httptest.Server

	mu   sync.Mutex
	hits map[string]int
	fail map[string]int

	// ValidToken is the bearer token the fake accepts. Empty accepts any
	// non-empty token.
	ValidToken string

	Profile          models.User
	Users            []models.User
	Projects         []models.Project
	AssignedProjects []models.Project
	Tasks            []models.Task
	AssignedTasks    []models.Task

	LoginEmail    string
	LoginPassword string
	LoginToken    string
}

// NewFakeAPI starts a fake backend that is closed when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		hits: make(map[string]int),
		fail: make(map[string]int),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base URL for all three services.
func (f *FakeAPI) URL() string { return f.Server.URL }

// FailWith makes every request to path answer with status.
func (f *FakeAPI) FailWith(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[path] = status
}

// Hits returns how many times path was requested.
func (f *FakeAPI) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

// AggregateHits counts list requests, i.e. everything except the profile and
// login endpoints.
func (f *FakeAPI) AggregateHits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for path, c := range f.hits {
		if path == "/users/me" || path == "/auth/login" {
			continue
		}
		n += c
	}
	return n
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	f.mu.Lock()
	f.hits[path]++
	status, failing := f.fail[path]
	f.mu.Unlock()

	if failing {
		http.Error(w, `{"error":"forced failure"}`, status)
		return
	}

	if path == "/auth/login" {
		f.serveLogin(w, r)
		return
	}

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" || (f.ValidToken != "" && token != f.ValidToken) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	switch path {
	case "/users/me":
		writeJSON(w, f.Profile)
	case "/users":
		writeJSON(w, nonNil(f.Users))
	case "/projects":
		writeJSON(w, nonNil(f.Projects))
	case "/projects/assigned":
		// Exercise the envelope form too.
		writeJSON(w, map[string]any{"data": nonNil(f.AssignedProjects)})
	case "/tasks":
		writeJSON(w, nonNil(f.Tasks))
	case "/tasks/assigned":
		writeJSON(w, map[string]any{"data": nonNil(f.AssignedTasks)})
	default:
		http.NotFound(w, r)
	}
}

func (f *FakeAPI) serveLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
		return
	}
	if in.Email != f.LoginEmail || in.Password != f.LoginPassword {
		http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]string{"token": f.LoginToken})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
