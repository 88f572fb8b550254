package resources_test

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/taskhub/internal/app/resources"
	"github.com/dalemusser/taskhub/internal/app/system/auth"
	"github.com/dalemusser/taskhub/internal/app/system/viewdata"
)

func render(t *testing.T, data viewdata.BaseVM) string {
	t.Helper()
	tmpl, err := resources.ParseLayout(nil)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	page, err := tmpl.New("page").Parse(`{{ template "layout_start" . }}<p>body</p>{{ template "layout_end" . }}`)
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		t.Fatalf("execute: %v", err)
	}
	return buf.String()
}

func TestLayout_SignedIn(t *testing.T) {
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Accept-Language", "fr")
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "u1", Name: "Ada Lovelace", Role: "member", Token: "t"})

	out := render(t, viewdata.NewBaseVM(req, "Dashboard", "/"))

	for _, want := range []string{
		`<html lang="fr">`,
		"Tableau de bord · TaskHub",
		"Ada Lovelace",
		`href="/logout"`,
		"Se déconnecter",
		"credentials-changed",
		"<p>body</p>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("layout missing %q", want)
		}
	}
}

func TestLayout_Anonymous(t *testing.T) {
	req := httptest.NewRequest("GET", "/login", nil)

	out := render(t, viewdata.NewBaseVM(req, "Sign in", "/"))

	if strings.Contains(out, `href="/logout"`) {
		t.Error("anonymous layout shows sign-out link")
	}
	if !strings.Contains(out, `<html lang="en">`) {
		t.Error("expected English fallback")
	}
}

func TestLayout_CredentialsChangedLeavesNavigationToServer(t *testing.T) {
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "u1", Name: "Ada", Role: "member", Token: "t"})

	out := render(t, viewdata.NewBaseVM(req, "Dashboard", "/"))

	if !strings.Contains(out, "sessionStorage.clear()") {
		t.Error("credentials-changed listener should clear client state")
	}
	for _, nav := range []string{"location.assign", "location.href", "location.replace", "/login?reason="} {
		if strings.Contains(out, nav) {
			t.Errorf("layout navigates on its own via %q; HX-Redirect should drive it", nav)
		}
	}
}
