package viewdata_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/taskhub/internal/app/system/auth"
	"github.com/dalemusser/taskhub/internal/app/system/i18n"
	"github.com/dalemusser/taskhub/internal/app/system/viewdata"
	"golang.org/x/text/language"
)

func TestNewBaseVM_Anonymous(t *testing.T) {
	req := httptest.NewRequest("GET", "/login", nil)
	vm := viewdata.NewBaseVM(req, i18n.MsgSignIn, "/")

	if vm.IsLoggedIn || vm.IsAdmin {
		t.Errorf("anonymous request reported signed in: %+v", vm)
	}
	if vm.SiteName != viewdata.DefaultSiteName {
		t.Errorf("SiteName = %q", vm.SiteName)
	}
	if vm.Title != "Sign in" {
		t.Errorf("Title = %q", vm.Title)
	}
	if vm.Lang != "en" {
		t.Errorf("Lang = %q, want en", vm.Lang)
	}
}

func TestNewBaseVM_AdminSpanish(t *testing.T) {
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Accept-Language", "es-MX,es;q=0.9")
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "1", Name: "Ana", Role: "Admin", Token: "t"})

	vm := viewdata.NewBaseVM(req, i18n.MsgDashboardTitle, "/")
	if !vm.IsLoggedIn || !vm.IsAdmin {
		t.Errorf("expected signed-in admin: %+v", vm)
	}
	if vm.UserName != "Ana" {
		t.Errorf("UserName = %q", vm.UserName)
	}
	if vm.Lang != "es" {
		t.Errorf("Lang = %q, want es", vm.Lang)
	}
	if got := vm.T(i18n.MsgNoTasks); got == i18n.MsgNoTasks {
		t.Errorf("T(%q) was not translated", i18n.MsgNoTasks)
	}
}

func TestDefaultLanguage(t *testing.T) {
	viewdata.SetDefaultLanguage(language.French)
	defer viewdata.SetDefaultLanguage(language.English)

	req := httptest.NewRequest("GET", "/", nil)
	if got := viewdata.Printer(req).Lang(); got != "fr" {
		t.Errorf("Lang = %q, want fr", got)
	}
}

func TestZeroBaseVM_T(t *testing.T) {
	var vm viewdata.BaseVM
	if got := vm.T(i18n.MsgTaskCount, 3); got != "3 tasks" {
		t.Errorf("T = %q", got)
	}
}
