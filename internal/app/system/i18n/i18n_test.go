package i18n_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/taskhub/internal/app/system/i18n"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		prefs []string
		want  language.Tag
	}{
		{[]string{"es-MX,es;q=0.9,en;q=0.5"}, language.Spanish},
		{[]string{"fr-CA"}, language.French},
		{[]string{"de-DE"}, language.English},
		{[]string{"!!garbage"}, language.English},
		{[]string{"", "fr"}, language.French},
	}
	for _, tt := range tests {
		if got := i18n.Match(tt.prefs...); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.prefs, got, tt.want)
		}
	}
}

func TestFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/dashboard", nil)
	if got := i18n.FromRequest(req, language.French); got != language.French {
		t.Errorf("no prefs: got %v, want fallback fr", got)
	}

	req = httptest.NewRequest("GET", "/dashboard?lang=es", nil)
	req.Header.Set("Accept-Language", "fr")
	if got := i18n.FromRequest(req, language.English); got != language.Spanish {
		t.Errorf("query override: got %v, want es", got)
	}
}

func TestPrinter_TranslatesAndFallsBack(t *testing.T) {
	en := i18n.NewPrinter(language.English)
	if got := en.T(i18n.MsgLoadFailed); got != "Failed to load dashboard data." {
		t.Errorf("en = %q", got)
	}
	if got := en.T(i18n.MsgWelcome, "Ada"); got != "Welcome back, Ada" {
		t.Errorf("en welcome = %q", got)
	}

	es := i18n.NewPrinter(language.Spanish)
	if got := es.T(i18n.MsgNoTasks); got != "Aún no hay tareas." {
		t.Errorf("es = %q", got)
	}
	if got := es.T(i18n.MsgTaskCount, 3); got != "3 tareas" {
		t.Errorf("es count = %q", got)
	}
}

func TestEveryTranslationCoversSameKeys(t *testing.T) {
	keys := []string{
		i18n.MsgLoadFailed, i18n.MsgNoProjects, i18n.MsgNoTasks,
		i18n.MsgCompleted, i18n.MsgInProgress,
	}
	en := i18n.NewPrinter(language.English)
	for _, tag := range i18n.Supported()[1:] {
		p := i18n.NewPrinter(tag)
		for _, k := range keys {
			if p.T(k) == en.T(k) {
				t.Errorf("%v: %q is untranslated", tag, k)
			}
		}
	}
}
