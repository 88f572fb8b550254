// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"sync"

	"github.com/dalemusser/taskhub/internal/app/system/authz"
	"github.com/dalemusser/taskhub/internal/app/system/i18n"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
	"golang.org/x/text/language"
)

// DefaultSiteName is shown in the header and page titles.
const DefaultSiteName = "TaskHub"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	}
//
// Templates translate copy with {{ .T "Dashboard" }}.
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	IsAdmin    bool
	Role       string
	UserName   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
	Lang        string

	// CSRF protection
	CSRFToken string

	printer *i18n.Printer
}

var (
	mu          sync.RWMutex
	defaultLang = language.English
)

// SetDefaultLanguage sets the language used when a request expresses no
// preference. Call this once at startup from bootstrap.
func SetDefaultLanguage(tag language.Tag) {
	mu.Lock()
	defer mu.Unlock()
	defaultLang = tag
}

// DefaultLanguage returns the configured fallback language.
func DefaultLanguage() language.Tag {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLang
}

// Printer returns the message printer for r's negotiated language.
func Printer(r *http.Request) *i18n.Printer {
	return i18n.NewPrinter(i18n.FromRequest(r, DefaultLanguage()))
}

// NewBaseVM creates a fully populated BaseVM for a page. title is a
// catalog key and is translated here.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)
	p := Printer(r)

	return BaseVM{
		SiteName:    DefaultSiteName,
		IsLoggedIn:  signedIn,
		IsAdmin:     authz.IsAdmin(r),
		Role:        role,
		UserName:    name,
		Title:       p.T(title),
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		Lang:        p.Lang(),
		CSRFToken:   csrf.Token(r),
		printer:     p,
	}
}

// T translates key for the page's language.
func (b BaseVM) T(key string, args ...any) string {
	if b.printer == nil {
		return i18n.NewPrinter(language.English).T(key, args...)
	}
	return b.printer.T(key, args...)
}
