// internal/app/resources/resources.go
package resources

import (
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
)

// Page templates wrap their body in these two shared templates.
const (
	LayoutStart = "layout_start"
	LayoutEnd   = "layout_end"
)

//go:embed templates/*.gohtml
var FS embed.FS

var registerOnce sync.Once

// LoadSharedTemplates registers the page layout with the template engine.
// Safe to call more than once.
func LoadSharedTemplates() {
	registerOnce.Do(func() {
		templates.Register(templates.Set{
			Name:     "shared",
			FS:       FS,
			Patterns: []string{"templates/*.gohtml"},
		})
	})
}

// ParseLayout parses the shared templates on their own. funcs may add
// functions page templates need; layout_start and layout_end must both be
// defined.
func ParseLayout(funcs template.FuncMap) (*template.Template, error) {
	t, err := template.New("shared").Funcs(funcs).ParseFS(FS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse shared templates: %w", err)
	}
	for _, name := range []string{LayoutStart, LayoutEnd} {
		if t.Lookup(name) == nil {
			return nil, fmt.Errorf("shared templates: %q not defined", name)
		}
	}
	return t, nil
}
