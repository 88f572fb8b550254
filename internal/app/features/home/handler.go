package home

import (
	"net/http"

	"github.com/dalemusser/taskhub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler serves the site root.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRoot sends signed-in users to their dashboard and everyone else to
// sign in. The query string (e.g. ?lang=fr) is carried along.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	dest := "/login"
	if _, ok := auth.CurrentUser(r); ok {
		dest = "/dashboard"
	}
	if q := r.URL.RawQuery; q != "" {
		dest += "?" + q
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
