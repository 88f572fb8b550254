// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/taskhub/internal/app/system/auth"
)

// UserCtx returns the user's role (lowercased), name, ID, and a found flag.
// If no user is present in context it returns "visitor", "", "", false.
// The role is the one cached at sign-in; the dashboard re-reads the live
// role from the users API on every load.
func UserCtx(r *http.Request) (role string, name string, userID string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", "", false
	}
	return strings.ToLower(strings.TrimSpace(user.Role)), user.Name, user.ID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "admin"
}
