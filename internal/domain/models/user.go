// internal/domain/models/user.go
package models

import "strings"

// Roles recognised by the dashboard. Anything other than RoleAdmin is
// treated as a regular (non-admin) user.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User is the profile record owned by the users API.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(u.Role), RoleAdmin)
}

// FullName joins the name parts, falling back to the email address.
func (u User) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.Email
	}
	return name
}

// DisplayName is the short name used in greetings.
func (u User) DisplayName() string {
	if first := strings.TrimSpace(u.FirstName); first != "" {
		return first
	}
	return u.FullName()
}
