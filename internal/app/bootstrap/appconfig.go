// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers ports, TLS, logging and CORS. AppConfig is
// everything TaskHub adds on top: where the three backend APIs live, the
// MongoDB used for audit events, session and CSRF secrets, audit routing
// and the fallback language.
type AppConfig struct {
	// Backend APIs
	UsersAPIURL    string        // users API base URL (profile, user list, login)
	ProjectsAPIURL string        // projects API base URL
	TasksAPIURL    string        // tasks API base URL
	APITimeout     time.Duration // per-call timeout for backend requests

	// MongoDB connection configuration
	MongoURI      string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase string // Database name within MongoDB

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: taskhub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// CSRF protection for form posts
	CSRFKey string // 32-byte key for gorilla/csrf

	// Audit logging
	AuditLogAuth           string        // "all", "db", "log", or "off"
	AuditLogSecurity       string        // "all", "db", "log", or "off"
	AuditRetention         time.Duration // events older than this are pruned; 0 disables pruning
	AuditRetentionInterval time.Duration // how often the pruner runs

	// DefaultLanguage is used when the browser sends no Accept-Language.
	DefaultLanguage string
}
