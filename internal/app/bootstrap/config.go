// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/taskhub/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// appConfigKeys defines the configuration keys for TaskHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: users_api_url, session_name, etc.
//   - Environment variables: TASKHUB_USERS_API_URL, TASKHUB_SESSION_NAME, etc.
//   - Command-line flags: --users_api_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	// Backend APIs
	{Name: "users_api_url", Default: "http://localhost:8081", Desc: "Users API base URL"},
	{Name: "projects_api_url", Default: "http://localhost:8082", Desc: "Projects API base URL"},
	{Name: "tasks_api_url", Default: "http://localhost:8083", Desc: "Tasks API base URL"},
	{Name: "api_timeout", Default: "10s", Desc: "Timeout for a single backend API call (e.g., 5s, 1m)"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "taskhub", Desc: "MongoDB database name"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "taskhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-0123456789ABCDEF", Desc: "CSRF token signing key (32 bytes)"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_security", Default: "all", Desc: "Security event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_retention", Default: "2160h", Desc: "Delete audit events older than this (0 keeps them forever)"},
	{Name: "audit_retention_interval", Default: "24h", Desc: "How often audit retention runs"},

	{Name: "default_language", Default: "en", Desc: "Fallback UI language: en, es or fr"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, TASKHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TASKHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		// Backend APIs
		UsersAPIURL:    appValues.String("users_api_url"),
		ProjectsAPIURL: appValues.String("projects_api_url"),
		TasksAPIURL:    appValues.String("tasks_api_url"),
		APITimeout:     appValues.Duration("api_timeout", 10*time.Second),

		MongoURI:      appValues.String("mongo_uri"),
		MongoDatabase: appValues.String("mongo_database"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		CSRFKey: appValues.String("csrf_key"),

		// Audit logging
		AuditLogAuth:           appValues.String("audit_log_auth"),
		AuditLogSecurity:       appValues.String("audit_log_security"),
		AuditRetention:         appValues.Duration("audit_retention", 90*24*time.Hour),
		AuditRetentionInterval: appValues.Duration("audit_retention_interval", 24*time.Hour),

		DefaultLanguage: appValues.String("default_language"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Errors here abort startup before any connection is attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	for _, api := range []struct{ key, val string }{
		{"users_api_url", appCfg.UsersAPIURL},
		{"projects_api_url", appCfg.ProjectsAPIURL},
		{"tasks_api_url", appCfg.TasksAPIURL},
	} {
		if err := validateAPIURL(api.val); err != nil {
			logger.Error("invalid backend URL", zap.String("key", api.key), zap.Error(err))
			return fmt.Errorf("%s: %w", api.key, err)
		}
	}

	if appCfg.APITimeout <= 0 {
		return fmt.Errorf("api_timeout must be positive, got %s", appCfg.APITimeout)
	}

	if len(appCfg.CSRFKey) < 32 {
		return fmt.Errorf("csrf_key must be at least 32 bytes")
	}

	if !auditlog.ValidSetting(appCfg.AuditLogAuth) {
		return fmt.Errorf("audit_log_auth: unknown setting %q", appCfg.AuditLogAuth)
	}
	if !auditlog.ValidSetting(appCfg.AuditLogSecurity) {
		return fmt.Errorf("audit_log_security: unknown setting %q", appCfg.AuditLogSecurity)
	}
	if appCfg.AuditRetention > 0 && appCfg.AuditRetentionInterval <= 0 {
		return fmt.Errorf("audit_retention_interval must be positive when audit_retention is set")
	}

	if _, err := language.Parse(appCfg.DefaultLanguage); err != nil {
		return fmt.Errorf("default_language %q: %w", appCfg.DefaultLanguage, err)
	}

	return nil
}

// validateAPIURL requires an absolute http(s) URL with a host and no
// embedded credentials.
func validateAPIURL(raw string) error {
	if !urlutil.IsValidAbsHTTPURL(raw) {
		return fmt.Errorf("%q is not an absolute http(s) URL", raw)
	}
	return nil
}
