// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/taskhub/internal/app/resources"
	"github.com/dalemusser/taskhub/internal/app/store/audit"
	"github.com/dalemusser/taskhub/internal/app/system/i18n"
	"github.com/dalemusser/taskhub/internal/app/system/timeouts"
	"github.com/dalemusser/taskhub/internal/app/system/viewdata"
	"github.com/dalemusser/taskhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// retention is started in Startup and stopped in Shutdown.
var retention *workers.AuditRetention

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeouts overridden from environment",
			zap.Int("count", n),
			zap.Any("timeouts", timeouts.Current()))
	}

	viewdata.SetDefaultLanguage(i18n.Match(appCfg.DefaultLanguage))

	resources.LoadSharedTemplates()

	if appCfg.AuditRetention > 0 {
		retention = workers.NewAuditRetention(
			audit.New(deps.MongoDatabase),
			logger,
			appCfg.AuditRetentionInterval,
			appCfg.AuditRetention,
		)
		retention.Start()
	} else {
		logger.Info("audit retention disabled")
	}

	return nil
}
