// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	userstore "github.com/dalemusser/histkeep/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return ensureAdminUser(ctx, appCfg, deps, logger)
}

// ensureAdminUser seeds the allow-list with the administrator account so a
// fresh deployment is immediately usable. An existing entry is left alone to
// preserve who originally added it.
func ensureAdminUser(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase, appCfg.UsersCollection)

	exists, err := users.Exists(ctx, appCfg.AdminEmail)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := users.Add(ctx, appCfg.AdminEmail, "startup"); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	logger.Info("seeded admin into allow-list", zap.String("email", appCfg.AdminEmail))
	return nil
}
