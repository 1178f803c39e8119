// internal/app/bootstrap/config_test.go
package bootstrap

import (
	"testing"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:   "mongodb://localhost:27017",
		AdminEmail: "admin@test.com",
	}
}

func TestValidateConfig_Accepts(t *testing.T) {
	if err := ValidateConfig(&config.CoreConfig{}, validAppConfig(), zap.NewNop()); err != nil {
		t.Fatalf("ValidateConfig failed: %v", err)
	}
}

func TestValidateConfig_RequiresAdminEmail(t *testing.T) {
	cfg := validAppConfig()
	cfg.AdminEmail = ""

	if err := ValidateConfig(&config.CoreConfig{}, cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for missing admin_email")
	}
}

func TestValidateConfig_RejectsBadMongoURI(t *testing.T) {
	cfg := validAppConfig()
	cfg.MongoURI = "not-a-uri"

	if err := ValidateConfig(&config.CoreConfig{}, cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for invalid mongo URI")
	}
}

func TestValidateConfig_RoutePrefixMustBeRooted(t *testing.T) {
	cfg := validAppConfig()
	cfg.RoutePrefix = "prod"

	if err := ValidateConfig(&config.CoreConfig{}, cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error for route_prefix without leading slash")
	}

	cfg.RoutePrefix = "/prod"
	if err := ValidateConfig(&config.CoreConfig{}, cfg, zap.NewNop()); err != nil {
		t.Fatalf("ValidateConfig failed for rooted prefix: %v", err)
	}
}
