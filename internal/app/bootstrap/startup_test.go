// internal/app/bootstrap/startup_test.go
package bootstrap

import (
	"testing"

	userstore "github.com/dalemusser/histkeep/internal/app/store/users"
	"github.com/dalemusser/histkeep/internal/testutil"
	"go.uber.org/zap"
)

func TestEnsureAdminUser_SeedsAllowList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	appCfg := AppConfig{AdminEmail: "admin@test.com", UsersCollection: "users"}
	deps := DBDeps{MongoDatabase: db}

	if err := ensureAdminUser(ctx, appCfg, deps, zap.NewNop()); err != nil {
		t.Fatalf("ensureAdminUser failed: %v", err)
	}

	users := userstore.New(db, "users")
	exists, err := users.Exists(ctx, "admin@test.com")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("admin email missing from allow-list after startup")
	}
}

func TestEnsureAdminUser_LeavesExistingEntry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users := userstore.New(db, "users")
	if _, err := users.Add(ctx, "admin@test.com", "someone-else@test.com"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	appCfg := AppConfig{AdminEmail: "admin@test.com", UsersCollection: "users"}
	if err := ensureAdminUser(ctx, appCfg, DBDeps{MongoDatabase: db}, zap.NewNop()); err != nil {
		t.Fatalf("ensureAdminUser failed: %v", err)
	}

	all, err := users.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("allow-list entries: got %d, want 1", len(all))
	}
	if all[0].AddedBy != "someone-else@test.com" {
		t.Errorf("AddedBy overwritten: got %q", all[0].AddedBy)
	}
}
