package authgoogle_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/histkeep/internal/app/features/authgoogle"
	"github.com/dalemusser/histkeep/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/histkeep/internal/app/store/users"
	"github.com/dalemusser/histkeep/internal/app/system/auth"
	"github.com/dalemusser/histkeep/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, clientID, clientSecret string) *authgoogle.Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	return authgoogle.NewHandler(
		sessionMgr,
		oauthstate.New(db),
		userstore.New(db, "users"),
		"admin@test.com",
		clientID,
		clientSecret,
		"http://localhost:8080",
		auth.NewPaths(""),
		logger,
	)
}

func TestIsConfigured(t *testing.T) {
	if !newTestHandler(t, "test-client-id", "test-client-secret").IsConfigured() {
		t.Error("IsConfigured() should return true with client ID and secret")
	}
	if newTestHandler(t, "", "").IsConfigured() {
		t.Error("IsConfigured() should return false without client ID and secret")
	}
}

func TestServeLogin_NotConfigured(t *testing.T) {
	h := newTestHandler(t, "", "")

	req := httptest.NewRequest("GET", "/auth/google", nil)
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); !strings.Contains(location, "google_not_configured") {
		t.Errorf("Location = %q, want to contain 'google_not_configured'", location)
	}
}

func TestServeLogin_RedirectsToGoogle(t *testing.T) {
	h := newTestHandler(t, "test-client-id", "test-client-secret")

	req := httptest.NewRequest("GET", "/auth/google", nil)
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Errorf("expected status %d, got %d", http.StatusTemporaryRedirect, rec.Code)
	}
	if location := rec.Header().Get("Location"); !strings.Contains(location, "accounts.google.com") {
		t.Errorf("Location = %q, want to contain 'accounts.google.com'", location)
	}
}

func TestServeCallback_MissingState(t *testing.T) {
	h := newTestHandler(t, "test-client-id", "test-client-secret")

	req := httptest.NewRequest("GET", "/auth/google/callback?code=test-code", nil)
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); !strings.Contains(location, "invalid_state") {
		t.Errorf("Location = %q, want to contain 'invalid_state'", location)
	}
}

func TestServeCallback_GoogleError(t *testing.T) {
	h := newTestHandler(t, "test-client-id", "test-client-secret")

	req := httptest.NewRequest("GET", "/auth/google/callback?error=access_denied", nil)
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); !strings.Contains(location, "google_denied") {
		t.Errorf("Location = %q, want to contain 'google_denied'", location)
	}
}

func TestServeCallback_InvalidState(t *testing.T) {
	h := newTestHandler(t, "test-client-id", "test-client-secret")

	req := httptest.NewRequest("GET", "/auth/google/callback?state=invalid-state&code=test-code", nil)
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if location := rec.Header().Get("Location"); !strings.Contains(location, "invalid_state") {
		t.Errorf("Location = %q, want to contain 'invalid_state'", location)
	}
}

func TestRoutes(t *testing.T) {
	h := newTestHandler(t, "test-client-id", "test-client-secret")

	if authgoogle.Routes(h) == nil {
		t.Fatal("Routes() returned nil")
	}
}

func TestServeLogin_PrefixedMount(t *testing.T) {
	h := authgoogle.NewHandler(nil, nil, nil,
		"admin@test.com", "", "", "http://localhost:8080",
		auth.NewPaths("/prod"), zap.NewNop())

	req := httptest.NewRequest("GET", "/prod/auth/google", nil)
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if location := rec.Header().Get("Location"); location != "/prod/login?error=google_not_configured" {
		t.Errorf("Location = %q, want /prod/login?error=google_not_configured", location)
	}
}

func TestNewHandler_CallbackURLIncludesPrefix(t *testing.T) {
	h := authgoogle.NewHandler(nil, nil, nil,
		"admin@test.com", "id", "secret", "http://localhost:8080",
		auth.NewPaths("/prod"), zap.NewNop())

	want := "http://localhost:8080/prod/auth/google/callback"
	if h.RedirectURL != want {
		t.Errorf("RedirectURL = %q, want %q", h.RedirectURL, want)
	}
}
