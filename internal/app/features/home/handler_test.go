package home_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/histkeep/internal/app/features/home"
	"github.com/dalemusser/histkeep/internal/app/system/auth"
	"github.com/dalemusser/histkeep/internal/testutil"
	"go.uber.org/zap"
)

func TestServeRoot_SignedIn(t *testing.T) {
	h := home.NewHandler(auth.NewPaths(""), zap.NewNop())

	req := testutil.NewAuthenticatedRequest("GET", "/", testutil.RegularUser())
	rec := httptest.NewRecorder()
	h.ServeRoot(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/data" {
		t.Errorf("Location: got %q, want /data", loc)
	}
}

func TestServeRoot_Anonymous(t *testing.T) {
	h := home.NewHandler(auth.NewPaths(""), zap.NewNop())

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	h.ServeRoot(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location: got %q, want /login", loc)
	}
}

func TestServeRoot_PrefixedMount(t *testing.T) {
	h := home.NewHandler(auth.NewPaths("/prod"), zap.NewNop())

	req := httptest.NewRequest("GET", "/prod/", nil)
	rec := httptest.NewRecorder()
	h.ServeRoot(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/prod/login" {
		t.Errorf("Location: got %q, want /prod/login", loc)
	}
}
