package apiutil_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/histkeep/internal/app/system/apiutil"
)

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	apiutil.WriteError(rec, 400, "Email is required")

	if rec.Code != 400 {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body["error"] != "Email is required" {
		t.Errorf("error message: got %q", body["error"])
	}
}
