package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/histkeep/internal/app/system/htmlsanitize"
)

func TestSanitize_PlainTextUnchanged(t *testing.T) {
	if got := htmlsanitize.Sanitize("Trip to Paris"); got != "Trip to Paris" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	got := htmlsanitize.Sanitize("<p>Hello</p><script>alert('xss')</script>")
	if got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesOnclick(t *testing.T) {
	got := htmlsanitize.Sanitize(`<b onclick="alert('xss')">Click</b>`)
	if strings.Contains(got, "onclick") {
		t.Errorf("expected onclick attribute removed, got %q", got)
	}
}

func TestStrip_RemovesAllMarkup(t *testing.T) {
	got := htmlsanitize.Strip("<b>Trip</b> to <i>Paris</i>")
	if got != "Trip to Paris" {
		t.Errorf("expected plain text, got %q", got)
	}
}

func TestStrip_Empty(t *testing.T) {
	if got := htmlsanitize.Strip(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
