package htmlsanitize_test

import (
	"testing"

	"github.com/hackmatehq/hackmate/internal/app/system/htmlsanitize"
)

func TestPlain_Empty(t *testing.T) {
	if got := htmlsanitize.Plain(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestPlain_PlainText(t *testing.T) {
	if got := htmlsanitize.Plain("Hello, World!"); got != "Hello, World!" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestPlain_RemovesScript(t *testing.T) {
	got := htmlsanitize.Plain("Hello<script>alert('xss')</script>")
	if got != "Hello" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestPlain_StripsTagsKeepsText(t *testing.T) {
	got := htmlsanitize.Plain("<p><strong>We need</strong> a backend dev</p>")
	if got != "We need a backend dev" {
		t.Errorf("expected tags stripped, got %q", got)
	}
}

func TestPlain_TrimsWhitespace(t *testing.T) {
	if got := htmlsanitize.Plain("  hi there  "); got != "hi there" {
		t.Errorf("expected trimmed text, got %q", got)
	}
}
