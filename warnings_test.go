package pagemine

import (
	"errors"
	"strings"
	"testing"
)

// TestWarningString tests the log rendering of page and document warnings.
func TestWarningString(t *testing.T) {
	w := Warning{Page: 3, Code: WarnOCRFailed, Err: errors.New("engine gone")}
	got := w.String()
	if got != "[ocr_failed] page 3: engine gone" {
		t.Errorf("expected page warning rendering, got %q", got)
	}

	w = Warning{Code: WarnImageExtraction, Err: errors.New("bad xref")}
	got = w.String()
	if got != "[image_extraction_failed] bad xref" {
		t.Errorf("expected document warning rendering, got %q", got)
	}
}

// TestFormatWarnings tests the joined rendering.
func TestFormatWarnings(t *testing.T) {
	if got := FormatWarnings(nil); got != "" {
		t.Errorf("expected empty string for no warnings, got %q", got)
	}

	warnings := []Warning{
		{Page: 1, Code: WarnRenderFailed, Err: errors.New("a")},
		{Page: 2, Code: WarnOCRFailed, Err: errors.New("b")},
	}
	got := FormatWarnings(warnings)
	if !strings.Contains(got, "page 1") || !strings.Contains(got, "page 2") {
		t.Errorf("expected both warnings, got %q", got)
	}
	if !strings.Contains(got, "; ") {
		t.Errorf("expected semicolon separator, got %q", got)
	}
}

// TestErrorUnwrap tests that the typed errors expose their causes.
func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")

	for _, err := range []error{
		&SourceOpenError{Name: "x.pdf", Err: cause},
		&RenderError{Page: 1, Err: cause},
		&OcrError{Page: 1, Err: cause},
		&ImageDecodeError{Page: 1, Name: "Im1", Err: cause},
	} {
		if !errors.Is(err, cause) {
			t.Errorf("%T: expected unwrap to reach the cause", err)
		}
	}
}
