package reconcile

import (
	"strings"
	"testing"
)

// TestMergeOCRContainedInNative tests that native text wins when it already
// contains the OCR transcript.
func TestMergeOCRContainedInNative(t *testing.T) {
	native := "Invoice Total 42\nThank you for your business"
	ocr := "Invoice Total 42"

	got := Merge(native, ocr)
	if got != native {
		t.Errorf("expected native text, got %q", got)
	}
}

// TestMergeNativeContainedInOCR tests that the OCR transcript wins when it
// contains the native text.
func TestMergeNativeContainedInOCR(t *testing.T) {
	native := "Invoice Total 42"
	ocr := "Invoice Total 42\nStamped: PAID"

	got := Merge(native, ocr)
	if got != ocr {
		t.Errorf("expected OCR text, got %q", got)
	}
}

// TestMergeEmptyNative tests the scanned-page case: no native text layer at
// all. The empty string is contained in any transcript, so the OCR text
// becomes the reconciled text without a supplement marker.
func TestMergeEmptyNative(t *testing.T) {
	got := Merge("", "Scanned page contents")
	if got != "Scanned page contents" {
		t.Errorf("expected OCR text, got %q", got)
	}
	if strings.Contains(got, Marker) {
		t.Errorf("expected no supplement marker, got %q", got)
	}
}

// TestMergeEmptyOCR tests a page where OCR produced nothing.
func TestMergeEmptyOCR(t *testing.T) {
	got := Merge("Native only", "")
	if got != "Native only" {
		t.Errorf("expected native text, got %q", got)
	}
}

// TestMergeBothEmpty tests a page with neither text layer.
func TestMergeBothEmpty(t *testing.T) {
	if got := Merge("", ""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

// TestMergeIdentical tests that identical layers collapse to one copy.
func TestMergeIdentical(t *testing.T) {
	got := Merge("Same text", "Same text")
	if got != "Same text" {
		t.Errorf("expected single copy, got %q", got)
	}
}

// TestMergeDisjoint tests that genuinely different layers are joined with
// the supplement marker, native first.
func TestMergeDisjoint(t *testing.T) {
	got := Merge("Native paragraph", "OCR found this stamp")

	want := "Native paragraph\n\n" + Marker + "\nOCR found this stamp"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// TestMergeTrimsWhitespace tests that surrounding whitespace does not defeat
// the containment checks.
func TestMergeTrimsWhitespace(t *testing.T) {
	got := Merge("  Invoice Total 42  \n", "\nInvoice Total 42")
	if got != "Invoice Total 42" {
		t.Errorf("expected trimmed native text, got %q", got)
	}
}

// TestMergeSubstringNotLines tests that containment is plain substring
// matching, not line-by-line comparison.
func TestMergeSubstringNotLines(t *testing.T) {
	native := "alpha beta gamma"
	ocr := "beta"

	got := Merge(native, ocr)
	if got != native {
		t.Errorf("expected native text, got %q", got)
	}
}
