package source

import (
	"math"
	"testing"

	"github.com/tsawler/pagemine/model"
)

const testPageHeight = 792.0

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// TestScanPlacementsSimple tests the canonical image paint: q, cm with a
// scale and translate, Do, Q. A 200x150 image at PDF origin (100, 500)
// lands at top-origin y = 792-650 = 142.
func TestScanPlacementsSimple(t *testing.T) {
	content := []byte("q 200 0 0 150 100 500 cm /Im1 Do Q")
	names := map[string]bool{"Im1": true}

	refs := scanPlacements(content, names, testPageHeight)
	if len(refs) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(refs))
	}

	ref := refs[0]
	if ref.name != "Im1" {
		t.Errorf("expected name Im1, got %q", ref.name)
	}
	if !approx(ref.bbox.X, 100) || !approx(ref.bbox.Y, 142) {
		t.Errorf("expected origin (100, 142), got (%g, %g)", ref.bbox.X, ref.bbox.Y)
	}
	if !approx(ref.bbox.Width, 200) || !approx(ref.bbox.Height, 150) {
		t.Errorf("expected size 200x150, got %gx%g", ref.bbox.Width, ref.bbox.Height)
	}
}

// TestScanPlacementsIgnoresNonImages tests that Do on a form XObject is not
// reported.
func TestScanPlacementsIgnoresNonImages(t *testing.T) {
	content := []byte("q 1 0 0 1 0 0 cm /Fm1 Do Q q 50 0 0 50 10 10 cm /Im1 Do Q")
	names := map[string]bool{"Im1": true}

	refs := scanPlacements(content, names, testPageHeight)
	if len(refs) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(refs))
	}
	if refs[0].name != "Im1" {
		t.Errorf("expected Im1, got %q", refs[0].name)
	}
}

// TestScanPlacementsGraphicsStack tests that Q restores the matrix saved by
// q: the second image is painted under the outer CTM, not the inner one.
func TestScanPlacementsGraphicsStack(t *testing.T) {
	content := []byte(`
2 0 0 2 0 0 cm
q 100 0 0 100 0 0 cm /Im1 Do Q
50 0 0 50 0 0 cm /Im2 Do
`)
	names := map[string]bool{"Im1": true, "Im2": true}

	refs := scanPlacements(content, names, testPageHeight)
	if len(refs) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(refs))
	}

	// Im1: unit square through 100-scale then the outer 2-scale = 200pt.
	if !approx(refs[0].bbox.Width, 200) {
		t.Errorf("expected Im1 width 200, got %g", refs[0].bbox.Width)
	}
	// Im2: 50-scale then the restored outer 2-scale = 100pt.
	if !approx(refs[1].bbox.Width, 100) {
		t.Errorf("expected Im2 width 100, got %g", refs[1].bbox.Width)
	}
}

// TestScanPlacementsRepeatedPaint tests that painting the same XObject twice
// yields two placements in content order.
func TestScanPlacementsRepeatedPaint(t *testing.T) {
	content := []byte("q 10 0 0 10 0 0 cm /Im1 Do Q q 10 0 0 10 300 300 cm /Im1 Do Q")
	names := map[string]bool{"Im1": true}

	refs := scanPlacements(content, names, testPageHeight)
	if len(refs) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(refs))
	}
	if approx(refs[0].bbox.X, refs[1].bbox.X) {
		t.Error("expected distinct placements for the two paints")
	}
}

// TestScanPlacementsSkipsInlineImage tests that BI ... EI binary payloads do
// not confuse the scanner.
func TestScanPlacementsSkipsInlineImage(t *testing.T) {
	content := []byte("BI /W 2 /H 2 ID \x00\xffQq/Do\x12 EI q 10 0 0 10 0 0 cm /Im1 Do Q")
	names := map[string]bool{"Im1": true}

	refs := scanPlacements(content, names, testPageHeight)
	if len(refs) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(refs))
	}
	if refs[0].name != "Im1" {
		t.Errorf("expected Im1, got %q", refs[0].name)
	}
}

// TestScanPlacementsIgnoresStringsAndComments tests that operator-looking
// bytes inside literal strings and comments are inert.
func TestScanPlacementsIgnoresStringsAndComments(t *testing.T) {
	content := []byte(`
% /Im1 Do inside a comment
BT (see /Im1 Do \) for details) Tj ET
q 10 0 0 10 0 0 cm /Im1 Do Q
`)
	names := map[string]bool{"Im1": true}

	refs := scanPlacements(content, names, testPageHeight)
	if len(refs) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(refs))
	}
}

// TestScanPlacementsNegativeScale tests that a flipped image still yields a
// normalized box with positive extent.
func TestScanPlacementsNegativeScale(t *testing.T) {
	content := []byte("q -100 0 0 -80 300 400 cm /Im1 Do Q")
	names := map[string]bool{"Im1": true}

	refs := scanPlacements(content, names, testPageHeight)
	if len(refs) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(refs))
	}

	b := refs[0].bbox
	if b.Width <= 0 || b.Height <= 0 {
		t.Errorf("expected positive extent, got %gx%g", b.Width, b.Height)
	}
	if !approx(b.X, 200) { // x spans [200, 300]
		t.Errorf("expected left edge 200, got %g", b.X)
	}
}

// TestScanPlacementsNoImages tests an empty result for text-only content.
func TestScanPlacementsNoImages(t *testing.T) {
	content := []byte("BT /F1 12 Tf 72 720 Td (Hello) Tj ET")

	refs := scanPlacements(content, map[string]bool{"Im1": true}, testPageHeight)
	if refs != nil {
		t.Errorf("expected no placements, got %v", refs)
	}
}

// TestUnitSquareBBoxFlip tests the bottom-origin to top-origin flip for a
// plain axis-aligned placement.
func TestUnitSquareBBoxFlip(t *testing.T) {
	ctm := model.Matrix{100, 0, 0, 50, 10, 700}

	b := unitSquareBBox(ctm, testPageHeight)
	// PDF-space box is (10,700)-(110,750); flipped top is 792-750 = 42.
	if !approx(b.X, 10) || !approx(b.Y, 42) {
		t.Errorf("expected origin (10, 42), got (%g, %g)", b.X, b.Y)
	}
	if !approx(b.Width, 100) || !approx(b.Height, 50) {
		t.Errorf("expected size 100x50, got %gx%g", b.Width, b.Height)
	}
}

// TestSkipLiteralString tests nesting and escape handling.
func TestSkipLiteralString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain", "(abc) q", 5},
		{"nested", "(a(b)c) q", 7},
		{"escaped paren", `(a\)b) q`, 6},
		{"unterminated", "(abc", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := skipLiteralString([]byte(tt.input), 0)
			if got != tt.want {
				t.Errorf("expected pos %d, got %d", tt.want, got)
			}
		})
	}
}
