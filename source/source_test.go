package source

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// minimalPDF builds a well-formed single-page PDF with the given page text,
// a Helvetica font resource, and an info dictionary.
func minimalPDF(text string) []byte {
	var buf bytes.Buffer
	var offsets []int

	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)

	buf.WriteString("%PDF-1.4\n")
	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj("<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 612 792] >>")
	writeObj("<< /Type /Page /Parent 2 0 R " +
		"/Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>")
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	writeObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	writeObj("<< /Title (Test Document) /Producer (unit test) >>")

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 6 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xref)

	return buf.Bytes()
}

// TestFromBytes tests opening a document from memory.
func TestFromBytes(t *testing.T) {
	src, err := FromBytes("mem.pdf", minimalPDF("Hello"))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	defer src.Close()

	if src.Filename() != "mem.pdf" {
		t.Errorf("expected filename mem.pdf, got %q", src.Filename())
	}
	if src.PageCount() != 1 {
		t.Errorf("expected 1 page, got %d", src.PageCount())
	}
}

// TestFromBytesEmpty tests that empty input is rejected.
func TestFromBytesEmpty(t *testing.T) {
	if _, err := FromBytes("empty.pdf", nil); err == nil {
		t.Fatal("expected error for empty content")
	}
}

// TestFromBytesGarbage tests that non-PDF input is rejected.
func TestFromBytesGarbage(t *testing.T) {
	if _, err := FromBytes("bad.pdf", []byte("not a pdf at all")); err == nil {
		t.Fatal("expected error for garbage content")
	}
}

// TestPageOutOfRange tests page handle bounds checking.
func TestPageOutOfRange(t *testing.T) {
	src, err := FromBytes("mem.pdf", minimalPDF("x"))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	defer src.Close()

	if _, err := src.Page(0); err == nil {
		t.Error("expected error for page 0")
	}
	if _, err := src.Page(2); err == nil {
		t.Error("expected error for page 2")
	}
	if _, err := src.Page(1); err != nil {
		t.Errorf("expected page 1 to resolve, got %v", err)
	}
}

// TestPageSizeInherited tests that the media box is inherited from the page
// tree when absent on the page itself.
func TestPageSizeInherited(t *testing.T) {
	src, err := FromBytes("mem.pdf", minimalPDF("x"))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	defer src.Close()

	page, err := src.Page(1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	width, height := page.Size()
	if width != 612 || height != 792 {
		t.Errorf("expected 612x792, got %gx%g", width, height)
	}
}

// TestNativeText tests embedded text extraction from a real document.
func TestNativeText(t *testing.T) {
	src, err := FromBytes("mem.pdf", minimalPDF("Hello extraction"))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	defer src.Close()

	page, err := src.Page(1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	text, err := page.NativeText()
	if err != nil {
		t.Fatalf("NativeText failed: %v", err)
	}
	if !strings.Contains(text, "Hello extraction") {
		t.Errorf("expected page text, got %q", text)
	}
	if text != strings.TrimSpace(text) {
		t.Errorf("expected trimmed text, got %q", text)
	}
}

// TestMetadata tests the info dictionary read.
func TestMetadata(t *testing.T) {
	src, err := FromBytes("mem.pdf", minimalPDF("x"))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	defer src.Close()

	meta := src.Metadata()
	if meta == nil {
		t.Fatal("expected metadata, got nil")
	}
	if meta.Title != "Test Document" {
		t.Errorf("expected title %q, got %q", "Test Document", meta.Title)
	}
	if meta.Producer != "unit test" {
		t.Errorf("expected producer %q, got %q", "unit test", meta.Producer)
	}
	if meta.Author != "" {
		t.Errorf("expected empty author, got %q", meta.Author)
	}
}

// TestCloseIdempotent tests that a closed source degrades cleanly.
func TestCloseIdempotent(t *testing.T) {
	src, err := FromBytes("mem.pdf", minimalPDF("x"))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}

	if err := src.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	if src.PageCount() != 0 {
		t.Errorf("expected 0 pages after close, got %d", src.PageCount())
	}
	if _, err := src.Page(1); err == nil {
		t.Error("expected error reading page after close")
	}
	if src.Metadata() != nil {
		t.Error("expected nil metadata after close")
	}
}

// TestRender tests page rasterization dimensions at the default zoom.
func TestRender(t *testing.T) {
	src, err := FromBytes("mem.pdf", minimalPDF("x"))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	defer src.Close()

	renderer, err := src.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	defer renderer.Close()

	img, err := renderer.Render(1, DefaultZoom)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	bounds := img.Bounds()
	// 612x792pt at 2x zoom is 1224x1584px, give or take rounding.
	if abs(float64(bounds.Dx())-1224) > 2 || abs(float64(bounds.Dy())-1584) > 2 {
		t.Errorf("expected roughly 1224x1584, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

// TestRenderInvalidZoom tests zoom validation.
func TestRenderInvalidZoom(t *testing.T) {
	src, err := FromBytes("mem.pdf", minimalPDF("x"))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	defer src.Close()

	renderer, err := src.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	defer renderer.Close()

	if _, err := renderer.Render(1, 0); err == nil {
		t.Error("expected error for zero zoom")
	}
}
