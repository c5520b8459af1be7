package pagemine

import (
	"fmt"
	"strings"
)

// WarningCode classifies a non-fatal extraction problem.
type WarningCode string

// Warning codes, in roughly the order the pipeline can hit them.
const (
	// WarnPageUnreadable: the native text layer of a page could not be read.
	WarnPageUnreadable WarningCode = "page_unreadable"

	// WarnRenderFailed: the page could not be rasterized; OCR was skipped.
	WarnRenderFailed WarningCode = "render_failed"

	// WarnOCRFailed: the OCR engine failed or is not compiled in.
	WarnOCRFailed WarningCode = "ocr_failed"

	// WarnImageExtraction: embedded images could not be enumerated.
	WarnImageExtraction WarningCode = "image_extraction_failed"

	// WarnImageSkipped: one embedded image was dropped as undecodable.
	WarnImageSkipped WarningCode = "image_skipped"
)

// Warning records a non-fatal problem encountered during extraction.
// Warnings indicate that extraction succeeded but some page records are
// degraded (empty ocr_text, missing images). Err carries the underlying
// typed error ([*RenderError], [*OcrError], [*ImageDecodeError]) for
// errors.As inspection.
type Warning struct {
	Page int // 1-indexed; 0 for document-level warnings
	Code WarningCode
	Err  error
}

// String renders the warning for logs.
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("[%s] page %d: %v", w.Code, w.Page, w.Err)
	}
	return fmt.Sprintf("[%s] %v", w.Code, w.Err)
}

// FormatWarnings renders warnings as a single semicolon-separated string.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
