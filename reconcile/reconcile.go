// Package reconcile merges the native and OCR transcripts of a page into a
// single canonical text.
//
// The merge is a substring-containment heuristic, not a semantic diff:
//
//  1. If the OCR transcript is contained in the native transcript, the
//     native transcript wins (OCR added nothing).
//  2. Otherwise, if the native transcript is contained in the OCR
//     transcript, the OCR transcript wins. An empty native transcript
//     always lands here when OCR produced anything.
//  3. Otherwise both are kept: native text, a blank line, the
//     [Marker] line, then the OCR text.
//
// Overlaps shorter than full-string containment are not deduplicated. That
// asymmetry is intentional and load-bearing: downstream consumers depend on
// the exact output shape, so do not "fix" it here.
package reconcile

import "strings"

// Marker is the literal line that introduces OCR text appended to a native
// transcript in the concatenation case.
const Marker = "[OCR Supplement]"

// Merge reconciles a native transcript and an OCR transcript into one
// canonical text. Both inputs are trimmed before comparison and the result
// is built from the trimmed forms.
func Merge(native, ocrText string) string {
	native = strings.TrimSpace(native)
	ocrText = strings.TrimSpace(ocrText)

	if strings.Contains(native, ocrText) {
		return native
	}
	if strings.Contains(ocrText, native) {
		return ocrText
	}
	return native + "\n\n" + Marker + "\n" + ocrText
}
