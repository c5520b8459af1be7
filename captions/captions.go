// Package captions associates embedded images with figure captions found in
// the native text layer.
//
// The association is a first-match heuristic: scanning the page's text
// blocks in order, the first block that (a) starts with the word "figure"
// (case-insensitive) and (b) sits below the image, with its top edge beyond
// the image's bottom edge, is taken as the caption. Scanning stops at the
// first match.
//
// Known limitations, preserved on purpose because downstream consumers
// depend on the output shape: there is no horizontal proximity check, a
// caption block shared by several figures is claimed independently by each
// image that passes the geometric test, and nothing handles multiple
// figures under one caption.
package captions

import (
	"strings"

	"github.com/tsawler/pagemine/model"
	"github.com/tsawler/pagemine/source"
)

// prefix is the literal a caption block must start with, lower-cased.
const prefix = "figure"

// Match returns the caption for an image placed at the given rectangle, or
// ("", false) when no block qualifies. Boxes are top-origin, so "below the
// image" means a strictly greater top coordinate than the image's bottom.
func Match(image model.BBox, blocks []source.TextBlock) (string, bool) {
	for _, block := range blocks {
		text := strings.TrimSpace(block.Text)
		if !strings.HasPrefix(strings.ToLower(text), prefix) {
			continue
		}
		if block.BBox.Top() > image.Bottom() {
			return text, true
		}
	}
	return "", false
}
