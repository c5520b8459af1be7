// Package ocr provides OCR (Optical Character Recognition) capabilities
// for reading text out of rendered PDF page bitmaps.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system and the "ocr" build tag:
//
//	go build -tags ocr
//
// On macOS, install Tesseract via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Without the build tag, [New] returns [ErrNotEnabled] and the extraction
// pipeline degrades to native text only.
//
// # Results
//
// [Client.Recognize] returns a [Result]: the engine's single-pass transcript
// plus word-level [Token] values in engine scan order (top-to-bottom,
// left-to-right). Token boxes are in the pixel space of the input bitmap and
// confidences are on the engine's 0-100 scale. Tokens are transient working
// data for table grouping; they are not part of the document record.
package ocr

import (
	"errors"

	"github.com/tsawler/pagemine/model"
)

// ErrNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in (missing "ocr" build tag).
var ErrNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Token is one recognized word with its position and confidence.
type Token struct {
	Text       string
	BBox       model.BBox // pixels, top-origin, input bitmap space
	Confidence float64    // 0-100
}

// Result holds the output of one recognition pass over a bitmap.
type Result struct {
	Text   string // whitespace-trimmed transcript
	Tokens []Token
}

// Engine is the OCR engine abstraction consumed by the extraction pipeline.
// Implementations need not be safe for concurrent use; the pipeline creates
// one engine per worker via a factory.
type Engine interface {
	// Recognize runs OCR over raw image bytes (PNG, TIFF, JPEG, etc.).
	Recognize(imageData []byte) (Result, error)
	// Close releases engine resources. Safe to call on a nil client.
	Close() error
}

// Factory creates a fresh engine instance. The pipeline calls it once per
// worker so that engines with per-instance state can run in parallel.
type Factory func() (Engine, error)
