package pagemine

import "fmt"

// SourceOpenError reports that the source PDF could not be opened at all.
// It is the only hard failure: nothing is extracted and no document is
// returned.
type SourceOpenError struct {
	Name string // filename or caller-supplied name
	Err  error
}

func (e *SourceOpenError) Error() string {
	return fmt.Sprintf("opening %s: %v", e.Name, e.Err)
}

func (e *SourceOpenError) Unwrap() error { return e.Err }

// RenderError reports a page-scoped failure reading or rasterizing one
// page. The page's OCR pass is skipped and a degraded record is emitted;
// the rest of the document continues.
type RenderError struct {
	Page int
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("page %d: render: %v", e.Page, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// OcrError reports a page-scoped OCR engine failure. The page keeps its
// native text; OCR text and tables stay empty.
type OcrError struct {
	Page int
	Err  error
}

func (e *OcrError) Error() string {
	return fmt.Sprintf("page %d: ocr: %v", e.Page, e.Err)
}

func (e *OcrError) Unwrap() error { return e.Err }

// ImageDecodeError reports a single embedded image whose bytes could not be
// decoded. That image record is dropped; the page keeps everything else.
type ImageDecodeError struct {
	Page int
	Name string // XObject resource name
	Err  error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("page %d: image %s: %v", e.Page, e.Name, e.Err)
}

func (e *ImageDecodeError) Unwrap() error { return e.Err }
