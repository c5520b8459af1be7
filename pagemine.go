// Package pagemine extracts structured per-page records from PDF files.
//
// For every page it combines two independent text sources (the PDF's
// native embedded text, and OCR over a rendered page bitmap), reconciles
// them into one canonical text, groups OCR tokens into table-like
// pseudo-rows, and pairs embedded images with nearby figure captions. The
// result is a JSON-serializable document record consumed by downstream
// indexing and storage layers.
//
// Basic usage:
//
//	doc, warnings, err := pagemine.Open("report.pdf").Document()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pagemine.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := pagemine.Open("report.pdf").
//	    Zoom(3.0).
//	    Language("eng+deu").
//	    Workers(4).
//	    Document()
//
// A failed page never fails the document: pages that cannot be rendered or
// OCR'd come back as degraded records (empty ocr_text, empty tables) with
// matching warnings. Only a source that cannot be opened at all returns an
// error.
//
// OCR requires Tesseract and the "ocr" build tag; see the ocr subpackage.
// Without it, extraction still runs and produces native-text-only records.
package pagemine

// Open prepares extraction of the PDF at filename and returns an Extractor
// for fluent configuration. The file is not touched until a terminal
// operation runs.
//
// Example:
//
//	doc, warnings, err := pagemine.Open("document.pdf").Document()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes prepares extraction of a PDF held in memory. The name is
// recorded as the document filename in the resulting record.
//
// Example:
//
//	doc, warnings, err := pagemine.FromBytes("upload.pdf", data).Document()
func FromBytes(name string, data []byte) *Extractor {
	return &Extractor{
		name:    name,
		data:    data,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pagemine.Must(pagemine.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustDocument wraps a call to Document() and panics on error, discarding
// warnings.
//
// Example:
//
//	doc := pagemine.MustDocument(pagemine.Open("document.pdf").Document())
func MustDocument[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
