// Package source implements the PDF access layer consumed by the
// extraction pipeline.
//
// A [Source] wraps one PDF held fully in memory and exposes everything the
// pipeline needs per page: the native text transcript, positioned text
// blocks, embedded images with their placement rectangles, and page
// rasterization at a configurable zoom.
//
// # Resource model
//
// Open/Close is explicit. A Source owns no file handles after [Open]
// returns (the file is slurped), so Close is cheap, but callers must still
// call it on every exit path; renderers in particular hold native MuPDF
// state.
//
// The Source itself is safe for concurrent page reads: native text and
// image enumeration operate over the shared source bytes through
// goroutine-safe readers. Rasterization is not; each worker must create its
// own [Renderer] via [Source.NewRenderer].
//
// # Backends
//
// Native text and positioned characters come from github.com/ledongthuc/pdf.
// Rasterization is MuPDF via github.com/gen2brain/go-fitz. Embedded image
// bytes are decoded by github.com/pdfcpu/pdfcpu, and placement rectangles
// are recovered from the page content stream (q/Q/cm/Do tracking), joined
// to the decoded images by XObject resource name.
//
// # Coordinates
//
// All boxes leave this package in top-origin page points (Y grows
// downward). PDF bottom-origin coordinates are flipped using the page
// media box height.
package source
