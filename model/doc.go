// Package model provides the record types produced by page extraction.
//
// This package defines the user-facing data structures for extracted
// documents. Extraction ultimately produces these types, making them the
// primary API for consuming results, and their JSON shape is the contract
// read by downstream persistence and indexing layers.
//
// # Document Structure
//
// The [Document] type represents one extraction run over a source PDF:
//
//	doc := model.NewDocument("report.pdf")
//	doc.AddPage(page)
//
// Each [Page] carries the native transcript, the OCR transcript, the
// reconciled canonical text, pipe-delimited table pseudo-rows, figure
// captions, and embedded [Image] records. Page numbers are 1-indexed and
// contiguous; pages are never mutated after assembly.
//
// # Images
//
// An [Image] holds the raw bytes of one embedded image reference plus its
// lowercase format extension. Bytes are opaque here; JSON marshalling
// encodes them as base64, which is the transport encoding downstream
// consumers expect. A picture referenced twice on a page yields two records.
//
// # Geometry
//
// [BBox] and [Matrix] support the spatial heuristics used during
// extraction. All boxes are top-origin: Y grows downward, matching the
// raster coordinates the OCR engine reports. The source layer converts PDF
// bottom-origin coordinates before they reach this package.
package model
