package pagemine

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"runtime"
	"sort"
	"sync"

	"github.com/tsawler/pagemine/captions"
	"github.com/tsawler/pagemine/model"
	"github.com/tsawler/pagemine/ocr"
	"github.com/tsawler/pagemine/reconcile"
	"github.com/tsawler/pagemine/source"
	"github.com/tsawler/pagemine/tables"
)

// Extractor provides a fluent interface for extracting page records from a
// PDF. Each configuration method returns a new Extractor instance, making
// it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	name     string
	data     []byte

	// Access layer; non-nil only while a terminal operation runs
	src *source.Source

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		name:     e.name,
		data:     e.data,
		src:      e.src,
		options:  e.options.clone(),
		err:      e.err,
		warnings: append([]Warning(nil), e.warnings...),
	}
}

// ensureSource opens the source if not already open.
func (e *Extractor) ensureSource() error {
	if e.src != nil {
		return nil
	}

	var (
		src *source.Source
		err error
	)
	switch {
	case e.filename != "":
		src, err = source.Open(e.filename)
	case e.data != nil:
		src, err = source.FromBytes(e.name, e.data)
	default:
		return fmt.Errorf("no filename or data specified")
	}
	if err != nil {
		return err
	}

	e.src = src
	return nil
}

// Close releases resources associated with the Extractor. A later terminal
// operation reopens the source from the retained filename or bytes.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.src == nil {
		return nil
	}
	err := e.src.Close()
	e.src = nil
	return err
}

// sourceName returns the best available name for error reporting.
func (e *Extractor) sourceName() string {
	if e.filename != "" {
		return e.filename
	}
	return e.name
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to extract (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	doc, _, err := pagemine.Open("doc.pdf").Pages(1, 3, 5).Document()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to extract (1-indexed, inclusive).
//
// Example:
//
//	doc, _, err := pagemine.Open("doc.pdf").PageRange(5, 10).Document()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Zoom sets the rasterization scale for the OCR pass. 1.0 renders at the
// PDF's native 72 dpi; the default is 2.0. Must be positive.
//
// Example:
//
//	doc, _, err := pagemine.Open("scan.pdf").Zoom(3.0).Document()
func (e *Extractor) Zoom(zoom float64) *Extractor {
	newExt := e.clone()
	if zoom <= 0 {
		newExt.err = fmt.Errorf("zoom must be positive, got %g", zoom)
		return newExt
	}
	newExt.options.zoom = zoom
	return newExt
}

// Workers bounds the page worker pool. The default (0) uses one worker per
// CPU core.
//
// Example:
//
//	doc, _, err := pagemine.Open("doc.pdf").Workers(2).Document()
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	if n < 0 {
		newExt.err = fmt.Errorf("workers must be >= 0, got %d", n)
		return newExt
	}
	newExt.options.workers = n
	return newExt
}

// Language sets the OCR language(s). Multiple languages can be specified as
// a "+" separated string (e.g. "eng+fra"). Default is "eng" (English).
//
// Example:
//
//	doc, _, err := pagemine.Open("doc.pdf").Language("eng+deu").Document()
func (e *Extractor) Language(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.language = lang
	return newExt
}

// WithoutOCR skips the render+OCR pass entirely. Page records carry native
// text only, with no ocr_text and no tables, and no OCR warnings are
// recorded.
//
// Example:
//
//	doc, _, err := pagemine.Open("doc.pdf").WithoutOCR().Document()
func (e *Extractor) WithoutOCR() *Extractor {
	newExt := e.clone()
	newExt.options.withoutOCR = true
	return newExt
}

// WithEngine replaces the OCR engine factory. The pipeline calls the
// factory once per worker, so engines need not be safe for concurrent use.
//
// Example:
//
//	doc, _, err := pagemine.Open("doc.pdf").WithEngine(myFactory).Document()
func (e *Extractor) WithEngine(factory ocr.Factory) *Extractor {
	newExt := e.clone()
	newExt.options.engine = factory
	return newExt
}

// TableConfig replaces the table grouping thresholds.
//
// Example:
//
//	cfg := tables.DefaultConfig()
//	cfg.BandTolerance = 12
//	doc, _, err := pagemine.Open("doc.pdf").TableConfig(cfg).Document()
func (e *Extractor) TableConfig(config tables.Config) *Extractor {
	newExt := e.clone()
	newExt.options.tables = config
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// PageCount returns the number of pages in the source document.
// This is a terminal operation that closes the underlying source.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureSource(); err != nil {
		return 0, &SourceOpenError{Name: e.sourceName(), Err: err}
	}
	defer e.Close()
	return e.src.PageCount(), nil
}

// Text extracts the document and returns the reconciled text of all pages,
// separated by blank lines. This is a terminal operation that closes the
// underlying source.
func (e *Extractor) Text() (string, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return "", warnings, err
	}
	return doc.ExtractText(), warnings, nil
}

// Document runs extraction and returns the assembled document record.
// This is a terminal operation that closes the underlying source.
//
// Returns the document, any warnings encountered during processing, and an
// error if the source could not be opened. Warnings indicate non-fatal
// degradation (a page that failed rendering or OCR, a dropped image);
// degraded pages still appear in the document with empty fields.
//
// Example:
//
//	doc, warnings, err := pagemine.Open("document.pdf").Document()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pagemine.FormatWarnings(warnings))
//	}
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	return e.DocumentContext(context.Background())
}

// DocumentContext is Document with cancellation. When ctx is canceled,
// in-flight pages are abandoned, nothing partial is returned, and the
// context error surfaces. No per-page OCR deadline is imposed here; wrap
// the context if one is needed.
func (e *Extractor) DocumentContext(ctx context.Context) (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	if err := e.ensureSource(); err != nil {
		return nil, nil, &SourceOpenError{Name: e.sourceName(), Err: err}
	}
	defer e.Close()

	pageNumbers, err := e.resolvePages()
	if err != nil {
		return nil, nil, err
	}

	doc := model.NewDocument(e.src.Filename())
	doc.Metadata = e.src.Metadata()

	// One slot per page, written exactly once by whichever worker takes
	// the page. Warnings are collected the same way to keep page order.
	slots := make([]*model.Page, len(pageNumbers))
	slotWarnings := make([][]Warning, len(pageNumbers))

	workers := e.options.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(pageNumbers) {
		workers = len(pageNumbers)
	}

	grouper := tables.NewGrouper()
	grouper.Configure(e.options.tables)

	jobs := make(chan int)
	go func() {
		defer close(jobs)
		for i := range pageNumbers {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.runWorker(ctx, jobs, pageNumbers, slots, slotWarnings, grouper)
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	warnings := append([]Warning(nil), e.warnings...)
	for i, page := range slots {
		doc.AddPage(page)
		warnings = append(warnings, slotWarnings[i]...)
	}

	return doc, warnings, nil
}

// resolvePages validates the configured page selection against the source,
// defaulting to all pages in order.
func (e *Extractor) resolvePages() ([]int, error) {
	count := e.src.PageCount()
	if count == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	if len(e.options.pages) == 0 {
		pages := make([]int, count)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages, nil
	}

	seen := make(map[int]bool)
	pages := make([]int, 0, len(e.options.pages))
	for _, n := range e.options.pages {
		if n < 1 || n > count {
			return nil, fmt.Errorf("page %d out of range (1-%d)", n, count)
		}
		if !seen[n] {
			seen[n] = true
			pages = append(pages, n)
		}
	}
	sort.Ints(pages)
	return pages, nil
}

// ============================================================================
// Per-page pipeline
// ============================================================================

// runWorker owns one renderer handle and one OCR engine for its lifetime
// and drains page jobs. Renderer or engine startup failure does not stop
// the worker: pages are still assembled, degraded, with warnings saying why.
func (e *Extractor) runWorker(ctx context.Context, jobs <-chan int, pageNumbers []int, slots []*model.Page, slotWarnings [][]Warning, grouper *tables.Grouper) {
	var (
		renderer    *source.Renderer
		rendererErr error
		engine      ocr.Engine
		engineErr   error
	)

	if !e.options.withoutOCR {
		renderer, rendererErr = e.src.NewRenderer()
		if rendererErr == nil {
			defer renderer.Close()
		}
		engine, engineErr = e.options.engineFactory()()
		if engineErr == nil {
			defer engine.Close()
		}
	}

	for idx := range jobs {
		if ctx.Err() != nil {
			return
		}
		page, warnings := e.extractPage(pageNumbers[idx], renderer, rendererErr, engine, engineErr, grouper)
		slots[idx] = page
		slotWarnings[idx] = warnings
	}
}

// extractPage runs the full pipeline for one page: native text, render,
// OCR, reconciliation, table grouping, images and captions. It always
// returns a page record; failures degrade the record and become warnings.
func (e *Extractor) extractPage(number int, renderer *source.Renderer, rendererErr error, engine ocr.Engine, engineErr error, grouper *tables.Grouper) (*model.Page, []Warning) {
	record := model.NewPage(number)
	var warnings []Warning

	warn := func(code WarningCode, err error) {
		warnings = append(warnings, Warning{Page: number, Code: code, Err: err})
	}

	page, err := e.src.Page(number)
	if err != nil {
		warn(WarnPageUnreadable, &RenderError{Page: number, Err: err})
		return record, warnings
	}

	// Native text layer.
	var blocks []source.TextBlock
	if native, err := page.NativeText(); err != nil {
		warn(WarnPageUnreadable, &RenderError{Page: number, Err: err})
	} else {
		record.NativeText = native
	}
	if blocks, err = page.TextBlocks(); err != nil {
		warn(WarnPageUnreadable, &RenderError{Page: number, Err: err})
	}

	// Render + OCR.
	var ocrResult ocr.Result
	if !e.options.withoutOCR {
		ocrResult = e.recognizePage(number, renderer, rendererErr, engine, engineErr, warn)
	}

	record.OCRText = ocrResult.Text
	record.Text = reconcile.Merge(record.NativeText, record.OCRText)
	if rows := grouper.Rows(ocrResult.Tokens); len(rows) > 0 {
		record.Tables = rows
	}

	// Embedded images and captions.
	images, skipped, err := page.Images()
	if err != nil {
		warn(WarnImageExtraction, err)
	}
	for _, s := range skipped {
		warn(WarnImageSkipped, &ImageDecodeError{Page: number, Name: s.Name, Err: s.Err})
	}
	for _, img := range images {
		record.Images = append(record.Images, model.Image{
			Format: img.Format,
			Data:   img.Data,
		})
		if !img.HasBBox {
			continue
		}
		if caption, ok := captions.Match(img.BBox, blocks); ok {
			record.FigureCaptions = append(record.FigureCaptions, caption)
		}
	}

	return record, warnings
}

// recognizePage renders one page and runs OCR over it. Any failure returns
// an empty result; downstream reconciliation tolerates that.
func (e *Extractor) recognizePage(number int, renderer *source.Renderer, rendererErr error, engine ocr.Engine, engineErr error, warn func(WarningCode, error)) ocr.Result {
	if rendererErr != nil {
		warn(WarnRenderFailed, &RenderError{Page: number, Err: rendererErr})
		return ocr.Result{}
	}

	bitmap, err := renderer.Render(number, e.options.zoom)
	if err != nil {
		warn(WarnRenderFailed, &RenderError{Page: number, Err: err})
		return ocr.Result{}
	}

	if engineErr != nil {
		warn(WarnOCRFailed, &OcrError{Page: number, Err: engineErr})
		return ocr.Result{}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, bitmap); err != nil {
		warn(WarnRenderFailed, &RenderError{Page: number, Err: err})
		return ocr.Result{}
	}

	result, err := engine.Recognize(buf.Bytes())
	if err != nil {
		warn(WarnOCRFailed, &OcrError{Page: number, Err: err})
		return ocr.Result{}
	}
	return result
}
