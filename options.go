package pagemine

import (
	"github.com/tsawler/pagemine/ocr"
	"github.com/tsawler/pagemine/source"
	"github.com/tsawler/pagemine/tables"
)

// ExtractOptions holds configuration for document extraction.
type ExtractOptions struct {
	// Page selection (1-indexed; nil means all pages)
	pages []int

	// Rasterization scale for the OCR pass
	zoom float64

	// Worker pool size (0 means one per CPU core)
	workers int

	// OCR engine language(s), "+" separated (e.g. "eng+fra")
	language string

	// Skip the render+OCR pass entirely
	withoutOCR bool

	// OCR engine factory; defaults to the Tesseract client
	engine ocr.Factory

	// Table grouping thresholds
	tables tables.Config
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:      nil,
		zoom:       source.DefaultZoom,
		workers:    0,
		language:   "",
		withoutOCR: false,
		engine:     nil,
		tables:     tables.DefaultConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		zoom:       o.zoom,
		workers:    o.workers,
		language:   o.language,
		withoutOCR: o.withoutOCR,
		engine:     o.engine,
		tables:     o.tables,
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}

// engineFactory resolves the OCR engine factory, applying the configured
// language to the default Tesseract client.
func (o ExtractOptions) engineFactory() ocr.Factory {
	if o.engine != nil {
		return o.engine
	}
	language := o.language
	return func() (ocr.Engine, error) {
		client, err := ocr.New()
		if err != nil {
			return nil, err
		}
		if language != "" {
			if err := client.SetLanguage(language); err != nil {
				client.Close()
				return nil, err
			}
		}
		return client, nil
	}
}
