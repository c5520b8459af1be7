package source

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// DefaultZoom is the default rasterization scale. 1.0 corresponds to the
// PDF's native 72 dpi user space.
const DefaultZoom = 2.0

const baseDPI = 72.0

// Renderer rasterizes pages of one Source via MuPDF. A Renderer is NOT safe
// for concurrent use; create one per worker with [Source.NewRenderer] and
// close it when done.
type Renderer struct {
	doc *fitz.Document
}

// NewRenderer opens an independent rasterization handle over the source
// bytes. The handle owns native MuPDF state and must be closed.
func (s *Source) NewRenderer() (*Renderer, error) {
	if s.data == nil {
		return nil, fmt.Errorf("source is closed")
	}
	doc, err := fitz.NewFromMemory(s.data)
	if err != nil {
		return nil, fmt.Errorf("opening rasterizer: %w", err)
	}
	return &Renderer{doc: doc}, nil
}

// Render rasterizes the given 1-indexed page to an RGB bitmap at
// zoom x 72 dpi. Rendering is deterministic for identical input.
func (r *Renderer) Render(number int, zoom float64) (image.Image, error) {
	if r.doc == nil {
		return nil, fmt.Errorf("renderer is closed")
	}
	if zoom <= 0 {
		return nil, fmt.Errorf("zoom must be positive, got %g", zoom)
	}

	img, err := r.doc.ImageDPI(number-1, baseDPI*zoom)
	if err != nil {
		return nil, fmt.Errorf("rasterizing page %d: %w", number, err)
	}
	return img, nil
}

// Close releases the renderer's native resources.
// It is safe to call Close multiple times.
func (r *Renderer) Close() error {
	if r.doc != nil {
		err := r.doc.Close()
		r.doc = nil
		return err
	}
	return nil
}
