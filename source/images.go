package source

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	// Verification decoders for the formats PDF images commonly decode to.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/pagemine/model"
)

// EmbeddedImage is one embedded image reference on a page: decoded bytes,
// lowercase format extension, and (when recoverable from the content
// stream) its placement rectangle in top-origin page points.
type EmbeddedImage struct {
	Name    string // XObject resource name (e.g. "Im1")
	Format  string
	Data    []byte
	BBox    model.BBox
	HasBBox bool
}

// SkippedImage records one image reference dropped because its bytes could
// not be decoded. Page extraction continues without it.
type SkippedImage struct {
	Name string
	Err  error
}

// Images enumerates the page's embedded images in reference order: content
// stream placements first, then any unplaced XObjects sorted by name. An
// XObject referenced twice yields two records. The error return covers
// page-level image extraction failure; individual undecodable images land
// in the skipped list instead.
func (p *Page) Images() ([]EmbeddedImage, []SkippedImage, error) {
	decoded, err := p.source.decodePageImages(p.number)
	if err != nil {
		return nil, nil, err
	}
	if len(decoded) == 0 {
		return nil, nil, nil
	}

	var images []EmbeddedImage
	var skipped []SkippedImage
	placed := make(map[string]bool)

	for _, ref := range p.placements() {
		img, ok := decoded[ref.name]
		if !ok {
			continue
		}
		placed[ref.name] = true

		img.BBox = ref.bbox
		img.HasBBox = true
		if err := verifyImage(img); err != nil {
			skipped = append(skipped, SkippedImage{Name: img.Name, Err: err})
			continue
		}
		images = append(images, img)
	}

	// XObjects present in the resource dictionary but never painted by the
	// scanned content stream (or the scan failed). Sorted for determinism.
	rest := make([]string, 0, len(decoded))
	for name := range decoded {
		if !placed[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	for _, name := range rest {
		img := decoded[name]
		if err := verifyImage(img); err != nil {
			skipped = append(skipped, SkippedImage{Name: img.Name, Err: err})
			continue
		}
		images = append(images, img)
	}

	return images, skipped, nil
}

// decodePageImages extracts the page's image XObjects, keyed by resource
// name.
func (s *Source) decodePageImages(number int) (map[string]EmbeddedImage, error) {
	if s.data == nil {
		return nil, fmt.Errorf("source is closed")
	}

	conf := pdfcpu.NewDefaultConfiguration()
	pages := []string{strconv.Itoa(number)}

	extracted, err := api.ExtractImagesRaw(bytes.NewReader(s.data), pages, conf)
	if err != nil {
		return nil, fmt.Errorf("page %d: extracting images: %w", number, err)
	}

	decoded := make(map[string]EmbeddedImage)
	for _, pageImages := range extracted {
		// Stable object-number order so repeated runs agree.
		objNrs := make([]int, 0, len(pageImages))
		for objNr := range pageImages {
			objNrs = append(objNrs, objNr)
		}
		sort.Ints(objNrs)

		for _, objNr := range objNrs {
			img := pageImages[objNr]
			data, err := io.ReadAll(img)
			if err != nil || len(data) == 0 {
				continue
			}
			decoded[img.Name] = EmbeddedImage{
				Name:   img.Name,
				Format: normalizeFormat(img.FileType),
				Data:   data,
			}
		}
	}

	return decoded, nil
}

// verifyImage confirms the image bytes parse in their declared format.
// Formats without a registered decoder (e.g. JPEG 2000) pass unverified.
func verifyImage(img EmbeddedImage) error {
	switch img.Format {
	case "png", "jpeg", "gif", "tiff", "webp", "bmp":
	default:
		return nil
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(img.Data)); err != nil {
		return fmt.Errorf("decoding %s image %q: %w", img.Format, img.Name, err)
	}
	return nil
}

// normalizeFormat lowercases a format extension and expands the common
// abbreviations so downstream consumers see "jpeg", not "jpg".
func normalizeFormat(ext string) string {
	switch ext = strings.ToLower(ext); ext {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	default:
		return ext
	}
}
