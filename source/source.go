package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pagemine/model"
)

// Source is an open PDF document. It holds the complete source bytes in
// memory so that independent backends (text, images, rasterization) can
// read them concurrently without sharing file handles.
type Source struct {
	name   string
	data   []byte
	reader *pdf.Reader
}

// Open reads the PDF at path into memory and opens it.
// The returned Source must be closed by the caller.
func Open(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return FromBytes(filepath.Base(path), data)
}

// FromBytes opens a PDF from raw bytes. The name is recorded as the
// document filename; data is not copied and must not be modified afterwards.
func FromBytes(name string, data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty PDF content")
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing PDF: %w", err)
	}

	return &Source{
		name:   name,
		data:   data,
		reader: reader,
	}, nil
}

// Close releases the source. It is safe to call multiple times.
// Renderers created from this source have their own lifecycle and must be
// closed separately.
func (s *Source) Close() error {
	s.reader = nil
	s.data = nil
	return nil
}

// Filename returns the recorded document filename.
func (s *Source) Filename() string {
	return s.name
}

// PageCount returns the number of pages in the document.
func (s *Source) PageCount() int {
	if s.reader == nil {
		return 0
	}
	return s.reader.NumPage()
}

// Page returns a handle for the given 1-indexed page.
func (s *Source) Page(number int) (*Page, error) {
	if s.reader == nil {
		return nil, fmt.Errorf("source is closed")
	}
	if number < 1 || number > s.reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range (1-%d)", number, s.reader.NumPage())
	}

	page := s.reader.Page(number)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d is missing from the page tree", number)
	}

	width, height := pageSize(page)

	return &Page{
		source: s,
		number: number,
		page:   page,
		width:  width,
		height: height,
	}, nil
}

// Metadata reads the document info dictionary. A PDF without one yields nil.
func (s *Source) Metadata() *model.Metadata {
	if s.reader == nil {
		return nil
	}

	info := s.reader.Trailer().Key("Info")
	if info.IsNull() {
		return nil
	}

	meta := &model.Metadata{
		Title:    decodeString(info.Key("Title")),
		Author:   decodeString(info.Key("Author")),
		Subject:  decodeString(info.Key("Subject")),
		Creator:  decodeString(info.Key("Creator")),
		Producer: decodeString(info.Key("Producer")),
	}

	if (model.Metadata{}) == *meta {
		return nil
	}
	return meta
}

// Page is a handle to one page of an open Source.
type Page struct {
	source *Source
	number int
	page   pdf.Page
	width  float64
	height float64
}

// Number returns the 1-indexed page number.
func (p *Page) Number() int {
	return p.number
}

// Size returns the page dimensions in points.
func (p *Page) Size() (width, height float64) {
	return p.width, p.height
}

// pageSize resolves the page media box, walking up the page tree for
// inherited entries. Falls back to US Letter when absent.
func pageSize(page pdf.Page) (width, height float64) {
	v := page.V
	for i := 0; i < 16 && !v.IsNull(); i++ {
		box := v.Key("MediaBox")
		if !box.IsNull() && box.Len() == 4 {
			x0 := box.Index(0).Float64()
			y0 := box.Index(1).Float64()
			x1 := box.Index(2).Float64()
			y1 := box.Index(3).Float64()
			return x1 - x0, y1 - y0
		}
		v = v.Key("Parent")
	}
	return 612, 792
}
