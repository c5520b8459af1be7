package model

// Document represents a fully extracted PDF document. It is assembled once
// per extraction run and is immutable afterwards; ownership passes to the
// caller.
type Document struct {
	Filename string    `json:"filename"`
	Pages    []*Page   `json:"pages"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Metadata contains document-level information from the PDF info dictionary.
type Metadata struct {
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Creator  string `json:"creator,omitempty"`
	Producer string `json:"producer,omitempty"`
}

// Page represents a single extracted page. NativeText and OCRText are the
// two independent transcripts; Text is their reconciliation. A page that
// failed rendering or OCR still appears here with those fields empty.
type Page struct {
	Number         int      `json:"page_number"`
	NativeText     string   `json:"native_text"`
	OCRText        string   `json:"ocr_text"`
	Text           string   `json:"text"`
	Tables         []string `json:"tables"`
	FigureCaptions []string `json:"figure_captions"`
	Images         []Image  `json:"images"`
}

// Image holds one embedded image reference. Data is raw image bytes in the
// named format; JSON marshalling base64-encodes it.
type Image struct {
	Format string `json:"format"`
	Data   []byte `json:"data"`
}

// NewDocument creates an empty document for the given source filename.
func NewDocument(filename string) *Document {
	return &Document{
		Filename: filename,
		Pages:    make([]*Page, 0),
	}
}

// NewPage creates an empty page record with the given 1-indexed number.
// Slices are non-nil so the JSON shape is stable ([] rather than null).
func NewPage(number int) *Page {
	return &Page{
		Number:         number,
		Tables:         []string{},
		FigureCaptions: []string{},
		Images:         []Image{},
	}
}

// AddPage appends a page to the document.
func (d *Document) AddPage(page *Page) {
	d.Pages = append(d.Pages, page)
}

// GetPage returns a page by number (1-indexed), or nil if out of range.
func (d *Document) GetPage(number int) *Page {
	if number < 1 || number > len(d.Pages) {
		return nil
	}
	return d.Pages[number-1]
}

// PageCount returns the total number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// ExtractText returns the reconciled text of all pages, separated by blank
// lines. Pages with no text contribute nothing.
func (d *Document) ExtractText() string {
	var text string
	for _, page := range d.Pages {
		if page.Text == "" {
			continue
		}
		if text != "" {
			text += "\n\n"
		}
		text += page.Text
	}
	return text
}
