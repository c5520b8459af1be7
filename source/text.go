package source

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pagemine/model"
)

// TextBlock is one native text block with its bounding box in top-origin
// page points. Blocks are transient working data for caption matching; they
// are not part of the document record.
type TextBlock struct {
	Text string
	BBox model.BBox
}

// Tolerances for assembling characters into lines and blocks, in points.
// Word spacing is a fraction of the font size, the manner in which most
// extractors detect word boundaries in positioned PDF text.
const (
	lineTolerance  = 3.0
	wordSpaceRatio = 0.3
	blockGapRatio  = 1.6
)

// NativeText returns the page's embedded text transcript in reading order,
// whitespace-trimmed and NFC-normalized. Pages without a text layer return
// an empty string.
func (p *Page) NativeText() (text string, err error) {
	// ledongthuc/pdf panics on some malformed content streams; treat that
	// the same as any other unreadable page.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: text layer unreadable: %v", p.number, r)
		}
	}()

	raw, err := p.page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("page %d: %w", p.number, err)
	}
	return norm.NFC.String(strings.TrimSpace(raw)), nil
}

// TextBlocks returns the page's positioned text blocks in top-to-bottom
// order. Characters are banded into lines by baseline proximity, lines are
// merged into blocks across small vertical gaps.
func (p *Page) TextBlocks() (blocks []TextBlock, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: text layer unreadable: %v", p.number, r)
		}
	}()

	content := p.page.Content()
	chars := make([]pdf.Text, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		chars = append(chars, t)
	}
	if len(chars) == 0 {
		return nil, nil
	}

	lines := p.assembleLines(chars)
	return mergeLines(lines), nil
}

// textLine is an intermediate run of characters sharing a baseline.
type textLine struct {
	text string
	bbox model.BBox
}

// assembleLines groups positioned characters into baseline bands and builds
// each band's text left to right, inserting spaces at word gaps.
func (p *Page) assembleLines(chars []pdf.Text) []textLine {
	sorted := make([]pdf.Text, len(chars))
	copy(sorted, chars)

	// Top of page first (PDF Y grows upward), then left to right.
	sort.SliceStable(sorted, func(i, j int) bool {
		if diff := sorted[i].Y - sorted[j].Y; diff > lineTolerance || diff < -lineTolerance {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []textLine
	var sb strings.Builder
	var bbox model.BBox

	baseline := sorted[0].Y
	lastEndX := 0.0
	first := true

	flush := func() {
		if sb.Len() == 0 {
			return
		}
		lines = append(lines, textLine{
			text: norm.NFC.String(strings.TrimSpace(sb.String())),
			bbox: bbox,
		})
		sb.Reset()
	}

	for _, ch := range sorted {
		box := p.charBox(ch)

		if first || abs(ch.Y-baseline) <= lineTolerance {
			if !first {
				gap := ch.X - lastEndX
				if gap > ch.FontSize*wordSpaceRatio {
					sb.WriteString(" ")
				}
				bbox = bbox.Union(box)
			} else {
				bbox = box
			}
		} else {
			flush()
			bbox = box
		}

		sb.WriteString(ch.S)
		baseline = ch.Y
		lastEndX = ch.X + ch.W
		first = false
	}
	flush()

	return lines
}

// charBox converts one positioned character into a top-origin box. The
// baseline Y is expanded to the font's nominal height.
func (p *Page) charBox(ch pdf.Text) model.BBox {
	height := ch.FontSize
	if height <= 0 {
		height = 1
	}
	width := ch.W
	if width <= 0 {
		width = height / 2
	}
	return model.NewBBox(ch.X, p.height-ch.Y-height, width, height)
}

// mergeLines joins consecutive lines separated by less than blockGapRatio
// line heights into one block.
func mergeLines(lines []textLine) []TextBlock {
	if len(lines) == 0 {
		return nil
	}

	blocks := make([]TextBlock, 0, len(lines))
	current := TextBlock{Text: lines[0].text, BBox: lines[0].bbox}

	for _, line := range lines[1:] {
		gap := line.bbox.Top() - current.BBox.Bottom()
		if gap < line.bbox.Height*blockGapRatio {
			current.Text += "\n" + line.text
			current.BBox = current.BBox.Union(line.bbox)
		} else {
			blocks = append(blocks, current)
			current = TextBlock{Text: line.text, BBox: line.bbox}
		}
	}

	return append(blocks, current)
}

// decodeString reads a PDF text string value, or "" when absent.
// Strings with a UTF-16BE byte order mark are decoded; everything else is
// assumed to be close enough to Latin text to pass through.
func decodeString(v pdf.Value) string {
	if v.Kind() != pdf.String {
		return ""
	}
	s := v.RawString()
	if strings.HasPrefix(s, "\xfe\xff") {
		dec := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		if decoded, err := dec.String(s); err == nil {
			s = decoded
		}
	}
	return strings.TrimSpace(s)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
