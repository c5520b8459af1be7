package source

import (
	"io"
	"strconv"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pagemine/model"
)

// imageRef is one image XObject reference found in a page content stream,
// in content order, with its placement rectangle in top-origin page points.
type imageRef struct {
	name string
	bbox model.BBox
}

// placements scans the page content stream for image placements. For each
// "/Name Do" paint of an image XObject it records the unit square
// transformed by the current transformation matrix. Best-effort: a stream
// that cannot be read or parsed yields however many references were found
// before the problem.
func (p *Page) placements() []imageRef {
	names := p.imageXObjectNames()
	if len(names) == 0 {
		return nil
	}

	data := p.contentStream()
	if len(data) == 0 {
		return nil
	}

	return scanPlacements(data, names, p.height)
}

// imageXObjectNames returns the set of XObject resource names on this page
// whose subtype is Image.
func (p *Page) imageXObjectNames() map[string]bool {
	defer func() {
		// Malformed resource dictionaries surface as panics in ledongthuc/pdf.
		recover()
	}()

	xobjects := p.page.V.Key("Resources").Key("XObject")
	if xobjects.Kind() != pdf.Dict {
		return nil
	}

	names := make(map[string]bool)
	for _, name := range xobjects.Keys() {
		if xobjects.Key(name).Key("Subtype").Name() == "Image" {
			names[name] = true
		}
	}
	return names
}

// contentStream concatenates the page's content stream(s).
func (p *Page) contentStream() (data []byte) {
	defer func() {
		if recover() != nil {
			data = nil
		}
	}()

	contents := p.page.V.Key("Contents")
	switch contents.Kind() {
	case pdf.Stream:
		return readStream(contents)
	case pdf.Array:
		for i := 0; i < contents.Len(); i++ {
			part := readStream(contents.Index(i))
			if len(part) > 0 {
				data = append(data, part...)
				data = append(data, '\n')
			}
		}
		return data
	default:
		return nil
	}
}

func readStream(v pdf.Value) []byte {
	if v.Kind() != pdf.Stream {
		return nil
	}
	rc := v.Reader()
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil
	}
	return data
}

// scanPlacements is a minimal content stream walk tracking only what image
// placement needs: the CTM through q/Q/cm, the most recent name operand,
// and Do operators naming an image XObject. Inline images (BI...EI) are
// skipped wholesale.
func scanPlacements(data []byte, imageNames map[string]bool, pageHeight float64) []imageRef {
	var refs []imageRef
	var stack []model.Matrix

	ctm := model.Identity()
	var operands []float64
	lastName := ""

	pos := 0
	for pos < len(data) {
		c := data[pos]

		switch {
		case isStreamSpace(c):
			pos++

		case c == '%':
			for pos < len(data) && data[pos] != '\n' && data[pos] != '\r' {
				pos++
			}

		case c == '/':
			start := pos + 1
			pos = start
			for pos < len(data) && isRegular(data[pos]) {
				pos++
			}
			lastName = string(data[start:pos])

		case c == '(':
			pos = skipLiteralString(data, pos)

		case c == '<':
			if pos+1 < len(data) && data[pos+1] == '<' {
				pos += 2 // dict markers carry no state we track
			} else {
				for pos < len(data) && data[pos] != '>' {
					pos++
				}
				pos++
			}

		case c == '>' || c == '[' || c == ']' || c == '{' || c == '}':
			pos++

		case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
			start := pos
			pos++
			for pos < len(data) && (data[pos] == '.' || data[pos] == '-' ||
				data[pos] == '+' || (data[pos] >= '0' && data[pos] <= '9')) {
				pos++
			}
			if f, err := strconv.ParseFloat(string(data[start:pos]), 64); err == nil {
				operands = append(operands, f)
			}

		default:
			start := pos
			for pos < len(data) && isRegular(data[pos]) {
				pos++
			}
			if pos == start {
				pos++ // unknown byte, skip
				continue
			}

			switch op := string(data[start:pos]); op {
			case "q":
				stack = append(stack, ctm)
			case "Q":
				if n := len(stack); n > 0 {
					ctm = stack[n-1]
					stack = stack[:n-1]
				}
			case "cm":
				if len(operands) >= 6 {
					m := operands[len(operands)-6:]
					cm := model.Matrix{m[0], m[1], m[2], m[3], m[4], m[5]}
					ctm = cm.Multiply(ctm)
				}
			case "Do":
				if imageNames[lastName] {
					refs = append(refs, imageRef{
						name: lastName,
						bbox: unitSquareBBox(ctm, pageHeight),
					})
				}
			case "BI":
				pos = skipInlineImage(data, pos)
			}
			operands = operands[:0]
		}
	}

	return refs
}

// unitSquareBBox transforms the image unit square by the CTM and flips the
// result into top-origin page coordinates.
func unitSquareBBox(ctm model.Matrix, pageHeight float64) model.BBox {
	corners := []model.Point{
		ctm.Transform(model.Point{X: 0, Y: 0}),
		ctm.Transform(model.Point{X: 1, Y: 0}),
		ctm.Transform(model.Point{X: 0, Y: 1}),
		ctm.Transform(model.Point{X: 1, Y: 1}),
	}

	minX, maxX := corners[0].X, corners[0].X
	minY, maxY := corners[0].Y, corners[0].Y
	for _, p := range corners[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	return model.NewBBox(minX, pageHeight-maxY, maxX-minX, maxY-minY)
}

// skipLiteralString advances past a (...) string, honoring nesting and
// backslash escapes. pos points at the opening parenthesis.
func skipLiteralString(data []byte, pos int) int {
	depth := 0
	for pos < len(data) {
		switch data[pos] {
		case '\\':
			pos++ // skip escaped byte
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return pos + 1
			}
		}
		pos++
	}
	return pos
}

// skipInlineImage advances past BI ... ID <binary> EI. pos points just past
// "BI". The binary payload can contain anything, so scan for a delimited EI.
func skipInlineImage(data []byte, pos int) int {
	for pos+1 < len(data) {
		if data[pos] == 'E' && data[pos+1] == 'I' &&
			(pos == 0 || isStreamSpace(data[pos-1])) &&
			(pos+2 >= len(data) || isStreamSpace(data[pos+2])) {
			return pos + 2
		}
		pos++
	}
	return len(data)
}

func isStreamSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isRegular(c byte) bool {
	if isStreamSpace(c) {
		return false
	}
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return false
	}
	return true
}
