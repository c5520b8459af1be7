package tables

import (
	"strings"

	"github.com/tsawler/pagemine/ocr"
)

// RowSeparator joins the token texts of one pseudo-row.
const RowSeparator = " | "

// Config holds grouper configuration.
type Config struct {
	// MinConfidence is the exclusive confidence cut-off (0-100). Tokens at
	// or below it are discarded before grouping.
	MinConfidence float64

	// BandTolerance is the maximum vertical distance in pixels between the
	// top edges of consecutive tokens in the same row.
	BandTolerance float64
}

// DefaultConfig returns the default grouper configuration.
func DefaultConfig() Config {
	return Config{
		MinConfidence: 60,
		BandTolerance: 10,
	}
}

// Grouper clusters OCR tokens into pipe-delimited pseudo-rows.
type Grouper struct {
	config Config
}

// NewGrouper creates a grouper with default configuration.
func NewGrouper() *Grouper {
	return &Grouper{config: DefaultConfig()}
}

// Configure sets the grouper configuration.
func (g *Grouper) Configure(config Config) {
	g.config = config
}

// Rows groups tokens into pseudo-rows. Tokens must be in engine scan order;
// the grouping is a single greedy pass and is not re-sorted. An empty or
// fully low-confidence input yields no rows.
func (g *Grouper) Rows(tokens []ocr.Token) []string {
	var rows []string
	var current []string

	lastTop := 0.0
	haveTop := false

	for _, tok := range tokens {
		if tok.Confidence <= g.config.MinConfidence {
			continue
		}

		top := tok.BBox.Top()
		if !haveTop || abs(top-lastTop) < g.config.BandTolerance {
			current = append(current, tok.Text)
		} else {
			rows = append(rows, strings.Join(current, RowSeparator))
			current = []string{tok.Text}
		}
		lastTop = top
		haveTop = true
	}

	if len(current) > 0 {
		rows = append(rows, strings.Join(current, RowSeparator))
	}

	return rows
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
