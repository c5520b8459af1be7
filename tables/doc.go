// Package tables groups OCR tokens into row-like text groups.
//
// Tabular regions in a rendered page show up in OCR output as runs of word
// tokens sharing (nearly) the same vertical position. The [Grouper] exploits
// that: it walks tokens in engine scan order and collects consecutive tokens
// whose top edges sit within a narrow vertical band into one pseudo-row,
// joined with " | ".
//
// # Algorithm
//
// A single greedy pass:
//
//  1. Tokens at or below the confidence cut-off are discarded.
//  2. The first retained token opens the current row.
//  3. Each following token joins the current row if its top edge is within
//     [Config.BandTolerance] pixels of the previous token's top edge;
//     otherwise the row is flushed and a new one starts.
//  4. The last row is flushed at the end.
//
// The pass assumes scan order is top-to-bottom. Tokens landing in the same
// band keep their insertion order; there is no column-alignment or
// x-coordinate sorting pass. Rows therefore read in OCR order, which is
// good enough for downstream text indexing and deliberately left that way.
//
// # Configuration
//
// Behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.BandTolerance = 12
//	grouper := tables.NewGrouper()
//	grouper.Configure(config)
//
// Thresholds are in the pixel space of the rendered bitmap, so they scale
// with the configured render zoom.
package tables
