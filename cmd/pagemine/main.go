// Command pagemine extracts page records from a PDF and writes them as JSON.
//
// Usage:
//
//	pagemine [flags] input.pdf
//
// By default the document record is written to stdout; use -out to write to
// a file instead. Warnings (degraded pages, dropped images) are logged to
// stderr and never abort the run.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/phuslu/log"

	"github.com/tsawler/pagemine"
	"github.com/tsawler/pagemine/ocr"
)

func main() {
	var (
		outPath = flag.String("out", "", "write the JSON record to this file instead of stdout")
		zoom    = flag.Float64("zoom", 2.0, "rasterization scale for the OCR pass")
		workers = flag.Int("workers", 0, "page workers (0 = one per CPU)")
		lang    = flag.String("lang", "", "OCR language(s), e.g. eng or eng+deu")
		pages   = flag.String("pages", "", "comma-separated 1-indexed pages, e.g. 1,3,5 (default all)")
		noOCR   = flag.Bool("no-ocr", false, "skip the render+OCR pass")
		pretty  = flag.Bool("pretty", false, "indent the JSON output")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Usage = usage
	flag.Parse()

	log.DefaultLogger = log.Logger{
		Level:      log.InfoLevel,
		TimeFormat: time.RFC3339,
		Writer:     &log.ConsoleWriter{Writer: os.Stderr, ColorOutput: false},
	}
	if *verbose {
		log.DefaultLogger.Level = log.DebugLevel
	}

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	ext := pagemine.Open(input).Zoom(*zoom).Workers(*workers)
	if *lang != "" {
		ext = ext.Language(*lang)
	}
	if *noOCR {
		ext = ext.WithoutOCR()
	}
	if *pages != "" {
		selected, err := parsePages(*pages)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid -pages value")
		}
		ext = ext.Pages(selected...)
	}

	start := time.Now()
	doc, warnings, err := ext.Document()
	if err != nil {
		log.Fatal().Err(err).Str("input", input).Msg("Extraction failed")
	}

	hinted := false
	for _, w := range warnings {
		log.Warn().Int("page", w.Page).Str("code", string(w.Code)).Err(w.Err).Msg("Degraded extraction")
		if !hinted && errors.Is(w.Err, ocr.ErrNotEnabled) {
			log.Warn().Msg("OCR support is not compiled in; rebuild with -tags ocr or pass -no-ocr")
			hinted = true
		}
	}
	log.Info().
		Str("input", input).
		Int("pages", doc.PageCount()).
		Int("warnings", len(warnings)).
		Dur("elapsed", time.Since(start)).
		Msg("Extraction complete")

	var (
		encoded []byte
	)
	if *pretty {
		encoded, err = json.MarshalIndent(doc, "", "  ")
	} else {
		encoded, err = json.Marshal(doc)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Encoding document record failed")
	}
	encoded = append(encoded, '\n')

	if *outPath == "" {
		if _, err := os.Stdout.Write(encoded); err != nil {
			log.Fatal().Err(err).Msg("Writing record failed")
		}
		return
	}
	if err := os.WriteFile(*outPath, encoded, 0o644); err != nil {
		log.Fatal().Err(err).Str("out", *outPath).Msg("Writing record failed")
	}
	log.Info().Str("out", *outPath).Msg("Record written")
}

func parsePages(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	pages := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("page %q is not a number", part)
		}
		pages = append(pages, n)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages given")
	}
	return pages, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] input.pdf\n\nFlags:\n", os.Args[0])
	flag.PrintDefaults()
}
