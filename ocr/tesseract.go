//go:build ocr

package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/pagemine/model"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

var _ Engine = (*Client)(nil)

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Recognize performs OCR on image data (PNG, TIFF, JPEG, etc.).
// It returns the trimmed transcript plus word-level tokens in engine scan
// order. A failure to read word boxes is not fatal: the transcript is still
// returned with an empty token list.
func (c *Client) Recognize(imageData []byte) (Result, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return Result{}, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("OCR failed: %w", err)
	}

	result := Result{Text: strings.TrimSpace(text)}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return result, nil
	}

	result.Tokens = make([]Token, 0, len(boxes))
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		result.Tokens = append(result.Tokens, Token{
			Text: word,
			BBox: model.NewBBox(
				float64(box.Box.Min.X),
				float64(box.Box.Min.Y),
				float64(box.Box.Dx()),
				float64(box.Box.Dy()),
			),
			Confidence: box.Confidence,
		})
	}

	return result, nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// SetPageSegMode sets the page segmentation mode.
// This affects how Tesseract analyzes the page layout.
// See gosseract.PageSegMode constants for available modes.
func (c *Client) SetPageSegMode(mode gosseract.PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}
