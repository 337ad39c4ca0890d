// Package pdftext turns statement PDFs into plain text. The embedded text
// layer is tried first; scanned statements without one fall back to OCR
// over rasterized pages.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

// minTextLen is the threshold below which a text layer is considered absent.
// Scanned PDFs often carry a few stray glyphs of embedded text; anything this
// short cannot be a statement.
const minTextLen = 32

// maxOCRPages caps how many pages are rasterized. OCR runs at hundreds of
// milliseconds per page; statements longer than this are truncated with a
// warning rather than blocking the pipeline.
const maxOCRPages = 8

// ocrDPI is the rasterization resolution handed to tesseract.
const ocrDPI = 200

var ErrNoText = errors.New("no text recoverable from PDF")

// Result is the outcome of text recovery from one PDF.
type Result struct {
	Text    string
	Pages   int
	UsedOCR bool
	// Truncated is set when the page cap cut off OCR.
	Truncated bool
}

// Extractor recovers text from PDF statements.
type Extractor struct {
	logger  *slog.Logger
	ocrLang string
}

// New returns an Extractor that runs tesseract with the given language
// (empty means "eng").
func New(logger *slog.Logger, ocrLang string) *Extractor {
	if ocrLang == "" {
		ocrLang = "eng"
	}
	return &Extractor{logger: logger, ocrLang: ocrLang}
}

// Extract recovers text from PDF bytes: text layer first, OCR fallback.
// The context is checked between pages so a canceled batch stops promptly.
func (e *Extractor) Extract(ctx context.Context, data []byte) (*Result, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	text, err := e.textLayer(ctx, doc, pages)
	if err != nil {
		return nil, err
	}
	if !needsOCR(text) {
		return &Result{Text: text, Pages: pages}, nil
	}

	e.logger.Info("pdf has no usable text layer, running ocr", "pages", pages)
	return e.ocr(ctx, doc, pages)
}

func (e *Extractor) textLayer(ctx context.Context, doc *fitz.Document, pages int) (string, error) {
	var b strings.Builder
	for i := 0; i < pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		pageText, err := doc.Text(i)
		if err != nil {
			e.logger.Warn("text extraction failed for page", "page", i+1, "error", err)
			continue
		}
		if pageText != "" {
			b.WriteString(pageText)
			b.WriteString("\n")
		}
	}
	return strings.TrimSpace(b.String()), nil
}

func (e *Extractor) ocr(ctx context.Context, doc *fitz.Document, pages int) (*Result, error) {
	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetLanguage(e.ocrLang); err != nil {
		return nil, fmt.Errorf("ocr language %q: %w", e.ocrLang, err)
	}

	res := &Result{Pages: pages, UsedOCR: true}
	ocrPages := pages
	if ocrPages > maxOCRPages {
		ocrPages = maxOCRPages
		res.Truncated = true
	}

	var b strings.Builder
	for i := 0; i < ocrPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := doc.ImageDPI(i, ocrDPI)
		if err != nil {
			e.logger.Warn("rasterization failed for page", "page", i+1, "error", err)
			continue
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			e.logger.Warn("png encode failed for page", "page", i+1, "error", err)
			continue
		}
		if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
			e.logger.Warn("ocr input rejected for page", "page", i+1, "error", err)
			continue
		}
		pageText, err := client.Text()
		if err != nil {
			e.logger.Warn("ocr failed for page", "page", i+1, "error", err)
			continue
		}
		if pageText != "" {
			b.WriteString(pageText)
			b.WriteString("\n")
		}
	}

	res.Text = strings.TrimSpace(b.String())
	if res.Text == "" {
		return nil, ErrNoText
	}
	return res, nil
}

// needsOCR reports whether the recovered text layer is too thin to be real.
func needsOCR(text string) bool {
	return len(strings.TrimSpace(text)) < minTextLen
}
