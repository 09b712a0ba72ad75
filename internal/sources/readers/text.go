// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/idmatch/idmatch-mcp/internal/sources"
)

// pageBreak separates pages in pdftotext and tesseract text output.
const pageBreak = "\f"

// TextReader reads plain OCR text. Form feeds split the text into pages and
// each non-blank page becomes one candidate document.
type TextReader struct{}

// NewTextReader creates a new TextReader.
func NewTextReader() *TextReader {
	return &TextReader{}
}

func (r *TextReader) Name() string {
	return "text"
}

// CanHandle accepts the "text", "txt" and "plain" hints, and any valid UTF-8
// content when no hint is given.
func (r *TextReader) CanHandle(source sources.Source) bool {
	switch strings.ToLower(source.Format) {
	case "text", "txt", "plain":
		return true
	case "":
		return utf8.Valid(source.Content)
	}
	return false
}

func (r *TextReader) Read(_ context.Context, source sources.Source) ([]sources.Page, error) {
	var pages []sources.Page
	for _, text := range strings.Split(string(source.Content), pageBreak) {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, sources.Page{
			Text:     text,
			SourceID: source.ID,
			Index:    len(pages),
		})
	}
	return pages, nil
}
