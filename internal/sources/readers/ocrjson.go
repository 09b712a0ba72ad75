// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/idmatch/idmatch-mcp/internal/sources"
)

type textBlock struct {
	Text string `yaml:"text"`
}

type textAnnotation struct {
	Description string `yaml:"description"`
}

// ocrPayload covers the OCR result shapes seen in practice: a bare {text},
// a paged {pages: [{text}]}, and Google Vision annotate responses, either
// single or batched under "responses".
type ocrPayload struct {
	Text               string           `yaml:"text"`
	Pages              []textBlock      `yaml:"pages"`
	FullTextAnnotation *textBlock       `yaml:"fullTextAnnotation"`
	TextAnnotations    []textAnnotation `yaml:"textAnnotations"`
	Responses          []ocrPayload     `yaml:"responses"`
}

// texts returns the page texts of the payload, most specific shape first.
func (p ocrPayload) texts() []string {
	switch {
	case len(p.Responses) > 0:
		var out []string
		for _, r := range p.Responses {
			out = append(out, r.texts()...)
		}
		return out
	case len(p.Pages) > 0:
		out := make([]string, 0, len(p.Pages))
		for _, page := range p.Pages {
			out = append(out, page.Text)
		}
		return out
	case p.FullTextAnnotation != nil && p.FullTextAnnotation.Text != "":
		return []string{p.FullTextAnnotation.Text}
	case len(p.TextAnnotations) > 0:
		// The first annotation of a Vision response spans the whole image.
		return []string{p.TextAnnotations[0].Description}
	case p.Text != "":
		return []string{p.Text}
	}
	return nil
}

// OCRJSONReader reads structured OCR payloads in JSON or YAML.
type OCRJSONReader struct{}

func NewOCRJSONReader() *OCRJSONReader {
	return &OCRJSONReader{}
}

func (r *OCRJSONReader) Name() string {
	return "ocr-json"
}

func (r *OCRJSONReader) CanHandle(source sources.Source) bool {
	switch strings.ToLower(source.Format) {
	case "json", "ocr-json", "vision":
		return true
	case "":
		return strings.HasPrefix(strings.TrimSpace(string(source.Content)), "{")
	}
	return false
}

func (r *OCRJSONReader) Read(_ context.Context, source sources.Source) ([]sources.Page, error) {
	var payload ocrPayload
	if err := yaml.Unmarshal(source.Content, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal OCR payload: %w", err)
	}

	var pages []sources.Page
	for _, text := range payload.texts() {
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
	if len(pages) == 0 {
		return nil, sources.ErrNoText
	}
	return pages, nil
}
