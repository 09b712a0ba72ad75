// SPDX-License-Identifier: Apache-2.0

package readers

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/idmatch/idmatch-mcp/internal/sources"
)

// batchEntry is one document of a batch upload.
type batchEntry struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
}

// BatchReader reads a multi-document YAML stream where every document is an
// {id, text} entry, typically the OCR of all faces of one submission.
type BatchReader struct{}

func NewBatchReader() *BatchReader {
	return &BatchReader{}
}

func (r *BatchReader) Name() string {
	return "batch"
}

// CanHandle accepts the "batch", "yaml" and "yml" hints, or unhinted content
// that opens a YAML stream with an id or text key.
func (r *BatchReader) CanHandle(source sources.Source) bool {
	switch strings.ToLower(source.Format) {
	case "batch", "yaml", "yml":
		return true
	case "":
	default:
		return false
	}
	content := strings.TrimSpace(string(source.Content))
	content = strings.TrimSpace(strings.TrimPrefix(content, "---"))
	return strings.HasPrefix(content, "id:") || strings.HasPrefix(content, "text:")
}

// Read splits the stream on document separators. Entries that fail to decode
// or have no text come back as pages carrying Err; entries without an id are
// named after the source and their position. A stream without a single
// readable entry is ErrNoText.
func (r *BatchReader) Read(_ context.Context, source sources.Source) ([]sources.Page, error) {
	docs := strings.Split("\n"+string(source.Content), "\n---")

	var pages []sources.Page
	readable := 0
	position := 0
	for _, doc := range docs {
		if strings.TrimSpace(doc) == "" {
			continue
		}
		position++
		page := sources.Page{
			SourceID: fmt.Sprintf("%s[%d]", source.ID, position),
			Index:    len(pages),
		}

		var entry batchEntry
		if err := yaml.Unmarshal([]byte(doc), &entry); err != nil {
			page.Err = fmt.Errorf("entry %d: failed to decode: %w", position, err)
			pages = append(pages, page)
			continue
		}
		if entry.ID != "" {
			page.SourceID = entry.ID
		}
		page.Text = strings.TrimSpace(entry.Text)
		if page.Text == "" {
			page.Err = fmt.Errorf("entry %d: %w", position, sources.ErrNoText)
		} else {
			readable++
		}
		pages = append(pages, page)
	}
	if readable == 0 {
		return nil, sources.ErrNoText
	}
	return pages, nil
}
