// SPDX-License-Identifier: Apache-2.0

// Package sources turns raw OCR output into page texts ready for
// identification.
package sources

import (
	"context"
	"errors"
)

var (
	// ErrUnsupportedFormat is returned when no registered reader accepts a source.
	ErrUnsupportedFormat = errors.New("unsupported source format")
	// ErrEmptyContent is returned for sources without content.
	ErrEmptyContent = errors.New("content is required")
	// ErrNoText is returned by readers whose payload decodes but holds no text.
	ErrNoText = errors.New("no text found")
)

// Source is one uploaded OCR result.
type Source struct {
	// Content is the raw OCR output: plain text, a JSON/YAML OCR payload,
	// or a batch of documents.
	Content []byte
	Format  string
	ID      string
}

// Page is the text of one candidate document read from a Source. A scanned
// PDF or a photo holding several cards yields several pages.
type Page struct {
	Text     string
	SourceID string
	Index    int
	// Err is set for an entry that was present but could not be decoded.
	// Text is empty in that case.
	Err error
}

type Reader interface {
	CanHandle(source Source) bool
	Read(ctx context.Context, source Source) ([]Page, error)
	Name() string
}
