// SPDX-License-Identifier: Apache-2.0

package sources

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

type Pipeline struct {
	readers []Reader
}

// NewPipeline creates a Pipeline trying readers in the given order.
func NewPipeline(readers ...Reader) *Pipeline {
	return &Pipeline{readers: readers}
}

// ReadResult is the output of a successful read.
type ReadResult struct {
	Pages      []Page
	ReaderUsed string
}

func (p *Pipeline) Read(ctx context.Context, source Source) ([]Page, error) {
	result, err := p.ReadWithMeta(ctx, source)
	if err != nil {
		return nil, err
	}
	return result.Pages, nil
}

func (p *Pipeline) ReadWithMeta(ctx context.Context, source Source) (ReadResult, error) {
	if len(source.Content) == 0 {
		return ReadResult{}, ErrEmptyContent
	}

	reader, err := p.selectReader(source)
	if err != nil {
		return ReadResult{}, err
	}

	pages, err := reader.Read(ctx, source)
	if err != nil {
		return ReadResult{}, fmt.Errorf("reader %q failed: %w", reader.Name(), err)
	}

	return ReadResult{
		Pages:      pages,
		ReaderUsed: reader.Name(),
	}, nil
}

// selectReader returns the first registered reader that can handle the given source.
func (p *Pipeline) selectReader(source Source) (Reader, error) {
	for _, reader := range p.readers {
		if reader.CanHandle(source) {
			return reader, nil
		}
	}
	tried := make([]string, 0, len(p.readers))
	for _, name := range p.RegisteredReaders() {
		tried = append(tried, strconv.Quote(name))
	}
	return nil, fmt.Errorf("%w: no reader found for source %q (format hint: %q, tried readers: %s)",
		ErrUnsupportedFormat, source.ID, source.Format, strings.Join(tried, ", "))
}

// RegisteredReaders returns the names of all currently registered readers.
func (p *Pipeline) RegisteredReaders() []string {
	names := make([]string, len(p.readers))
	for i, reader := range p.readers {
		names[i] = reader.Name()
	}
	return names
}
