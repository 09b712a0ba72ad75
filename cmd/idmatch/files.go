// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/idmatch/idmatch-mcp/internal/sources"
)

// formatFor guesses a reader hint from a file extension. An empty hint lets
// the pipeline detect the format.
func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "batch"
	case ".txt":
		return "text"
	}
	return ""
}

// readSources loads every path as a Source. "-" reads stdin.
func readSources(paths []string, stdin io.Reader) ([]sources.Source, error) {
	srcs := make([]sources.Source, 0, len(paths))
	for _, path := range paths {
		if path == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			srcs = append(srcs, sources.Source{Content: data, ID: "stdin"})
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		srcs = append(srcs, sources.Source{Content: data, Format: formatFor(path), ID: path})
	}
	return srcs, nil
}
