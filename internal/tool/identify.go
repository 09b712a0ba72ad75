// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/idmatch/idmatch-mcp/internal/sources"
	"github.com/idmatch/idmatch-mcp/internal/verify"
)

// MetadataIdentifyDocument describes the identify_document tool.
var MetadataIdentifyDocument = &mcp.Tool{
	Name: "identify_document",
	Description: "Identify an Indian identity document from its OCR text and extract the holder's details. " +
		"Recognised types: Aadhaar, PAN, Passport, Driving License, Voter ID. " +
		"Each document in the result carries its type, the extracted Name, DateOfBirth and CardNumber " +
		"(fields that could not be found are omitted), the per-type signal scores, and a checklist. " +
		"Documents with status \"unknown\" were read but matched no document type.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"content"},
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "OCR output of the scanned document. Form feeds separate pages.",
			},
			"format": formatProperty,
			"source_id": map[string]interface{}{
				"type":        "string",
				"description": "Optional identifier for the document (file name, upload ID) used to name the results.",
			},
		},
	},
}

// InputIdentifyDocument is the input for the IdentifyDocument tool.
type InputIdentifyDocument struct {
	Content  string `json:"content"`
	Format   string `json:"format"`
	SourceID string `json:"source_id"`
}

// OutputIdentifyDocument is the output for the IdentifyDocument tool.
type OutputIdentifyDocument struct {
	SourceID string `json:"source_id"`
	// ReaderUsed is the name of the reader that decoded the content.
	ReaderUsed string                  `json:"reader_used"`
	Documents  []verify.DocumentResult `json:"documents"`
}

// IdentifyDocument classifies the supplied OCR output and extracts its fields.
func (t *Tools) IdentifyDocument(ctx context.Context, _ *mcp.CallToolRequest, input InputIdentifyDocument) (*mcp.CallToolResult, OutputIdentifyDocument, error) {
	if input.Content == "" {
		return nil, OutputIdentifyDocument{}, sources.ErrEmptyContent
	}

	sub, err := t.svc.Identify(ctx, sources.Source{
		Content: []byte(input.Content),
		Format:  input.Format,
		ID:      input.SourceID,
	})
	if err != nil {
		return nil, OutputIdentifyDocument{}, err
	}

	return nil, OutputIdentifyDocument{
		SourceID:   sub.ID,
		ReaderUsed: sub.Reader,
		Documents:  sub.Documents,
	}, nil
}
