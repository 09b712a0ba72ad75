// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/idmatch/idmatch-mcp/internal/compare"
	"github.com/idmatch/idmatch-mcp/internal/sources"
	"github.com/idmatch/idmatch-mcp/internal/verify"
)

// MetadataCompareDocuments describes the compare_documents tool.
var MetadataCompareDocuments = &mcp.Tool{
	Name: "compare_documents",
	Description: "Identify several identity documents and decide whether they belong to the same person. " +
		"Every pair of readable documents is compared on Name, DateOfBirth and CardNumber after normalization. " +
		"The overall verdict is match, partial or no_match. Under the lenient policy a shared date of birth or " +
		"card number is a match and a shared name alone is partial. Under the strict policy name and date of " +
		"birth must both agree for a match. With fewer than two readable documents no verdict is given.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"documents"},
		"properties": map[string]interface{}{
			"documents": map[string]interface{}{
				"type":        "array",
				"description": "OCR outputs of the documents to compare",
				"items": map[string]interface{}{
					"type":     "object",
					"required": []string{"content"},
					"properties": map[string]interface{}{
						"content":   map[string]interface{}{"type": "string"},
						"format":    formatProperty,
						"source_id": map[string]interface{}{"type": "string"},
					},
				},
			},
			"policy": map[string]interface{}{
				"type":        "string",
				"description": "Comparison policy. Defaults to the server's configured policy.",
				"enum":        []string{"lenient", "strict"},
			},
		},
	},
}

// InputCompareDocuments is the input for the CompareDocuments tool.
type InputCompareDocuments struct {
	Documents []InputIdentifyDocument `json:"documents"`
	Policy    string                  `json:"policy"`
}

// OutputCompareDocuments is the output for the CompareDocuments tool.
type OutputCompareDocuments struct {
	Report verify.Report `json:"report"`
}

// CompareDocuments identifies every document and reports pairwise and overall
// verdicts.
func (t *Tools) CompareDocuments(ctx context.Context, _ *mcp.CallToolRequest, input InputCompareDocuments) (*mcp.CallToolResult, OutputCompareDocuments, error) {
	if len(input.Documents) == 0 {
		return nil, OutputCompareDocuments{}, verify.ErrNoRecords
	}

	policy := t.svc.Policy()
	if input.Policy != "" {
		p, err := compare.ParsePolicy(input.Policy)
		if err != nil {
			return nil, OutputCompareDocuments{}, err
		}
		policy = p
	}

	srcs := make([]sources.Source, len(input.Documents))
	for i, doc := range input.Documents {
		if doc.Content == "" {
			return nil, OutputCompareDocuments{}, fmt.Errorf("document %d: %w", i+1, sources.ErrEmptyContent)
		}
		sourceID := doc.SourceID
		if sourceID == "" {
			sourceID = fmt.Sprintf("document-%d", i+1)
		}
		srcs[i] = sources.Source{Content: []byte(doc.Content), Format: doc.Format, ID: sourceID}
	}

	report, err := t.svc.VerifyWithPolicy(ctx, srcs, policy)
	if err != nil {
		return nil, OutputCompareDocuments{}, err
	}
	return nil, OutputCompareDocuments{Report: report}, nil
}
