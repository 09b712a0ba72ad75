// SPDX-License-Identifier: Apache-2.0

// Package tool exposes document verification as MCP tools.
package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/idmatch/idmatch-mcp/internal/verify"
)

// Tools binds the MCP tool handlers to a verification service.
type Tools struct {
	svc *verify.Service
}

// New creates the tool handlers backed by svc.
func New(svc *verify.Service) *Tools {
	return &Tools{svc: svc}
}

// Register adds every tool to server.
func (t *Tools) Register(server *mcp.Server) {
	mcp.AddTool(server, MetadataIdentifyDocument, t.IdentifyDocument)
	mcp.AddTool(server, MetadataCompareDocuments, t.CompareDocuments)
}

var formatProperty = map[string]interface{}{
	"type":        "string",
	"description": "Format hint for the OCR output. One of: text, json, batch. If omitted, auto-detection is used.",
	"enum":        []string{"text", "json", "batch"},
}
