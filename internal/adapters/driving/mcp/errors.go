// Package mcp provides an MCP (Model Context Protocol) server adapter for DocChat.
// It lets AI assistants search, query and extend the document knowledge base.
package mcp

import "errors"

var (
	// ErrMissingRAGService is returned when the RAG service is not provided.
	ErrMissingRAGService = errors.New("mcp: rag service is required")

	// ErrMissingDocumentService is returned when the document service is not provided.
	ErrMissingDocumentService = errors.New("mcp: document service is required")
)
