package mcp

import (
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// RAG answers questions and searches the knowledge base.
	RAG driving.RAGService

	// Documents processes uploads and reports the stored chunk count.
	Documents driving.DocumentService

	// LLMErr, when set, is returned by the ask tool instead of calling RAG.
	LLMErr error
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.RAG == nil {
		return ErrMissingRAGService
	}
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	return nil
}
