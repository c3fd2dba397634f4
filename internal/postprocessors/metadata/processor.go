// Package metadata annotates chunks with their positional metadata.
package metadata

import (
	"context"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

// Processor fills in ChunkMetadata once the full chunk sequence is known.
// It must run after the chunker.
type Processor struct{}

// New creates a metadata processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "metadata"
}

// Process stamps every chunk with the filename, ordinal, total count,
// file type and document ID of its parent document.
func (p *Processor) Process(_ context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	fileType := doc.FileType
	if fileType == "" {
		fileType = domain.FileType(doc.Filename)
	}

	total := len(chunks)
	for i := range chunks {
		chunks[i].Position = i
		chunks[i].DocumentID = doc.ID
		chunks[i].Metadata = domain.ChunkMetadata{
			Filename:    doc.Filename,
			ChunkID:     i,
			TotalChunks: total,
			FileType:    fileType,
			DocumentID:  doc.ID,
		}
	}
	return chunks, nil
}
