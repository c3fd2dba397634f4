package driven

import (
	"context"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

// Normaliser extracts text from one file format.
// Each normaliser handles a fixed set of file extensions (e.g. ".pdf").
type Normaliser interface {
	// SupportedExtensions returns the lowercase extensions this normaliser handles,
	// including the leading dot.
	SupportedExtensions() []string

	// Normalise extracts the document text from a raw upload.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Note: Normalisation only produces a Document with Content.
// Chunking is handled by the PostProcessor pipeline.
type NormaliseResult struct {
	// Document is the normalised document with Content field populated.
	Document domain.Document
}
