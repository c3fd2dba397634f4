package driving

import (
	"context"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

// DocumentService ingests uploaded files into the vector store.
type DocumentService interface {
	// Process extracts, chunks, embeds and stores one file.
	// Failures are reported in the result, never as a panic.
	Process(ctx context.Context, raw domain.RawDocument) domain.ProcessResult

	// Upload processes a batch of files in parallel.
	// Results are in input order; one failing file does not stop the others.
	Upload(ctx context.Context, raws []domain.RawDocument) []domain.ProcessResult

	// Count returns the number of stored chunk records.
	Count(ctx context.Context) (int, error)

	// Clear removes every stored record.
	Clear(ctx context.Context) error

	// SupportedExtensions returns the file extensions that can be uploaded.
	SupportedExtensions() []string
}
