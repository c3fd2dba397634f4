package driving

import (
	"context"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

// RAGService answers questions from stored documents.
type RAGService interface {
	// Search returns the chunks most similar to query, at most k.
	// Store failures are logged and yield an empty result.
	Search(ctx context.Context, query string, k int) []domain.RetrievedChunk

	// Ask retrieves context for question and asks model to answer it.
	// An empty model uses the configured default. Generation failures are
	// rendered into Answer.Text and recorded in Answer.Err.
	Ask(ctx context.Context, question, model string) domain.Answer
}
