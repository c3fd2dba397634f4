package driven

import (
	"context"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

// VectorStore persists chunk vectors and runs similarity search.
//
// Implementations include managed stores (Supabase, Postgres with pgvector,
// Elasticsearch), local stores (SQLite, memory) and an inert stub used when
// credentials are missing.
type VectorStore interface {
	// Upsert stores chunks with their embeddings and metadata.
	Upsert(ctx context.Context, chunks []domain.Chunk) error

	// Search returns at most opts.Limit chunks whose cosine similarity to query
	// is above opts.Threshold, most similar first.
	Search(ctx context.Context, query []float32, opts domain.SearchOptions) ([]domain.RetrievedChunk, error)

	// Count returns the number of stored chunk records.
	Count(ctx context.Context) (int, error)

	// Clear removes every stored chunk record.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// PlaceholderSearcher is implemented by stores that answer searches with
// synthetic results instead of a vector lookup (the inert stub).
// The query text is needed to build the placeholder content.
type PlaceholderSearcher interface {
	SearchText(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.RetrievedChunk, error)
}
