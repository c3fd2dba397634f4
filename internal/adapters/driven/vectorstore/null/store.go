// Package null provides the inert vector store used when no backend
// credentials are configured. Searches return a placeholder result so the
// chat surface keeps working; writes are dropped with a warning.
package null

import (
	"context"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
	"github.com/iamshubh29/RAG-Project-CSI/internal/logger"
)

var (
	_ driven.VectorStore         = (*Store)(nil)
	_ driven.PlaceholderSearcher = (*Store)(nil)
)

// PlaceholderFilename is the source reported by placeholder results.
const PlaceholderFilename = "demo.txt"

// Store discards writes and answers searches with a placeholder.
type Store struct{}

// New creates the inert store.
func New() *Store {
	return &Store{}
}

// Upsert drops the chunks.
func (s *Store) Upsert(_ context.Context, chunks []domain.Chunk) error {
	logger.Warn("vector store not configured, %d chunks not stored", len(chunks))
	return nil
}

// Search has no query text to echo, so it returns the placeholder for an empty query.
func (s *Store) Search(ctx context.Context, _ []float32, opts domain.SearchOptions) ([]domain.RetrievedChunk, error) {
	return s.SearchText(ctx, "", opts)
}

// SearchText returns a single placeholder chunk naming the query.
func (s *Store) SearchText(_ context.Context, query string, _ domain.SearchOptions) ([]domain.RetrievedChunk, error) {
	return []domain.RetrievedChunk{{
		Content:  "Sample result for: " + query,
		Metadata: domain.ChunkMetadata{Filename: PlaceholderFilename},
	}}, nil
}

// Count always reports an empty store.
func (s *Store) Count(_ context.Context) (int, error) {
	return 0, nil
}

// Clear is a no-op.
func (s *Store) Clear(_ context.Context) error {
	logger.Warn("vector store not configured, nothing to clear")
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
