package memory

import (
	"context"
	"sync"

	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/vectorstore"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore keeps chunk vectors in memory and searches them by brute force.
type VectorStore struct {
	mu     sync.RWMutex
	order  []string
	chunks map[string]domain.Chunk
}

// NewVectorStore creates an empty in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{chunks: make(map[string]domain.Chunk)}
}

// Upsert stores chunks keyed by their ID, replacing earlier versions.
func (s *VectorStore) Upsert(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range chunks {
		if _, ok := s.chunks[c.ID]; !ok {
			s.order = append(s.order, c.ID)
		}
		s.chunks[c.ID] = c
	}
	return nil
}

// Search ranks every stored chunk against query.
func (s *VectorStore) Search(_ context.Context, query []float32, opts domain.SearchOptions) ([]domain.RetrievedChunk, error) {
	s.mu.RLock()
	candidates := make([]vectorstore.Candidate, 0, len(s.order))
	for _, id := range s.order {
		c := s.chunks[id]
		candidates = append(candidates, vectorstore.Candidate{
			Content:   c.Content,
			Metadata:  c.Metadata,
			Embedding: c.Embedding,
		})
	}
	s.mu.RUnlock()

	return vectorstore.Rank(query, candidates, opts), nil
}

// Count returns the number of stored chunks.
func (s *VectorStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

// Clear removes every chunk.
func (s *VectorStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.chunks = make(map[string]domain.Chunk)
	return nil
}

// Close is a no-op.
func (s *VectorStore) Close() error {
	return nil
}
