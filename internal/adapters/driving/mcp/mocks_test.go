package mcp

import (
	"context"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

// mockRAGService is a mock implementation of driving.RAGService.
type mockRAGService struct {
	results   []domain.RetrievedChunk
	answer    domain.Answer
	lastK     int
	lastQuery string
	lastModel string
}

func (m *mockRAGService) Search(_ context.Context, query string, k int) []domain.RetrievedChunk {
	m.lastQuery = query
	m.lastK = k
	return m.results
}

func (m *mockRAGService) Ask(_ context.Context, question, model string) domain.Answer {
	m.lastQuery = question
	m.lastModel = model
	return m.answer
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	count    int
	err      error
	failures map[string]error
	uploaded []domain.RawDocument
}

func (m *mockDocumentService) Process(_ context.Context, raw domain.RawDocument) domain.ProcessResult {
	if err := m.failures[raw.Filename]; err != nil {
		return domain.ProcessResult{Filename: raw.Filename, Err: err}
	}
	return domain.ProcessResult{Filename: raw.Filename, Chunks: make([]domain.Chunk, 3)}
}

func (m *mockDocumentService) Upload(ctx context.Context, raws []domain.RawDocument) []domain.ProcessResult {
	m.uploaded = append(m.uploaded, raws...)
	results := make([]domain.ProcessResult, len(raws))
	for i, raw := range raws {
		results[i] = m.Process(ctx, raw)
	}
	return results
}

func (m *mockDocumentService) Count(_ context.Context) (int, error) {
	return m.count, m.err
}

func (m *mockDocumentService) Clear(_ context.Context) error {
	return m.err
}

func (m *mockDocumentService) SupportedExtensions() []string {
	return []string{".csv", ".jpeg", ".jpg", ".pdf", ".png", ".txt"}
}
