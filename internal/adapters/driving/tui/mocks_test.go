package tui

import (
	"context"
	"sync"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driving"
)

// Ensure fakeSession implements the interface.
var _ driving.ChatSession = (*fakeSession)(nil)

// fakeSession is a scripted chat session.
type fakeSession struct {
	mu        sync.Mutex
	documents int
	model     string
	answer    string
	askErr    error
	history   []domain.Exchange
	uploaded  []domain.RawDocument
	cleared   bool
	docsGone  bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{documents: 3, model: domain.ModelClaudeHaiku, answer: "42"}
}

func (f *fakeSession) ID() string { return "session-1" }

func (f *fakeSession) Ask(_ context.Context, question string) (domain.Exchange, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.askErr != nil {
		return domain.Exchange{}, f.askErr
	}
	e := domain.Exchange{Question: question, Answer: f.answer, Model: f.model, Sources: []string{"a.txt", "a.txt", "b.txt"}}
	f.history = append(f.history, e)
	return e, nil
}

func (f *fakeSession) Upload(_ context.Context, raws []domain.RawDocument) []domain.ProcessResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, raws...)
	results := make([]domain.ProcessResult, len(raws))
	for i, r := range raws {
		results[i] = domain.ProcessResult{Filename: r.Filename, Chunks: make([]domain.Chunk, 2)}
	}
	return results
}

func (f *fakeSession) DocumentCount(_ context.Context) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.documents
}

func (f *fakeSession) History() []domain.Exchange {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Exchange(nil), f.history...)
}

func (f *fakeSession) QuestionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.history)
}

func (f *fakeSession) RecentQuestions(n int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	start := max(len(f.history)-n, 0)
	var out []string
	for _, e := range f.history[start:] {
		out = append(out, e.Question+"...")
	}
	return out
}

func (f *fakeSession) ClearChat(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = nil
	f.cleared = true
	return nil
}

func (f *fakeSession) ClearDocuments(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents = 0
	f.docsGone = true
	return nil
}

func (f *fakeSession) Model() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.model
}

func (f *fakeSession) SetModel(model string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.model = model
}
