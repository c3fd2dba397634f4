package cli

import (
	"context"
	"errors"
	"sync"

	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/storage/memory"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/services"
)

// mockDocumentService records uploads and reports a fixed chunk count.
type mockDocumentService struct {
	mu       sync.Mutex
	count    int
	countErr error
	clearErr error
	cleared  bool
	failures map[string]error
	uploaded []domain.RawDocument
}

func (m *mockDocumentService) Process(_ context.Context, raw domain.RawDocument) domain.ProcessResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploaded = append(m.uploaded, raw)
	if err := m.failures[raw.Filename]; err != nil {
		return domain.ProcessResult{Filename: raw.Filename, Err: err}
	}
	m.count += 2
	return domain.ProcessResult{Filename: raw.Filename, Chunks: make([]domain.Chunk, 2)}
}

func (m *mockDocumentService) Upload(ctx context.Context, raws []domain.RawDocument) []domain.ProcessResult {
	results := make([]domain.ProcessResult, len(raws))
	for i, raw := range raws {
		results[i] = m.Process(ctx, raw)
	}
	return results
}

func (m *mockDocumentService) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count, m.countErr
}

func (m *mockDocumentService) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = true
	m.count = 0
	return nil
}

func (m *mockDocumentService) SupportedExtensions() []string {
	return []string{".csv", ".pdf", ".txt"}
}

// mockRAGService returns canned retrieval results and answers.
type mockRAGService struct {
	results   []domain.RetrievedChunk
	answer    domain.Answer
	lastK     int
	lastModel string
	questions []string
}

func (m *mockRAGService) Search(_ context.Context, _ string, k int) []domain.RetrievedChunk {
	m.lastK = k
	return m.results
}

func (m *mockRAGService) Ask(_ context.Context, question, model string) domain.Answer {
	m.questions = append(m.questions, question)
	m.lastModel = model
	answer := m.answer
	if answer.Model == "" {
		answer.Model = model
	}
	return answer
}

// fakeConnector emits a fixed set of documents and changes.
type fakeConnector struct {
	docs        []domain.RawDocument
	changes     []domain.RawDocumentChange
	validateErr error
	closed      bool
}

func (f *fakeConnector) Validate(_ context.Context) error { return f.validateErr }

func (f *fakeConnector) FullSync(_ context.Context) (<-chan domain.RawDocument, <-chan error) {
	docs := make(chan domain.RawDocument, len(f.docs))
	errs := make(chan error, 1)
	for _, d := range f.docs {
		docs <- d
	}
	close(docs)
	close(errs)
	return docs, errs
}

func (f *fakeConnector) Watch(_ context.Context) (<-chan domain.RawDocumentChange, error) {
	changes := make(chan domain.RawDocumentChange, len(f.changes))
	for _, c := range f.changes {
		changes <- c
	}
	close(changes)
	return changes, nil
}

func (f *fakeConnector) Close() error {
	f.closed = true
	return nil
}

var errStoreDown = errors.New("store down")

// testServices are the services installed by setupTestServices.
type testServices struct {
	documents *mockDocumentService
	rag       *mockRAGService
	config    *memory.ConfigStore
	history   *memory.HistoryStore
	connector *fakeConnector
}

// setupTestServices installs mock services and returns a cleanup function
// that restores the package state.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		documents: &mockDocumentService{count: 4},
		rag:       &mockRAGService{answer: domain.Answer{Text: "The answer is 42."}},
		config:    memory.NewConfigStore(),
		history:   memory.NewHistoryStore(),
		connector: &fakeConnector{},
	}

	settingsService = services.NewSettingsService(ts.config)
	documentService = ts.documents
	ragService = ts.rag
	historyStore = ts.history
	newConnector = func(string) (driven.Connector, error) { return ts.connector, nil }
	llmErr = nil

	return ts, func() {
		settingsService = nil
		documentService = nil
		ragService = nil
		historyStore = nil
		newConnector = nil
		llmErr = nil
		pingServices = nil
		closeServices = nil
		wiring = Wiring{}

		searchLimit = domain.DefaultK
		searchJSON = false
		askModel = ""
		clearConfirmed = false
		resumeID = ""
		verbose = false
		configDir = ""

		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}
}
