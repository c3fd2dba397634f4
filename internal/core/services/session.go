package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driving"
	"github.com/iamshubh29/RAG-Project-CSI/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.ChatSession = (*Session)(nil)

// Session messages shown for rejected questions.
const (
	MsgEmptyQuestion = "Please enter a question"
	MsgNoDocuments   = "Please upload and process documents first"
)

// DefaultRecentQuestions is how many recent questions the sidebar shows.
const DefaultRecentQuestions = 3

// recentQuestionWidth is where recent questions are cut for display.
const recentQuestionWidth = 50

// Session holds the state of one chat: its model and the exchanges so far.
// It is safe for concurrent use.
type Session struct {
	documents driving.DocumentService
	rag       driving.RAGService
	history   driven.HistoryStore

	mu        sync.Mutex
	id        string
	model     string
	exchanges []domain.Exchange
}

// NewSession starts a new chat session with a fresh ID.
// The history parameter is optional (can be nil).
func NewSession(documents driving.DocumentService, rag driving.RAGService, history driven.HistoryStore, model string) *Session {
	if model == "" {
		model = domain.DefaultModel
	}
	return &Session{
		documents: documents,
		rag:       rag,
		history:   history,
		id:        uuid.NewString(),
		model:     model,
	}
}

// ResumeSession reopens a stored session and loads its exchanges.
func ResumeSession(
	ctx context.Context, id string,
	documents driving.DocumentService, rag driving.RAGService, history driven.HistoryStore, model string,
) (*Session, error) {
	if history == nil {
		return nil, fmt.Errorf("%w: no history store to resume from", domain.ErrInvalidInput)
	}
	exchanges, err := history.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if len(exchanges) == 0 {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}

	s := NewSession(documents, rag, history, model)
	s.id = id
	s.exchanges = exchanges
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Ask answers question with the session's model and records the exchange.
// Empty questions and an empty knowledge base are rejected before any lookup.
func (s *Session) Ask(ctx context.Context, question string) (domain.Exchange, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Exchange{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, MsgEmptyQuestion)
	}
	if s.DocumentCount(ctx) == 0 {
		return domain.Exchange{}, fmt.Errorf("%w: %s", domain.ErrNoDocuments, MsgNoDocuments)
	}

	model := s.Model()
	answer := s.rag.Ask(ctx, question, model)

	exchange := domain.Exchange{
		SessionID: s.id,
		Question:  question,
		Answer:    answer.Text,
		Model:     answer.Model,
		Sources:   sourceNames(answer.Sources),
		CreatedAt: time.Now().UTC(),
	}

	if s.history != nil {
		if err := s.history.Append(ctx, exchange); err != nil {
			logger.Warn("save chat history: %v", err)
		}
	}

	s.mu.Lock()
	s.exchanges = append(s.exchanges, exchange)
	s.mu.Unlock()

	return exchange, answer.Err
}

// Upload processes files into the knowledge base.
func (s *Session) Upload(ctx context.Context, raws []domain.RawDocument) []domain.ProcessResult {
	return s.documents.Upload(ctx, raws)
}

// DocumentCount returns the number of stored chunk records.
func (s *Session) DocumentCount(ctx context.Context) int {
	n, err := s.documents.Count(ctx)
	if err != nil {
		logger.Warn("count documents: %v", err)
		return 0
	}
	return n
}

// History returns a copy of the exchanges, oldest first.
func (s *Session) History() []domain.Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Exchange, len(s.exchanges))
	copy(out, s.exchanges)
	return out
}

// QuestionCount returns how many questions have been answered.
func (s *Session) QuestionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.exchanges)
}

// RecentQuestions returns up to n of the latest questions, oldest first,
// each cut to 50 characters and followed by "...".
func (s *Session) RecentQuestions(n int) []string {
	if n <= 0 {
		n = DefaultRecentQuestions
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := max(len(s.exchanges)-n, 0)
	out := make([]string, 0, len(s.exchanges)-start)
	for _, e := range s.exchanges[start:] {
		out = append(out, truncateQuestion(e.Question))
	}
	return out
}

// ClearChat forgets the exchanges, including stored history.
func (s *Session) ClearChat(ctx context.Context) error {
	s.mu.Lock()
	s.exchanges = nil
	s.mu.Unlock()

	if s.history != nil {
		if err := s.history.Clear(ctx, s.id); err != nil {
			return fmt.Errorf("clear chat history: %w", err)
		}
	}
	return nil
}

// ClearDocuments removes every stored document.
func (s *Session) ClearDocuments(ctx context.Context) error {
	return s.documents.Clear(ctx)
}

// Model returns the selected language model.
func (s *Session) Model() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

// SetModel selects the model for later questions. Empty keeps the current one.
func (s *Session) SetModel(model string) {
	model = strings.TrimSpace(model)
	if model == "" {
		return
	}
	s.mu.Lock()
	s.model = model
	s.mu.Unlock()
}

func truncateQuestion(q string) string {
	runes := []rune(q)
	if len(runes) > recentQuestionWidth {
		runes = runes[:recentQuestionWidth]
	}
	return string(runes) + "..."
}

func sourceNames(chunks []domain.RetrievedChunk) []string {
	if len(chunks) == 0 {
		return nil
	}
	names := make([]string, len(chunks))
	for i, c := range chunks {
		names[i] = c.SourceName()
	}
	return names
}
