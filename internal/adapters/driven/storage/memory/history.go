package memory

import (
	"context"
	"sync"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore keeps chat exchanges per session in memory.
type HistoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]domain.Exchange
}

// NewHistoryStore creates an empty history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{sessions: make(map[string][]domain.Exchange)}
}

// Append records an exchange for its session.
func (s *HistoryStore) Append(_ context.Context, exchange domain.Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[exchange.SessionID] = append(s.sessions[exchange.SessionID], exchange)
	return nil
}

// List returns a copy of the session's exchanges in insertion order.
func (s *HistoryStore) List(_ context.Context, sessionID string) ([]domain.Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Exchange(nil), s.sessions[sessionID]...), nil
}

// Clear removes a session's exchanges.
func (s *HistoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
