package driven

import (
	"context"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

// HistoryStore persists chat exchanges so sessions can be resumed.
type HistoryStore interface {
	// Append records an exchange for its session.
	Append(ctx context.Context, exchange domain.Exchange) error

	// List returns a session's exchanges in the order they were asked.
	List(ctx context.Context, sessionID string) ([]domain.Exchange, error)

	// Clear removes a session's exchanges.
	Clear(ctx context.Context, sessionID string) error
}
