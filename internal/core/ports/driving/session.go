package driving

import (
	"context"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

// ChatSession is the state of one interactive chat.
// It is created at session start, mutated by user actions and
// discarded when the session ends.
type ChatSession interface {
	// ID returns the session identifier used for history persistence.
	ID() string

	// Ask answers a question and appends the exchange to the history.
	Ask(ctx context.Context, question string) (domain.Exchange, error)

	// Upload processes files into the knowledge base.
	Upload(ctx context.Context, raws []domain.RawDocument) []domain.ProcessResult

	// DocumentCount returns the number of stored chunk records.
	DocumentCount(ctx context.Context) int

	// History returns the exchanges so far, oldest first.
	History() []domain.Exchange

	// QuestionCount returns how many questions have been answered.
	QuestionCount() int

	// RecentQuestions returns the last n questions, truncated for display.
	RecentQuestions(n int) []string

	// ClearChat empties the history.
	ClearChat(ctx context.Context) error

	// ClearDocuments removes every stored document.
	ClearDocuments(ctx context.Context) error

	// Model returns the selected language model.
	Model() string

	// SetModel selects the language model for subsequent questions.
	SetModel(model string)
}
