// Package messages defines Bubbletea message types for the chat TUI.
// Each long-running session call runs as a tea.Cmd and reports back with
// one of these messages.
package messages

import (
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

// AnswerReceived carries the result of a question.
type AnswerReceived struct {
	Exchange domain.Exchange
	Err      error
}

// UploadFinished carries per-file upload results.
type UploadFinished struct {
	Results []domain.ProcessResult
}

// DocumentCountLoaded carries the stored chunk count.
type DocumentCountLoaded struct {
	Count int
}

// ChatCleared is sent after the transcript was emptied.
type ChatCleared struct {
	Err error
}

// DocumentsCleared is sent after every stored document was removed.
type DocumentsCleared struct {
	Err error
}

// ModelChanged is sent after the model selection changed.
type ModelChanged struct {
	Model string
}

// Notice is a one-line status message for the user.
type Notice struct {
	Text    string
	IsError bool
}
