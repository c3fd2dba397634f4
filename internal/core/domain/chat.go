package domain

import "time"

// Exchange is one question/answer turn in a chat session.
type Exchange struct {
	// ID is the storage identifier.
	ID string

	// SessionID links the exchange to its chat session.
	SessionID string

	// Question is what the user asked.
	Question string

	// Answer is the text shown to the user.
	Answer string

	// Model is the language model used.
	Model string

	// Sources lists the filenames used as context.
	Sources []string

	// CreatedAt is when the answer was produced.
	CreatedAt time.Time
}

// ProcessResult reports the outcome of processing one uploaded file.
type ProcessResult struct {
	// Filename is the uploaded file's name.
	Filename string

	// Document is the extracted document (nil on failure).
	Document *Document

	// Chunks are the stored chunks in chunk_id order.
	Chunks []Chunk

	// Err is the per-file failure, if any.
	Err error
}

// OK reports whether the file was processed successfully.
func (r ProcessResult) OK() bool {
	return r.Err == nil
}
