package domain

import (
	"fmt"
	"os"
)

// RawDocument represents an uploaded file before extraction.
// Either Path or Content is set; extractors prefer Content when present.
type RawDocument struct {
	// Filename is the original name; its extension selects the extractor.
	Filename string

	// Path is the on-disk location of the file, if any.
	Path string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains upload-specific key-value pairs.
	Metadata map[string]string
}

// Extension returns the lowercase extension used for extractor dispatch.
func (r *RawDocument) Extension() string {
	return FileType(r.Filename)
}

// Bytes returns the raw content, reading it from Path when Content is empty.
// Read failures wrap ErrExtraction.
func (r *RawDocument) Bytes() ([]byte, error) {
	if r.Content != nil || r.Path == "" {
		return r.Content, nil
	}
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrExtraction, r.Filename, err)
	}
	return data, nil
}

// ChangeType represents the type of file change observed by a watcher.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified file.
	ChangeUpdated

	// ChangeDeleted indicates a removed file.
	ChangeDeleted
)

// String returns the string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// RawDocumentChange represents a change event from a watched directory.
type RawDocumentChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Document is the affected file.
	Document RawDocument
}
