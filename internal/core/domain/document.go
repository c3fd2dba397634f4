package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Document represents an uploaded file after text extraction.
// It is the canonical representation after normalisation.
type Document struct {
	// ID is the document identifier shared by all of its chunks.
	ID string

	// Filename is the original name of the uploaded file.
	Filename string

	// FileType is the lowercase extension including the dot (e.g. ".txt").
	FileType string

	// Content is the full extracted text before chunking.
	Content string

	// Metadata contains extractor-specific key-value pairs (page_count, ocr).
	Metadata map[string]string

	// CreatedAt is when the document was extracted.
	CreatedAt time.Time
}

// ChunkMetadata is the positional metadata attached to every chunk.
// The JSON field names form the chunk record contract with vector stores.
type ChunkMetadata struct {
	Filename    string `json:"filename"`
	ChunkID     int    `json:"chunk_id"`
	TotalChunks int    `json:"total_chunks"`
	FileType    string `json:"file_type"`
	DocumentID  string `json:"document_id"`
}

// Chunk represents a retrievable segment of a document.
type Chunk struct {
	// ID is the storage row identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the trimmed, non-empty text of this chunk.
	Content string

	// Position is the zero-based ordinal within the document.
	Position int

	// Embedding is the vector representation used for similarity search.
	Embedding []float32

	// Metadata is attached once the full chunk sequence is known.
	Metadata ChunkMetadata
}

// FileType returns the lowercase extension of filename including the dot.
// Returns an empty string when the name has no extension.
func FileType(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
