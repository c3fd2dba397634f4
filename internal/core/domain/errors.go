package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoDocuments indicates a question was asked before any document was stored.
	ErrNoDocuments = errors.New("no documents uploaded")

	// Document processing errors.

	// ErrUnsupportedFormat indicates the file extension has no extractor.
	// Surfaced per file; other files in a batch continue.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtraction indicates a format-specific extraction failure
	// (bad encoding, malformed table, OCR failure, unreadable PDF).
	ErrExtraction = errors.New("extraction failed")

	// ErrConfiguration indicates invalid parameters such as overlap >= chunk size.
	ErrConfiguration = errors.New("invalid configuration")

	// Retrieval and generation errors.

	// ErrRetrieval indicates a vector-store query failed.
	// Recovered by returning an empty result set.
	ErrRetrieval = errors.New("retrieval failed")

	// ErrGeneration indicates the language model call failed.
	// Recovered into a user-visible message.
	ErrGeneration = errors.New("generation failed")

	// ErrMissingCredentials indicates the LLM API key is absent.
	// Commands that need the LLM must not start without it.
	ErrMissingCredentials = errors.New("missing credentials")

	// Service availability errors.

	// ErrEmbeddingUnavailable indicates the embedding service is not configured or unreachable.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorStoreUnavailable indicates the vector store is not configured or unreachable.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")
)
