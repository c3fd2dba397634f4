package domain

// RetrievedChunk is a chunk returned by similarity search.
type RetrievedChunk struct {
	// Content is the chunk text.
	Content string `json:"content"`

	// Metadata is the chunk metadata as stored.
	Metadata ChunkMetadata `json:"metadata"`

	// Similarity is the cosine similarity to the query (0-1 for normalised vectors).
	Similarity float64 `json:"similarity"`
}

// SourceName returns the filename the chunk came from, or "Unknown".
func (r RetrievedChunk) SourceName() string {
	if r.Metadata.Filename == "" {
		return "Unknown"
	}
	return r.Metadata.Filename
}

// SearchOptions configures a similarity search.
type SearchOptions struct {
	// Limit is the maximum number of chunks (match_count).
	Limit int

	// Threshold is the minimum similarity (match_threshold).
	Threshold float64
}

// Answer is the result of asking a question.
type Answer struct {
	// Question is the question as asked.
	Question string

	// Text is the user-visible answer, including degraded messages.
	Text string

	// Sources are the chunks used as context, in prompt order.
	Sources []RetrievedChunk

	// Model is the language model that was asked.
	Model string

	// Err holds a GenerationError when the language model failed.
	// Text is still populated with a readable message in that case.
	Err error
}
