// Package chunker provides a boundary-aware text chunking processor.
package chunker

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// boundaryThreshold is the fraction of a chunk that must precede a boundary
// for the cut to snap to it.
const boundaryThreshold = 0.7

// Processor splits document content into overlapping chunks that prefer
// to end at a sentence, line or word boundary.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		p.chunkSize = size
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		p.overlap = overlap
	}
}

// New creates a new chunker processor with the given options.
// Returns domain.ErrConfiguration if overlap is not smaller than the chunk size.
func New(opts ...Option) (*Processor, error) {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := validate(p.chunkSize, p.overlap); err != nil {
		return nil, err
	}
	return p, nil
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the configured chunk size.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the configured overlap.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
// Metadata is left empty; the metadata processor fills it once the count is known.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	texts, err := Split(doc.Content, p.chunkSize, p.overlap)
	if err != nil {
		return nil, err
	}

	chunks := make([]domain.Chunk, 0, len(texts))
	for i, text := range texts {
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Content:    text,
			Position:   i,
		})
	}
	return chunks, nil
}

// Split divides text into overlapping segments of at most chunkSize characters.
//
// Each cut prefers the last period, then newline, then space inside the window,
// provided it lies past 70% of the window; otherwise the raw cut is kept.
// The next segment starts overlap characters before the previous cut.
// Segments are trimmed and empty ones are dropped. Lengths count runes.
func Split(text string, chunkSize, overlap int) ([]string, error) {
	if err := validate(chunkSize, overlap); err != nil {
		return nil, err
	}

	runes := []rune(text)
	n := len(runes)

	if n <= chunkSize {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return []string{trimmed}, nil
		}
		return nil, nil
	}

	var chunks []string
	for _, s := range spans(runes, chunkSize, overlap) {
		if chunk := strings.TrimSpace(string(runes[s.start:s.end])); chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	return chunks, nil
}

// span is a half-open rune range of the source text.
type span struct {
	start, end int
}

// spans computes the raw segment ranges for Split. Starts strictly increase
// so the scan always terminates, even when a boundary snap pulls the cut
// back further than the overlap allows.
func spans(runes []rune, chunkSize, overlap int) []span {
	n := len(runes)

	var out []span
	start := 0
	for start < n {
		end := start + chunkSize

		if end < n {
			threshold := float64(start) + float64(chunkSize)*boundaryThreshold
			period := lastIndex(runes, '.', start, end)
			newline := lastIndex(runes, '\n', start, end)
			space := lastIndex(runes, ' ', start, end)

			switch {
			case float64(period) > threshold:
				end = period + 1
			case float64(newline) > threshold:
				end = newline
			case float64(space) > threshold:
				end = space
			}
		}

		out = append(out, span{start: start, end: min(end, n)})

		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return out
}

// lastIndex returns the index of the last r in runes[from:to], or -1.
func lastIndex(runes []rune, r rune, from, to int) int {
	for i := to - 1; i >= from; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

func validate(chunkSize, overlap int) error {
	if chunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrConfiguration, chunkSize)
	}
	if overlap < 0 {
		return fmt.Errorf("%w: overlap must not be negative, got %d", domain.ErrConfiguration, overlap)
	}
	if overlap >= chunkSize {
		return fmt.Errorf("%w: overlap %d must be smaller than chunk size %d",
			domain.ErrConfiguration, overlap, chunkSize)
	}
	return nil
}
