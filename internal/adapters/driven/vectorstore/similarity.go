package vectorstore

import (
	"math"
	"sort"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

// Cosine returns the cosine similarity of a and b.
// Vectors of different length, or with zero magnitude, score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Candidate is a stored chunk considered during a brute-force search.
type Candidate struct {
	Content   string
	Metadata  domain.ChunkMetadata
	Embedding []float32
}

// Rank scores candidates against query and returns those strictly above
// opts.Threshold, most similar first, truncated to opts.Limit.
// Ties keep insertion order.
func Rank(query []float32, candidates []Candidate, opts domain.SearchOptions) []domain.RetrievedChunk {
	results := make([]domain.RetrievedChunk, 0, len(candidates))
	for _, c := range candidates {
		score := Cosine(query, c.Embedding)
		if score <= opts.Threshold {
			continue
		}
		results = append(results, domain.RetrievedChunk{
			Content:    c.Content,
			Metadata:   c.Metadata,
			Similarity: score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}
