package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"scaled", []float32{1, 1}, []float32{3, 3}, 1},
		{"length mismatch", []float32{1}, []float32{1, 2}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRank(t *testing.T) {
	candidates := []Candidate{
		{Content: "far", Embedding: []float32{0, 1}},
		{Content: "close", Embedding: []float32{1, 0.1}},
		{Content: "exact", Embedding: []float32{1, 0}},
		{Content: "middle", Embedding: []float32{1, 1}},
	}

	got := Rank([]float32{1, 0}, candidates, domain.SearchOptions{Limit: 2, Threshold: 0.3})
	require.Len(t, got, 2)
	assert.Equal(t, "exact", got[0].Content)
	assert.Equal(t, "close", got[1].Content)
	assert.Greater(t, got[0].Similarity, got[1].Similarity)
}

func TestRank_ThresholdIsExclusive(t *testing.T) {
	candidates := []Candidate{{Content: "orthogonal", Embedding: []float32{0, 1}}}

	assert.Empty(t, Rank([]float32{1, 0}, candidates, domain.SearchOptions{Limit: 3, Threshold: 0}))
}

func TestRank_NoLimit(t *testing.T) {
	candidates := []Candidate{
		{Content: "a", Embedding: []float32{1, 0}},
		{Content: "b", Embedding: []float32{1, 0}},
	}

	got := Rank([]float32{1, 0}, candidates, domain.SearchOptions{})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Content, "ties keep insertion order")
}
