package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

func chunk(id, content string, vec ...float32) domain.Chunk {
	return domain.Chunk{
		ID:        id,
		Content:   content,
		Embedding: vec,
		Metadata:  domain.ChunkMetadata{Filename: content + ".txt"},
	}
}

func TestVectorStore_UpsertSearchCount(t *testing.T) {
	ctx := context.Background()
	s := NewVectorStore()

	require.NoError(t, s.Upsert(ctx, []domain.Chunk{
		chunk("1", "north", 0, 1),
		chunk("2", "east", 1, 0),
		chunk("3", "northeast", 1, 1),
	}))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	got, err := s.Search(ctx, []float32{1, 0}, domain.SearchOptions{Limit: 3, Threshold: 0.3})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "east", got[0].Content)
	assert.Equal(t, "east.txt", got[0].Metadata.Filename)
	assert.Equal(t, "northeast", got[1].Content)
}

func TestVectorStore_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewVectorStore()

	require.NoError(t, s.Upsert(ctx, []domain.Chunk{chunk("1", "old", 1, 0)}))
	require.NoError(t, s.Upsert(ctx, []domain.Chunk{chunk("1", "new", 1, 0)}))

	count, _ := s.Count(ctx)
	assert.Equal(t, 1, count)

	got, err := s.Search(ctx, []float32{1, 0}, domain.SearchOptions{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, "new", got[0].Content)
}

func TestVectorStore_Clear(t *testing.T) {
	ctx := context.Background()
	s := NewVectorStore()
	require.NoError(t, s.Upsert(ctx, []domain.Chunk{chunk("1", "a", 1)}))

	require.NoError(t, s.Clear(ctx))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NoError(t, s.Close())
}

func TestHistoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewHistoryStore()

	require.NoError(t, s.Append(ctx, domain.Exchange{SessionID: "a", Question: "q1"}))
	require.NoError(t, s.Append(ctx, domain.Exchange{SessionID: "b", Question: "other"}))
	require.NoError(t, s.Append(ctx, domain.Exchange{SessionID: "a", Question: "q2"}))

	got, err := s.List(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "q1", got[0].Question)
	assert.Equal(t, "q2", got[1].Question)

	require.NoError(t, s.Clear(ctx, "a"))
	got, err = s.List(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, _ = s.List(ctx, "b")
	assert.Len(t, got, 1)
}
