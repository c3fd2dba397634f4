package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store, err := New(Config{URL: server.URL + "/", Key: "anon-key"})
	require.NoError(t, err)
	return store
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(Config{URL: "https://example.supabase.co"})
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestStore_Upsert(t *testing.T) {
	var got []map[string]any
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/documents", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	err := store.Upsert(context.Background(), []domain.Chunk{{
		Content:   "hello",
		Embedding: []float32{0.5, 0.25},
		Metadata:  domain.ChunkMetadata{Filename: "a.txt", ChunkID: 0, TotalChunks: 1, FileType: ".txt", DocumentID: "abc"},
	}})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "hello", got[0]["content"])
	assert.Equal(t, []any{0.5, 0.25}, got[0]["embedding"])
	assert.Equal(t, map[string]any{
		"filename": "a.txt", "chunk_id": float64(0), "total_chunks": float64(1),
		"file_type": ".txt", "document_id": "abc",
	}, got[0]["metadata"])
}

func TestStore_Search(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/rpc/match_documents", r.URL.Path)

		var req matchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 3, req.MatchCount)
		assert.InDelta(t, 0.3, req.MatchThreshold, 1e-9)
		assert.Len(t, req.QueryEmbedding, 2)

		_, _ = w.Write([]byte(`[{"id":7,"content":"hit","metadata":{"filename":"a.txt","chunk_id":2},"similarity":0.82}]`))
	})

	got, err := store.Search(context.Background(), []float32{1, 0}, domain.SearchOptions{Limit: 3, Threshold: 0.3})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "hit", got[0].Content)
	assert.Equal(t, 2, got[0].Metadata.ChunkID)
	assert.InDelta(t, 0.82, got[0].Similarity, 1e-9)
}

func TestStore_SearchErrorWrapsRetrieval(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "function match_documents does not exist", http.StatusNotFound)
	})

	_, err := store.Search(context.Background(), []float32{1}, domain.SearchOptions{Limit: 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRetrieval)
	assert.Contains(t, err.Error(), "status 404")
}

func TestStore_Count(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		assert.Equal(t, "count=exact", r.Header.Get("Prefer"))
		w.Header().Set("Content-Range", "0-0/42")
		w.WriteHeader(http.StatusPartialContent)
	})

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "neq.0", r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, store.Clear(context.Background()))
	assert.NoError(t, store.Close())
}

func TestParseContentRange(t *testing.T) {
	tests := []struct {
		header  string
		want    int
		wantErr bool
	}{
		{header: "0-0/42", want: 42},
		{header: "*/0", want: 0},
		{header: "0-0/*", wantErr: true},
		{header: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := parseContentRange(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
