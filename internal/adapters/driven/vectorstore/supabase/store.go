// Package supabase stores chunk vectors in a Supabase project through its
// PostgREST API. The project must have the documents table and the
// match_documents function (see Schema).
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultTable   = "documents"
	DefaultTimeout = 30 * time.Second

	matchFunction = "match_documents"
)

// Schema is the SQL the Supabase project needs before the first upload.
const Schema = `CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE documents (
    id SERIAL PRIMARY KEY,
    content TEXT NOT NULL,
    embedding VECTOR(384),
    metadata JSONB,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);

CREATE INDEX ON documents USING ivfflat (embedding vector_cosine_ops);

CREATE OR REPLACE FUNCTION match_documents (
    query_embedding VECTOR(384),
    match_threshold FLOAT,
    match_count INT
) RETURNS TABLE (id INT, content TEXT, metadata JSONB, similarity FLOAT)
LANGUAGE SQL STABLE AS $$
    SELECT id, content, metadata, 1 - (embedding <=> query_embedding) AS similarity
    FROM documents
    WHERE 1 - (embedding <=> query_embedding) > match_threshold
    ORDER BY similarity DESC
    LIMIT match_count;
$$;
`

// Config holds the Supabase project settings.
type Config struct {
	// URL is the project URL (SUPABASE_URL).
	URL string

	// Key is the anon key (SUPABASE_ANON_KEY).
	Key string

	// Table is the chunk table (default: documents).
	Table string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Store talks to the PostgREST endpoint of a Supabase project.
type Store struct {
	client  *http.Client
	restURL string
	key     string
	table   string
}

// New creates a Supabase store. Both URL and key are required.
func New(cfg Config) (*Store, error) {
	if cfg.URL == "" || cfg.Key == "" {
		return nil, fmt.Errorf("%w: supabase url and key are required", domain.ErrMissingCredentials)
	}
	if cfg.Table == "" {
		cfg.Table = DefaultTable
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Store{
		client:  &http.Client{Timeout: cfg.Timeout},
		restURL: strings.TrimSuffix(cfg.URL, "/") + "/rest/v1",
		key:     cfg.Key,
		table:   cfg.Table,
	}, nil
}

type row struct {
	Content   string               `json:"content"`
	Embedding []float32            `json:"embedding"`
	Metadata  domain.ChunkMetadata `json:"metadata"`
}

type matchRequest struct {
	QueryEmbedding []float32 `json:"query_embedding"`
	MatchThreshold float64   `json:"match_threshold"`
	MatchCount     int       `json:"match_count"`
}

// Upsert inserts one row per chunk. Rows are keyed by a serial id, so
// re-uploading a file adds new rows.
func (s *Store) Upsert(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	rows := make([]row, len(chunks))
	for i, c := range chunks {
		rows[i] = row{Content: c.Content, Embedding: c.Embedding, Metadata: c.Metadata}
	}

	resp, err := s.do(ctx, http.MethodPost, "/"+s.table, rows, map[string]string{"Prefer": "return=minimal"})
	if err != nil {
		return fmt.Errorf("insert chunks: %w", err)
	}
	resp.Body.Close()
	return nil
}

// Search calls the match_documents function.
func (s *Store) Search(ctx context.Context, query []float32, opts domain.SearchOptions) ([]domain.RetrievedChunk, error) {
	req := matchRequest{
		QueryEmbedding: query,
		MatchThreshold: opts.Threshold,
		MatchCount:     opts.Limit,
	}

	resp, err := s.do(ctx, http.MethodPost, "/rpc/"+matchFunction, req, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetrieval, err)
	}
	defer resp.Body.Close()

	var results []domain.RetrievedChunk
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: decode matches: %v", domain.ErrRetrieval, err)
	}
	return results, nil
}

// Count asks PostgREST for an exact row count.
func (s *Store) Count(ctx context.Context) (int, error) {
	resp, err := s.do(ctx, http.MethodHead, "/"+s.table+"?select=id", nil, map[string]string{
		"Prefer": "count=exact",
		"Range":  "0-0",
	})
	if err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	resp.Body.Close()

	return parseContentRange(resp.Header.Get("Content-Range"))
}

// Clear deletes every row. PostgREST refuses unfiltered deletes, hence the id filter.
func (s *Store) Clear(ctx context.Context) error {
	resp, err := s.do(ctx, http.MethodDelete, "/"+s.table+"?id=neq.0", nil, nil)
	if err != nil {
		return fmt.Errorf("clear chunks: %w", err)
	}
	resp.Body.Close()
	return nil
}

// Close releases idle connections.
func (s *Store) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// do sends a request and returns the response when the status is 2xx.
func (s *Store) do(ctx context.Context, method, path string, body any, headers map[string]string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.restURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVectorStoreUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("supabase error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return resp, nil
}

// parseContentRange reads the total from a header such as "0-0/42" or "*/0".
func parseContentRange(header string) (int, error) {
	idx := strings.LastIndex(header, "/")
	if idx < 0 {
		return 0, fmt.Errorf("missing count in content range %q", header)
	}
	total := header[idx+1:]
	if total == "*" {
		return 0, fmt.Errorf("count not computed in content range %q", header)
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("parse content range %q: %w", header, err)
	}
	return n, nil
}
