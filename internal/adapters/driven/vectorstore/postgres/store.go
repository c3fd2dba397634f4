// Package postgres stores chunk vectors in Postgres with the pgvector
// extension. It uses the same documents table and match_documents function
// as the Supabase backend, so either can read what the other wrote.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
	"github.com/iamshubh29/RAG-Project-CSI/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Config holds the Postgres connection settings.
type Config struct {
	// DSN is the connection string (DOCCHAT_POSTGRES_DSN).
	DSN string

	// Dimensions is the embedding size used for the vector column (default: 384).
	Dimensions int
}

// Store runs similarity search inside Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to Postgres and creates the schema when missing.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("%w: postgres dsn is required", domain.ErrMissingCredentials)
	}
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = domain.DefaultDimensions
	}

	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping postgres: %v", domain.ErrVectorStoreUnavailable, err)
	}

	for _, stmt := range Schema(cfg.Dimensions) {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	logger.Debug("postgres vector store ready (%d dimensions)", cfg.Dimensions)

	return &Store{pool: pool}, nil
}

// Schema returns the statements that create the extension, table, index
// and search function for vectors of the given size.
func Schema(dimensions int) []string {
	dims := strconv.Itoa(dimensions)
	return []string{
		"CREATE EXTENSION IF NOT EXISTS vector",
		`CREATE TABLE IF NOT EXISTS documents (
			id SERIAL PRIMARY KEY,
			content TEXT NOT NULL,
			embedding VECTOR(` + dims + `),
			metadata JSONB,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`,
		"CREATE INDEX IF NOT EXISTS documents_embedding_idx ON documents USING hnsw (embedding vector_cosine_ops)",
		`CREATE OR REPLACE FUNCTION match_documents (
			query_embedding VECTOR(` + dims + `),
			match_threshold FLOAT,
			match_count INT
		) RETURNS TABLE (id INT, content TEXT, metadata JSONB, similarity FLOAT)
		LANGUAGE SQL STABLE AS $$
			SELECT d.id, d.content, d.metadata, 1 - (d.embedding <=> query_embedding) AS similarity
			FROM documents d
			WHERE 1 - (d.embedding <=> query_embedding) > match_threshold
			ORDER BY similarity DESC
			LIMIT match_count;
		$$`,
	}
}

// Upsert inserts one row per chunk in a single batch.
func (s *Store) Upsert(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, c := range chunks {
		meta, err := json.Marshal(c.Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for %s: %w", c.ID, err)
		}
		batch.Queue(
			"INSERT INTO documents (content, embedding, metadata) VALUES ($1, $2::vector, $3)",
			c.Content, VectorLiteral(c.Embedding), meta,
		)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert chunks: %w", err)
	}
	return nil
}

// Search calls match_documents.
func (s *Store) Search(ctx context.Context, query []float32, opts domain.SearchOptions) ([]domain.RetrievedChunk, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT content, metadata, similarity FROM match_documents($1::vector, $2, $3)",
		VectorLiteral(query), opts.Threshold, opts.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetrieval, err)
	}
	defer rows.Close()

	var results []domain.RetrievedChunk
	for rows.Next() {
		var (
			r    domain.RetrievedChunk
			meta []byte
		)
		if err := rows.Scan(&r.Content, &meta, &r.Similarity); err != nil {
			return nil, fmt.Errorf("%w: scan match: %v", domain.ErrRetrieval, err)
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &r.Metadata); err != nil {
				return nil, fmt.Errorf("%w: decode metadata: %v", domain.ErrRetrieval, err)
			}
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetrieval, err)
	}
	return results, nil
}

// Count returns the number of rows in documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}

// Clear deletes every row.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("clear chunks: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// VectorLiteral formats v in pgvector's text input form, e.g. "[0.5,1]".
func VectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
