// Package elasticsearch stores chunk vectors in an Elasticsearch index with
// a cosine dense_vector field and searches them with approximate kNN.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
	"github.com/iamshubh29/RAG-Project-CSI/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// DefaultIndex is used when no index is configured.
const DefaultIndex = "documents"

// minCandidates is the smallest kNN candidate pool per shard.
const minCandidates = 100

// Config holds Elasticsearch client configuration.
type Config struct {
	Addresses []string
	Index     string
	Username  string
	Password  string

	// Dimensions is the dense_vector size (default: 384).
	Dimensions int
}

// Store wraps the Elasticsearch client with chunk operations.
type Store struct {
	es         *elasticsearch.Client
	index      string
	dimensions int

	mu    sync.Mutex
	ready bool
}

// New creates a store. The index is created on first write.
func New(cfg Config) (*Store, error) {
	if cfg.Index == "" {
		cfg.Index = DefaultIndex
	}
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = domain.DefaultDimensions
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	return &Store{es: es, index: cfg.Index, dimensions: cfg.Dimensions}, nil
}

type source struct {
	Content   string               `json:"content"`
	Metadata  domain.ChunkMetadata `json:"metadata"`
	Embedding []float32            `json:"embedding,omitempty"`
}

// Mapping returns the index mapping for vectors of the given size.
func Mapping(dimensions int) map[string]any {
	return map[string]any{
		"mappings": map[string]any{
			"properties": map[string]any{
				"content": map[string]any{"type": "text"},
				"metadata": map[string]any{
					"properties": map[string]any{
						"filename":     map[string]any{"type": "keyword"},
						"chunk_id":     map[string]any{"type": "integer"},
						"total_chunks": map[string]any{"type": "integer"},
						"file_type":    map[string]any{"type": "keyword"},
						"document_id":  map[string]any{"type": "keyword"},
					},
				},
				"embedding": map[string]any{
					"type":       "dense_vector",
					"dims":       dimensions,
					"index":      true,
					"similarity": "cosine",
				},
			},
		},
	}
}

// EnsureIndex creates the index with its mapping if it does not exist.
func (s *Store) EnsureIndex(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}

	res, err := s.es.Indices.Exists([]string{s.index}, s.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: check index: %v", domain.ErrVectorStoreUnavailable, err)
	}
	res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		body, err := json.Marshal(Mapping(s.dimensions))
		if err != nil {
			return fmt.Errorf("marshal mapping: %w", err)
		}
		res, err = s.es.Indices.Create(
			s.index,
			s.es.Indices.Create.WithContext(ctx),
			s.es.Indices.Create.WithBody(bytes.NewReader(body)),
		)
		if err != nil {
			return fmt.Errorf("create index: %w", err)
		}
		defer res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("create index: %s", res.String())
		}
		logger.Debug("created elasticsearch index %s (%d dims)", s.index, s.dimensions)
	}

	s.ready = true
	return nil
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		Status int `json:"status"`
		Error  struct {
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

// Upsert indexes chunks by ID with a single bulk request.
func (s *Store) Upsert(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	if err := s.EnsureIndex(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, c := range chunks {
		action := map[string]any{"index": map[string]any{"_index": s.index, "_id": c.ID}}
		if err := enc.Encode(action); err != nil {
			return fmt.Errorf("encode bulk action: %w", err)
		}
		if err := enc.Encode(source{Content: c.Content, Metadata: c.Metadata, Embedding: c.Embedding}); err != nil {
			return fmt.Errorf("encode chunk %s: %w", c.ID, err)
		}
	}

	res, err := s.es.Bulk(
		&buf,
		s.es.Bulk.WithContext(ctx),
		s.es.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("bulk index: %s", res.String())
	}

	var br bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&br); err != nil {
		return fmt.Errorf("decode bulk response: %w", err)
	}
	if br.Errors {
		for _, item := range br.Items {
			for _, result := range item {
				if result.Status >= 300 {
					return fmt.Errorf("bulk index (status %d): %s", result.Status, result.Error.Reason)
				}
			}
		}
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Score  float64 `json:"_score"`
			Source source  `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs a kNN query. Elasticsearch scores cosine hits as (1+cos)/2,
// so scores are mapped back to cosine before the threshold applies.
func (s *Store) Search(ctx context.Context, query []float32, opts domain.SearchOptions) ([]domain.RetrievedChunk, error) {
	k := opts.Limit
	if k <= 0 {
		k = domain.DefaultK
	}
	body, err := json.Marshal(map[string]any{
		"knn": map[string]any{
			"field":          "embedding",
			"query_vector":   query,
			"k":              k,
			"num_candidates": max(k*10, minCandidates),
		},
		"size":    k,
		"_source": []string{"content", "metadata"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal query: %v", domain.ErrRetrieval, err)
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(s.index),
		s.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetrieval, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", domain.ErrRetrieval, res.String())
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrRetrieval, err)
	}

	results := make([]domain.RetrievedChunk, 0, len(sr.Hits.Hits))
	for _, hit := range sr.Hits.Hits {
		similarity := CosineFromScore(hit.Score)
		if similarity <= opts.Threshold {
			continue
		}
		results = append(results, domain.RetrievedChunk{
			Content:    hit.Source.Content,
			Metadata:   hit.Source.Metadata,
			Similarity: similarity,
		})
	}
	return results, nil
}

// CosineFromScore converts a cosine kNN score back to cosine similarity.
func CosineFromScore(score float64) float64 {
	return 2*score - 1
}

// Count returns the number of indexed chunks. A missing index counts as empty.
func (s *Store) Count(ctx context.Context) (int, error) {
	res, err := s.es.Count(
		s.es.Count.WithContext(ctx),
		s.es.Count.WithIndex(s.index),
	)
	if err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return 0, nil
	}
	if res.IsError() {
		return 0, fmt.Errorf("count chunks: %s", res.String())
	}

	var cr struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&cr); err != nil {
		return 0, fmt.Errorf("decode count: %w", err)
	}
	return cr.Count, nil
}

// Clear deletes every chunk but keeps the index.
func (s *Store) Clear(ctx context.Context) error {
	body := bytes.NewReader([]byte(`{"query":{"match_all":{}}}`))
	res, err := s.es.DeleteByQuery(
		[]string{s.index},
		body,
		s.es.DeleteByQuery.WithContext(ctx),
		s.es.DeleteByQuery.WithRefresh(true),
	)
	if err != nil {
		return fmt.Errorf("clear chunks: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("clear chunks: %s", res.String())
	}
	return nil
}

// Close is a no-op; the client holds no resources that need releasing.
func (s *Store) Close() error {
	return nil
}
