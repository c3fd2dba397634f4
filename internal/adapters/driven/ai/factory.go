// Package ai builds the embedding, language model, vector store and archive
// adapters selected by the settings.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	s3archive "github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/archive/s3"
	ollamaembed "github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/embedding/openai"
	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/llm/openrouter"
	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/storage/memory"
	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/storage/sqlite"
	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/vectorstore/elasticsearch"
	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/vectorstore/null"
	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/vectorstore/postgres"
	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/vectorstore/supabase"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of service initialisation.
type InitResult struct {
	EmbeddingService driven.EmbeddingService
	LLMService       driven.LLMService
	VectorStore      driven.VectorStore
	Archive          driven.Archive // nil when archiving is not configured

	// LLMErr explains why LLMService is nil. Commands that need the model fail with it.
	LLMErr error

	Warnings []string // Non-fatal issues that caused fallback.
	FellBack bool     // True if the inert vector store is in use.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
	if r.VectorStore != nil {
		r.VectorStore.Close()
	}
	if r.LLMService != nil {
		r.LLMService.Close()
	}
	if r.Archive != nil {
		r.Archive.Close()
	}
}

// Initialise creates every service from settings. local is the SQLite store
// shared with chat history; it backs the vector store when the sqlite
// backend is selected. A missing LLM key is recorded in LLMErr, not returned.
func Initialise(ctx context.Context, settings *domain.Settings, local *sqlite.Store) (*InitResult, error) {
	result := &InitResult{}

	embedding, err := CreateEmbeddingService(&settings.Embedding)
	if err != nil {
		return nil, err
	}
	result.EmbeddingService = embedding

	result.LLMService, result.LLMErr = CreateLLMService(&settings.LLM)

	store, warning, err := CreateVectorStore(ctx, &settings.VectorStore, settings.Embedding.Dimensions, local)
	if err != nil {
		result.Close()
		return nil, err
	}
	result.VectorStore = store
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
		result.FellBack = true
	}

	archive, err := CreateArchive(&settings.Archive)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("archive disabled: %v", err))
	} else {
		result.Archive = archive
	}

	return result, nil
}

// CreateEmbeddingService creates the embedding service for the configured provider.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	switch settings.Provider {
	case domain.AIProviderOllama, "":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		}), nil

	case domain.AIProviderOpenAI:
		svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
		}
		return svc, nil

	default:
		return nil, fmt.Errorf("%w: unsupported embedding provider: %s", domain.ErrEmbeddingUnavailable, settings.Provider)
	}
}

// CreateLLMService creates the OpenRouter client.
// Returns an error wrapping domain.ErrMissingCredentials when no key is set.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := openrouter.NewLLMService(openrouter.Config{
		APIKey:      settings.APIKey,
		BaseURL:     settings.BaseURL,
		Model:       settings.Model,
		Timeout:     settings.Timeout,
		MaxTokens:   settings.MaxTokens,
		Temperature: &settings.Temperature,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// CreateVectorStore creates the configured backend. A backend whose
// credentials are missing falls back to the inert store, and the returned
// warning says why.
func CreateVectorStore(
	ctx context.Context, settings *domain.VectorStoreSettings, dimensions int, local *sqlite.Store,
) (driven.VectorStore, string, error) {
	switch settings.Backend {
	case domain.VectorBackendSupabase, "":
		if !settings.HasSupabaseCredentials() {
			return null.New(), "SUPABASE_URL and SUPABASE_ANON_KEY are not set; search returns placeholder results", nil
		}
		store, err := supabase.New(supabase.Config{URL: settings.URL, Key: settings.Key, Timeout: settings.Timeout})
		if err != nil {
			return nil, "", err
		}
		return store, "", nil

	case domain.VectorBackendPostgres:
		if settings.DSN == "" {
			return null.New(), "DOCCHAT_POSTGRES_DSN is not set; search returns placeholder results", nil
		}
		if settings.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, settings.Timeout)
			defer cancel()
		}
		store, err := postgres.New(ctx, postgres.Config{DSN: settings.DSN, Dimensions: dimensions})
		if err != nil {
			return nil, "", err
		}
		return store, "", nil

	case domain.VectorBackendElasticsearch:
		if len(settings.Addresses) == 0 {
			return null.New(), "vector_store.addresses is empty; search returns placeholder results", nil
		}
		store, err := elasticsearch.New(elasticsearch.Config{
			Addresses:  settings.Addresses,
			Index:      settings.Index,
			Username:   settings.Username,
			Password:   settings.Password,
			Dimensions: dimensions,
		})
		if err != nil {
			return nil, "", err
		}
		return store, "", nil

	case domain.VectorBackendSQLite:
		if local == nil {
			return nil, "", errors.New("sqlite backend selected but no local store is open")
		}
		return local.VectorStore(), "", nil

	case domain.VectorBackendMemory:
		return memory.NewVectorStore(), "", nil

	case domain.VectorBackendNull:
		return null.New(), "", nil

	default:
		return nil, "", fmt.Errorf("%w: unknown vector store backend %q", domain.ErrConfiguration, settings.Backend)
	}
}

// CreateArchive creates the S3 archive, or returns nil when none is configured.
func CreateArchive(settings *domain.ArchiveSettings) (driven.Archive, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}
	archive, err := s3archive.New(s3archive.Config{
		Endpoint:        settings.Endpoint,
		Bucket:          settings.Bucket,
		AccessKeyID:     settings.AccessKey,
		SecretAccessKey: settings.SecretKey,
		UseSSL:          settings.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return archive, nil
}

// Ping checks that the embedding service and language model answer.
// A nil service is skipped.
func Ping(ctx context.Context, r *InitResult) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if r.EmbeddingService != nil {
		if err := r.EmbeddingService.Ping(ctx); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
		}
	}
	if r.LLMService != nil {
		if err := r.LLMService.Ping(ctx); err != nil {
			return fmt.Errorf("language model unreachable: %w", err)
		}
	}
	return nil
}
