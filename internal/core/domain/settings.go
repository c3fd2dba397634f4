package domain

import (
	"fmt"
	"runtime"
	"time"

	"github.com/docker/go-units"
)

const unknownDescription = "Unknown"

// Language models offered by the chat interface.
const (
	ModelClaudeHaiku = "anthropic/claude-3-haiku"
	ModelGeminiPro   = "google/gemini-pro"
	ModelWizardLM2   = "microsoft/wizardlm-2-8x22b"

	// DefaultModel is used when no model has been selected.
	DefaultModel = ModelClaudeHaiku
)

// AvailableModels returns the models offered for selection, default first.
func AvailableModels() []string {
	return []string{ModelClaudeHaiku, ModelGeminiPro, ModelWizardLM2}
}

// AIProvider identifies an embedding service provider.
type AIProvider string

// Available embedding providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is an OpenAI-compatible embeddings API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// VectorBackend identifies where chunk vectors are stored.
type VectorBackend string

// Available vector store backends.
const (
	// VectorBackendSupabase stores vectors in Supabase through its REST API.
	VectorBackendSupabase VectorBackend = "supabase"

	// VectorBackendPostgres stores vectors in Postgres with pgvector.
	VectorBackendPostgres VectorBackend = "postgres"

	// VectorBackendElasticsearch stores vectors in an Elasticsearch dense_vector index.
	VectorBackendElasticsearch VectorBackend = "elasticsearch"

	// VectorBackendSQLite stores vectors in a local SQLite file.
	VectorBackendSQLite VectorBackend = "sqlite"

	// VectorBackendMemory keeps vectors in process memory.
	VectorBackendMemory VectorBackend = "memory"

	// VectorBackendNull is the inert stub used when credentials are missing.
	VectorBackendNull VectorBackend = "null"
)

// IsValid returns true if the backend is recognised.
func (b VectorBackend) IsValid() bool {
	switch b {
	case VectorBackendSupabase, VectorBackendPostgres, VectorBackendElasticsearch,
		VectorBackendSQLite, VectorBackendMemory, VectorBackendNull:
		return true
	default:
		return false
	}
}

// Description returns a human-readable description of the backend.
func (b VectorBackend) Description() string {
	switch b {
	case VectorBackendSupabase:
		return "Supabase (managed pgvector)"
	case VectorBackendPostgres:
		return "Postgres (pgvector)"
	case VectorBackendElasticsearch:
		return "Elasticsearch (dense_vector)"
	case VectorBackendSQLite:
		return "SQLite (local file)"
	case VectorBackendMemory:
		return "Memory (ephemeral)"
	case VectorBackendNull:
		return "Disabled (credentials missing)"
	default:
		return unknownDescription
	}
}

// LLMSettings configures the hosted language model client.
type LLMSettings struct {
	// Model is the default model id.
	Model string

	// BaseURL is the completions API base (OpenRouter).
	BaseURL string

	// APIKey is the bearer token. Supplied by environment only.
	APIKey string

	// Timeout bounds a single completion request.
	Timeout time.Duration

	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature is the sampling temperature.
	Temperature float64
}

// EmbeddingSettings configures the embedding provider.
type EmbeddingSettings struct {
	Provider   AIProvider
	Model      string
	BaseURL    string
	APIKey     string
	Dimensions int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// RetrievalSettings configures similarity search.
type RetrievalSettings struct {
	// K is the number of chunks retrieved per question (match_count).
	K int

	// Threshold is the minimum cosine similarity (match_threshold).
	Threshold float64
}

// ChunkerSettings configures text chunking.
type ChunkerSettings struct {
	ChunkSize int
	Overlap   int
}

// VectorStoreSettings configures the vector store backend.
type VectorStoreSettings struct {
	Backend VectorBackend

	// URL and Key are the Supabase project URL and anon key.
	URL string
	Key string

	// DSN is the Postgres connection string.
	DSN string

	// Addresses, Index, Username and Password configure Elasticsearch.
	Addresses []string
	Index     string
	Username  string
	Password  string

	// Path is the SQLite data directory (default: ~/.docchat/data).
	Path string

	// Timeout bounds a single store request.
	Timeout time.Duration
}

// HasSupabaseCredentials reports whether both Supabase values are set.
func (v VectorStoreSettings) HasSupabaseCredentials() bool {
	return v.URL != "" && v.Key != ""
}

// IngestSettings configures document processing.
type IngestSettings struct {
	// Workers is the number of documents processed in parallel.
	Workers int

	// MaxUploadSize is a human-readable size limit (e.g. "200MB").
	MaxUploadSize string
}

// MaxUploadBytes parses MaxUploadSize ("200MB", "1.5GiB").
// An empty size means no limit and returns 0.
func (i IngestSettings) MaxUploadBytes() (int64, error) {
	if i.MaxUploadSize == "" {
		return 0, nil
	}
	n, err := units.RAMInBytes(i.MaxUploadSize)
	if err != nil {
		return 0, fmt.Errorf("%w: max upload size %q: %v", ErrConfiguration, i.MaxUploadSize, err)
	}
	return n, nil
}

// DefaultWorkers is the ingestion parallelism: the CPU count, capped at 4.
func DefaultWorkers() int {
	return min(runtime.NumCPU(), 4)
}

// ArchiveSettings configures the optional S3-compatible archive of originals.
type ArchiveSettings struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// IsConfigured returns true if uploads should be archived.
func (a ArchiveSettings) IsConfigured() bool {
	return a.Endpoint != "" && a.Bucket != ""
}

// Settings holds all application settings.
type Settings struct {
	LLM         LLMSettings
	Embedding   EmbeddingSettings
	Retrieval   RetrievalSettings
	Chunker     ChunkerSettings
	VectorStore VectorStoreSettings
	Ingest      IngestSettings
	Archive     ArchiveSettings
}

// Default values.
const (
	DefaultChunkSize     = 1000
	DefaultChunkOverlap  = 200
	DefaultK             = 3
	DefaultThreshold     = 0.3
	DefaultDimensions    = 384
	DefaultMaxTokens     = 1000
	DefaultTemperature   = 0.7
	DefaultMaxUploadSize = "200MB"
	DefaultOpenRouterURL = "https://openrouter.ai/api/v1"
)

// DefaultSettings returns settings with the values the chat application ships with.
// Credentials are left empty; they come from the environment.
func DefaultSettings() Settings {
	return Settings{
		LLM: LLMSettings{
			Model:       DefaultModel,
			BaseURL:     DefaultOpenRouterURL,
			Timeout:     60 * time.Second,
			MaxTokens:   DefaultMaxTokens,
			Temperature: DefaultTemperature,
		},
		Embedding: EmbeddingSettings{
			Provider:   AIProviderOllama,
			Model:      "all-minilm",
			Dimensions: DefaultDimensions,
		},
		Retrieval: RetrievalSettings{
			K:         DefaultK,
			Threshold: DefaultThreshold,
		},
		Chunker: ChunkerSettings{
			ChunkSize: DefaultChunkSize,
			Overlap:   DefaultChunkOverlap,
		},
		VectorStore: VectorStoreSettings{
			Backend: VectorBackendSupabase,
			Index:   "documents",
			Timeout: 30 * time.Second,
		},
		Ingest: IngestSettings{
			Workers:       DefaultWorkers(),
			MaxUploadSize: DefaultMaxUploadSize,
		},
	}
}

// Validate checks settings for values that would break processing.
func (s Settings) Validate() error {
	if s.Chunker.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrConfiguration, s.Chunker.ChunkSize)
	}
	if s.Chunker.Overlap < 0 || s.Chunker.Overlap >= s.Chunker.ChunkSize {
		return fmt.Errorf("%w: overlap %d must be in [0, chunk size %d)",
			ErrConfiguration, s.Chunker.Overlap, s.Chunker.ChunkSize)
	}
	if s.Retrieval.K < 1 {
		return fmt.Errorf("%w: k must be at least 1, got %d", ErrConfiguration, s.Retrieval.K)
	}
	if s.Retrieval.Threshold < 0 || s.Retrieval.Threshold > 1 {
		return fmt.Errorf("%w: threshold must be in [0, 1], got %v", ErrConfiguration, s.Retrieval.Threshold)
	}
	if !s.VectorStore.Backend.IsValid() {
		return fmt.Errorf("%w: unknown vector store backend %q", ErrConfiguration, s.VectorStore.Backend)
	}
	if s.Embedding.Provider != "" && !s.Embedding.Provider.IsValid() {
		return fmt.Errorf("%w: unknown embedding provider %q", ErrConfiguration, s.Embedding.Provider)
	}
	if s.Ingest.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrConfiguration, s.Ingest.Workers)
	}
	if _, err := s.Ingest.MaxUploadBytes(); err != nil {
		return err
	}
	return nil
}

// AllVectorBackends returns all available vector store backends.
func AllVectorBackends() []VectorBackend {
	return []VectorBackend{
		VectorBackendSupabase,
		VectorBackendPostgres,
		VectorBackendElasticsearch,
		VectorBackendSQLite,
		VectorBackendMemory,
		VectorBackendNull,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "all-minilm",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config so processors can be added
// without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// PipelineConfigFor returns the chunk-then-annotate pipeline for the chunker settings.
func PipelineConfigFor(c ChunkerSettings) PipelineConfig {
	return PipelineConfig{
		Processors: []string{"chunker", "metadata"},
		ProcessorConfigs: map[string]map[string]any{
			"chunker": {
				"chunk_size": c.ChunkSize,
				"overlap":    c.Overlap,
			},
		},
	}
}
