package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamshubh29/RAG-Project-CSI/internal/adapters/driven/storage/memory"
	"github.com/iamshubh29/RAG-Project-CSI/internal/core/domain"
)

func newSettingsService(store *memory.ConfigStore, env map[string]string) *SettingsService {
	service := NewSettingsService(store)
	service.getenv = func(key string) string { return env[key] }
	return service
}

func TestNewSettingsService(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NotNil(t, service)
	assert.Equal(t, ":memory:", service.Path())
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := newSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
	assert.Equal(t, service.GetDefaults(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"llm.model":              domain.ModelGeminiPro,
		"llm.timeout":            "90s",
		"retrieval.k":            int64(5),
		"retrieval.threshold":    0.5,
		"chunker.chunk_size":     int64(800),
		"vector_store.backend":   "elasticsearch",
		"vector_store.addresses": []any{"http://es1:9200", "http://es2:9200"},
		"archive.use_ssl":        true,
	})
	service := newSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.ModelGeminiPro, settings.LLM.Model)
	assert.Equal(t, 90*time.Second, settings.LLM.Timeout)
	assert.Equal(t, 5, settings.Retrieval.K)
	assert.InDelta(t, 0.5, settings.Retrieval.Threshold, 1e-9)
	assert.Equal(t, 800, settings.Chunker.ChunkSize)
	assert.Equal(t, domain.VectorBackendElasticsearch, settings.VectorStore.Backend)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, settings.VectorStore.Addresses)
	assert.True(t, settings.Archive.UseSSL)
}

func TestSettingsService_Get_ZeroThresholdIsKept(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{"retrieval.threshold": int64(0)})
	service := newSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Zero(t, settings.Retrieval.Threshold)
}

func TestSettingsService_Get_BadValuesKeepDefaults(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"llm.timeout":         "soon",
		"retrieval.threshold": "high",
		"retrieval.k":         "many",
	})
	service := newSettingsService(store, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.LLM.Timeout, settings.LLM.Timeout)
	assert.Equal(t, defaults.Retrieval, settings.Retrieval)
}

func TestSettingsService_Get_EnvironmentCredentials(t *testing.T) {
	env := map[string]string{
		EnvOpenRouterKey:    "sk-or-1",
		EnvSupabaseURL:      "https://x.supabase.co",
		EnvSupabaseKey:      " anon ",
		EnvOpenAIKey:        "sk-oa",
		EnvPostgresDSN:      "postgres://localhost/docs",
		EnvESPassword:       "elastic",
		EnvArchiveAccessKey: "minio",
		EnvArchiveSecretKey: "minio123",
	}
	store := memory.NewConfigStore(map[string]any{"vector_store.dsn": "postgres://from-file"})
	service := newSettingsService(store, env)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "sk-or-1", settings.LLM.APIKey)
	assert.Equal(t, "https://x.supabase.co", settings.VectorStore.URL)
	assert.Equal(t, "anon", settings.VectorStore.Key)
	assert.True(t, settings.VectorStore.HasSupabaseCredentials())
	assert.Equal(t, "sk-oa", settings.Embedding.APIKey)
	assert.Equal(t, "postgres://localhost/docs", settings.VectorStore.DSN)
	assert.Equal(t, "elastic", settings.VectorStore.Password)
	assert.Equal(t, "minio", settings.Archive.AccessKey)
	assert.Equal(t, "minio123", settings.Archive.SecretKey)
}

func TestSettingsService_Save_OmitsCredentials(t *testing.T) {
	store := memory.NewConfigStore()
	service := newSettingsService(store, nil)
	settings := domain.DefaultSettings()
	settings.LLM.APIKey = "secret"
	settings.VectorStore.Key = "anon"
	settings.Retrieval.K = 7

	require.NoError(t, service.Save(&settings))

	assert.Equal(t, 1, store.Saves())
	assert.Equal(t, 7, store.GetInt("retrieval.k"))
	assert.Equal(t, "1m0s", store.GetString("llm.timeout"))
	for _, key := range service.Keys() {
		value, ok := store.Get(key)
		require.True(t, ok, key)
		assert.NotEqual(t, "secret", value)
		assert.NotEqual(t, "anon", value)
	}
	_, ok := store.Get("llm.api_key")
	assert.False(t, ok)
}

func TestSettingsService_Save_RoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := newSettingsService(store, nil)
	settings := domain.DefaultSettings()
	settings.VectorStore.Backend = domain.VectorBackendPostgres
	settings.Ingest.Workers = 2
	settings.VectorStore.Addresses = []string{"http://es:9200"}

	require.NoError(t, service.Save(&settings))
	got, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, settings, *got)
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	store := memory.NewConfigStore()
	service := newSettingsService(store, nil)
	settings := domain.DefaultSettings()
	settings.Chunker.Overlap = settings.Chunker.ChunkSize

	err := service.Save(&settings)

	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Zero(t, store.Saves())
}

type failingConfigStore struct {
	*memory.ConfigStore
	failKey string
}

func (f *failingConfigStore) Set(key string, value any) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.ConfigStore.Set(key, value)
}

func TestSettingsService_Save_StoreError(t *testing.T) {
	store := &failingConfigStore{ConfigStore: memory.NewConfigStore(), failKey: "retrieval.k"}
	service := NewSettingsService(store)
	settings := domain.DefaultSettings()

	err := service.Save(&settings)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "retrieval.k")
	assert.Zero(t, store.Saves())
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.Settings)
	}{
		{"retrieval.k", "5", func(t *testing.T, s *domain.Settings) { assert.Equal(t, 5, s.Retrieval.K) }},
		{"retrieval.threshold", "0.45", func(t *testing.T, s *domain.Settings) {
			assert.InDelta(t, 0.45, s.Retrieval.Threshold, 1e-9)
		}},
		{"llm.timeout", "2m", func(t *testing.T, s *domain.Settings) { assert.Equal(t, 2*time.Minute, s.LLM.Timeout) }},
		{"archive.use_ssl", "true", func(t *testing.T, s *domain.Settings) { assert.True(t, s.Archive.UseSSL) }},
		{"vector_store.backend", "sqlite", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, domain.VectorBackendSQLite, s.VectorStore.Backend)
		}},
		{"vector_store.addresses", "http://a:9200, http://b:9200,", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, []string{"http://a:9200", "http://b:9200"}, s.VectorStore.Addresses)
		}},
		{"ingest.max_upload_size", "50MB", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, "50MB", s.Ingest.MaxUploadSize)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := newSettingsService(store, nil)

			require.NoError(t, service.Set(tt.key, tt.value))

			assert.Equal(t, 1, store.Saves())
			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_Set_Errors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"unknown key", "llm.api_key", "x", domain.ErrInvalidInput},
		{"not an int", "retrieval.k", "three", domain.ErrInvalidInput},
		{"not a float", "retrieval.threshold", "high", domain.ErrInvalidInput},
		{"not a bool", "archive.use_ssl", "maybe", domain.ErrInvalidInput},
		{"not a duration", "llm.timeout", "60", domain.ErrInvalidInput},
		{"k below one", "retrieval.k", "0", domain.ErrConfiguration},
		{"threshold above one", "retrieval.threshold", "1.5", domain.ErrConfiguration},
		{"unknown backend", "vector_store.backend", "redis", domain.ErrConfiguration},
		{"bad size", "ingest.max_upload_size", "lots", domain.ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := newSettingsService(store, nil)

			err := service.Set(tt.key, tt.value)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, store.Saves())
		})
	}
}

func TestSettingsService_SetModel(t *testing.T) {
	store := memory.NewConfigStore()
	service := newSettingsService(store, nil)

	require.NoError(t, service.SetModel(domain.ModelWizardLM2))

	assert.Equal(t, domain.ModelWizardLM2, store.GetString("llm.model"))
}

func TestSettingsService_Keys(t *testing.T) {
	service := newSettingsService(memory.NewConfigStore(), nil)

	keys := service.Keys()

	assert.IsNonDecreasing(t, keys)
	assert.Contains(t, keys, "llm.model")
	assert.Contains(t, keys, "retrieval.threshold")
	assert.NotContains(t, keys, "llm.api_key")
	assert.Len(t, keys, len(knownSettings))
}
